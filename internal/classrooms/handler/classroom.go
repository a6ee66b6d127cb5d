package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/classrooms/service"
	apperrors "coursebook/pkg/errors"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type ClassroomHandler struct {
	service service.ClassroomService
	log     *logger.Logger
}

func NewClassroomHandler(service service.ClassroomService, log *logger.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: service,
		log:     log,
	}
}

func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var classroom model.Classroom
	if err := json.NewDecoder(r.Body).Decode(&classroom); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &classroom); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, classroom)
}

func (h *ClassroomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	classroom, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, classroom)
}

func (h *ClassroomHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		classrooms []model.Classroom
		err        error
	)
	switch {
	case query.Get("status") != "":
		classrooms, err = h.service.GetByStatus(r.Context(), query.Get("status"))
	case query.Get("minCapacity") != "":
		minCapacity, convErr := strconv.Atoi(query.Get("minCapacity"))
		if convErr != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid minCapacity parameter: %s", query.Get("minCapacity"))))
			return
		}
		classrooms, err = h.service.GetByCapacity(r.Context(), minCapacity)
	default:
		classrooms, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, classrooms)
}

func (h *ClassroomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.ClassroomUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ClassroomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ClassroomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/classrooms", h.Create)
	router.GET("/api/v1/classrooms", h.GetAll)
	router.GET("/api/v1/classrooms/id/:id", h.GetByID)
	router.PATCH("/api/v1/classrooms/id/:id", h.Update)
	router.DELETE("/api/v1/classrooms/id/:id", h.Delete)
}
