package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/teachers/service"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type TeacherHandler struct {
	service service.TeacherService
	log     *logger.Logger
}

func NewTeacherHandler(service service.TeacherService, log *logger.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		log:     log,
	}
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var teacher model.Teacher
	if err := json.NewDecoder(r.Body).Decode(&teacher); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &teacher); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, teacher)
}

func (h *TeacherHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	teacher, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, teacher)
}

func (h *TeacherHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		teachers []model.Teacher
		err      error
	)
	switch {
	case query.Get("status") != "":
		teachers, err = h.service.GetByStatus(r.Context(), query.Get("status"))
	case query.Get("level") != "":
		teachers, err = h.service.GetByLevel(r.Context(), query.Get("level"))
	default:
		teachers, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, teachers)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.TeacherUpdate
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

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *TeacherHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/teachers", h.Create)
	router.GET("/api/v1/teachers", h.GetAll)
	router.GET("/api/v1/teachers/id/:id", h.GetByID)
	router.PATCH("/api/v1/teachers/id/:id", h.Update)
	router.DELETE("/api/v1/teachers/id/:id", h.Delete)
}
