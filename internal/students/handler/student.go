package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/students/service"
	apperrors "coursebook/pkg/errors"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type StudentHandler struct {
	service service.StudentService
	log     *logger.Logger
}

func NewStudentHandler(service service.StudentService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		log:     log,
	}
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var student model.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &student); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, student)
}

func (h *StudentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	student, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, student)
}

func (h *StudentHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		students []model.Student
		err      error
	)
	switch {
	case query.Get("ids") != "":
		ids := strings.Split(query.Get("ids"), ",")
		students, err = h.service.GetByIDs(r.Context(), ids)
	case query.Get("status") != "":
		students, err = h.service.GetByStatus(r.Context(), query.Get("status"))
	case query.Get("minAge") != "" || query.Get("maxAge") != "":
		var minAge, maxAge int
		minAge, maxAge, err = parseAgeRange(query.Get("minAge"), query.Get("maxAge"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		students, err = h.service.GetByAgeRange(r.Context(), minAge, maxAge)
	default:
		students, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, students)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.StudentUpdate
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

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *StudentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/students", h.Create)
	router.GET("/api/v1/students", h.GetAll)
	router.GET("/api/v1/students/id/:id", h.GetByID)
	router.PATCH("/api/v1/students/id/:id", h.Update)
	router.DELETE("/api/v1/students/id/:id", h.Delete)
}

func parseAgeRange(minStr, maxStr string) (int, int, error) {
	if minStr == "" || maxStr == "" {
		return 0, 0, apperrors.InvalidInput("'minAge' and 'maxAge' must be provided together")
	}
	minAge, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid minAge parameter: %s", minStr))
	}
	maxAge, err := strconv.Atoi(maxStr)
	if err != nil {
		return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid maxAge parameter: %s", maxStr))
	}
	return minAge, maxAge, nil
}
