package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	scheduleerrors "coursebook/internal/schedules/errors"
	"coursebook/internal/schedules/service"
	apperrors "coursebook/pkg/errors"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var sc model.Schedule
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.Add(r.Context(), &sc)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !result.Success {
		httputil.WriteJSON(w, http.StatusConflict, result)
		return
	}

	httputil.WriteCreated(w, sc)
}

func (h *ScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	sc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			err = apperrors.NotFoundWithID("schedule", id)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sc)
}

// GetAll serves the list endpoint. At most one filter applies, resolved in a
// fixed order: date, date range, teacher, student, classroom, status.
func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		schedules []model.Schedule
		err       error
	)
	switch {
	case query.Get("date") != "":
		schedules, err = h.service.GetByDate(r.Context(), query.Get("date"))
	case query.Get("startDate") != "" || query.Get("endDate") != "":
		start := strings.TrimSpace(query.Get("startDate"))
		end := strings.TrimSpace(query.Get("endDate"))
		if start == "" || end == "" {
			httputil.WriteError(w, apperrors.InvalidInput("'startDate' and 'endDate' must be provided together"))
			return
		}
		schedules, err = h.service.GetByDateRange(r.Context(), start, end)
	case query.Get("teacherId") != "":
		schedules, err = h.service.GetByTeacher(r.Context(), query.Get("teacherId"))
	case query.Get("studentId") != "":
		schedules, err = h.service.GetByStudent(r.Context(), query.Get("studentId"))
	case query.Get("classroomId") != "":
		schedules, err = h.service.GetByClassroom(r.Context(), query.Get("classroomId"))
	case query.Get("status") != "":
		schedules, err = h.service.GetByStatus(r.Context(), query.Get("status"))
	default:
		schedules, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, schedules)
}

func (h *ScheduleHandler) CheckConflict(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var sc model.Schedule
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	check, err := h.service.CheckConflict(r.Context(), &sc)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, check)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.ScheduleUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !result.Success {
		if result.Reason == service.ReasonNotFound {
			httputil.WriteError(w, apperrors.NotFoundWithID("schedule", id))
			return
		}
		httputil.WriteJSON(w, http.StatusConflict, result)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/schedules", h.Create)
	router.GET("/api/v1/schedules", h.GetAll)
	router.POST("/api/v1/schedules/check-conflict", h.CheckConflict)
	router.GET("/api/v1/schedules/id/:id", h.GetByID)
	router.PATCH("/api/v1/schedules/id/:id", h.Update)
	router.DELETE("/api/v1/schedules/id/:id", h.Delete)
}
