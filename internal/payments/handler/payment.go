package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/payments/service"
	apperrors "coursebook/pkg/errors"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &payment); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, payment)
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	payment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, payment)
}

func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		payments []model.Payment
		err      error
	)
	switch {
	case query.Get("studentId") != "":
		payments, err = h.service.GetByStudent(r.Context(), query.Get("studentId"))
	case query.Get("scheduleId") != "":
		payments, err = h.service.GetBySchedule(r.Context(), query.Get("scheduleId"))
	case query.Get("startDate") != "" || query.Get("endDate") != "":
		start := strings.TrimSpace(query.Get("startDate"))
		end := strings.TrimSpace(query.Get("endDate"))
		if start == "" || end == "" {
			httputil.WriteError(w, apperrors.InvalidInput("'startDate' and 'endDate' must be provided together"))
			return
		}
		payments, err = h.service.GetByDateRange(r.Context(), start, end)
	case query.Get("status") != "":
		payments, err = h.service.GetByStatus(r.Context(), query.Get("status"))
	default:
		payments, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, payments)
}

func (h *PaymentHandler) Statistics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, stats)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.PaymentUpdate
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

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments", h.Create)
	router.GET("/api/v1/payments", h.GetAll)
	router.GET("/api/v1/payments/statistics", h.Statistics)
	router.GET("/api/v1/payments/id/:id", h.GetByID)
	router.PATCH("/api/v1/payments/id/:id", h.Update)
	router.DELETE("/api/v1/payments/id/:id", h.Delete)
}
