package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/system/service"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

type SelectDirectoryRequest struct {
	Path string `json:"path"`
}

type SystemHandler struct {
	storage service.StorageService
	log     *logger.Logger
}

func NewSystemHandler(storage service.StorageService, log *logger.Logger) *SystemHandler {
	return &SystemHandler{
		storage: storage,
		log:     log,
	}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := h.storage.Status(r.Context())
	if err != nil {
		h.log.Error("Storage health check failed", "error", err, "path", r.URL.Path)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Storage: "error",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ready",
		Storage: status.ActiveTier,
	})
}

func (h *SystemHandler) StorageStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := h.storage.Status(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, status)
}

func (h *SystemHandler) SelectDirectory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SelectDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'path' field is required",
		})
		return
	}

	status, err := h.storage.SelectDirectory(r.Context(), req.Path)
	if err != nil {
		h.log.Warn("Directory selection rejected", "path", req.Path, "error", err)
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	httputil.WriteSuccess(w, status)
}

func (h *SystemHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/api/v1/storage/status", h.StorageStatus)
	router.POST("/api/v1/storage/directory", h.SelectDirectory)
}
