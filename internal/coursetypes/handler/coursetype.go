package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"coursebook/internal/coursetypes/service"
	httputil "coursebook/pkg/http"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type CourseTypeHandler struct {
	service service.CourseTypeService
	log     *logger.Logger
}

func NewCourseTypeHandler(service service.CourseTypeService, log *logger.Logger) *CourseTypeHandler {
	return &CourseTypeHandler{
		service: service,
		log:     log,
	}
}

func (h *CourseTypeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var courseType model.CourseType
	if err := json.NewDecoder(r.Body).Decode(&courseType); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &courseType); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, courseType)
}

func (h *CourseTypeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	courseType, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, courseType)
}

func (h *CourseTypeHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var (
		courseTypes []model.CourseType
		err         error
	)
	if t := query.Get("type"); t != "" {
		courseTypes, err = h.service.GetByType(r.Context(), t)
	} else {
		courseTypes, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, courseTypes)
}

func (h *CourseTypeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.CourseTypeUpdate
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

func (h *CourseTypeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *CourseTypeHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/course-types", h.Create)
	router.GET("/api/v1/course-types", h.GetAll)
	router.GET("/api/v1/course-types/id/:id", h.GetByID)
	router.PATCH("/api/v1/course-types/id/:id", h.Update)
	router.DELETE("/api/v1/course-types/id/:id", h.Delete)
}
