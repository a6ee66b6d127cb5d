package service

import (
	"context"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"coursebook/internal/entity"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
	"coursebook/pkg/validate"
)

type CourseTypeService interface {
	GetAll(ctx context.Context) ([]model.CourseType, error)
	GetByID(ctx context.Context, id string) (*model.CourseType, error)
	GetByType(ctx context.Context, courseType string) ([]model.CourseType, error)
	Add(ctx context.Context, courseType *model.CourseType) error
	Update(ctx context.Context, id string, update *model.CourseTypeUpdate) error
	Remove(ctx context.Context, id string) error
}

type courseTypeService struct {
	store    *entity.Store[model.CourseType]
	validate *playground.Validate
	log      *logger.Logger
}

func NewCourseTypeService(store *entity.Store[model.CourseType], log *logger.Logger) CourseTypeService {
	return &courseTypeService{
		store:    store,
		validate: validate.New(),
		log:      log,
	}
}

func (s *courseTypeService) GetAll(ctx context.Context) ([]model.CourseType, error) {
	return s.store.All(ctx)
}

func (s *courseTypeService) GetByID(ctx context.Context, id string) (*model.CourseType, error) {
	courseType, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundWithID("course type", id)
	}
	return &courseType, nil
}

func (s *courseTypeService) GetByType(ctx context.Context, courseType string) ([]model.CourseType, error) {
	courseTypes, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.CourseType, 0, len(courseTypes))
	for _, ct := range courseTypes {
		if ct.Type == courseType {
			matched = append(matched, ct)
		}
	}
	return matched, nil
}

func (s *courseTypeService) Add(ctx context.Context, courseType *model.CourseType) error {
	if courseType.ID == "" {
		courseType.ID = uuid.NewString()
	}
	if err := validate.Struct(s.validate, courseType); err != nil {
		return err
	}
	if err := s.store.Add(ctx, *courseType); err != nil {
		return err
	}
	s.log.Info("Course type created", "id", courseType.ID, "name", courseType.Name)
	return nil
}

func (s *courseTypeService) Update(ctx context.Context, id string, update *model.CourseTypeUpdate) error {
	if err := validate.Struct(s.validate, update); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, func(existing model.CourseType) model.CourseType {
		if update.Name != nil {
			existing.Name = *update.Name
		}
		if update.Type != nil {
			existing.Type = *update.Type
		}
		if update.Duration != nil {
			existing.Duration = *update.Duration
		}
		if update.Description != nil {
			existing.Description = *update.Description
		}
		return existing
	})
	if err != nil {
		return err
	}
	s.log.Info("Course type updated", "id", id)
	return nil
}

func (s *courseTypeService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("Course type deleted", "id", id)
	return nil
}
