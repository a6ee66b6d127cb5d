package service

import (
	"context"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"coursebook/internal/entity"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
	"coursebook/pkg/validate"
)

type TeacherService interface {
	GetAll(ctx context.Context) ([]model.Teacher, error)
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetByStatus(ctx context.Context, status string) ([]model.Teacher, error)
	GetByLevel(ctx context.Context, level string) ([]model.Teacher, error)
	Add(ctx context.Context, teacher *model.Teacher) error
	Update(ctx context.Context, id string, update *model.TeacherUpdate) error
	Remove(ctx context.Context, id string) error
}

type teacherService struct {
	store    *entity.Store[model.Teacher]
	validate *playground.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewTeacherService(store *entity.Store[model.Teacher], log *logger.Logger) TeacherService {
	return &teacherService{
		store:    store,
		validate: validate.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *teacherService) GetAll(ctx context.Context) ([]model.Teacher, error) {
	return s.store.All(ctx)
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	teacher, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundWithID("teacher", id)
	}
	return &teacher, nil
}

func (s *teacherService) GetByStatus(ctx context.Context, status string) ([]model.Teacher, error) {
	teachers, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if t.Status == status {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (s *teacherService) GetByLevel(ctx context.Context, level string) ([]model.Teacher, error) {
	teachers, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if t.Level == level {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (s *teacherService) Add(ctx context.Context, teacher *model.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	if teacher.Status == "" {
		teacher.Status = "active"
	}
	if teacher.CreateTime == "" {
		teacher.CreateTime = s.now().Format(time.RFC3339)
	}
	if err := validate.Struct(s.validate, teacher); err != nil {
		return err
	}
	if err := s.store.Add(ctx, *teacher); err != nil {
		return err
	}
	s.log.Info("Teacher created", "id", teacher.ID, "name", teacher.Name)
	return nil
}

func (s *teacherService) Update(ctx context.Context, id string, update *model.TeacherUpdate) error {
	if err := validate.Struct(s.validate, update); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, func(existing model.Teacher) model.Teacher {
		if update.Name != nil {
			existing.Name = *update.Name
		}
		if update.Phone != nil {
			existing.Phone = *update.Phone
		}
		if update.Level != nil {
			existing.Level = *update.Level
		}
		if update.HourlyRate != nil {
			existing.HourlyRate = *update.HourlyRate
		}
		if update.GroupRate != nil {
			existing.GroupRate = *update.GroupRate
		}
		if update.Status != nil {
			existing.Status = *update.Status
		}
		return existing
	})
	if err != nil {
		return err
	}
	s.log.Info("Teacher updated", "id", id)
	return nil
}

func (s *teacherService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("Teacher deleted", "id", id)
	return nil
}
