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

type ClassroomService interface {
	GetAll(ctx context.Context) ([]model.Classroom, error)
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	GetByStatus(ctx context.Context, status string) ([]model.Classroom, error)
	GetByCapacity(ctx context.Context, minCapacity int) ([]model.Classroom, error)
	Add(ctx context.Context, classroom *model.Classroom) error
	Update(ctx context.Context, id string, update *model.ClassroomUpdate) error
	Remove(ctx context.Context, id string) error
}

type classroomService struct {
	store    *entity.Store[model.Classroom]
	validate *playground.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewClassroomService(store *entity.Store[model.Classroom], log *logger.Logger) ClassroomService {
	return &classroomService{
		store:    store,
		validate: validate.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *classroomService) GetAll(ctx context.Context) ([]model.Classroom, error) {
	return s.store.All(ctx)
}

func (s *classroomService) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	classroom, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundWithID("classroom", id)
	}
	return &classroom, nil
}

func (s *classroomService) GetByStatus(ctx context.Context, status string) ([]model.Classroom, error) {
	classrooms, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Classroom, 0, len(classrooms))
	for _, c := range classrooms {
		if c.Status == status {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *classroomService) GetByCapacity(ctx context.Context, minCapacity int) ([]model.Classroom, error) {
	classrooms, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Classroom, 0, len(classrooms))
	for _, c := range classrooms {
		if c.Capacity >= minCapacity {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *classroomService) Add(ctx context.Context, classroom *model.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	if classroom.Status == "" {
		classroom.Status = "available"
	}
	if classroom.CreateTime == "" {
		classroom.CreateTime = s.now().Format(time.RFC3339)
	}
	if err := validate.Struct(s.validate, classroom); err != nil {
		return err
	}
	if err := s.store.Add(ctx, *classroom); err != nil {
		return err
	}
	s.log.Info("Classroom created", "id", classroom.ID, "name", classroom.Name)
	return nil
}

func (s *classroomService) Update(ctx context.Context, id string, update *model.ClassroomUpdate) error {
	if err := validate.Struct(s.validate, update); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, func(existing model.Classroom) model.Classroom {
		if update.Name != nil {
			existing.Name = *update.Name
		}
		if update.Capacity != nil {
			existing.Capacity = *update.Capacity
		}
		if update.Equipment != nil {
			existing.Equipment = *update.Equipment
		}
		if update.Status != nil {
			existing.Status = *update.Status
		}
		return existing
	})
	if err != nil {
		return err
	}
	s.log.Info("Classroom updated", "id", id)
	return nil
}

func (s *classroomService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("Classroom deleted", "id", id)
	return nil
}
