package service

import (
	"context"
	"slices"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"coursebook/internal/entity"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
	"coursebook/pkg/validate"
)

type StudentService interface {
	GetAll(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Student, error)
	GetByStatus(ctx context.Context, status string) ([]model.Student, error)
	GetByAgeRange(ctx context.Context, minAge, maxAge int) ([]model.Student, error)
	Add(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, id string, update *model.StudentUpdate) error
	Remove(ctx context.Context, id string) error
}

type studentService struct {
	store    *entity.Store[model.Student]
	validate *playground.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewStudentService(store *entity.Store[model.Student], log *logger.Logger) StudentService {
	return &studentService{
		store:    store,
		validate: validate.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *studentService) GetAll(ctx context.Context) ([]model.Student, error) {
	return s.store.All(ctx)
}

func (s *studentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	student, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundWithID("student", id)
	}
	return &student, nil
}

func (s *studentService) GetByIDs(ctx context.Context, ids []string) ([]model.Student, error) {
	students, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Student, 0, len(ids))
	for _, st := range students {
		if slices.Contains(ids, st.ID) {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

func (s *studentService) GetByStatus(ctx context.Context, status string) ([]model.Student, error) {
	students, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Student, 0, len(students))
	for _, st := range students {
		if st.Status == status {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

func (s *studentService) GetByAgeRange(ctx context.Context, minAge, maxAge int) ([]model.Student, error) {
	students, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Student, 0, len(students))
	for _, st := range students {
		if st.Age >= minAge && st.Age <= maxAge {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

func (s *studentService) Add(ctx context.Context, student *model.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.Status == "" {
		student.Status = "active"
	}
	if student.CreateTime == "" {
		student.CreateTime = s.now().Format(time.RFC3339)
	}
	if err := validate.Struct(s.validate, student); err != nil {
		return err
	}
	if err := s.store.Add(ctx, *student); err != nil {
		return err
	}
	s.log.Info("Student created", "id", student.ID, "name", student.Name)
	return nil
}

func (s *studentService) Update(ctx context.Context, id string, update *model.StudentUpdate) error {
	if err := validate.Struct(s.validate, update); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, func(existing model.Student) model.Student {
		if update.Name != nil {
			existing.Name = *update.Name
		}
		if update.Phone != nil {
			existing.Phone = *update.Phone
		}
		if update.Age != nil {
			existing.Age = *update.Age
		}
		if update.ParentName != nil {
			existing.ParentName = *update.ParentName
		}
		if update.ParentPhone != nil {
			existing.ParentPhone = *update.ParentPhone
		}
		if update.Status != nil {
			existing.Status = *update.Status
		}
		return existing
	})
	if err != nil {
		return err
	}
	s.log.Info("Student updated", "id", id)
	return nil
}

func (s *studentService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("Student deleted", "id", id)
	return nil
}
