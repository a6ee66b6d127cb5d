package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coursebook/internal/entity"
	scheduleerrors "coursebook/internal/schedules/errors"
	"coursebook/internal/schedules/validator"
	"coursebook/pkg/config"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

// Mutation outcome reasons, used by the handler to pick a status code.
const (
	ReasonConflict = "conflict"
	ReasonNotFound = "not_found"
)

// MutationResult is the caller-visible outcome of a conflict-checked
// mutation. Conflicts and missing ids are first-class rejected results the
// caller must check, never errors.
type MutationResult struct {
	Success  bool           `json:"success"`
	Reason   string         `json:"reason,omitempty"`
	Message  string         `json:"message,omitempty"`
	Conflict *ConflictCheck `json:"conflict,omitempty"`
}

type ScheduleService interface {
	GetAll(ctx context.Context) ([]model.Schedule, error)
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Schedule, error)
	GetByDate(ctx context.Context, date string) ([]model.Schedule, error)
	GetByTeacher(ctx context.Context, teacherID string) ([]model.Schedule, error)
	GetByStudent(ctx context.Context, studentID string) ([]model.Schedule, error)
	GetByClassroom(ctx context.Context, classroomID string) ([]model.Schedule, error)
	GetByStatus(ctx context.Context, status string) ([]model.Schedule, error)
	CheckConflict(ctx context.Context, candidate *model.Schedule) (ConflictCheck, error)
	Add(ctx context.Context, schedule *model.Schedule) (*MutationResult, error)
	Update(ctx context.Context, id string, update *model.ScheduleUpdate) (*MutationResult, error)
	Remove(ctx context.Context, id string) error
}

// errRejected aborts a Mutate cycle without persisting; the prepared
// MutationResult carries the real outcome.
var errRejected = errors.New("mutation rejected")

type scheduleService struct {
	store     *entity.Store[model.Schedule]
	validator *validator.ScheduleValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewScheduleService(store *entity.Store[model.Schedule], v *validator.ScheduleValidator, log *logger.Logger) ScheduleService {
	return &scheduleService{
		store:     store,
		validator: v,
		log:       log,
		now:       time.Now,
	}
}

func (s *scheduleService) GetAll(ctx context.Context) ([]model.Schedule, error) {
	return s.store.All(ctx)
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, scheduleerrors.ErrNotFound
	}
	return &schedule, nil
}

func (s *scheduleService) GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		return item.Date >= startDate && item.Date <= endDate
	})
}

func (s *scheduleService) GetByDate(ctx context.Context, date string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		return item.Date == date
	})
}

func (s *scheduleService) GetByTeacher(ctx context.Context, teacherID string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		return item.TeacherID == teacherID
	})
}

func (s *scheduleService) GetByStudent(ctx context.Context, studentID string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		for _, id := range item.Students {
			if id == studentID {
				return true
			}
		}
		return false
	})
}

func (s *scheduleService) GetByClassroom(ctx context.Context, classroomID string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		return item.ClassroomID == classroomID
	})
}

func (s *scheduleService) GetByStatus(ctx context.Context, status string) ([]model.Schedule, error) {
	return s.filter(ctx, func(item *model.Schedule) bool {
		return item.Status == status
	})
}

func (s *scheduleService) CheckConflict(ctx context.Context, candidate *model.Schedule) (ConflictCheck, error) {
	existing, err := s.store.All(ctx)
	if err != nil {
		return ConflictCheck{}, err
	}
	return CheckConflict(candidate, existing), nil
}

func (s *scheduleService) Add(ctx context.Context, schedule *model.Schedule) (*MutationResult, error) {
	s.applyDefaults(schedule)
	if err := s.validator.Validate(schedule); err != nil {
		return nil, err
	}

	var result MutationResult
	err := s.store.Mutate(ctx, func(items []model.Schedule) ([]model.Schedule, error) {
		if check := CheckConflict(schedule, items); check.HasConflict {
			result = rejectedByConflict(check)
			return nil, errRejected
		}
		result = MutationResult{Success: true}
		return append(items, *schedule), nil
	})
	if errors.Is(err, errRejected) {
		s.log.Info("Schedule rejected by conflict check",
			"id", schedule.ID,
			"date", schedule.Date,
			"dimension", result.Conflict.Dimension,
		)
		return &result, nil
	}
	if err != nil {
		s.log.Error("Failed to add schedule", "id", schedule.ID, "error", err)
		return nil, err
	}

	s.log.Info("Schedule created",
		"id", schedule.ID,
		"date", schedule.Date,
		"start_time", schedule.StartTime,
		"end_time", schedule.EndTime,
	)
	return &result, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, update *model.ScheduleUpdate) (*MutationResult, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	var result MutationResult
	err := s.store.Mutate(ctx, func(items []model.Schedule) ([]model.Schedule, error) {
		index := -1
		for i := range items {
			if items[i].ID == id {
				index = i
				break
			}
		}
		if index == -1 {
			result = MutationResult{
				Success: false,
				Reason:  ReasonNotFound,
				Message: "schedule not found",
			}
			return nil, errRejected
		}

		merged := mergeScheduleUpdate(items[index], update)
		if err := s.validator.Validate(&merged); err != nil {
			return nil, err
		}
		// The candidate keeps its id, so the check skips the old version of
		// this very schedule.
		if check := CheckConflict(&merged, items); check.HasConflict {
			result = rejectedByConflict(check)
			return nil, errRejected
		}

		items[index] = merged
		result = MutationResult{Success: true}
		return items, nil
	})
	if errors.Is(err, errRejected) {
		return &result, nil
	}
	if err != nil {
		s.log.Error("Failed to update schedule", "id", id, "error", err)
		return nil, err
	}

	s.log.Info("Schedule updated", "id", id)
	return &result, nil
}

func (s *scheduleService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		s.log.Error("Failed to delete schedule", "id", id, "error", err)
		return err
	}
	s.log.Info("Schedule deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *scheduleService) filter(ctx context.Context, keep func(*model.Schedule) bool) ([]model.Schedule, error) {
	items, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Schedule, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	return matched, nil
}

func (s *scheduleService) applyDefaults(schedule *model.Schedule) {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Status == "" {
		schedule.Status = config.StatusScheduled
	}
	if schedule.CreateTime == "" {
		schedule.CreateTime = s.now().Format(time.RFC3339)
	}
}

func rejectedByConflict(check ConflictCheck) MutationResult {
	conflict := check
	return MutationResult{
		Success:  false,
		Reason:   ReasonConflict,
		Message:  fmt.Sprintf("%s is already booked in this time slot", check.Dimension),
		Conflict: &conflict,
	}
}

func mergeScheduleUpdate(existing model.Schedule, update *model.ScheduleUpdate) model.Schedule {
	merged := existing

	if update.CourseTypeID != nil {
		merged.CourseTypeID = *update.CourseTypeID
	}
	if update.CourseTypeName != nil {
		merged.CourseTypeName = *update.CourseTypeName
	}
	if update.TeacherID != nil {
		merged.TeacherID = *update.TeacherID
	}
	if update.TeacherName != nil {
		merged.TeacherName = *update.TeacherName
	}
	if update.ClassroomID != nil {
		merged.ClassroomID = *update.ClassroomID
	}
	if update.ClassroomName != nil {
		merged.ClassroomName = *update.ClassroomName
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.StartTime != nil {
		merged.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		merged.EndTime = *update.EndTime
	}
	if update.Students != nil {
		merged.Students = *update.Students
	}
	if update.StudentNames != nil {
		merged.StudentNames = *update.StudentNames
	}
	if update.Status != nil {
		merged.Status = *update.Status
	}
	if update.Fee != nil {
		merged.Fee = *update.Fee
	}

	return merged
}
