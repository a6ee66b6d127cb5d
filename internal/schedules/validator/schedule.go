package validator

import (
	scheduleerrors "coursebook/internal/schedules/errors"
	apperrors "coursebook/pkg/errors"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
	"coursebook/pkg/validate"

	"github.com/go-playground/validator/v10"
)

type ScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScheduleValidator(log *logger.Logger) *ScheduleValidator {
	return &ScheduleValidator{
		validate: validate.New(),
		logger:   log,
	}
}

func (v *ScheduleValidator) Validate(schedule *model.Schedule) error {
	if err := validate.Struct(v.validate, schedule); err != nil {
		v.logger.Warn("Schedule validation failed", "id", schedule.ID, "error", err)
		return err
	}
	// HH:MM strings are zero-padded, so lexicographic order is time order.
	if schedule.EndTime <= schedule.StartTime {
		return apperrors.Validation(scheduleerrors.ErrInvalidTimeRange.Error(), map[string]any{
			"startTime": schedule.StartTime,
			"endTime":   schedule.EndTime,
		})
	}
	return nil
}

func (v *ScheduleValidator) ValidateUpdate(update *model.ScheduleUpdate) error {
	if err := validate.Struct(v.validate, update); err != nil {
		v.logger.Warn("Schedule update validation failed", "error", err)
		return err
	}
	return nil
}
