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

type PaymentService interface {
	GetAll(ctx context.Context) ([]model.Payment, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetByStudent(ctx context.Context, studentID string) ([]model.Payment, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Payment, error)
	GetByStatus(ctx context.Context, status string) ([]model.Payment, error)
	GetBySchedule(ctx context.Context, scheduleID string) ([]model.Payment, error)
	Statistics(ctx context.Context) (*model.PaymentStatistics, error)
	Add(ctx context.Context, payment *model.Payment) error
	Update(ctx context.Context, id string, update *model.PaymentUpdate) error
	Remove(ctx context.Context, id string) error
}

type paymentService struct {
	store    *entity.Store[model.Payment]
	validate *playground.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewPaymentService(store *entity.Store[model.Payment], log *logger.Logger) PaymentService {
	return &paymentService{
		store:    store,
		validate: validate.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *paymentService) GetAll(ctx context.Context) ([]model.Payment, error) {
	return s.store.All(ctx)
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	payment, found, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundWithID("payment", id)
	}
	return &payment, nil
}

func (s *paymentService) GetByStudent(ctx context.Context, studentID string) ([]model.Payment, error) {
	return s.filter(ctx, func(p *model.Payment) bool {
		return p.StudentID == studentID
	})
}

func (s *paymentService) GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Payment, error) {
	return s.filter(ctx, func(p *model.Payment) bool {
		return p.PaymentDate >= startDate && p.PaymentDate <= endDate
	})
}

func (s *paymentService) GetByStatus(ctx context.Context, status string) ([]model.Payment, error) {
	return s.filter(ctx, func(p *model.Payment) bool {
		return p.Status == status
	})
}

func (s *paymentService) GetBySchedule(ctx context.Context, scheduleID string) ([]model.Payment, error) {
	return s.filter(ctx, func(p *model.Payment) bool {
		return slices.Contains(p.ScheduleIDs, scheduleID)
	})
}

func (s *paymentService) Statistics(ctx context.Context) (*model.PaymentStatistics, error) {
	payments, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.PaymentStatistics{}
	for _, p := range payments {
		stats.TotalAmount += p.Amount
		switch p.Status {
		case "paid":
			stats.PaidAmount += p.Amount
		case "pending":
			stats.PendingAmount += p.Amount
		case "refunded":
			stats.RefundedAmount += p.Amount
		}
	}
	return stats, nil
}

func (s *paymentService) Add(ctx context.Context, payment *model.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.Status == "" {
		payment.Status = "pending"
	}
	if payment.CreateTime == "" {
		payment.CreateTime = s.now().Format(time.RFC3339)
	}
	if err := validate.Struct(s.validate, payment); err != nil {
		return err
	}
	if err := s.store.Add(ctx, *payment); err != nil {
		return err
	}
	s.log.Info("Payment created", "id", payment.ID, "student_id", payment.StudentID, "amount", payment.Amount)
	return nil
}

func (s *paymentService) Update(ctx context.Context, id string, update *model.PaymentUpdate) error {
	if err := validate.Struct(s.validate, update); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, func(existing model.Payment) model.Payment {
		if update.StudentID != nil {
			existing.StudentID = *update.StudentID
		}
		if update.StudentName != nil {
			existing.StudentName = *update.StudentName
		}
		if update.ScheduleIDs != nil {
			existing.ScheduleIDs = *update.ScheduleIDs
		}
		if update.Amount != nil {
			existing.Amount = *update.Amount
		}
		if update.PaymentDate != nil {
			existing.PaymentDate = *update.PaymentDate
		}
		if update.PaymentMethod != nil {
			existing.PaymentMethod = *update.PaymentMethod
		}
		if update.Status != nil {
			existing.Status = *update.Status
		}
		return existing
	})
	if err != nil {
		return err
	}
	s.log.Info("Payment updated", "id", id)
	return nil
}

func (s *paymentService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("Payment deleted", "id", id)
	return nil
}

func (s *paymentService) filter(ctx context.Context, keep func(*model.Payment) bool) ([]model.Payment, error) {
	payments, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Payment, 0, len(payments))
	for i := range payments {
		if keep(&payments[i]) {
			matched = append(matched, payments[i])
		}
	}
	return matched, nil
}
