package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"coursebook/internal/cache"
	"coursebook/internal/entity"
	"coursebook/internal/storage"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

type memTier struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemTier() *memTier {
	return &memTier{data: make(map[string][]byte)}
}

func (t *memTier) Name() string { return "memory" }

func (t *memTier) Read(_ context.Context, collection string) ([]byte, storage.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data[collection], storage.StatusOK, nil
}

func (t *memTier) Write(_ context.Context, collection string, payload []byte) (storage.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[collection] = payload
	return storage.StatusOK, nil
}

func newTestService(t *testing.T) PaymentService {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Output: io.Discard})
	gw := storage.NewGateway(nil, newMemTier(), 5*time.Second, log)
	store := entity.NewStore[model.Payment](model.CollectionPayments, gw, cache.New(cache.DefaultTTL))
	return NewPaymentService(store, log)
}

func payment(id, studentID, date, status string, amount float64, scheduleIDs ...string) *model.Payment {
	return &model.Payment{
		ID:          id,
		StudentID:   studentID,
		ScheduleIDs: scheduleIDs,
		Amount:      amount,
		PaymentDate: date,
		Status:      status,
	}
}

func seedPayments(t *testing.T, svc PaymentService) {
	t.Helper()
	ctx := context.Background()
	seeds := []*model.Payment{
		payment("p1", "stu1", "2026-08-01", "paid", 300, "s1"),
		payment("p2", "stu1", "2026-08-15", "pending", 150, "s2"),
		payment("p3", "stu2", "2026-09-01", "paid", 200, "s1", "s3"),
		payment("p4", "stu3", "2026-09-02", "refunded", 100),
	}
	for _, p := range seeds {
		if err := svc.Add(ctx, p); err != nil {
			t.Fatalf("seed Add %s: %v", p.ID, err)
		}
	}
}

func TestPaymentStatistics(t *testing.T) {
	svc := newTestService(t)
	seedPayments(t, svc)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	if stats.TotalAmount != 750 {
		t.Errorf("TotalAmount = %v, want 750", stats.TotalAmount)
	}
	if stats.PaidAmount != 500 {
		t.Errorf("PaidAmount = %v, want 500", stats.PaidAmount)
	}
	if stats.PendingAmount != 150 {
		t.Errorf("PendingAmount = %v, want 150", stats.PendingAmount)
	}
	if stats.RefundedAmount != 100 {
		t.Errorf("RefundedAmount = %v, want 100", stats.RefundedAmount)
	}
}

func TestPaymentStatistics_Empty(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalAmount != 0 || stats.PaidAmount != 0 {
		t.Fatalf("Statistics = %+v, want zeros", stats)
	}
}

func TestPaymentFilters(t *testing.T) {
	svc := newTestService(t)
	seedPayments(t, svc)
	ctx := context.Background()

	byStudent, err := svc.GetByStudent(ctx, "stu1")
	if err != nil {
		t.Fatalf("GetByStudent: %v", err)
	}
	if len(byStudent) != 2 {
		t.Errorf("GetByStudent len = %d, want 2", len(byStudent))
	}

	bySchedule, err := svc.GetBySchedule(ctx, "s1")
	if err != nil {
		t.Fatalf("GetBySchedule: %v", err)
	}
	if len(bySchedule) != 2 {
		t.Errorf("GetBySchedule len = %d, want 2", len(bySchedule))
	}

	byStatus, err := svc.GetByStatus(ctx, "pending")
	if err != nil {
		t.Fatalf("GetByStatus: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "p2" {
		t.Errorf("GetByStatus = %+v, want [p2]", byStatus)
	}

	byRange, err := svc.GetByDateRange(ctx, "2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("GetByDateRange: %v", err)
	}
	if len(byRange) != 2 {
		t.Errorf("GetByDateRange len = %d, want 2", len(byRange))
	}
}

func TestPaymentAdd_Defaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := payment("", "stu1", "2026-09-01", "", 100)
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Status != "pending" {
		t.Errorf("Status = %q, want pending", p.Status)
	}
	if p.CreateTime == "" {
		t.Error("expected CreateTime to be stamped")
	}
}

func TestPaymentAdd_RejectsBadStatus(t *testing.T) {
	svc := newTestService(t)

	p := payment("", "stu1", "2026-09-01", "unknown", 100)
	if err := svc.Add(context.Background(), p); err == nil {
		t.Fatal("expected a validation error for an unknown status")
	}
}

func TestPaymentUpdate_MergesFields(t *testing.T) {
	svc := newTestService(t)
	seedPayments(t, svc)
	ctx := context.Background()

	status := "paid"
	amount := 175.0
	if err := svc.Update(ctx, "p2", &model.PaymentUpdate{Status: &status, Amount: &amount}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.GetByID(ctx, "p2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "paid" || got.Amount != 175 {
		t.Errorf("updated payment = %+v", got)
	}
	if got.StudentID != "stu1" {
		t.Errorf("untouched field changed: StudentID = %q", got.StudentID)
	}
}
