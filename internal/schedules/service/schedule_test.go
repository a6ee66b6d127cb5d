package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"coursebook/internal/cache"
	"coursebook/internal/entity"
	"coursebook/internal/schedules/validator"
	"coursebook/internal/storage"
	"coursebook/pkg/logger"
	"coursebook/pkg/model"
)

// memTier keeps collections in a map so service tests run against the real
// gateway, cache and store without touching disk.
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

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func newTestService(t *testing.T) ScheduleService {
	t.Helper()
	log := testLogger()
	gw := storage.NewGateway(nil, newMemTier(), 5*time.Second, log)
	store := entity.NewStore[model.Schedule](model.CollectionSchedules, gw, cache.New(cache.DefaultTTL))
	return NewScheduleService(store, validator.NewScheduleValidator(log), log)
}

func validSchedule(id string) *model.Schedule {
	return &model.Schedule{
		ID:           id,
		CourseTypeID: "ct1",
		TeacherID:    "t1",
		ClassroomID:  "r1",
		Date:         "2026-09-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
		Students:     []string{"stu1"},
		Status:       "scheduled",
		Fee:          200,
	}
}

func TestScheduleAdd_AppliesDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sc := validSchedule("")
	sc.Status = ""

	result, err := svc.Add(ctx, sc)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !result.Success {
		t.Fatalf("Add rejected: %+v", result)
	}
	if sc.ID == "" {
		t.Error("expected a generated id")
	}
	if sc.Status != "scheduled" {
		t.Errorf("Status = %q, want scheduled", sc.Status)
	}
	if sc.CreateTime == "" {
		t.Error("expected CreateTime to be stamped")
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(all) = %d, want 1", len(all))
	}
}

func TestScheduleAdd_RejectsTeacherConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, validSchedule("s1")); err != nil {
		t.Fatalf("seed Add: %v", err)
	}

	conflicting := validSchedule("")
	conflicting.ClassroomID = "r2"
	conflicting.Students = []string{"stu2"}
	conflicting.StartTime = "10:30"
	conflicting.EndTime = "11:30"

	result, err := svc.Add(ctx, conflicting)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.Success {
		t.Fatal("expected the booking to be rejected")
	}
	if result.Reason != ReasonConflict {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonConflict)
	}
	if !strings.Contains(result.Message, "teacher") {
		t.Errorf("Message = %q, want it to name the teacher dimension", result.Message)
	}
	if result.Conflict == nil || result.Conflict.Dimension != DimensionTeacher {
		t.Errorf("Conflict = %+v, want teacher dimension", result.Conflict)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("rejected booking was persisted, len(all) = %d", len(all))
	}
}

func TestScheduleAdd_AllowsBackToBack(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, validSchedule("s1")); err != nil {
		t.Fatalf("seed Add: %v", err)
	}

	next := validSchedule("")
	next.StartTime = "11:00"
	next.EndTime = "12:00"

	result, err := svc.Add(ctx, next)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !result.Success {
		t.Fatalf("back-to-back booking rejected: %+v", result)
	}
}

func TestScheduleAdd_InvalidTimeRange(t *testing.T) {
	svc := newTestService(t)

	sc := validSchedule("")
	sc.StartTime = "11:00"
	sc.EndTime = "10:00"

	if _, err := svc.Add(context.Background(), sc); err == nil {
		t.Fatal("expected a validation error for end before start")
	}
}

func TestScheduleUpdate_SelfShiftDoesNotConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, validSchedule("s1")); err != nil {
		t.Fatalf("seed Add: %v", err)
	}

	start, end := "10:30", "11:30"
	result, err := svc.Update(ctx, "s1", &model.ScheduleUpdate{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !result.Success {
		t.Fatalf("shifting a schedule within its own slot was rejected: %+v", result)
	}

	got, err := svc.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StartTime != start || got.EndTime != end {
		t.Errorf("times = %s-%s, want %s-%s", got.StartTime, got.EndTime, start, end)
	}
}

func TestScheduleUpdate_RejectsConflictWithOther(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, validSchedule("s1")); err != nil {
		t.Fatalf("seed Add: %v", err)
	}
	other := validSchedule("s2")
	other.StartTime = "12:00"
	other.EndTime = "13:00"
	if _, err := svc.Add(ctx, other); err != nil {
		t.Fatalf("seed Add: %v", err)
	}

	start, end := "10:30", "11:30"
	result, err := svc.Update(ctx, "s2", &model.ScheduleUpdate{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if result.Success {
		t.Fatal("expected the update to be rejected")
	}
	if result.Reason != ReasonConflict {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonConflict)
	}

	got, err := svc.GetByID(ctx, "s2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StartTime != "12:00" {
		t.Errorf("rejected update was persisted, StartTime = %s", got.StartTime)
	}
}

func TestScheduleUpdate_MissingID(t *testing.T) {
	svc := newTestService(t)

	status := "completed"
	result, err := svc.Update(context.Background(), "nope", &model.ScheduleUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if result.Success {
		t.Fatal("expected a not-found result")
	}
	if result.Reason != ReasonNotFound {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonNotFound)
	}
}

func TestScheduleFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := validSchedule("s1")
	second := validSchedule("s2")
	second.Date = "2026-09-02"
	second.TeacherID = "t2"
	second.ClassroomID = "r2"
	second.Students = []string{"stu2"}
	for _, sc := range []*model.Schedule{first, second} {
		if _, err := svc.Add(ctx, sc); err != nil {
			t.Fatalf("seed Add: %v", err)
		}
	}

	byDate, err := svc.GetByDate(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != "s1" {
		t.Errorf("GetByDate = %+v, want [s1]", byDate)
	}

	byRange, err := svc.GetByDateRange(ctx, "2026-09-01", "2026-09-02")
	if err != nil {
		t.Fatalf("GetByDateRange: %v", err)
	}
	if len(byRange) != 2 {
		t.Errorf("GetByDateRange len = %d, want 2", len(byRange))
	}

	byTeacher, err := svc.GetByTeacher(ctx, "t2")
	if err != nil {
		t.Fatalf("GetByTeacher: %v", err)
	}
	if len(byTeacher) != 1 || byTeacher[0].ID != "s2" {
		t.Errorf("GetByTeacher = %+v, want [s2]", byTeacher)
	}

	byStudent, err := svc.GetByStudent(ctx, "stu1")
	if err != nil {
		t.Fatalf("GetByStudent: %v", err)
	}
	if len(byStudent) != 1 || byStudent[0].ID != "s1" {
		t.Errorf("GetByStudent = %+v, want [s1]", byStudent)
	}
}

func TestScheduleRemove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, validSchedule("s1")); err != nil {
		t.Fatalf("seed Add: %v", err)
	}
	if err := svc.Remove(ctx, "s1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("len(all) = %d after remove, want 0", len(all))
	}
}
