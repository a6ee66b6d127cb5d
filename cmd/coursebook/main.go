package main

import (
	"context"
	"path/filepath"

	"coursebook/internal/cache"
	classroomhandler "coursebook/internal/classrooms/handler"
	classroomservice "coursebook/internal/classrooms/service"
	coursetypehandler "coursebook/internal/coursetypes/handler"
	coursetypeservice "coursebook/internal/coursetypes/service"
	"coursebook/internal/entity"
	paymenthandler "coursebook/internal/payments/handler"
	paymentservice "coursebook/internal/payments/service"
	schedulehandler "coursebook/internal/schedules/handler"
	scheduleservice "coursebook/internal/schedules/service"
	"coursebook/internal/schedules/validator"
	"coursebook/internal/storage"
	studenthandler "coursebook/internal/students/handler"
	studentservice "coursebook/internal/students/service"
	systemhandler "coursebook/internal/system/handler"
	systemservice "coursebook/internal/system/service"
	teacherhandler "coursebook/internal/teachers/handler"
	teacherservice "coursebook/internal/teachers/service"
	"coursebook/pkg/app"
	"coursebook/pkg/config"
	"coursebook/pkg/model"
)

const ServiceName = "coursebook"

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()

	cfg.Log.Info("Starting coursebook service")
	serverApp := app.NewApplication(cfg)

	registry, err := storage.NewRegistry(filepath.Join(cfg.StateDir, "registry.db"))
	if err != nil {
		cfg.Log.Fatal("Failed to open directory registry", "error", err)
	}
	serverApp.OnClose(registry.Close)

	fallback, err := storage.NewKVTier(filepath.Join(cfg.StateDir, "fallback.db"))
	if err != nil {
		cfg.Log.Fatal("Failed to open fallback store", "error", err)
	}
	serverApp.OnClose(fallback.Close)

	ctx := context.Background()

	var primary storage.Tier
	dir, err := registry.Resolve(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to resolve data directory", "error", err)
	}
	if dir != "" {
		primary = storage.NewDirTier(dir)
		cfg.Log.Info("Data directory restored", "dir", dir)
	} else {
		cfg.Log.Info("No data directory granted, using fallback store")
	}

	gateway := storage.NewGateway(primary, fallback, cfg.StorageTimeout, cfg.Log)
	dataCache := cache.New(cfg.CacheTTL)

	watcher, err := storage.NewWatcher(dataCache, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to start data directory watcher", "error", err)
	}
	serverApp.OnClose(watcher.Close)
	if dir != "" {
		if err := watcher.Watch(dir); err != nil {
			cfg.Log.Warn("Failed to watch data directory", "dir", dir, "error", err)
		}
	}

	teacherStore := entity.NewStore[model.Teacher](model.CollectionTeachers, gateway, dataCache)
	studentStore := entity.NewStore[model.Student](model.CollectionStudents, gateway, dataCache)
	classroomStore := entity.NewStore[model.Classroom](model.CollectionClassrooms, gateway, dataCache)
	courseTypeStore := entity.NewStore[model.CourseType](model.CollectionCourseTypes, gateway, dataCache)
	scheduleStore := entity.NewStore[model.Schedule](model.CollectionSchedules, gateway, dataCache)
	paymentStore := entity.NewStore[model.Payment](model.CollectionPayments, gateway, dataCache)

	teacherService := teacherservice.NewTeacherService(teacherStore, cfg.Log)
	studentService := studentservice.NewStudentService(studentStore, cfg.Log)
	classroomService := classroomservice.NewClassroomService(classroomStore, cfg.Log)
	courseTypeService := coursetypeservice.NewCourseTypeService(courseTypeStore, cfg.Log)
	scheduleService := scheduleservice.NewScheduleService(scheduleStore, validator.NewScheduleValidator(cfg.Log), cfg.Log)
	paymentService := paymentservice.NewPaymentService(paymentStore, cfg.Log)
	storageService := systemservice.NewStorageService(registry, gateway, dataCache, watcher, cfg.Log)

	warmUp(ctx, cfg,
		warmer(teacherStore),
		warmer(studentStore),
		warmer(classroomStore),
		warmer(courseTypeStore),
		warmer(scheduleStore),
		warmer(paymentStore),
	)

	serverApp.SetHandlers(
		systemhandler.NewSystemHandler(storageService, cfg.Log),
		schedulehandler.NewScheduleHandler(scheduleService, cfg.Log),
		teacherhandler.NewTeacherHandler(teacherService, cfg.Log),
		studenthandler.NewStudentHandler(studentService, cfg.Log),
		classroomhandler.NewClassroomHandler(classroomService, cfg.Log),
		coursetypehandler.NewCourseTypeHandler(courseTypeService, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log),
	)
	serverApp.Run()
}

type collectionWarmer struct {
	name string
	load func(context.Context) error
}

func warmer[T model.Entity](store *entity.Store[T]) collectionWarmer {
	return collectionWarmer{
		name: store.Collection(),
		load: func(ctx context.Context) error {
			_, err := store.All(ctx)
			return err
		},
	}
}

// warmUp pre-populates the cache for every collection so first requests do
// not pay the gateway round-trip.
func warmUp(ctx context.Context, cfg *config.Config, warmers ...collectionWarmer) {
	for _, w := range warmers {
		if err := w.load(ctx); err != nil {
			cfg.Log.Warn("Collection warm-up failed", "collection", w.name, "error", err)
		}
	}
	cfg.Log.Info("Collections warmed up", "count", len(warmers))
}
