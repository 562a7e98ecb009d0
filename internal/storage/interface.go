package storage

import (
	"context"

	"github.com/lieyanc/studypk/internal"
)

// Every read returns an independent copy; every write replaces the whole
// document. There is no field-level update primitive, so one document is
// the unit of atomicity.

type UserRepository interface {
	ListUsers(ctx context.Context) ([]internal.User, error)
	SaveUsers(ctx context.Context, users []internal.User) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*internal.AppSettings, error)
	SaveSettings(ctx context.Context, settings *internal.AppSettings) error
}

type TaskCatalogRepository interface {
	GetDailyTasks(ctx context.Context) (*internal.DailyTaskList, error)
	SaveDailyTasks(ctx context.Context, list *internal.DailyTaskList) error
}

type CheckInRepository interface {
	// GetDailyCheckIns returns an empty-but-valid document for unknown dates.
	GetDailyCheckIns(ctx context.Context, date string) (*internal.DailyCheckInData, error)
	SaveDailyCheckIns(ctx context.Context, data *internal.DailyCheckInData) error
	ListCheckInDates(ctx context.Context) ([]string, error)
}

type DayRepository interface {
	GetDayData(ctx context.Context, date string) (*internal.DayData, error)
	SaveDayData(ctx context.Context, data *internal.DayData) error
	ListDayDates(ctx context.Context) ([]string, error)
}

type TemplateRepository interface {
	GetTemplates(ctx context.Context) ([]internal.ScheduleTemplate, error)
	SaveTemplates(ctx context.Context, templates []internal.ScheduleTemplate) error
}

type TodoRepository interface {
	GetTodos(ctx context.Context) (*internal.GlobalTodoList, error)
	SaveTodos(ctx context.Context, todos *internal.GlobalTodoList) error
}

// Store bundles all repositories served by one backend.
type Store interface {
	UserRepository
	SettingsRepository
	TaskCatalogRepository
	CheckInRepository
	DayRepository
	TemplateRepository
	TodoRepository
	Close() error
}
