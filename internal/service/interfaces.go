package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focuslog/internal/contract"
	"github.com/alexanderramin/focuslog/internal/domain"
)

type StatisticsService interface {
	DayReport(ctx context.Context, req contract.DayStatsRequest) (*contract.DayStatsResponse, error)
}

type SessionService interface {
	Log(ctx context.Context, s *domain.FocusSession) error
	GetByID(ctx context.Context, id string) (*domain.FocusSession, error)
	ListDay(ctx context.Context, day time.Time, loc *time.Location) ([]*domain.FocusSession, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByName(ctx context.Context, name string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
}
