package app

import (
	"context"

	"github.com/alexanderramin/focuslog/internal/domain"
)

type DayReportUseCase interface {
	DayReport(ctx context.Context, req DayStatsRequest) (*DayStatsResponse, error)
}

type LogSessionUseCase interface {
	Log(ctx context.Context, s *domain.FocusSession) error
}
