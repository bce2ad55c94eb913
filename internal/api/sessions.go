package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
)

// sessionDTO is one element of GET /focus-sessions.
type sessionDTO struct {
	ID       string      `json:"id"`
	Duration float64     `json:"duration"`
	Date     time.Time   `json:"date"`
	Records  []recordDTO `json:"records"`
	Task     taskDTO     `json:"task"`
}

type recordDTO struct {
	Type     string  `json:"type"`
	Duration float64 `json:"duration"`
	OverTime float64 `json:"overTime"`
}

type taskDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d sessionDTO) toDomain() domain.FocusSession {
	s := domain.FocusSession{
		ID:            d.ID,
		StartTime:     d.Date,
		DurationValue: d.Duration,
		Task:          domain.Task{ID: d.Task.ID, Name: d.Task.Name},
	}
	if len(d.Records) > 0 {
		s.Records = make([]domain.SessionRecord, len(d.Records))
		for i, r := range d.Records {
			s.Records[i] = domain.SessionRecord{
				Kind:          domain.RecordKind(r.Type),
				DurationValue: r.Duration,
				OverTimeValue: r.OverTime,
			}
		}
	}
	return s
}

// FocusSessions fetches the sessions the service reports for [start, end].
// Every returned session has passed domain validation.
func (c *Client) FocusSessions(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error) {
	query := url.Values{}
	query.Set("startDate", start.UTC().Format(isoMillis))
	query.Set("endDate", end.UTC().Format(isoMillis))

	var dtos []sessionDTO
	if err := c.do(ctx, http.MethodGet, "focus-sessions", query, nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetching focus sessions: %w", err)
	}

	sessions := make([]domain.FocusSession, 0, len(dtos))
	for _, d := range dtos {
		s := d.toDomain()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
