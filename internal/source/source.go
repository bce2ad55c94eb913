// Package source provides the collaborators that supply focus sessions for
// a day window.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focuslog/internal/api"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/repository"
)

// Fetcher returns the sessions that started inside [start, end].
// An empty day is an empty slice and a nil error.
type Fetcher interface {
	Fetch(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error)

func (f FetcherFunc) Fetch(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error) {
	return f(ctx, start, end)
}

// LocalFetcher reads sessions from the SQLite store.
type LocalFetcher struct {
	sessions repository.FocusSessionRepo
}

func NewLocalFetcher(sessions repository.FocusSessionRepo) *LocalFetcher {
	return &LocalFetcher{sessions: sessions}
}

func (f *LocalFetcher) Fetch(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error) {
	rows, err := f.sessions.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing local sessions: %w", err)
	}
	out := make([]domain.FocusSession, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	return out, nil
}

// SessionLister is the part of the HTTP client RemoteFetcher needs.
type SessionLister interface {
	FocusSessions(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error)
}

// RemoteFetcher reads sessions from the focus API.
type RemoteFetcher struct {
	client SessionLister
}

func NewRemoteFetcher(client SessionLister) *RemoteFetcher {
	return &RemoteFetcher{client: client}
}

// NewRemoteFetcherFromConfig builds an authenticated client for baseURL.
func NewRemoteFetcherFromConfig(cfg api.Config, token string) (*RemoteFetcher, error) {
	c, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewRemoteFetcher(c.WithToken(token)), nil
}

func (f *RemoteFetcher) Fetch(ctx context.Context, start, end time.Time) ([]domain.FocusSession, error) {
	sessions, err := f.client.FocusSessions(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching remote sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.FocusSession{}
	}
	return sessions, nil
}
