package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focuslog/internal/api"
	"github.com/alexanderramin/focuslog/internal/domain"
)

// TokenIssuer is the part of the focus API that hands out bearer tokens.
type TokenIssuer interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)
}

// IssuerFactory builds a TokenIssuer for a validated API URL.
type IssuerFactory func(apiURL string) (TokenIssuer, error)

// Service runs the login, register and debug flows.
type Service struct {
	store     *Store
	newIssuer IssuerFactory
	now       func() time.Time
}

// NewService creates a Service that persists to store.
func NewService(store *Store, newIssuer IssuerFactory) *Service {
	return &Service{store: store, newIssuer: newIssuer, now: time.Now}
}

// APIIssuerFactory returns a factory backed by the real HTTP client.
func APIIssuerFactory(cfg api.Config) IssuerFactory {
	return func(apiURL string) (TokenIssuer, error) {
		c := cfg
		c.BaseURL = apiURL
		return api.NewClient(c)
	}
}

// Login validates apiURL, exchanges the credentials for a token and stores it.
func (s *Service) Login(ctx context.Context, username, password, apiURL string) (*Credentials, error) {
	return s.authenticate(ctx, username, password, apiURL, TokenIssuer.Login)
}

// Register creates an account. An empty apiURL reuses the stored one.
func (s *Service) Register(ctx context.Context, username, password, apiURL string) (*Credentials, error) {
	if apiURL == "" {
		if prev, err := s.store.Load(); err == nil {
			apiURL = prev.APIURL
		}
	}
	return s.authenticate(ctx, username, password, apiURL, TokenIssuer.Register)
}

// DebugLogin skips the remote service and switches to the local store.
func (s *Service) DebugLogin() (*Credentials, error) {
	c := &Credentials{
		Mode:     domain.SourceLocal,
		Username: "debug",
		IssuedAt: s.now().UTC(),
	}
	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Logout forgets stored credentials.
func (s *Service) Logout() error {
	return s.store.Clear()
}

// Current returns the stored credentials.
func (s *Service) Current() (*Credentials, error) {
	return s.store.Load()
}

func (s *Service) authenticate(
	ctx context.Context,
	username, password, apiURL string,
	call func(TokenIssuer, context.Context, string, string) (string, error),
) (*Credentials, error) {
	base, err := api.ValidateBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	issuer, err := s.newIssuer(base.String())
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	token, err := call(issuer, ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, fmt.Errorf("please check your credentials and try again: %w", err)
		}
		return nil, err
	}

	c := &Credentials{
		Mode:     domain.SourceRemote,
		APIURL:   base.String(),
		Username: username,
		Token:    token,
		IssuedAt: s.now().UTC(),
	}
	if err := s.store.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}
