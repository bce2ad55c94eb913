package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/focuslog/internal/api"
	"github.com/alexanderramin/focuslog/internal/auth"
	"github.com/alexanderramin/focuslog/internal/cli"
	"github.com/alexanderramin/focuslog/internal/config"
	"github.com/alexanderramin/focuslog/internal/db"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/repository"
	"github.com/alexanderramin/focuslog/internal/service"
	"github.com/alexanderramin/focuslog/internal/source"
	"github.com/alexanderramin/focuslog/internal/telemetry"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	cfg, err := config.Load(config.Dir(userHome))
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	sessionRepo := repository.NewSQLiteFocusSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	apiCfg := api.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout(), MaxRetries: cfg.MaxRetries}
	authSvc := auth.NewService(auth.NewStore(cfg.Home), auth.APIIssuerFactory(apiCfg))

	// Stored credentials pick the session source; config is the fallback.
	mode := cfg.Source
	var fetcher source.Fetcher = source.NewLocalFetcher(sessionRepo)
	creds, err := authSvc.Current()
	switch {
	case err == nil:
		mode = creds.Mode
		if creds.APIURL != "" {
			apiCfg.BaseURL = creds.APIURL
		}
	case !errors.Is(err, auth.ErrNoCredentials):
		return err
	}
	if mode == domain.SourceRemote {
		token := ""
		if creds != nil {
			token = creds.Token
		}
		remote, err := source.NewRemoteFetcherFromConfig(apiCfg, token)
		if err != nil {
			return fmt.Errorf("configuring remote source: %w", err)
		}
		fetcher = remote
	}

	// Wire observers
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	telCfg := telemetry.Config{Endpoint: cfg.Telemetry.Endpoint, Insecure: cfg.Telemetry.Insecure}
	if telCfg.Enabled() {
		exporter, err := telemetry.NewExporter(context.Background(), telCfg)
		if err != nil {
			return fmt.Errorf("starting telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = exporter.Close(ctx)
		}()
		observers = append(observers, exporter.Recorder())
	}
	observer := service.NewMultiUseCaseObserver(observers...)

	sessionSvc := service.NewSessionService(sessionRepo, uow, observer)

	app := &cli.App{
		Stats:    service.NewStatisticsService(fetcher, loc, observer),
		Sessions: sessionSvc,
		Tasks:    service.NewTaskService(taskRepo),
		Auth:     authSvc,
		Location: loc,
		Source:   mode,

		LogSession: sessionSvc,
	}

	// Detect interactive terminal for forms and the day browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
