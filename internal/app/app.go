package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/51348761z/ai-calendar/internal/api"
	"github.com/51348761z/ai-calendar/internal/auth"
	"github.com/51348761z/ai-calendar/internal/config"
	"github.com/51348761z/ai-calendar/internal/security"
	"github.com/51348761z/ai-calendar/internal/store"
	"github.com/51348761z/ai-calendar/internal/suggest"
	"github.com/51348761z/ai-calendar/internal/tray"
)

type Application struct {
	cfg       config.Config
	store     *store.Store
	suggester suggest.Provider
	tray      tray.App
	logger    *slog.Logger
}

func New(cfg config.Config, st *store.Store, suggester suggest.Provider, tr tray.App, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	if tr == nil {
		tr = tray.NewNoop()
	}
	if st == nil {
		st = store.New()
	}
	return &Application{cfg: cfg, store: st, suggester: suggester, tray: tr, logger: logger}
}

func (a *Application) Run(ctx context.Context) error {
	server := api.New(api.Options{
		Store:     a.store,
		Suggester: a.suggester,
		Auth: security.BearerAuth{
			Enabled: a.cfg.RequireBearerToken,
			Token:   a.cfg.BearerToken,
		},
		Logger: a.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	wg := sync.WaitGroup{}

	if a.cfg.BindAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeTCP(ctx, a.cfg.BindAddress); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("tcp server: %w", err)
			}
		}()
	}
	if a.cfg.UnixSocketPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeUnix(ctx, a.cfg.UnixSocketPath); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("unix server: %w", err)
			}
		}()
	}

	if a.cfg.EnableTray {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.tray.Run(ctx); err != nil {
				errCh <- fmt.Errorf("tray: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		return err
	case <-ctx.Done():
		wg.Wait()
		return nil
	}
}

// BuildSuggester selects the advice strategy from configuration. The Gemini
// API key may come from the environment or from the encrypted credential
// store; an absent key is allowed and surfaces as fallback advice at call
// time.
func BuildSuggester(cfg config.Config) (suggest.Provider, error) {
	switch cfg.Suggester {
	case "local":
		return suggest.NewLocalProvider(cfg.LocalDelay), nil
	case "gemini":
		apiKey := cfg.GeminiAPIKey
		if apiKey == "" && cfg.CredentialsPath != "" {
			creds, err := auth.Store{Path: cfg.CredentialsPath}.Load(cfg.MasterPassword)
			if err != nil {
				return nil, fmt.Errorf("load credentials: %w", err)
			}
			apiKey = creds.GeminiAPIKey
		}
		return suggest.NewGeminiProvider(suggest.GeminiOptions{
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			APIKey:  apiKey,
			Timeout: cfg.RequestTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("invalid suggester: %s", cfg.Suggester)
	}
}
