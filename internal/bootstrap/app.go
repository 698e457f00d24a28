package bootstrap

// App wiring: adapters are chosen by configuration, constructed once, and
// handed to the session service, access controller, and screens.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/hrsystem/hr-console/config"
	"github.com/hrsystem/hr-console/internal/access"
	"github.com/hrsystem/hr-console/internal/adapters/devauth"
	"github.com/hrsystem/hr-console/internal/adapters/googleauth"
	"github.com/hrsystem/hr-console/internal/adapters/memstore"
	"github.com/hrsystem/hr-console/internal/adapters/redisstore"
	"github.com/hrsystem/hr-console/internal/api"
	"github.com/hrsystem/hr-console/internal/console"
	"github.com/hrsystem/hr-console/internal/domain/resource"
	"github.com/hrsystem/hr-console/internal/ports"
	"github.com/hrsystem/hr-console/internal/service"
)

// Screens holds one screen controller per managed collection.
type Screens struct {
	Competencies   *console.Screen[resource.Competency]
	Languages      *console.Screen[resource.Language]
	Trainings      *console.Screen[resource.Training]
	Positions      *console.Screen[resource.Position]
	Candidates     *console.Screen[resource.Candidate]
	Employees      *console.Screen[resource.Employee]
	WorkExperience *console.Screen[resource.WorkExperience]
}

// App is the fully wired console.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Client   *api.Client
	Sessions *service.SessionService
	Access   *access.Controller
	Screens  Screens

	// Google is set when the google auth mode is fully configured; it
	// additionally offers the interactive code flow.
	Google *googleauth.Verifier
}

// NewApp constructs the console from configuration.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	client, err := api.NewClient(api.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	store, err := BuildTokenStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build token store: %w", err)
	}

	app := &App{Config: cfg, Logger: logger, Client: client}

	verifier, google, err := BuildVerifier(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build credential verifier: %w", err)
	}
	app.Google = google

	sessions, err := service.NewSessionService(service.SessionServiceOptions{
		Store:    store,
		Gateway:  client,
		Verifier: verifier,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build session service: %w", err)
	}
	app.Sessions = sessions

	controller, err := access.NewController(access.ControllerOptions{
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build access controller: %w", err)
	}
	app.Access = controller

	if err := app.buildScreens(); err != nil {
		return nil, err
	}
	return app, nil
}

// BuildTokenStore creates the token store selected by configuration.
func BuildTokenStore(cfg config.AppConfig, logger *slog.Logger) (ports.TokenStore, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewTokenStore(redisstore.Options{
			Client:    client,
			KeyPrefix: cfg.Session.KeyPrefix,
			TTL:       cfg.Session.TTL,
		})
	default:
		if logger != nil && cfg.Session.Store != config.StoreMemory {
			logger.Warn("unknown session store, using memory", "store", cfg.Session.Store)
		}
		return memstore.NewTokenStore(), nil
	}
}

// BuildVerifier creates the credential verifier selected by configuration.
// A google mode without a client ID leaves federated login unavailable
// rather than failing the whole console.
func BuildVerifier(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (ports.CredentialVerifier, *googleauth.Verifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		v, err := devauth.NewVerifier(devauth.Config{
			Subject: cfg.Auth.DevAuth.Subject,
			Email:   cfg.Auth.DevAuth.Email,
			Name:    cfg.Auth.DevAuth.Name,
			Picture: cfg.Auth.DevAuth.Picture,
		})
		if err != nil {
			return nil, nil, err
		}
		return v, nil, nil

	case config.AuthModeGoogle:
		if cfg.Auth.Google.ClientID == "" {
			if logger != nil {
				logger.Warn("google auth selected but client ID missing; federated login disabled")
			}
			return nil, nil, nil
		}
		v, err := googleauth.NewVerifier(ctx, googleauth.Config{
			ClientID:    cfg.Auth.Google.ClientID,
			IssuerURL:   cfg.Auth.Google.IssuerURL,
			RedirectURL: cfg.Auth.Google.RedirectURL,
			Scope:       cfg.Auth.Google.Scope,
		})
		if err != nil {
			return nil, nil, err
		}
		return v, v, nil

	default:
		return nil, nil, nil
	}
}

func (a *App) buildScreens() error {
	var err error
	if a.Screens.Competencies, err = buildScreen(a, resource.Competencies()); err != nil {
		return err
	}
	if a.Screens.Languages, err = buildScreen(a, resource.Languages()); err != nil {
		return err
	}
	if a.Screens.Trainings, err = buildScreen(a, resource.Trainings()); err != nil {
		return err
	}
	if a.Screens.Positions, err = buildScreen(a, resource.Positions()); err != nil {
		return err
	}
	if a.Screens.Candidates, err = buildScreen(a, resource.Candidates()); err != nil {
		return err
	}
	if a.Screens.Employees, err = buildScreen(a, resource.Employees()); err != nil {
		return err
	}
	if a.Screens.WorkExperience, err = buildScreen(a, resource.WorkExperiences()); err != nil {
		return err
	}
	return nil
}

func buildScreen[T any](a *App, schema resource.Schema[T]) (*console.Screen[T], error) {
	coll := api.NewCollection(a.Client, schema, a.Sessions)
	screen, err := console.NewScreen(console.ScreenOptions[T]{
		Schema:     schema,
		Collection: coll,
		Logger:     a.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s screen: %w", schema.Collection, err)
	}
	return screen, nil
}
