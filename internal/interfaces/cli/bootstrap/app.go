// Package bootstrap wires configuration, logging and adapters for the CLI
// commands.
package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"apmdigest/internal/application/digest"
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/domain/localization"
	"apmdigest/internal/infrastructure/adapters"
	"apmdigest/internal/infrastructure/config"
	"apmdigest/internal/infrastructure/database"
	"apmdigest/internal/infrastructure/i18n"
	"apmdigest/internal/infrastructure/repository"
	"apmdigest/internal/infrastructure/template"
	"apmdigest/internal/shared/logger"
)

// App holds the loaded configuration and the resources opened for one command.
type App struct {
	Config *config.Config
	Logger logger.Interface

	db *gorm.DB
}

// Load reads the configuration and initializes logging.
func Load(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: logger.NewLogger(),
	}, nil
}

// ChangeSource returns the configured source of change records.
func (a *App) ChangeSource() (activity.ChangeSource, error) {
	switch a.Config.Source.Kind {
	case "database":
		if a.db == nil {
			db, err := database.Open(&a.Config.Database, a.Logger.Named("database"))
			if err != nil {
				return nil, err
			}
			a.db = db
		}
		return repository.NewStateHistoryRepository(a.db, a.Config.Database.Table), nil
	default:
		timeout := time.Duration(a.Config.API.TimeoutSeconds) * time.Second
		return adapters.NewStateHistoryAPISource(a.Config.API.BaseURL(), timeout, a.Logger.Named("statehistory")), nil
	}
}

// TranslationSource prefers a local directory over the bucket URL. It
// returns nil when neither is configured.
func (a *App) TranslationSource() localization.TranslationSource {
	cfg := a.Config.Localization
	switch {
	case cfg.Dir != "":
		return i18n.NewDirSource(os.DirFS(cfg.Dir), cfg.Document)
	case cfg.BaseURL != "":
		return i18n.NewHTTPSource(cfg.BaseURL, cfg.Document, &http.Client{
			Timeout: time.Duration(a.Config.API.TimeoutSeconds) * time.Second,
		})
	default:
		return nil
	}
}

func (a *App) Resolver() *i18n.Resolver {
	return i18n.NewResolver(a.TranslationSource(), a.Config.Localization.DefaultLocale, a.Logger.Named("i18n"))
}

// Composer loads the templates and builds the digest composer.
func (a *App) Composer() (*digest.Composer, error) {
	templates, err := template.NewDigestTemplateLoader(a.Config.Templates.Dir, a.Logger.Named("templates")).Load()
	if err != nil {
		return nil, err
	}

	links := digest.Links{
		Program:    a.Config.API.Program(),
		ProfileURL: a.Config.Links.ProfileURL,
		PlanURL:    a.Config.Links.PlanURL,
	}

	return digest.NewComposer(digest.NewRenderer(templates, links), a.Resolver(), nil), nil
}

// Since returns the watermark for a run starting at now.
func (a *App) Since(now time.Time) time.Time {
	return now.Add(-time.Duration(a.Config.Digest.LookbackMinutes) * time.Minute)
}

// Close releases anything opened by the App.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := database.Close(a.db); err != nil {
		a.Logger.Errorw("failed to close database", "error", err)
	}
	a.db = nil
}
