package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/devfolio/devfolio/internal/config"
	"github.com/devfolio/devfolio/internal/db"
	"github.com/devfolio/devfolio/internal/middleware"
	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/repository"
	"github.com/devfolio/devfolio/internal/service"
	"github.com/devfolio/devfolio/internal/subscribe"
)

type App struct {
	Cfg              *config.Config
	Site             model.SiteConfig
	DB               *sqlx.DB
	BlogService      *service.BlogService
	EmailService     *service.EmailService
	SubscribeForm    *subscribe.Form
	SubscribeLimiter *middleware.RateLimiter
}

// NewContent loads what rendering needs: the site description and posts.
// Static export stops here.
func NewContent(cfg *config.Config) (*App, error) {
	site, err := config.LoadSite(cfg.SiteConfig, cfg.AppURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load site config: %w", err)
	}

	blog := service.NewBlogService(cfg.ContentPath)
	err = blog.Reload()
	if err != nil {
		return nil, fmt.Errorf("failed to load blog posts: %w", err)
	}

	return &App{
		Cfg:         cfg,
		Site:        site,
		BlogService: blog,
	}, nil
}

// New builds the full server: content plus the subscriber database and the
// mailing-list provider.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a, err := NewContent(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.Migrate(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	subscribers := repository.NewSubscriberRepository(database)
	emailService := service.NewEmailService(subscribers, service.EmailOptions{
		APIKey:     cfg.ResendAPIKey,
		AudienceID: cfg.ResendAudienceID,
		FromEmail:  cfg.EmailFrom,
		SiteName:   a.Site.Name,
		SiteURL:    a.Site.SiteURL,
		IsDev:      cfg.IsDevelopment(),
	})

	form := subscribe.NewForm(emailService)
	form.Timeout = cfg.SubscribeTimeout

	a.DB = database
	a.EmailService = emailService
	a.SubscribeForm = form
	a.SubscribeLimiter = middleware.NewSubscribeLimiter(cfg.TrustedProxies)
	return a, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
