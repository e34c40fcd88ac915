// Package container provides dependency injection for all singleton services
package container

import (
	"database/sql"
	"errors"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/services"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/caching/stores"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/email"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	contentrepo "github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/content"
	userrepo "github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/user"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/templates"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	ContentService *services.ContentService
	AuthService    *services.AuthService
	MediaService   *services.MediaService
	PageService    *services.PageService
	RenderService  *services.RenderService
	ContactService *services.ContactService

	Settings Settings

	// Infrastructure Dependencies
	Hub         *messaging.Hub
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// Settings carries the values that differ between deployments and tests.
type Settings struct {
	JWTSecret string
	SiteRoot  string
	BackupDir string
}

// NewContainer creates and wires all singleton services
func NewContainer(db *sql.DB, settings Settings, hub *messaging.Hub, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	sectionRepo := contentrepo.NewSectionRepository(db, stores.NewContentStore(config.ContentCacheTTL))
	assetRepo := contentrepo.NewMediaAssetRepository(db)
	replacementRepo := contentrepo.NewReplacementRepository(db)
	users := userrepo.NewSQLUserRepository(db, logger)

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if hub != nil {
		publisher = hub
	}

	contentService := services.NewContentService(contentstore.NewRepositoryStore(sectionRepo), sectionRepo, publisher, logger, perfTracker)

	scanner := media.NewScanner(media.FileFetcher{Root: settings.SiteRoot}, media.ScanOptions{
		Prefixes:            config.AssetPrefixes,
		Origins:             config.RemoteMediaOrigins,
		BannerSelector:      config.BannerElement,
		DefaultBanner:       config.DefaultBannerImage,
		SupplementaryVideos: config.SupplementaryVideos,
		Concurrency:         config.ScanConcurrency,
	}, logger)
	processor := media.NewImageProcessor(config.MaxUploadBytes, config.ThumbnailWidth)
	mediaService := services.NewMediaService(scanner, config.SitePages, processor, assetRepo, replacementRepo, publisher, logger, perfTracker)

	pageService := services.NewPageService(settings.SiteRoot, settings.BackupDir, publisher, logger)
	pipeline := templates.NewPipeline(
		templates.NewFieldApplier(templates.DefaultBindings()),
		templates.NewMatchSynchronizer(),
		templates.NewReplacer(config.BannerElement, config.DefaultBannerImage),
		config.AdminPages,
	)

	return &Container{
		ContentService: contentService,
		AuthService:    services.NewAuthService(users, settings.JWTSecret, config.TokenTTL, logger, perfTracker),
		MediaService:   mediaService,
		PageService:    pageService,
		RenderService:  services.NewRenderService(pageService, contentService, replacementRepo, pipeline, logger, perfTracker),
		ContactService: services.NewContactService(newMailer(logger), logger),
		Settings:       settings,
		Hub:            hub,
		Logger:         logger,
		PerfTracker:    perfTracker,
	}
}

func newMailer(logger *logging.ChanneledLogger) email.Service {
	mailer, err := email.NewService(email.Options{
		APIKey:    config.ResendAPIKey,
		FromEmail: config.ContactEmailFrom,
		FromName:  config.ContactEmailName,
		ToEmail:   config.ContactEmailTo,
	})
	if errors.Is(err, email.ErrNotConfigured) {
		logger.Startup().Warn("Contact relay disabled, RESEND_API_KEY or CONTACT_EMAIL_TO not set")
		return nil
	}
	if err != nil {
		logger.Startup().Error("Contact relay disabled", "error", err.Error())
		return nil
	}
	return mailer
}
