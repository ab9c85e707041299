package router

import (
	alertsvc "mywork-backend/internal/application/alerts"
	drsvc "mywork-backend/internal/application/durationrequests"
	"mywork-backend/internal/application/emails"
	invitesvc "mywork-backend/internal/application/invites"
	jobsvc "mywork-backend/internal/application/jobs"
	notesvc "mywork-backend/internal/application/notes"
	photosvc "mywork-backend/internal/application/photos"
	usersvc "mywork-backend/internal/application/users"
	authsvc "mywork-backend/internal/auth"
	"mywork-backend/internal/config"
	"mywork-backend/internal/infrastructure/database"
	alerthandler "mywork-backend/internal/interfaces/handlers/alerts"
	authhandler "mywork-backend/internal/interfaces/handlers/auth"
	drhandler "mywork-backend/internal/interfaces/handlers/durationrequests"
	healthhandler "mywork-backend/internal/interfaces/handlers/health"
	invitehandler "mywork-backend/internal/interfaces/handlers/invites"
	jobhandler "mywork-backend/internal/interfaces/handlers/jobs"
	notehandler "mywork-backend/internal/interfaces/handlers/notes"
	photohandler "mywork-backend/internal/interfaces/handlers/photos"
	userhandler "mywork-backend/internal/interfaces/handlers/users"
	"mywork-backend/internal/middleware"
	"mywork-backend/internal/sms"
	"mywork-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries everything the route table needs. Production wiring comes
// from CreateApp; tests supply sqlite and miniredis-backed substitutes.
type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Rdb   *redis.Client
	Email emails.Sender
	SMS   sms.Sender
	Store *storage.LocalStore
}

// New builds the Fiber app: middleware chain, handlers and routes.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             25 * 1024 * 1024,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:            d.Cfg.SessionSecret,
		RedisURL:          d.Cfg.RedisURL,
		AllowCrossSiteDev: d.Cfg.AllowCrossSiteDev,
		IsProduction:      d.Cfg.Env == "production",
	}

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: d.Cfg.FrontendURLEndsWith}))
	app.Use(middleware.SessionWithClient(sessionCfg, d.Rdb))
	app.Use(middleware.HealthMarker(d.Rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	jobService := &jobsvc.Service{DB: d.DB}
	noteService := &notesvc.Service{DB: d.DB}
	photoService := &photosvc.Service{DB: d.DB, Store: d.Store}
	alertService := &alertsvc.Service{DB: d.DB, SMS: d.SMS}
	drService := &drsvc.Service{DB: d.DB}
	inviteService := &invitesvc.Service{DB: d.DB, Email: d.Email, AppBaseURL: d.Cfg.AppBaseURL}
	userService := &usersvc.Service{DB: d.DB}

	jh := &jobhandler.Handlers{Service: jobService}
	nh := &notehandler.Handlers{Service: noteService}
	ph := &photohandler.Handlers{Service: photoService}
	ah := &alerthandler.Handlers{Service: alertService}
	dh := &drhandler.Handlers{Service: drService}
	ih := &invitehandler.Handlers{Service: inviteService}
	uh := &userhandler.Handlers{Service: userService}
	authH := &authhandler.Handlers{
		UserFinder: &authsvc.GormUserFinder{DB: d.DB},
		Rdb:        d.Rdb,
		Config:     sessionCfg,
	}
	hh := &healthhandler.Handlers{Rdb: d.Rdb, DB: d.DB, DatabaseURL: d.Cfg.DatabaseURL}

	app.Get("/health", hh.Check)
	app.Post("/health/reset", hh.Reset)

	app.Post("/auth/login", authH.Login)
	app.Get("/auth/me", authH.Me)
	app.Delete("/auth/logout", authH.Logout)

	app.Get("/jobs", jh.List)
	app.Post("/jobs", jh.Create)
	app.Get("/jobs/:jobId", jh.Get)
	app.Put("/jobs/:jobId", jh.Update)
	app.Delete("/jobs/:jobId", jh.Delete)

	app.Get("/jobs/:jobId/notes", nh.List)
	app.Post("/jobs/:jobId/notes", nh.Create)

	app.Get("/jobs/:jobId/photos", ph.List)
	app.Post("/jobs/:jobId/photos", ph.Create)

	app.Get("/jobs/:jobId/alerts", ah.List)
	app.Post("/jobs/:jobId/alerts", ah.Create)

	app.Get("/jobs/:jobId/duration-requests", dh.List)
	app.Post("/jobs/:jobId/duration-requests", dh.Create)
	app.Patch("/duration-requests/:id", dh.Resolve)

	app.Post("/invites", ih.Create)
	app.Get("/invites", middleware.RequireAuth(), middleware.RequireAdmin(), ih.ListPending)
	app.Post("/invites/accept", ih.Accept)

	app.Post("/users", uh.FindOrCreate)

	if d.Store != nil {
		app.Static("/uploads", d.Store.BaseDir)
	}

	return app
}

// CreateApp opens the production database and Redis connections, builds
// the side-effect clients and returns the wired app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redis.NewClient(opt)

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, nil, nil, err
	}

	var email emails.Sender
	if cfg.BrevoAPIKey != "" {
		email = &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	}

	app := New(Deps{
		Cfg: cfg,
		DB:  db,
		Rdb: rdb,
		SMS: &sms.TwilioClient{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioFromNumber,
		},
		Email: email,
		Store: store,
	})
	return app, db, rdb, nil
}
