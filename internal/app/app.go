package app

import (
	"context"
	"net/http"

	"qd-calendar-go/internal/config"
	"qd-calendar-go/internal/db"
	analyticsdomain "qd-calendar-go/internal/domain/analytics"
	eventdomain "qd-calendar-go/internal/domain/event"
	memberdomain "qd-calendar-go/internal/domain/member"
	userdomain "qd-calendar-go/internal/domain/user"
	analyticsrepo "qd-calendar-go/internal/repository/postgres/analytics"
	eventrepo "qd-calendar-go/internal/repository/postgres/event"
	memberrepo "qd-calendar-go/internal/repository/postgres/member"
	userrepo "qd-calendar-go/internal/repository/postgres/user"
	"qd-calendar-go/internal/storage"
	"qd-calendar-go/internal/transport/httpserver"
	"qd-calendar-go/internal/transport/httpserver/handler"
	authmw "qd-calendar-go/internal/transport/httpserver/middleware"
	"qd-calendar-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: migrating schema")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	events := eventdomain.NewService(eventrepo.NewPostgres(dbConn))
	analytics := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn))

	if err := users.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return nil, err
	}

	uploads, err := storage.NewLocal(cfg.Upload)
	if err != nil {
		return nil, err
	}

	tokens := authmw.NewTokenManager(cfg.JWT)
	auth := authmw.NewAuth(tokens, users)

	handlers := handler.New(users, members, events, analytics, tokens, uploads, cfg.Upload.MaxSizeBytes, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, auth, uploads.Dir())

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
