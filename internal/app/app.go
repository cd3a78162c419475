package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/miniblog/internal/activity"
	"github.com/example/miniblog/internal/config"
	"github.com/example/miniblog/internal/db"
	"github.com/example/miniblog/internal/log"
	"github.com/example/miniblog/internal/models"
	"github.com/example/miniblog/internal/search"
	"github.com/example/miniblog/internal/transport/http"
)

type Application struct {
	Config *config.Config
	Logger *zap.SugaredLogger
	DB     *db.Database
	Feed   *activity.Feed
	Search *search.Elastic
	Router http.Router
}

func Initialize() (*Application, error) {
	cfg := config.Load()

	logger, err := log.NewSugar(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	database, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := database.AutoMigrate(&models.Post{}, &models.Comment{}, &models.ActivityLog{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	feed, err := activity.NewFeed(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	es, err := search.NewElastic(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := es.EnsurePostsIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure ES index: %w", err)
	}

	r := http.NewRouter(cfg, database, feed, es, logger)

	return &Application{
		Config: cfg,
		Logger: logger,
		DB:     database,
		Feed:   feed,
		Search: es,
		Router: r,
	}, nil
}

func (a *Application) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warnw("db close error", "error", err)
		}
	}
	if a.Feed != nil {
		_ = a.Feed.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
