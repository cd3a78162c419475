package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/miniblog/internal/activity"
	"github.com/example/miniblog/internal/config"
	"github.com/example/miniblog/internal/db"
	"github.com/example/miniblog/internal/search"
	"github.com/example/miniblog/internal/service"
	"github.com/example/miniblog/internal/transport/http/handlers"
)

type Router = *gin.Engine

func NewRouter(cfg *config.Config, database *db.Database, feed *activity.Feed, es *search.Elastic, logger *zap.SugaredLogger) Router {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	svc := service.NewPostService(database, feed, es, logger)
	h := handlers.NewPostHandler(svc, logger)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/posts", h.ListPosts)
	r.POST("/posts", h.CreatePost)
	r.GET("/posts/search", h.Search)
	r.GET("/posts/:id", h.GetPost)
	r.DELETE("/posts/:id", h.DeletePost)
	r.GET("/posts/:id/comments", h.ListComments)
	r.POST("/posts/:id/comments", h.CreateComment)
	r.GET("/activity/recent", h.RecentActivity)

	return r
}
