package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/miniblog/internal/activity"
	"github.com/example/miniblog/internal/db"
	"github.com/example/miniblog/internal/models"
	"github.com/example/miniblog/internal/service"
)

// PostService is the surface the handlers need; the concrete
// implementation is service.PostService.
type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, in service.CreatePostInput) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID uint, in service.CreateCommentInput) (*models.Comment, error)
	SearchPosts(ctx context.Context, q string) ([]map[string]interface{}, error)
	RecentActivity(ctx context.Context) ([]activity.Entry, error)
}

type PostHandler struct {
	service PostService
	logger  *zap.SugaredLogger
}

func NewPostHandler(svc PostService, logger *zap.SugaredLogger) *PostHandler {
	return &PostHandler{service: svc, logger: logger}
}

type createPostReq struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"omitempty,max=100"`
}

type createCommentReq struct {
	Author  string `json:"author" binding:"omitempty,max=100"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": db.KindValidation, "retryable": false})
		return
	}
	post, err := h.service.CreatePost(c.Request.Context(), service.CreatePostInput{Title: req.Title, Content: req.Content, Author: req.Author})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	comments, err := h.service.ListComments(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req createCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": db.KindValidation, "retryable": false})
		return
	}
	comment, err := h.service.CreateComment(c.Request.Context(), id, service.CreateCommentInput{Author: req.Author, Content: req.Content})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required", "kind": db.KindValidation, "retryable": false})
		return
	}
	res, err := h.service.SearchPosts(c.Request.Context(), q)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PostHandler) RecentActivity(c *gin.Context) {
	entries, err := h.service.RecentActivity(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "kind": db.KindValidation, "retryable": false})
		return 0, false
	}
	return uint(id), true
}

// storeError maps a classified store error onto an HTTP status. The payload
// always carries a non-empty error message plus the kind and retryable flag.
func (h *PostHandler) storeError(c *gin.Context, err error) {
	se := db.Classify(err)
	status := http.StatusInternalServerError
	switch se.Kind {
	case db.KindValidation, db.KindConstraint:
		status = http.StatusBadRequest
	case db.KindNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.logger.Errorw("store operation failed", "kind", se.Kind, "error", se.Message)
	}
	c.JSON(status, gin.H{"error": se.Message, "kind": se.Kind, "retryable": se.Retryable})
}
