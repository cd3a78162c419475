package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/miniblog/internal/activity"
	"github.com/example/miniblog/internal/db"
	"github.com/example/miniblog/internal/models"
	"github.com/example/miniblog/internal/repository"
	"github.com/example/miniblog/internal/search"
)

type PostService struct {
	db       *db.Database
	feed     *activity.Feed
	es       *search.Elastic
	logger   *zap.SugaredLogger
	posts    *repository.PostRepository
	comments *repository.CommentRepository
}

func NewPostService(database *db.Database, feed *activity.Feed, es *search.Elastic, logger *zap.SugaredLogger) *PostService {
	return &PostService{
		db:       database,
		feed:     feed,
		es:       es,
		logger:   logger,
		posts:    repository.NewPostRepository(database.Gorm),
		comments: repository.NewCommentRepository(database.Gorm),
	}
}

type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

type CreateCommentInput struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// CreatePost inserts the row and waits for the full round trip before
// returning, so the caller always gets the generated id and timestamp.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{Title: in.Title, Content: in.Content, Author: in.Author}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.Create(ctx, tx, post); err != nil {
			return err
		}
		return s.posts.LogActivity(ctx, tx, "new_post", post.ID)
	})
	if err != nil {
		return nil, err
	}
	s.fanOut(ctx, "new_post", post.ID, map[string]interface{}{
		"id":      post.ID,
		"title":   post.Title,
		"content": post.Content,
		"author":  post.Author,
	})
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.posts.LogActivity(ctx, tx, "delete_post", id)
	})
	if err != nil {
		return err
	}
	s.fanOut(ctx, "delete_post", id, nil)
	if err := s.es.DeletePost(ctx, id); err != nil {
		s.logger.Warnw("es delete failed", "post_id", id, "error", err)
	}
	return nil
}

func (s *PostService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *PostService) CreateComment(ctx context.Context, postID uint, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{PostID: postID, Author: in.Author, Content: in.Content}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.Create(ctx, tx, comment); err != nil {
			return err
		}
		return s.posts.LogActivity(ctx, tx, "new_comment", postID)
	})
	if err != nil {
		return nil, err
	}
	s.fanOut(ctx, "new_comment", postID, nil)
	return comment, nil
}

func (s *PostService) SearchPosts(ctx context.Context, q string) ([]map[string]interface{}, error) {
	return s.es.SearchPosts(ctx, q)
}

func (s *PostService) RecentActivity(ctx context.Context) ([]activity.Entry, error) {
	return s.feed.Recent(ctx)
}

// fanOut pushes the mutation to the Redis feed and, when a document is
// given, to the Elasticsearch index. Both are best-effort: the row is
// already committed and a mutation must never fail on a side channel.
func (s *PostService) fanOut(ctx context.Context, action string, postID uint, doc map[string]interface{}) {
	if err := s.feed.Record(ctx, activity.Entry{Action: action, PostID: postID}); err != nil {
		s.logger.Warnw("activity feed record failed", "action", action, "post_id", postID, "error", err)
	}
	if doc != nil {
		if err := s.es.IndexPost(ctx, postID, doc); err != nil {
			s.logger.Warnw("es index failed", "post_id", postID, "error", err)
		}
	}
}
