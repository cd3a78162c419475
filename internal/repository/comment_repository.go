package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/miniblog/internal/models"
)

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, tx *gorm.DB, c *models.Comment) error {
	return tx.WithContext(ctx).Create(c).Error
}
