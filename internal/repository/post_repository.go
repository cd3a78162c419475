package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/miniblog/internal/models"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

// List returns every post row. The slice is never nil so an empty table
// serializes as [] rather than null.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, tx *gorm.DB, p *models.Post) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := tx.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostRepository) LogActivity(ctx context.Context, tx *gorm.DB, action string, postID uint) error {
	log := models.ActivityLog{Action: action, PostID: postID}
	return tx.WithContext(ctx).Create(&log).Error
}
