package persistent

import (
	"time"

	"maltlog/internal/entity"
	"maltlog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostWithAuthor pairs a post with its author's nickname for summary
// assembly.
type PostWithAuthor struct {
	Post           *entity.Post
	AuthorNickname string
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetAuthorID(postID string) (string, error)
	ListLatest(max int) ([]*PostWithAuthor, error)
	CountByUser(userID string) (int64, error)
	Exists(id string) (bool, error)
	CreateComment(comment *entity.Comment) error
	ListComments(postID string) ([]*entity.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetAuthorID(postID string) (string, error) {
	var userID string
	err := r.db.Model(&model.PostModel{}).Where("id = ?", postID).Pluck("user_id", &userID).Error
	if err != nil {
		return "", err
	}
	return userID, nil
}

type postJoinRow struct {
	ID             string
	UserID         string
	Title          string
	Body           string
	ImagePath      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorNickname string
}

func (r *postRepository) ListLatest(max int) ([]*PostWithAuthor, error) {
	var rows []postJoinRow
	err := r.db.Table("posts").
		Select("posts.id, posts.user_id, posts.title, posts.body, posts.image_path, posts.created_at, posts.updated_at, users.nickname AS author_nickname").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.deleted_at IS NULL").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(max).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*PostWithAuthor, len(rows))
	for i, row := range rows {
		results[i] = &PostWithAuthor{
			Post: &entity.Post{
				ID:        row.ID,
				UserID:    row.UserID,
				Title:     row.Title,
				Body:      row.Body,
				ImageURL:  row.ImagePath,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			AuthorNickname: row.AuthorNickname,
		}
	}
	return results, nil
}

func (r *postRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *postRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateComment(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if commentModel.ID == "" {
		commentModel.ID = uuid.New().String()
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel, comment.AuthorNickname)
	return nil
}

type commentJoinRow struct {
	ID             string
	UserID         string
	PostID         string
	Body           string
	CreatedAt      time.Time
	AuthorNickname string
}

func (r *postRepository) ListComments(postID string) ([]*entity.Comment, error) {
	var rows []commentJoinRow
	err := r.db.Table("comments").
		Select("comments.id, comments.user_id, comments.post_id, comments.body, comments.created_at, users.nickname AS author_nickname").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND comments.deleted_at IS NULL", postID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i, row := range rows {
		comments[i] = &entity.Comment{
			ID:             row.ID,
			UserID:         row.UserID,
			PostID:         row.PostID,
			Body:           row.Body,
			AuthorNickname: row.AuthorNickname,
			CreatedAt:      row.CreatedAt,
		}
	}
	return comments, nil
}
