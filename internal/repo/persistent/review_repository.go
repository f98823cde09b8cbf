package persistent

import (
	"time"

	"maltlog/internal/entity"
	"maltlog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewWithWhisky is the joined row shape returned for profile lists. Join
// results are normalized into this one canonical record at the repository
// boundary regardless of how the driver shapes them.
type ReviewWithWhisky struct {
	Review          *entity.Review
	WhiskyName      string
	WhiskyImagePath string
	AuthorNickname  string
}

type ReviewRepository interface {
	Create(review *entity.Review) error
	ListByUser(userID string, cursor *entity.Cursor, limit int) ([]*ReviewWithWhisky, error)
	RatingsByUser(userID string) ([]float64, error)
	CountByUser(userID string) (int64, error)
	FirstReviewedByUser(userID string, max int) ([]*ReviewWithWhisky, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

type reviewJoinRow struct {
	ID              string
	UserID          string
	WhiskyID        string
	Rating          float64
	Body            string
	ImagePath       string
	CreatedAt       time.Time
	WhiskyName      string
	WhiskyImagePath string
	AuthorNickname  string
}

func (r *reviewRepository) Create(review *entity.Review) error {
	reviewModel := ToReviewModel(review)
	if reviewModel.ID == "" {
		reviewModel.ID = uuid.New().String()
	}
	if err := r.db.Create(reviewModel).Error; err != nil {
		return err
	}
	*review = *ToReviewEntity(reviewModel)
	return nil
}

// ListByUser pages by (created_at DESC, id DESC). The cursor filter excludes
// rows older than the cursor timestamp plus the cursor row itself; rows that
// share the cursor's exact timestamp are not re-visited.
func (r *reviewRepository) ListByUser(userID string, cursor *entity.Cursor, limit int) ([]*ReviewWithWhisky, error) {
	query := r.db.Table("reviews").
		Select("reviews.id, reviews.user_id, reviews.whisky_id, reviews.rating, reviews.body, reviews.image_path, reviews.created_at, whiskies.name AS whisky_name, whiskies.image_path AS whisky_image_path, users.nickname AS author_nickname").
		Joins("JOIN whiskies ON whiskies.id = reviews.whisky_id").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.user_id = ? AND reviews.deleted_at IS NULL", userID)

	if cursor != nil {
		query = query.Where("reviews.created_at < ? AND reviews.id != ?", cursor.CreatedAt, cursor.ID)
	}

	var rows []reviewJoinRow
	err := query.
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toReviewsWithWhisky(rows), nil
}

func (r *reviewRepository) RatingsByUser(userID string) ([]float64, error) {
	var ratings []float64
	err := r.db.Model(&model.ReviewModel{}).
		Where("user_id = ?", userID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *reviewRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ReviewModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FirstReviewedByUser returns the user's earliest review per distinct whisky,
// oldest first, at most max rows.
func (r *reviewRepository) FirstReviewedByUser(userID string, max int) ([]*ReviewWithWhisky, error) {
	var rows []reviewJoinRow
	err := r.db.Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (r.whisky_id)
				r.id, r.user_id, r.whisky_id, r.rating, r.body, r.image_path, r.created_at,
				w.name AS whisky_name, w.image_path AS whisky_image_path, u.nickname AS author_nickname
			FROM reviews r
			JOIN whiskies w ON w.id = r.whisky_id
			JOIN users u ON u.id = r.user_id
			WHERE r.user_id = ? AND r.deleted_at IS NULL
			ORDER BY r.whisky_id, r.created_at ASC, r.id ASC
		) firsts
		ORDER BY firsts.created_at ASC
		LIMIT ?`, userID, max).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toReviewsWithWhisky(rows), nil
}

func toReviewsWithWhisky(rows []reviewJoinRow) []*ReviewWithWhisky {
	results := make([]*ReviewWithWhisky, len(rows))
	for i, row := range rows {
		results[i] = &ReviewWithWhisky{
			Review: &entity.Review{
				ID:        row.ID,
				UserID:    row.UserID,
				WhiskyID:  row.WhiskyID,
				Rating:    row.Rating,
				Body:      row.Body,
				ImageURL:  row.ImagePath,
				CreatedAt: row.CreatedAt,
			},
			WhiskyName:      row.WhiskyName,
			WhiskyImagePath: row.WhiskyImagePath,
			AuthorNickname:  row.AuthorNickname,
		}
	}
	return results
}
