package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/format"
	"maltlog/pkg/logger"
	"maltlog/pkg/queue"
	"maltlog/pkg/s3"

	"github.com/google/uuid"
)

const (
	latestPostLimit  = 3
	excerptRuneLimit = 140
)

type CreatePostInput struct {
	Title       string
	Body        string
	Image       io.Reader
	ContentType string
}

type CommunityUseCase interface {
	LatestPosts(ctx context.Context) []*entity.PostSummary
	ListPosts(ctx context.Context, limit int) ([]*entity.PostSummary, error)
	CreatePost(userID string, input CreatePostInput) (*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	AddComment(userID, postID, body string) (*entity.Comment, error)
	Comments(postID string) ([]*entity.Comment, error)
}

type communityUseCase struct {
	postRepo    persistent.PostRepository
	userRepo    persistent.UserRepository
	likes       LikeUseCase
	s3Client    *s3.Client
	queueClient *queue.Client
	storageBase string
	logger      *logger.Logger
}

func NewCommunityUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	likes LikeUseCase,
	s3Client *s3.Client,
	queueClient *queue.Client,
	storageBase string,
	logger *logger.Logger,
) CommunityUseCase {
	return &communityUseCase{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likes:       likes,
		s3Client:    s3Client,
		queueClient: queueClient,
		storageBase: storageBase,
		logger:      logger,
	}
}

// LatestPosts feeds the home-page preview. The preview is decorative, so any
// failure collapses to an empty list instead of surfacing an error.
func (uc *communityUseCase) LatestPosts(ctx context.Context) []*entity.PostSummary {
	rows, err := uc.postRepo.ListLatest(latestPostLimit)
	if err != nil {
		uc.logger.Warn("Failed to load latest posts: %v", err)
		return []*entity.PostSummary{}
	}
	return uc.toSummaries(ctx, rows)
}

// ListPosts serves the community page itself, newest first. Unlike the
// preview it surfaces failures.
func (uc *communityUseCase) ListPosts(ctx context.Context, limit int) ([]*entity.PostSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := uc.postRepo.ListLatest(limit)
	if err != nil {
		uc.logger.Error("Failed to list posts: %v", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return uc.toSummaries(ctx, rows), nil
}

func (uc *communityUseCase) toSummaries(ctx context.Context, rows []*persistent.PostWithAuthor) []*entity.PostSummary {
	summaries := make([]*entity.PostSummary, len(rows))
	for i, row := range rows {
		count, err := uc.likes.Count(ctx, row.Post.ID, entity.LikeKindPost)
		if err != nil {
			uc.logger.Warn("Failed to count likes for post %s: %v", row.Post.ID, err)
			count = 0
		}

		nickname := row.AuthorNickname
		if nickname == "" {
			nickname = anonymousNickname
		}

		summaries[i] = &entity.PostSummary{
			ID:             row.Post.ID,
			Title:          row.Post.Title,
			Excerpt:        excerpt(row.Post.Body),
			AuthorNickname: nickname,
			ImageURL:       s3.PublicURL(uc.storageBase, row.Post.ImageURL),
			LikesLabel:     format.LikeCount(count),
			CreatedAt:      row.Post.CreatedAt,
		}
	}
	return summaries
}

// excerpt truncates on rune boundaries and appends an ellipsis when content
// was cut.
func excerpt(body string) string {
	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) <= excerptRuneLimit {
		return body
	}
	runes := []rune(body)
	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "…"
}

func (uc *communityUseCase) CreatePost(userID string, input CreatePostInput) (*entity.Post, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: post title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, fmt.Errorf("%w: post body is required", ErrInvalidInput)
	}

	imagePath := ""
	if input.Image != nil {
		key := fmt.Sprintf("posts/%s/%s", userID, uuid.New().String())
		path, err := uc.s3Client.UploadFile(key, input.Image, input.ContentType)
		if err != nil {
			uc.logger.Error("Failed to upload post image: %v", err)
			return nil, fmt.Errorf("failed to upload post image: %w", err)
		}
		imagePath = path
	}

	post := &entity.Post{
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Body:     strings.TrimSpace(input.Body),
		ImageURL: imagePath,
	}
	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post created: %s by %s", post.ID, userID)
	return post, nil
}

func (uc *communityUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	post.ImageURL = s3.PublicURL(uc.storageBase, post.ImageURL)
	return post, nil
}

func (uc *communityUseCase) AddComment(userID, postID, body string) (*entity.Comment, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", ErrInvalidInput)
	}

	exists, err := uc.postRepo.Exists(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	author, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch author: %w", err)
	}

	comment := &entity.Comment{
		UserID:         userID,
		PostID:         postID,
		Body:           strings.TrimSpace(body),
		AuthorNickname: author.Nickname,
	}
	if err := uc.postRepo.CreateComment(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	uc.notifyComment(userID, postID, comment.ID)
	return comment, nil
}

func (uc *communityUseCase) Comments(postID string) ([]*entity.Comment, error) {
	exists, err := uc.postRepo.Exists(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}
	return uc.postRepo.ListComments(postID)
}

// notifyComment publishes an activity task for the post author. Queue
// failures never fail the comment.
func (uc *communityUseCase) notifyComment(commenterID, postID, commentID string) {
	if uc.queueClient == nil {
		return
	}

	authorID, err := uc.postRepo.GetAuthorID(postID)
	if err != nil || authorID == "" || authorID == commenterID {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":         "comment",
			"user_id":      authorID,
			"commenter_id": commenterID,
			"post_id":      postID,
			"comment_id":   commentID,
			"priority":     5,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish comment notification task: %v", err)
		}
	}()
}
