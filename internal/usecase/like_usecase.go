package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"maltlog/internal/entity"
	"maltlog/internal/repo/persistent"
	"maltlog/pkg/logger"
	"maltlog/pkg/queue"

	"github.com/redis/go-redis/v9"
)

type LikeUseCase interface {
	Toggle(ctx context.Context, userID, targetID string, kind entity.LikeKind) (bool, error)
	Count(ctx context.Context, targetID string, kind entity.LikeKind) (int64, error)
	LikedIDs(ctx context.Context, userID string, kind entity.LikeKind) ([]string, error)
	IsLiked(ctx context.Context, userID, targetID string, kind entity.LikeKind) bool
	EndSession(userID string)
}

type likeUseCase struct {
	likeRepo    persistent.LikeRepository
	whiskyRepo  persistent.WhiskyRepository
	postRepo    persistent.PostRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*LikedSet
}

func NewLikeUseCase(
	likeRepo persistent.LikeRepository,
	whiskyRepo persistent.WhiskyRepository,
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		likeRepo:    likeRepo,
		whiskyRepo:  whiskyRepo,
		postRepo:    postRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
		sessions:    make(map[string]*LikedSet),
	}
}

// repoSyncer adapts the like repository to the liked-set store boundary.
type repoSyncer struct {
	repo persistent.LikeRepository
}

func (a *repoSyncer) FetchLikedIDs(ctx context.Context, userID string, kind entity.LikeKind) ([]string, error) {
	return a.repo.LikedTargetIDs(userID, kind)
}

func (a *repoSyncer) AddLike(ctx context.Context, userID, targetID string, kind entity.LikeKind) error {
	return a.repo.CreateLike(userID, targetID, kind)
}

func (a *repoSyncer) RemoveLike(ctx context.Context, userID, targetID string, kind entity.LikeKind) error {
	return a.repo.DeleteLike(userID, targetID, kind)
}

func (uc *likeUseCase) sessionSet(ctx context.Context, userID string, kind entity.LikeKind) *LikedSet {
	key := userID + ":" + string(kind)

	uc.mu.Lock()
	set, ok := uc.sessions[key]
	if !ok {
		set = NewLikedSet(&repoSyncer{repo: uc.likeRepo}, kind, uc.logger)
		uc.sessions[key] = set
	}
	uc.mu.Unlock()

	set.SetUser(ctx, userID)
	return set
}

func (uc *likeUseCase) Toggle(ctx context.Context, userID, targetID string, kind entity.LikeKind) (bool, error) {
	if userID == "" {
		return false, ErrAuthRequired
	}

	exists, err := uc.targetExists(targetID, kind)
	if err != nil {
		uc.logger.Error("Failed to check %s existence: %v", kind, err)
		return false, fmt.Errorf("failed to check target: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	set := uc.sessionSet(ctx, userID, kind)
	liked, err := set.Toggle(ctx, targetID)
	if err != nil {
		uc.logger.Error("Failed to toggle like: %v", err)
		return liked, err
	}

	countKey := likeCountKey(targetID, kind)
	if liked {
		uc.redisClient.Incr(ctx, countKey)
		uc.notifyLike(userID, targetID, kind)
	} else {
		uc.redisClient.Decr(ctx, countKey)
	}

	return liked, nil
}

// Count reads the like counter from Redis first and falls back to the
// database, warming the cache on a miss.
func (uc *likeUseCase) Count(ctx context.Context, targetID string, kind entity.LikeKind) (int64, error) {
	countKey := likeCountKey(targetID, kind)

	countStr, err := uc.redisClient.Get(ctx, countKey).Result()
	if err == nil {
		count, _ := strconv.ParseInt(countStr, 10, 64)
		return count, nil
	}

	count, err := uc.likeRepo.CountLikes(targetID, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	uc.redisClient.Set(ctx, countKey, count, 0)
	return count, nil
}

func (uc *likeUseCase) LikedIDs(ctx context.Context, userID string, kind entity.LikeKind) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}
	return uc.sessionSet(ctx, userID, kind).IDs(), nil
}

func (uc *likeUseCase) IsLiked(ctx context.Context, userID, targetID string, kind entity.LikeKind) bool {
	if userID == "" {
		return false
	}
	return uc.sessionSet(ctx, userID, kind).Contains(targetID)
}

// EndSession drops the user's liked-set mirrors. The next request for the
// same user reseeds from the database.
func (uc *likeUseCase) EndSession(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, kind := range []entity.LikeKind{entity.LikeKindWhisky, entity.LikeKindPost} {
		key := userID + ":" + string(kind)
		if set, ok := uc.sessions[key]; ok {
			set.SetUser(context.Background(), "")
			delete(uc.sessions, key)
		}
	}
}

func (uc *likeUseCase) targetExists(targetID string, kind entity.LikeKind) (bool, error) {
	switch kind {
	case entity.LikeKindWhisky:
		return uc.whiskyRepo.Exists(targetID)
	case entity.LikeKindPost:
		return uc.postRepo.Exists(targetID)
	default:
		return false, fmt.Errorf("%w: unknown like kind %q", ErrInvalidInput, kind)
	}
}

// notifyLike publishes an activity task when someone likes another user's
// post. Whiskies have no author to notify. Queue failures never fail the
// user action.
func (uc *likeUseCase) notifyLike(likerID, targetID string, kind entity.LikeKind) {
	if kind != entity.LikeKindPost || uc.queueClient == nil {
		return
	}

	authorID, err := uc.postRepo.GetAuthorID(targetID)
	if err != nil || authorID == "" || authorID == likerID {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":     "like",
			"user_id":  authorID,
			"liker_id": likerID,
			"post_id":  targetID,
			"priority": 3,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish like notification task: %v", err)
		}
	}()
}

func likeCountKey(targetID string, kind entity.LikeKind) string {
	return fmt.Sprintf("%s:likes:%s", kind, targetID)
}
