package usecase

import (
	"context"
	"fmt"
	"sync"

	"maltlog/internal/entity"
	"maltlog/pkg/logger"
)

// LikeSyncer is the persistence boundary the liked-set store reconciles
// against.
type LikeSyncer interface {
	FetchLikedIDs(ctx context.Context, userID string, kind entity.LikeKind) ([]string, error)
	AddLike(ctx context.Context, userID, targetID string, kind entity.LikeKind) error
	RemoveLike(ctx context.Context, userID, targetID string, kind entity.LikeKind) error
}

// LikedSet mirrors one user's like relations for a single target kind. The
// set is the session's authoritative view: toggles mutate it optimistically
// before the backend call and revert exactly on failure, so it reconverges
// to server truth within one round trip. The mutex guards membership only;
// toggles on different IDs are not serialized against each other.
type LikedSet struct {
	backend LikeSyncer
	kind    entity.LikeKind
	logger  *logger.Logger

	mu      sync.Mutex
	userID  string
	liked   map[string]struct{}
	loading bool
}

func NewLikedSet(backend LikeSyncer, kind entity.LikeKind, log *logger.Logger) *LikedSet {
	return &LikedSet{
		backend: backend,
		kind:    kind,
		logger:  log,
		liked:   make(map[string]struct{}),
	}
}

// Seed installs a server-computed snapshot without touching the backend.
func (s *LikedSet) Seed(userID string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.liked = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.liked[id] = struct{}{}
	}
}

// SetUser reacts to identity changes. An empty user resets the set without a
// backend call; a new user triggers a full refetch. On fetch failure the last
// known snapshot is kept rather than cleared.
func (s *LikedSet) SetUser(ctx context.Context, userID string) {
	s.mu.Lock()
	if userID == s.userID {
		s.mu.Unlock()
		return
	}
	if userID == "" {
		s.userID = ""
		s.liked = make(map[string]struct{})
		s.mu.Unlock()
		return
	}
	s.userID = userID
	s.mu.Unlock()

	ids, err := s.backend.FetchLikedIDs(ctx, userID, s.kind)
	if err != nil {
		s.logger.Warn("Failed to refresh liked set for user %s: %v", userID, err)
		return
	}

	s.mu.Lock()
	if s.userID == userID {
		s.liked = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s.liked[id] = struct{}{}
		}
	}
	s.mu.Unlock()
}

// Toggle flips membership for targetID. The local mutation is visible before
// the backend call resolves; on backend failure the mutation is reverted for
// exactly this target, leaving concurrent toggles on other IDs untouched.
// It returns the (optimistic) liked state after the call settles.
func (s *LikedSet) Toggle(ctx context.Context, targetID string) (bool, error) {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return false, ErrAuthRequired
	}
	userID := s.userID
	_, wasLiked := s.liked[targetID]
	if wasLiked {
		delete(s.liked, targetID)
	} else {
		s.liked[targetID] = struct{}{}
	}
	s.loading = true
	s.mu.Unlock()

	var err error
	if wasLiked {
		err = s.backend.RemoveLike(ctx, userID, targetID, s.kind)
	} else {
		err = s.backend.AddLike(ctx, userID, targetID, s.kind)
	}

	s.mu.Lock()
	s.loading = false
	if err != nil {
		if wasLiked {
			s.liked[targetID] = struct{}{}
		} else {
			delete(s.liked, targetID)
		}
		s.mu.Unlock()
		return wasLiked, fmt.Errorf("failed to update like: %w", err)
	}
	s.mu.Unlock()

	return !wasLiked, nil
}

func (s *LikedSet) Contains(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[targetID]
	return ok
}

func (s *LikedSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.liked))
	for id := range s.liked {
		ids = append(ids, id)
	}
	return ids
}

func (s *LikedSet) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
