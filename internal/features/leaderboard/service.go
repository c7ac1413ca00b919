package leaderboard

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/db/redisdb"
	"studyflow.app/server/internal/features/progression"
)

// Service serves the ranked board. Redis is the primary read path; any
// Redis failure falls back to the Postgres ORDER BY, so the board stays
// available when the cache is cold or down.
type Service struct {
	repo  *Repository
	cache *redisdb.Client
	size  int
}

// NewService creates the leaderboard service. size caps the visible
// window.
func NewService(repo *Repository, cache *redisdb.Client, size int) *Service {
	return &Service{repo: repo, cache: cache, size: size}
}

// Top returns the visible window plus the caller's own entry.
func (s *Service) Top(ctx context.Context, viewerID uuid.UUID) (*Board, error) {
	entries, err := s.fromCache(ctx)
	if err != nil {
		log.WithError(err).Warn("Leaderboard cache read failed, falling back to Postgres")
		entries, err = s.repo.TopByLifetimeXP(ctx, s.size)
		if err != nil {
			return nil, err
		}
	}
	if entries == nil {
		entries = []Entry{}
	}

	board := &Board{Entries: entries}
	for i := range entries {
		if entries[i].UserID == viewerID {
			board.Me = &entries[i]
			return board, nil
		}
	}

	// Viewer is outside the window; look their rank up separately.
	if me := s.viewerEntry(ctx, viewerID); me != nil {
		board.Me = me
	}
	return board, nil
}

// Rebuild replaces the Redis sorted set from Postgres. Called by the
// nightly job to heal drift from missed fire-and-forget writes.
func (s *Service) Rebuild(ctx context.Context) error {
	scores, err := s.repo.AllLifetimeXP(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.RebuildLeaderboard(ctx, scores); err != nil {
		return err
	}
	log.WithField("users", len(scores)).Info("Leaderboard rebuilt")
	return nil
}

func (s *Service) fromCache(ctx context.Context) ([]Entry, error) {
	zs, err := s.cache.TopByLifetimeXP(ctx, int64(s.size))
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return s.repo.Hydrate(ctx, ids)
}

func (s *Service) viewerEntry(ctx context.Context, viewerID uuid.UUID) *Entry {
	rank, err := s.cache.Rank(ctx, viewerID.String())
	if err != nil {
		return nil
	}

	hydrated, err := s.repo.Hydrate(ctx, []uuid.UUID{viewerID})
	if err != nil || len(hydrated) == 0 {
		return nil
	}

	me := hydrated[0]
	me.Rank = int(rank)
	me.Level = progression.LevelFromXP(me.LifetimeXP)
	return &me
}
