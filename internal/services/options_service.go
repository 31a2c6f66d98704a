package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// OptionSource fetches remote option lists
type OptionSource interface {
	ListOptions(ctx context.Context, token, list, parentParam, parentValue string) ([]models.OptionItem, error)
}

// OptionsService loads cascading dropdown lists. Every request for a
// (session, list) pair takes a new generation; an answer whose generation
// is no longer the latest is reported as stale instead of being returned.
type OptionsService struct {
	source OptionSource
	cache  Cache
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewOptionsService creates the option list service
func NewOptionsService(source OptionSource, cache Cache, ttl time.Duration, logger *logging.SafeLogger) *OptionsService {
	return &OptionsService{source: source, cache: cache, ttl: ttl, logger: logger}
}

func generationKey(sessionID, list string) string {
	return "wizard:options:" + sessionID + ":" + list
}

// Load fetches list for a session. parent is the selected value of the
// list's parent dropdown and is ignored for top level lists.
func (s *OptionsService) Load(ctx context.Context, token, sessionID, list, parent string) (*models.OptionsResponse, error) {
	parentParam, ok := models.OptionListParents[list]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownOptionList, list)
	}
	key := generationKey(sessionID, list)

	generation, err := s.cache.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to sequence option request: %w", err)
	}
	if s.ttl > 0 {
		s.cache.Expire(ctx, key, s.ttl)
	}

	items, err := s.source.ListOptions(ctx, token, list, parentParam, parent)
	if err != nil {
		return nil, err
	}

	latest, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read option sequence: %w", err)
	}
	if current, _ := strconv.ParseInt(latest, 10, 64); current != generation {
		observability.StaleOptionResponses.WithLabelValues(list).Inc()
		s.logger.Debug("dropping superseded option list",
			zap.String("wizard_id", sessionID),
			zap.String("list", list),
			zap.Int64("generation", generation),
			zap.Int64("latest", current))
		return nil, fmt.Errorf("%w: %s generation %d < %d", models.ErrStaleResponse, list, generation, current)
	}

	return &models.OptionsResponse{List: list, Generation: generation, Items: items}, nil
}
