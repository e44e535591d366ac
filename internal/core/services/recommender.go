// Package services holds the post-retrieval decision pipeline: intent
// extraction, content filtering, mood ranking, artist diversity, and the
// guarded explanation, chained by the Recommender.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/avelasco/acorde/internal/core/domain"
	"github.com/avelasco/acorde/internal/core/ports"
)

const (
	minQueryRunes  = 4
	overFetchFloor = 50
	overFetchRatio = 8

	defaultMaxPerArtist = 2
	relaxedMaxPerArtist = 3
)

// Recommender coordinates the pipeline over the search, generator, and
// language-detection collaborators. All state is request-scoped; the only
// shared data are the read-only keyword tables.
type Recommender struct {
	searcher  ports.TrackSearcher
	generator ports.TextGenerator
	detector  ports.LanguageDetector
	logger    *zap.Logger
}

// NewRecommender constructs a Recommender. A nil logger means no logging.
func NewRecommender(searcher ports.TrackSearcher, generator ports.TextGenerator, detector ports.LanguageDetector, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{
		searcher:  searcher,
		generator: generator,
		detector:  detector,
		logger:    logger,
	}
}

// Recommend runs the full pipeline for one query. k <= 0 means "not given":
// the count is then read from the query itself. The returned string is
// always user-facing; an error is only possible when the search collaborator
// itself fails (generator and detector failures degrade silently).
func (r *Recommender) Recommend(ctx context.Context, query string, k int) (string, error) {
	cleaned := strings.TrimSpace(query)
	if utf8.RuneCountInString(cleaned) < minQueryRunes {
		return TellMeMorePrompt, nil
	}

	intent := ExtractIntent(cleaned)
	kEffective := intent.RequestedCount
	if k > 0 {
		kEffective = k
	}

	fetchSize := kEffective * overFetchRatio
	if fetchSize < overFetchFloor {
		fetchSize = overFetchFloor
	}

	raw, err := r.searcher.Search(ctx, cleaned, fetchSize, intent.GenreHint)
	if err != nil {
		if errors.Is(err, ports.ErrNoMatches) {
			return ApologyResponse, nil
		}
		return "", fmt.Errorf("service: search failed: %w", err)
	}
	if len(raw) == 0 {
		return ApologyResponse, nil
	}

	filtered := FilterCandidates(raw, intent, r.detector)
	if len(filtered) == 0 {
		// the filter was stricter than the pool; better noisy than empty
		filtered = raw
	}

	if intent.WantsRelax || intent.WantsStudy {
		filtered = RankCalm(filtered, intent)
	}

	candidates := LimitPerArtist(filtered, defaultMaxPerArtist)
	if len(candidates) < kEffective {
		candidates = LimitPerArtist(filtered, relaxedMaxPerArtist)
	}

	if kEffective > len(candidates) {
		kEffective = len(candidates)
	}
	results := candidates[:kEffective]
	if len(results) == 0 {
		return ApologyResponse, nil
	}

	r.logger.Debug("pipeline counts",
		zap.Int("raw", len(raw)),
		zap.Int("filtered", len(filtered)),
		zap.Int("final", len(results)),
		zap.String("mood", string(intent.Mood)),
	)

	explanation := r.explain(ctx, cleaned, results)
	return AssembleResponse(results, explanation), nil
}

// explain tries the generator once and falls back to the deterministic
// template on any failure or gate rejection. Whichever text wins gets
// sanitized against the final track list.
func (r *Recommender) explain(ctx context.Context, query string, results []domain.Track) string {
	explanation := SafeExplanation(query, results)

	if r.generator != nil {
		prompt := BuildExplanationPrompt(query, results)
		if text, err := r.generator.Complete(ctx, prompt); err != nil {
			r.logger.Warn("explanation generator unavailable", zap.Error(err))
		} else {
			candidate := strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
			if candidate == "" || LooksHallucinated(candidate) {
				r.logger.Warn("generated explanation rejected", zap.Int("length", len(candidate)))
			} else {
				explanation = candidate
			}
		}
	}

	return SanitizeExplanation(explanation, results)
}
