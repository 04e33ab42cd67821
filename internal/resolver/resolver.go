// Package resolver runs the tiered answer-resolution flows: curated
// knowledge first, then one LLM gateway call, then local search, and
// finally a deterministic default. Every flow is total: errors are turned
// into lower-confidence records and never returned to the caller.
package resolver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mafatih/internal/common/config"
	"mafatih/internal/common/logger"
	"mafatih/internal/common/metrics"
	"mafatih/internal/common/observability"
	"mafatih/internal/gateway"
	"mafatih/internal/knowledge"
	"mafatih/internal/models"
)

const (
	DefaultStaticThreshold   = 0.8
	DefaultQuestionThreshold = 0.4
	DefaultDreamThreshold    = 0.3
	DefaultVerseThreshold    = 0.7

	questionMaxTokens = 1500
	dreamMaxTokens    = 1500
	verseMaxTokens    = 2000
)

type Config struct {
	StaticThreshold   float64
	QuestionThreshold float64
	DreamThreshold    float64
	// VerseThreshold is the minimum verseQuality for a gateway verse to be
	// used instead of the local verse store.
	VerseThreshold float64
}

func NewConfig(cfg config.ResolverConfig) *Config {
	c := &Config{
		StaticThreshold:   cfg.StaticThreshold,
		QuestionThreshold: cfg.QuestionThreshold,
		DreamThreshold:    cfg.DreamThreshold,
		VerseThreshold:    cfg.VerseThreshold,
	}
	if c.StaticThreshold <= 0 {
		c.StaticThreshold = DefaultStaticThreshold
	}
	if c.QuestionThreshold <= 0 {
		c.QuestionThreshold = DefaultQuestionThreshold
	}
	if c.DreamThreshold <= 0 {
		c.DreamThreshold = DefaultDreamThreshold
	}
	if c.VerseThreshold <= 0 {
		c.VerseThreshold = DefaultVerseThreshold
	}
	return c
}

type Resolver struct {
	config    *Config
	completer gateway.Completer
	kb        *knowledge.StaticKB
	searcher  *knowledge.Chain
	obs       *observability.Observability
	logger    logger.Logger
	sessions  *sessions
}

// New wires a resolver. A nil completer behaves like a gateway without
// credentials; a nil searcher disables the fatwa search tier.
func New(
	cfg *Config,
	completer gateway.Completer,
	kb *knowledge.StaticKB,
	searcher *knowledge.Chain,
	obs *observability.Observability,
	log logger.Logger,
) *Resolver {
	if cfg == nil {
		cfg = NewConfig(config.ResolverConfig{})
	}
	if kb == nil {
		kb = knowledge.NewStaticKB()
	}
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Resolver{
		config:    cfg,
		completer: completer,
		kb:        kb,
		searcher:  searcher,
		obs:       obs,
		logger:    log.With(map[string]interface{}{"component": "resolver"}),
		sessions:  newSessions(),
	}
}

// InFlight reports how many sessions currently have a running resolution.
func (r *Resolver) InFlight() int {
	return r.sessions.len()
}

// complete performs the single gateway call a resolution is allowed.
func (r *Resolver) complete(ctx context.Context, prompt string, maxTokens int, language string) (gateway.RawJSON, error) {
	if r.completer == nil {
		return "", &gateway.GatewayError{Kind: gateway.KindMissingCredential, Message: "gateway not configured"}
	}
	return r.completer.Complete(ctx, prompt, maxTokens, language)
}

// run wraps one resolution with session replacement, a span, metrics and
// the closing log line.
func (r *Resolver) run(
	ctx context.Context,
	feature models.Feature,
	query models.Query,
	resolve func(ctx context.Context) (models.Tier, float64),
) {
	start := time.Now()

	ctx, release := r.sessions.begin(ctx, string(feature), query.SessionID)
	defer release()

	ctx, span := r.obs.StartSpan(ctx, "resolve."+string(feature),
		attribute.String("feature", string(feature)),
		attribute.Int("query.length", len(query.Text)),
	)
	defer span.End()

	tier, confidence := resolve(ctx)
	duration := time.Since(start)

	span.SetAttributes(
		attribute.String("tier", string(tier)),
		attribute.Float64("confidence", confidence),
	)
	recordOutcome(ctx, r.obs, span, feature, tier, duration)

	r.logger.Info("Resolution completed", map[string]interface{}{
		"feature":    string(feature),
		"tier":       string(tier),
		"confidence": confidence,
		"durationMs": duration.Milliseconds(),
		"sessionId":  query.SessionID,
		"cancelled":  ctx.Err() != nil,
	})
}

func recordOutcome(ctx context.Context, obs *observability.Observability, span trace.Span, feature models.Feature, tier models.Tier, duration time.Duration) {
	metrics.ResolutionsTotal.WithLabelValues(string(feature), string(tier)).Inc()
	metrics.ResolutionDuration.WithLabelValues(string(feature)).Observe(duration.Seconds())
	obs.RecordResolution(ctx, string(feature), string(tier), duration)
	if ctx.Err() != nil {
		span.AddEvent("cancelled")
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
