package prediction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tbaudier/parkwatch/core/logger"
)

const (
	enhancedHistoryLimit = 100
	recentPatternSize    = 20
)

// CompletionClient requests a free-text completion from an external model.
// Implementations must bound the call with a timeout; any transport or
// protocol problem surfaces as a single error.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// EnhancedPredictor wraps the statistical predictor with an external
// text-completion refinement. Every anomaly on the enhancement path falls
// back to the statistical result; callers never see enhancement failures.
type EnhancedPredictor struct {
	statistical *StatisticalPredictor
	history     HistorySource
	client      CompletionClient
	log         logger.Logger
	now         func() time.Time
}

// NewEnhancedPredictor builds the two-tier predictor. A nil client makes it
// behave exactly like the statistical predictor.
func NewEnhancedPredictor(statistical *StatisticalPredictor, history HistorySource, client CompletionClient, log logger.Logger) *EnhancedPredictor {
	return &EnhancedPredictor{
		statistical: statistical,
		history:     history,
		client:      client,
		log:         log,
		now:         time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (p *EnhancedPredictor) WithClock(now func() time.Time) *EnhancedPredictor {
	p.now = now
	return p
}

// Predict implements Predictor.
func (p *EnhancedPredictor) Predict(ctx context.Context, spotID int64, hoursAhead int) (Prediction, error) {
	if p.client == nil {
		return p.statistical.Predict(ctx, spotID, hoursAhead)
	}
	pred, err := p.aiPredict(ctx, spotID, hoursAhead)
	if err != nil {
		p.log.Debugf("ai prediction for spot %d unavailable: %v", spotID, err)
		return p.statistical.Predict(ctx, spotID, hoursAhead)
	}
	return pred, nil
}

const systemPrompt = "You are an assistant for a smart parking system. " +
	"Analyze parking data and provide predictions in JSON format."

func (p *EnhancedPredictor) aiPredict(ctx context.Context, spotID int64, hoursAhead int) (Prediction, error) {
	records, err := p.history.RecentHistory(ctx, spotID, enhancedHistoryLimit)
	if err != nil {
		return Prediction{}, fmt.Errorf("fetch history: %w", err)
	}

	pattern := make([]bool, 0, recentPatternSize)
	for i, rec := range records {
		if i >= recentPatternSize {
			break
		}
		pattern = append(pattern, rec.Occupied)
	}

	now := p.now()
	prompt := fmt.Sprintf(`Based on this parking data for spot %d:
- Current time: %s
- Recent occupancy pattern: %s

Predict if this spot will be available in %d hour(s).
Return only a JSON object with: predicted_available (boolean), confidence (0-1), reasoning (string)`,
		spotID, now.Format("15:04 on Monday"), formatPattern(pattern), hoursAhead)

	text, err := p.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return Prediction{}, fmt.Errorf("completion: %w", err)
	}
	parsed, err := parsePredictionPayload(text)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{
		PredictedAvailable: parsed.PredictedAvailable,
		Confidence:         parsed.Confidence,
		Reasoning:          parsed.Reasoning,
		AIPowered:          true,
		Model:              p.client.Model(),
	}, nil
}

func formatPattern(pattern []bool) string {
	parts := make([]string, len(pattern))
	for i, occupied := range pattern {
		if occupied {
			parts[i] = "occupied"
		} else {
			parts[i] = "free"
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var _ Predictor = (*EnhancedPredictor)(nil)
