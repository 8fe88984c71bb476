package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	entity "main/internal/domain/entity/analytics"
)

// HeadlineSource supplies recent headlines for a symbol.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string) ([]string, error)
}

// Word polarity lists for the keyword scorer.
var (
	positiveWords = map[string]struct{}{
		"surge": {}, "rally": {}, "gain": {}, "gains": {}, "record": {},
		"beat": {}, "beats": {}, "growth": {}, "bullish": {}, "upgrade": {},
		"strong": {}, "soar": {}, "soars": {}, "profit": {}, "breakout": {},
	}
	negativeWords = map[string]struct{}{
		"crash": {}, "plunge": {}, "drop": {}, "drops": {}, "loss": {},
		"losses": {}, "miss": {}, "misses": {}, "bearish": {}, "downgrade": {},
		"weak": {}, "slump": {}, "fraud": {}, "selloff": {}, "default": {},
	}
)

// ScoreHeadlines reduces headlines to a polarity score in [-1, 1] by
// counting polar keywords. No headlines or no polar words score neutral.
func ScoreHeadlines(symbol string, headlines []string) entity.SentimentScore {
	score := entity.SentimentScore{
		Symbol:    symbol,
		Label:     entity.SentimentNeutral,
		Headlines: len(headlines),
	}
	var positive, negative int
	for _, headline := range headlines {
		for _, word := range strings.Fields(strings.ToLower(headline)) {
			word = strings.Trim(word, ".,:;!?\"'()")
			if _, ok := positiveWords[word]; ok {
				positive++
			}
			if _, ok := negativeWords[word]; ok {
				negative++
			}
		}
	}
	total := positive + negative
	if total == 0 {
		return score
	}
	score.Score = float64(positive-negative) / float64(total)
	switch {
	case score.Score >= 0.2:
		score.Label = entity.SentimentPositive
	case score.Score <= -0.2:
		score.Label = entity.SentimentNegative
	}
	return score
}

// HTTPHeadlineSource fetches headlines from a JSON news feed. The feed is
// expected to answer GET <base>?symbol=<symbol> with {"headlines": [...]}.
type HTTPHeadlineSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPHeadlineSource builds a headline source with a bounded timeout.
func NewHTTPHeadlineSource(baseURL string) *HTTPHeadlineSource {
	return &HTTPHeadlineSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPHeadlineSource) Headlines(ctx context.Context, symbol string) ([]string, error) {
	endpoint := fmt.Sprintf("%s?symbol=%s", h.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}
	var body struct {
		Headlines []string `json:"headlines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode news feed: %w", err)
	}
	return body.Headlines, nil
}
