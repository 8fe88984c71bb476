package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	entity "main/internal/domain/entity/analytics"
)

// CalendarSource supplies upcoming economic calendar events.
type CalendarSource interface {
	Events(ctx context.Context) ([]entity.EconomicEvent, error)
}

// HTTPCalendarSource fetches the economic calendar from a JSON endpoint
// answering GET <url> with {"events": [...]}.
type HTTPCalendarSource struct {
	url    string
	client *http.Client
}

// NewHTTPCalendarSource builds a calendar source with a bounded timeout.
func NewHTTPCalendarSource(url string) *HTTPCalendarSource {
	return &HTTPCalendarSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPCalendarSource) Events(ctx context.Context) ([]entity.EconomicEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch economic calendar: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("economic calendar returned status %d", resp.StatusCode)
	}
	var body struct {
		Events []entity.EconomicEvent `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode economic calendar: %w", err)
	}
	return body.Events, nil
}
