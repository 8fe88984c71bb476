package analytics

import (
	"io"
	"testing"

	"main/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newServiceForTest(cfg config.AnalyticsConfig) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(nil, nil, nil, nil, nil, nil, nil, cfg, logger)
}

func TestWindowLimitCoversConfiguredDaysInMinutes(t *testing.T) {
	assert.Equal(t, minutesPerDay, newServiceForTest(config.AnalyticsConfig{WindowDays: 1}).windowLimit())
	assert.Equal(t, 30*minutesPerDay, newServiceForTest(config.AnalyticsConfig{}).windowLimit())
}

func TestWindowLimitIsCapped(t *testing.T) {
	assert.Equal(t, maxWindowCandles, newServiceForTest(config.AnalyticsConfig{WindowDays: 365}).windowLimit())
}
