package leadtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNoticeHours(t *testing.T) {
	tests := []struct {
		notice string
		want   int
	}{
		{"24 hours", 24},
		{"48 hours", 48},
		{"1 hour", 1},
		{"2 days", 48},
		{"1 day", 24},
		{"day", 24},    // day unit with no number means one day
		{"hours", 24},  // hour unit with no number falls back to default
		{"garbage", 24},
		{"", 24},
		{"3 Days", 72},
		{"12H", 24}, // no recognizable unit token
	}

	for _, tt := range tests {
		t.Run(tt.notice, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNoticeHours(tt.notice))
		})
	}
}

func TestMinimumDeliveryDate(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(24*time.Hour), MinimumDeliveryDate(now, "24 hours"))
	assert.Equal(t, now.Add(48*time.Hour), MinimumDeliveryDate(now, "2 days"))
	assert.Equal(t, now.Add(24*time.Hour), MinimumDeliveryDate(now, "whenever"))
	assert.Equal(t, now.Add(24*time.Hour), MinimumDeliveryDate(now, ""))
}
