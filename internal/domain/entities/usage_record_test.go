package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		raw  string
		want Period
	}{
		{"1d", Period1D},
		{"7d", Period7D},
		{"30d", Period30D},
		{"90d", Period90D},
		{"", DefaultPeriod},
		{"365d", DefaultPeriod},
		{"month", DefaultPeriod},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePeriod(tt.raw), "raw=%q", tt.raw)
	}
}

func TestPeriodDuration(t *testing.T) {
	assert.Equal(t, 24*time.Hour, Period1D.Duration())
	assert.Equal(t, 7*24*time.Hour, Period7D.Duration())
	assert.Equal(t, 30*24*time.Hour, Period30D.Duration())
	assert.Equal(t, 90*24*time.Hour, Period90D.Duration())
}
