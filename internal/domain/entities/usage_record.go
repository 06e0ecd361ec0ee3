package entities

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is an immutable log entry for one completed request that
// carried a resolved key and project. Records are never mutated and expire
// after the retention window.
type UsageRecord struct {
	ID             uuid.UUID         `json:"id"`
	ApiKeyID       uuid.UUID         `json:"keyId"`
	ProjectID      uuid.UUID         `json:"projectId"`
	Endpoint       string            `json:"endpoint"`
	Method         string            `json:"method"`
	StatusCode     int               `json:"statusCode"`
	ResponseTimeMS int               `json:"responseTime"`
	UserAgent      string            `json:"userAgent,omitempty"`
	IPAddress      string            `json:"ipAddress,omitempty"`
	ErrorMessage   string            `json:"errorMessage,omitempty"`
	RequestSize    int64             `json:"requestSize"`
	ResponseSize   int64             `json:"responseSize"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"timestamp"`
}

// Period selects an aggregation window ending at now
type Period string

const (
	Period1D  Period = "1d"
	Period7D  Period = "7d"
	Period30D Period = "30d"
	Period90D Period = "90d"

	// DefaultPeriod is used when the caller omits or mangles the selector
	DefaultPeriod = Period30D
)

// ParsePeriod maps a raw selector onto a known period, defaulting to 30d
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case Period1D, Period7D, Period30D, Period90D:
		return Period(raw)
	default:
		return DefaultPeriod
	}
}

// Duration returns the window length of the period
func (p Period) Duration() time.Duration {
	switch p {
	case Period1D:
		return 24 * time.Hour
	case Period7D:
		return 7 * 24 * time.Hour
	case Period90D:
		return 90 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// UsageScope restricts aggregation to one project or one key
type UsageScope struct {
	ProjectID *uuid.UUID
	ApiKeyID  *uuid.UUID
}

// EndpointStat is one row of the top-endpoints ranking
type EndpointStat struct {
	Endpoint        string `json:"endpoint"`
	Count           int64  `json:"count"`
	AvgResponseTime int    `json:"avgResponseTime"`
	ErrorCount      int64  `json:"errorCount"`
}

// StatusCodeCount is one bucket of the status-code histogram
type StatusCodeCount struct {
	StatusCode int   `json:"statusCode"`
	Count      int64 `json:"count"`
}

// DailyUsage is one calendar-day bucket of the charting series
type DailyUsage struct {
	Date            string `json:"date"`
	Count           int64  `json:"count"`
	AvgResponseTime int    `json:"avgResponseTime"`
	ErrorCount      int64  `json:"errorCount"`
}

// HourlyUsage is one hour bucket of the current calendar day
type HourlyUsage struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// EndpointPerformance carries min/max/mean response times per endpoint
type EndpointPerformance struct {
	Endpoint        string `json:"endpoint"`
	Count           int64  `json:"count"`
	MinResponseTime int    `json:"minResponseTime"`
	MaxResponseTime int    `json:"maxResponseTime"`
	AvgResponseTime int    `json:"avgResponseTime"`
}

// UsageStats is the summary answer for one scope and period
type UsageStats struct {
	Period          Period             `json:"period"`
	TotalCalls      int64              `json:"totalCalls"`
	CallsToday      int64              `json:"callsToday"`
	ErrorRate       string             `json:"errorRate"`
	AvgResponseTime int                `json:"avgResponseTime"`
	TopEndpoints    []*EndpointStat    `json:"topEndpoints"`
	StatusCodes     []*StatusCodeCount `json:"statusCodes"`
	RecentRequests  []*UsageRecord     `json:"recentRequests"`
}

// UsageAnalytics is the charting answer: daily series plus today's hourly
// counts and per-endpoint performance.
type UsageAnalytics struct {
	Days                int                    `json:"days"`
	DailySeries         []*DailyUsage          `json:"dailySeries"`
	HourlyToday         []*HourlyUsage         `json:"hourlyToday"`
	EndpointPerformance []*EndpointPerformance `json:"endpointPerformance"`
}
