package analytics

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MetricViews      = "views"
	MetricLikes      = "likes"
	MetricComments   = "comments"
	MetricShares     = "shares"
	MetricSaves      = "saves"
	MetricEngagement = "engagement"
	MetricReach      = "reach"

	GranularityHour  = "hour"
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

var (
	dateRanges    = []any{"7d", "30d", "90d", "1y"}
	metricNames   = []any{MetricViews, MetricLikes, MetricComments, MetricShares, MetricSaves, MetricEngagement, MetricReach}
	granularities = []any{GranularityHour, GranularityDay, GranularityWeek, GranularityMonth}
)

type QueryBody struct {
	UserID      string   `json:"userId"`
	DateRange   string   `json:"dateRange"`
	Metrics     []string `json:"metrics"`
	Granularity string   `json:"granularity"`
}

func (b *QueryBody) Defaults() {
	if b.DateRange == "" {
		b.DateRange = "30d"
	}
	if b.Metrics == nil {
		b.Metrics = []string{MetricViews, MetricLikes, MetricComments}
	}
	if b.Granularity == "" {
		b.Granularity = GranularityDay
	}
}

func (b QueryBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.UserID, v.Required.Error("User ID is required")),
		v.Field(&b.DateRange, v.In(dateRanges...)),
		v.Field(&b.Metrics, v.Each(v.In(metricNames...))),
		v.Field(&b.Granularity, v.In(granularities...)),
	)
}
