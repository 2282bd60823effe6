package analytics

import (
	"math"
	"time"

	"golang.org/x/exp/slices"

	"github.com/creatorstation/reelstudio/internal/models"
)

// reachPerView estimates reach until platform insights are wired in.
const reachPerView = 2

// Range returns the window a dateRange covers, ending at now.
func Range(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "7d":
		return now.AddDate(0, 0, -7), now
	case "90d":
		return now.AddDate(0, 0, -90), now
	case "1y":
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, 0, -30), now
	}
}

func step(t time.Time, granularity string) time.Time {
	switch granularity {
	case GranularityHour:
		return t.Add(time.Hour)
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Point is one bucket of the time series.
type Point struct {
	Date     time.Time `json:"date"`
	Views    int64     `json:"views"`
	Likes    int64     `json:"likes"`
	Comments int64     `json:"comments"`
	Shares   int64     `json:"shares"`
	Saves    int64     `json:"saves"`
	Reach    int64     `json:"reach"`
}

func (p Point) value(metric string) int64 {
	switch metric {
	case MetricViews:
		return p.Views
	case MetricLikes:
		return p.Likes
	case MetricComments:
		return p.Comments
	case MetricShares:
		return p.Shares
	case MetricSaves:
		return p.Saves
	case MetricReach:
		return p.Reach
	}
	return 0
}

func (p *Point) add(r models.Reel) {
	p.Views += r.Views
	p.Likes += r.Likes
	p.Comments += r.Comments
	p.Shares += r.Shares
	p.Saves += r.Saves
	p.Reach += r.Views * reachPerView
}

// TimeSeries buckets posted reels from start to end. Each bucket starts at
// its Date and runs until the next one.
func TimeSeries(reels []models.Reel, start, end time.Time, granularity string) []Point {
	points := []Point{}
	for cur := start; !cur.After(end); cur = step(cur, granularity) {
		points = append(points, Point{Date: cur})
	}

	for _, r := range reels {
		if r.PostedAt == nil || r.PostedAt.Before(start) || r.PostedAt.After(end) {
			continue
		}
		// Buckets are sorted, so the reel lands in the last one starting at or
		// before its post time.
		i, found := slices.BinarySearchFunc(points, *r.PostedAt, func(p Point, t time.Time) int {
			return p.Date.Compare(t)
		})
		if !found {
			i--
		}
		points[i].add(r)
	}
	return points
}

// Aggregate summarizes one metric over the series.
type Aggregate struct {
	Total   int64 `json:"total"`
	Average int64 `json:"average"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
}

// Engagement is the share of views that turned into an interaction.
type Engagement struct {
	Rate  float64 `json:"rate"`
	Total int64   `json:"total"`
}

// Aggregates computes the requested metrics over points. Engagement is added
// whenever views or engagement is requested and always reflects every
// interaction in the series.
func Aggregates(points []Point, metrics []string) map[string]any {
	out := make(map[string]any, len(metrics)+1)

	for _, m := range metrics {
		if m == MetricEngagement {
			continue
		}
		out[m] = aggregate(points, m)
	}

	if slices.Contains(metrics, MetricEngagement) || slices.Contains(metrics, MetricViews) {
		var views, engagements int64
		for _, p := range points {
			views += p.Views
			engagements += p.Likes + p.Comments + p.Shares + p.Saves
		}
		out[MetricEngagement] = Engagement{Rate: Rate(engagements, views), Total: engagements}
	}
	return out
}

func aggregate(points []Point, metric string) Aggregate {
	if len(points) == 0 {
		return Aggregate{}
	}

	a := Aggregate{Min: math.MaxInt64, Max: math.MinInt64}
	for _, p := range points {
		v := p.value(metric)
		a.Total += v
		a.Min = min(a.Min, v)
		a.Max = max(a.Max, v)
	}
	a.Average = int64(math.Round(float64(a.Total) / float64(len(points))))
	return a
}

// Rate is engagements per hundred views, rounded to two decimals. Zero views
// give a zero rate.
func Rate(engagements, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return math.Round(float64(engagements)/float64(views)*10000) / 100
}

// Totals sums the metrics of a set of reels.
type Totals struct {
	Count    int64
	Views    int64
	Likes    int64
	Comments int64
	Shares   int64
	Saves    int64
}

func (t *Totals) Add(r models.Reel) {
	t.Count++
	t.Views += r.Views
	t.Likes += r.Likes
	t.Comments += r.Comments
	t.Shares += r.Shares
	t.Saves += r.Saves
}

func (t Totals) Engagements() int64 {
	return t.Likes + t.Comments + t.Shares + t.Saves
}

func (t Totals) Rate() float64 {
	return Rate(t.Engagements(), t.Views)
}

// CategoryStat is the performance of one reel category.
type CategoryStat struct {
	Category       models.ReelCategory `json:"category"`
	ReelsCount     int64               `json:"reelsCount"`
	Views          int64               `json:"views"`
	Likes          int64               `json:"likes"`
	Comments       int64               `json:"comments"`
	Shares         int64               `json:"shares"`
	Saves          int64               `json:"saves"`
	EngagementRate float64             `json:"engagementRate"`
}

// ByCategory groups reels by category in the order of models.Categories.
func ByCategory(reels []models.Reel) []CategoryStat {
	totals := make(map[models.ReelCategory]*Totals)
	for _, r := range reels {
		t, ok := totals[r.Category]
		if !ok {
			t = &Totals{}
			totals[r.Category] = t
		}
		t.Add(r)
	}

	out := make([]CategoryStat, 0, len(totals))
	for cat, t := range totals {
		out = append(out, CategoryStat{
			Category:       cat,
			ReelsCount:     t.Count,
			Views:          t.Views,
			Likes:          t.Likes,
			Comments:       t.Comments,
			Shares:         t.Shares,
			Saves:          t.Saves,
			EngagementRate: t.Rate(),
		})
	}
	slices.SortFunc(out, func(a, b CategoryStat) int {
		return categoryRank(a.Category) - categoryRank(b.Category)
	})
	return out
}

func categoryRank(c models.ReelCategory) int {
	if i := slices.Index(models.Categories, c); i >= 0 {
		return i
	}
	return len(models.Categories)
}

// BestCategory is the category with the highest engagement rate, the earlier
// one winning ties, or "N/A" when there are no stats.
func BestCategory(stats []CategoryStat) string {
	if len(stats) == 0 {
		return "N/A"
	}
	best := stats[0]
	for _, s := range stats[1:] {
		if s.EngagementRate > best.EngagementRate {
			best = s
		}
	}
	return string(best.Category)
}

// TopReel is a reel in the top content list.
type TopReel struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Views          int64               `json:"views"`
	Likes          int64               `json:"likes"`
	Comments       int64               `json:"comments"`
	Shares         int64               `json:"shares"`
	Saves          int64               `json:"saves"`
	PostedAt       *time.Time          `json:"postedAt"`
	Category       models.ReelCategory `json:"category"`
	Hashtags       string              `json:"hashtags"`
	EngagementRate float64             `json:"engagementRate"`
}

func topReels(reels []models.Reel) []TopReel {
	out := make([]TopReel, len(reels))
	for i, r := range reels {
		out[i] = TopReel{
			ID:             r.ID,
			Title:          r.Title,
			Views:          r.Views,
			Likes:          r.Likes,
			Comments:       r.Comments,
			Shares:         r.Shares,
			Saves:          r.Saves,
			PostedAt:       r.PostedAt,
			Category:       r.Category,
			Hashtags:       r.Hashtags,
			EngagementRate: Rate(r.Engagements(), r.Views),
		}
	}
	return out
}
