package admin

import (
	"math"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

// Stats is the headline row of the admin dashboard. Money is in paise.
type Stats struct {
	TotalUsers       int     `json:"totalUsers"`
	ActiveUsers      int     `json:"activeUsers"`
	TotalRevenue     int64   `json:"totalRevenue"`
	MonthlyRecurring int64   `json:"monthlyRecurring"`
	TotalReels       int64   `json:"totalReels"`
	ScheduledPosts   int64   `json:"scheduledPosts"`
	ConversionRate   float64 `json:"conversionRate"`
	ChurnRate        float64 `json:"churnRate"`
}

// computeStats fills the user and revenue figures. Total revenue counts every
// month a paying subscription has been billed, the current one included.
func computeStats(users []models.UserSummary, subs []models.Subscription, now time.Time) Stats {
	var st Stats
	st.TotalUsers = len(users)

	var churned int
	for _, u := range users {
		switch u.Status {
		case models.UserActive:
			st.ActiveUsers++
		case models.UserInactive, models.UserSuspended:
			churned++
		}
	}

	var paying int
	for _, s := range subs {
		if !s.Paying() {
			continue
		}
		paying++
		st.MonthlyRecurring += s.MonthlyPrice
		st.TotalRevenue += s.MonthlyPrice * int64(monthsBilled(s.CreatedAt, now))
	}

	st.ConversionRate = percent(paying, st.TotalUsers)
	st.ChurnRate = percent(churned, st.TotalUsers)
	return st
}

func monthsBilled(start, now time.Time) int {
	if now.Before(start) {
		return 1
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	return max(months, 0) + 1
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

// fillMonths returns one row per month from since to now, zero where the
// store had nothing.
func fillMonths(rows []store.MonthlyRevenue, since, now time.Time) []store.MonthlyRevenue {
	byMonth := make(map[string]store.MonthlyRevenue, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	out := []store.MonthlyRevenue{}
	for m := since; !m.After(now); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		if r, ok := byMonth[key]; ok {
			out = append(out, r)
		} else {
			out = append(out, store.MonthlyRevenue{Month: key})
		}
	}
	return out
}

// monthStart is the first instant of the month months-1 before now.
func monthStart(now time.Time, months int) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(months - 1), 0)
}
