package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

func TestMonthsBilled(t *testing.T) {
	now := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, monthsBilled(now, now))
	assert.Equal(t, 1, monthsBilled(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 2, monthsBilled(time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 13, monthsBilled(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 1, monthsBilled(now.AddDate(0, 1, 0), now))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
	users := []models.UserSummary{
		{User: models.User{Status: models.UserActive}},
		{User: models.User{Status: models.UserActive}},
		{User: models.User{Status: models.UserTrial}},
		{User: models.User{Status: models.UserSuspended}},
	}
	subs := []models.Subscription{
		{Status: models.SubscriptionActive, MonthlyPrice: 299900, CreatedAt: now.AddDate(0, -2, 0)},
		{Status: models.SubscriptionActive, MonthlyPrice: 599900, CreatedAt: now},
		{Status: models.SubscriptionTrial, MonthlyPrice: 99900, CreatedAt: now},
		{Status: models.SubscriptionCanceled, MonthlyPrice: 99900, CreatedAt: now},
	}

	st := computeStats(users, subs, now)
	assert.Equal(t, 4, st.TotalUsers)
	assert.Equal(t, 2, st.ActiveUsers)
	assert.EqualValues(t, 899800, st.MonthlyRecurring)
	assert.EqualValues(t, 299900*3+599900, st.TotalRevenue)
	assert.Equal(t, 50.0, st.ConversionRate)
	assert.Equal(t, 25.0, st.ChurnRate)

	assert.Equal(t, Stats{}, computeStats(nil, nil, now))
}

func TestFillMonths(t *testing.T) {
	now := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
	since := monthStart(now, 3)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), since)

	rows := fillMonths([]store.MonthlyRevenue{{Month: "2026-04", Revenue: 100, Users: 2}}, since, now)
	assert.Equal(t, []store.MonthlyRevenue{
		{Month: "2026-03"},
		{Month: "2026-04", Revenue: 100, Users: 2},
		{Month: "2026-05"},
	}, rows)
}
