package models

type Plan string

const (
	PlanStarter  Plan = "STARTER"
	PlanGrowth   Plan = "GROWTH"
	PlanBusiness Plan = "BUSINESS"
)

var Plans = []any{PlanStarter, PlanGrowth, PlanBusiness}

// PlanDetails describes what a plan includes. Price is in paise per month.
type PlanDetails struct {
	Plan          Plan     `json:"plan"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	ReelsPerMonth int      `json:"reelsPerMonth"`
	AutoPosting   bool     `json:"autoPosting"`
	TrendingAudio bool     `json:"trendingAudio"`
	BrandKit      bool     `json:"brandKit"`
	Features      []string `json:"features"`
}

var catalog = []PlanDetails{
	{
		Plan: PlanStarter, Name: "Starter", Price: 99900, ReelsPerMonth: 12,
		Features: []string{"12 reels/month", "Auto captions", "Manual posting"},
	},
	{
		Plan: PlanGrowth, Name: "Growth", Price: 299900, ReelsPerMonth: 30,
		AutoPosting: true, TrendingAudio: true, BrandKit: true,
		Features: []string{"30 reels/month", "Auto-posting", "Trending audio", "Brand kit"},
	},
	{
		Plan: PlanBusiness, Name: "Business", Price: 599900, ReelsPerMonth: 30,
		AutoPosting: true, TrendingAudio: true, BrandKit: true,
		Features: []string{"30 reels/month", "Daily auto-post", "Local hashtags", "DM CTA copy"},
	},
}

// Catalog returns a copy of every plan on offer.
func Catalog() []PlanDetails {
	out := make([]PlanDetails, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the details of a plan.
func Lookup(p Plan) (PlanDetails, bool) {
	for _, d := range catalog {
		if d.Plan == p {
			return d, true
		}
	}
	return PlanDetails{}, false
}
