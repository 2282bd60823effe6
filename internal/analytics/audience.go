package analytics

import "context"

// Audience describes who watches a creator's reels.
type Audience struct {
	Demographics Demographics       `json:"demographics"`
	Engagement   AudienceEngagement `json:"engagement"`
	Growth       Growth             `json:"growth"`
}

type Demographics struct {
	Age      map[string]int `json:"age"`
	Gender   map[string]int `json:"gender"`
	Location map[string]int `json:"location"`
}

type AudienceEngagement struct {
	BestTime       string `json:"bestTime"`
	BestDay        string `json:"bestDay"`
	AvgWatchTime   string `json:"avgWatchTime"`
	CompletionRate int    `json:"completionRate"`
}

type Growth struct {
	FollowersGained      int     `json:"followersGained"`
	FollowerGrowthRate   float64 `json:"followerGrowthRate"`
	ReachGrowthRate      float64 `json:"reachGrowthRate"`
	EngagementGrowthRate float64 `json:"engagementGrowthRate"`
}

// AudienceProvider looks up audience insights, normally from the platform APIs.
type AudienceProvider interface {
	Audience(ctx context.Context, userID string) (Audience, error)
}

// StaticAudience returns the same benchmark audience for everyone.
type StaticAudience struct{}

func (StaticAudience) Audience(context.Context, string) (Audience, error) {
	return Audience{
		Demographics: Demographics{
			Age:    map[string]int{"18-24": 15, "25-34": 35, "35-44": 30, "45-54": 15, "55+": 5},
			Gender: map[string]int{"male": 45, "female": 52, "other": 3},
			Location: map[string]int{
				"United States": 40, "United Kingdom": 15, "Canada": 10,
				"Australia": 8, "India": 7, "Other": 20,
			},
		},
		Engagement: AudienceEngagement{
			BestTime:       "18:00",
			BestDay:        "Wednesday",
			AvgWatchTime:   "12.5s",
			CompletionRate: 68,
		},
		Growth: Growth{
			FollowersGained:      245,
			FollowerGrowthRate:   12.5,
			ReachGrowthRate:      18.2,
			EngagementGrowthRate: 8.7,
		},
	}, nil
}
