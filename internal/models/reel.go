package models

import "time"

type ReelStatus string

const (
	ReelDraft      ReelStatus = "DRAFT"
	ReelProcessing ReelStatus = "PROCESSING"
	ReelReady      ReelStatus = "READY"
	ReelScheduled  ReelStatus = "SCHEDULED"
	ReelPosted     ReelStatus = "POSTED"
	ReelFailed     ReelStatus = "FAILED"
)

type ReelCategory string

const (
	CategoryAwareness ReelCategory = "AWARENESS"
	CategoryTrust     ReelCategory = "TRUST"
	CategoryLead      ReelCategory = "LEAD"
	CategorySale      ReelCategory = "SALE"
)

// Categories is the rotation order used when generating a batch.
var Categories = []ReelCategory{CategoryAwareness, CategoryTrust, CategoryLead, CategorySale}

type Platform string

const (
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformBoth      Platform = "BOTH"
)

// Reel represents the reels table
type Reel struct {
	ID             string       `gorm:"primaryKey" json:"id"`
	UserID         string       `gorm:"column:user_id;index;not null" json:"userId"`
	ContentBatchID string       `gorm:"column:content_batch_id;index" json:"contentBatchId"`
	Title          string       `gorm:"column:title" json:"title"`
	Hook           string       `gorm:"column:hook" json:"hook"`
	Script         string       `gorm:"column:script" json:"script"`
	CTA            string       `gorm:"column:cta" json:"cta"`
	Hashtags       string       `gorm:"column:hashtags" json:"hashtags"`
	Category       ReelCategory `gorm:"column:category;type:varchar(16)" json:"category"`
	Status         ReelStatus   `gorm:"column:status;type:varchar(16);index;not null" json:"status"`
	Platform       Platform     `gorm:"column:platform;type:varchar(16)" json:"platform,omitempty"`
	VideoURL       string       `gorm:"column:video_url" json:"videoUrl,omitempty"`
	ThumbnailURL   string       `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`
	ScheduledFor   *time.Time   `gorm:"column:scheduled_for;index" json:"scheduledFor"`
	PostedAt       *time.Time   `gorm:"column:posted_at" json:"postedAt"`
	FailureReason  string       `gorm:"column:failure_reason" json:"failureReason,omitempty"`
	Views          int64        `gorm:"column:views;default:0" json:"views"`
	Likes          int64        `gorm:"column:likes;default:0" json:"likes"`
	Comments       int64        `gorm:"column:comments;default:0" json:"comments"`
	Shares         int64        `gorm:"column:shares;default:0" json:"shares"`
	Saves          int64        `gorm:"column:saves;default:0" json:"saves"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Engagements is the sum of every interaction counted towards engagement rate.
func (r Reel) Engagements() int64 {
	return r.Likes + r.Comments + r.Shares + r.Saves
}
