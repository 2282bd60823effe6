package models

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserTrial     UserStatus = "trial"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// User represents the users table
type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Status       UserStatus `gorm:"column:status;type:varchar(16)" json:"status"`
	LastActiveAt *time.Time `gorm:"column:last_active_at" json:"lastActive"`
	CreatedAt    time.Time  `json:"joinedAt"`
	UpdatedAt    time.Time  `json:"-"`
}

// UserSummary is the admin listing row for a user.
type UserSummary struct {
	User
	Plan           Plan  `json:"plan"`
	ReelsCreated   int64 `json:"reelsCreated"`
	MonthlyRevenue int64 `json:"monthlyRevenue"`
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription represents the subscriptions table. MonthlyPrice is in paise.
type Subscription struct {
	ID           string             `gorm:"primaryKey" json:"id"`
	UserID       string             `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	Plan         Plan               `gorm:"column:plan;type:varchar(16)" json:"plan"`
	Status       SubscriptionStatus `gorm:"column:status;type:varchar(16)" json:"status"`
	AutoPosting  bool               `gorm:"column:auto_posting" json:"autoPosting"`
	MonthlyPrice int64              `gorm:"column:monthly_price" json:"monthlyPrice"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Paying reports whether the subscription contributes recurring revenue.
func (s Subscription) Paying() bool {
	return s.Status == SubscriptionActive && s.MonthlyPrice > 0
}

// SocialAccount represents the social_accounts table
type SocialAccount struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;index;not null" json:"userId"`
	Platform    Platform  `gorm:"column:platform;type:varchar(16)" json:"platform"`
	Handle      string    `gorm:"column:handle" json:"handle"`
	AccessToken string    `gorm:"column:access_token" json:"-"`
	CreatedAt   time.Time `json:"connectedAt"`
}

// BrandKit represents the brand_kits table
type BrandKit struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	PrimaryColor   string    `gorm:"column:primary_color" json:"primaryColor"`
	SecondaryColor string    `gorm:"column:secondary_color" json:"secondaryColor"`
	Font           string    `gorm:"column:font" json:"font"`
	// LogoURL is where the stored logo is served; empty until one is uploaded.
	LogoURL        string    `gorm:"column:logo_url" json:"logoUrl,omitempty"`
	Logo           []byte    `gorm:"column:logo" json:"-"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasLogo reports whether logo bytes are stored. Responses carry it as
// hasLogo next to the kit.
func (b BrandKit) HasLogo() bool {
	return len(b.Logo) > 0
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Subscription{}, &SocialAccount{}, &BrandKit{}, &ContentBatch{}, &Reel{}}
}
