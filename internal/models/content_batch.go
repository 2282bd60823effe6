package models

import "time"

type ContentType string

const (
	ContentVoiceNote    ContentType = "VOICE_NOTE"
	ContentYouTubeLink  ContentType = "YOUTUBE_LINK"
	ContentPDF          ContentType = "PDF"
	ContentNotes        ContentType = "NOTES"
	ContentBlogLink     ContentType = "BLOG_LINK"
	ContentBulletPoints ContentType = "BULLET_POINTS"
	ContentText         ContentType = "TEXT"
)

var ContentTypes = []any{
	ContentVoiceNote, ContentYouTubeLink, ContentPDF, ContentNotes,
	ContentBlogLink, ContentBulletPoints, ContentText,
}

type BatchStatus string

const (
	BatchProcessing BatchStatus = "PROCESSING"
	BatchCompleted  BatchStatus = "COMPLETED"
	BatchFailed     BatchStatus = "FAILED"
)

// ContentBatch represents the content_batches table. Content holds the raw
// input and description serialized as JSON.
type ContentBatch struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	UserID      string      `gorm:"column:user_id;index;not null" json:"userId"`
	Title       string      `gorm:"column:title" json:"title"`
	ContentType ContentType `gorm:"column:content_type;type:varchar(16)" json:"contentType"`
	Content     string      `gorm:"column:content" json:"content"`
	Status      BatchStatus `gorm:"column:status;type:varchar(16)" json:"status"`
	Reels       []Reel      `gorm:"foreignKey:ContentBatchID" json:"reels,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BatchSummary is a batch with the number of reels generated from it.
type BatchSummary struct {
	ContentBatch
	ReelCount int64 `json:"reelCount"`
}
