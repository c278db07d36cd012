package model

import (
	"time"
)

// User registered account (Google sign-in)
type User struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name       string  `gorm:"type:varchar(100);not null" json:"name"`
	Picture    *string `gorm:"type:text" json:"picture,omitempty"`
	Provider   *string `gorm:"type:varchar(50)" json:"provider,omitempty"`
	ProviderID *string `gorm:"type:varchar(255)" json:"provider_id,omitempty"`

	// Optional per-user completion API key for the summarize endpoint.
	// Never serialized.
	OpenAIKey *string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Videos []Video `gorm:"foreignKey:UserID" json:"videos,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Video imported YouTube video (one dashboard card each)
type Video struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	YoutubeID  string    `gorm:"type:varchar(20);not null" json:"youtube_id"`
	YoutubeURL string    `gorm:"type:text;not null" json:"youtube_url"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Thumbnail  string    `gorm:"type:text" json:"thumbnail"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Notes []Note `gorm:"foreignKey:VideoID" json:"notes,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

// Note timestamped note attached to a video
type Note struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID      int64     `gorm:"not null;index" json:"video_id"`
	UserID       int64     `gorm:"not null" json:"user_id"`
	CreatorEmail string    `gorm:"type:varchar(255)" json:"creator_email"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Time         string    `gorm:"type:varchar(10)" json:"time"` // display time, "mm:ss"
	RawTime      float64   `gorm:"default:0" json:"raw_time"`    // seconds into the video
	LastEditedBy *string   `gorm:"type:varchar(255)" json:"last_edited_by,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"last_modified"`

	// Relations
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Note) TableName() string {
	return "notes"
}

// SharedLink tokenized public access to a video + canvas + notes bundle.
// One link per video; creation is idempotent.
type SharedLink struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   int64      `gorm:"not null;uniqueIndex" json:"video_id"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	CanEdit   bool       `gorm:"default:false" json:"can_edit"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (SharedLink) TableName() string {
	return "shared_links"
}

// ActivityLog audit trail entry, written fire-and-forget on mutations
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_activity_video_created" json:"video_id"`
	UserID    int64     `gorm:"not null" json:"user_id"`
	UserEmail string    `gorm:"type:varchar(255);not null" json:"user_email"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_activity_video_created" json:"timestamp"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
