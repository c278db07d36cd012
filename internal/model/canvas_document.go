package model

import (
	"time"

	"gorm.io/datatypes"
)

// CanvasDocument persisted drawing state, one row per video. Elements and
// camera live in JSONB columns so the element schema can evolve without
// migrations; insertion order inside the array is z-order.
//
// The row is created lazily by the first save (upsert on video_id). There is
// no delete path: the row goes away with its parent video.
type CanvasDocument struct {
	ID       int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID  int64          `gorm:"not null;uniqueIndex" json:"video_id"`
	UserID   int64          `gorm:"not null" json:"user_id"`
	Elements datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"elements"`
	Camera   datatypes.JSON `gorm:"type:jsonb;not null;default:'{\"x\":0,\"y\":0,\"zoom\":1}'" json:"camera"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CanvasDocument) TableName() string {
	return "canvas_documents"
}
