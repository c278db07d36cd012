package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

// GormStore Postgres-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore GormStore 생성
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) VideoByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := s.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (s *GormStore) CanvasByVideo(ctx context.Context, videoID int64) (*CanvasRecord, error) {
	var doc model.CanvasDocument
	if err := s.db.WithContext(ctx).Where("video_id = ?", videoID).First(&doc).Error; err != nil {
		return nil, translate(err)
	}
	return decodeCanvas(&doc)
}

// UpsertCanvas writes the full document in one statement. ON CONFLICT on
// video_id makes the lazy create and the overwrite the same operation; two
// racing saves both succeed and the last one wins.
func (s *GormStore) UpsertCanvas(ctx context.Context, rec *CanvasRecord) error {
	doc, err := encodeCanvas(rec)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "elements", "camera", "updated_at"}),
	}).Create(doc).Error
	return translate(err)
}

func (s *GormStore) LinkByVideo(ctx context.Context, videoID int64) (*model.SharedLink, error) {
	var link model.SharedLink
	if err := s.db.WithContext(ctx).Where("video_id = ?", videoID).First(&link).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (s *GormStore) LinkByToken(ctx context.Context, token string) (*model.SharedLink, error) {
	var link model.SharedLink
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (s *GormStore) CreateLink(ctx context.Context, link *model.SharedLink) error {
	return translate(s.db.WithContext(ctx).Create(link).Error)
}

func (s *GormStore) NotesByVideo(ctx context.Context, videoID int64, order NoteOrder) ([]model.Note, error) {
	orderBy := "raw_time ASC"
	if order == NotesByCreatedDesc {
		orderBy = "created_at DESC"
	}

	var notes []model.Note
	err := s.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order(orderBy).
		Find(&notes).Error
	if err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

func (s *GormStore) AppendLog(ctx context.Context, entry *model.ActivityLog) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}

func (s *GormStore) LogsByVideo(ctx context.Context, videoID int64, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := s.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, translate(err)
	}
	return logs, nil
}

// translate maps GORM errors onto the store sentinels. Requires
// TranslateError on the gorm.Config so Postgres 23505 becomes
// gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

func decodeCanvas(doc *model.CanvasDocument) (*CanvasRecord, error) {
	rec := &CanvasRecord{
		VideoID: doc.VideoID,
		UserID:  doc.UserID,
		Camera:  canvas.DefaultCamera(),
	}
	if len(doc.Elements) > 0 {
		if err := json.Unmarshal(doc.Elements, &rec.Elements); err != nil {
			return nil, fmt.Errorf("decode canvas elements: %w", err)
		}
	}
	if len(doc.Camera) > 0 {
		if err := json.Unmarshal(doc.Camera, &rec.Camera); err != nil {
			return nil, fmt.Errorf("decode canvas camera: %w", err)
		}
	}
	return rec, nil
}

func encodeCanvas(rec *CanvasRecord) (*model.CanvasDocument, error) {
	elements := rec.Elements
	if elements == nil {
		elements = []canvas.Element{}
	}
	elJSON, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("encode canvas elements: %w", err)
	}
	camJSON, err := json.Marshal(rec.Camera)
	if err != nil {
		return nil, fmt.Errorf("encode canvas camera: %w", err)
	}
	return &model.CanvasDocument{
		VideoID:  rec.VideoID,
		UserID:   rec.UserID,
		Elements: datatypes.JSON(elJSON),
		Camera:   datatypes.JSON(camJSON),
	}, nil
}
