package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

var (
	// ErrForbidden the actor's access decision does not allow the operation.
	ErrForbidden = errors.New("forbidden")
)

// Actor is the explicit identity a request carries into every operation.
// No ambient/global current-user state: access control stays testable
// without framework context.
type Actor struct {
	UserID int64  // 0 when anonymous
	Email  string
	Token  string // share token presented alongside the request, if any
}

// Anonymous reports whether the actor has no authenticated identity.
func (a Actor) Anonymous() bool { return a.UserID == 0 }

// Document is the canvas document as served to clients.
type Document struct {
	VideoID  int64            `json:"video_id"`
	UserID   int64            `json:"user_id"`
	Elements []canvas.Element `json:"elements"`
	Camera   canvas.Camera    `json:"camera"`
}

// CanvasService load/save of canvas documents behind a uniform access gate.
type CanvasService struct {
	store store.Store
	log   *logrus.Logger
}

// NewCanvasService CanvasService 생성
func NewCanvasService(st store.Store, log *logrus.Logger) *CanvasService {
	return &CanvasService{store: st, log: log}
}

// Access resolves the explicit authorization decision for an actor against a
// video. Precedence: ownership, then share token, then denied. A token that
// does not exist, is expired, or belongs to a different video grants nothing.
func (s *CanvasService) Access(ctx context.Context, videoID int64, actor Actor) (model.AccessLevel, error) {
	video, err := s.store.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.AccessDenied, store.ErrNotFound
		}
		return model.AccessDenied, err
	}

	if !actor.Anonymous() && video.UserID == actor.UserID {
		return model.AccessOwner, nil
	}

	if actor.Token != "" {
		link, err := s.store.LinkByToken(ctx, actor.Token)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return model.AccessDenied, err
		}
		if err == nil && link.VideoID == videoID && !linkExpired(link) {
			if link.CanEdit {
				return model.AccessTokenEdit, nil
			}
			return model.AccessReadOnly, nil
		}
	}

	return model.AccessDenied, nil
}

// Load returns the stored document, or the empty default when the video has
// no canvas yet. Any non-denied access level may read.
func (s *CanvasService) Load(ctx context.Context, videoID int64, actor Actor) (*Document, error) {
	access, err := s.Access(ctx, videoID, actor)
	if err != nil {
		return nil, err
	}
	if !access.CanView() {
		return nil, ErrForbidden
	}

	rec, err := s.store.CanvasByVideo(ctx, videoID)
	if errors.Is(err, store.ErrNotFound) {
		return &Document{
			VideoID:  videoID,
			UserID:   actor.UserID,
			Elements: []canvas.Element{},
			Camera:   canvas.DefaultCamera(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToDocument(rec), nil
}

// Save upserts the full document, stamping the actor as owner of the row.
// Concurrent saves race at the storage layer and the last writer wins; a
// duplicate-key collision surfaces as store.ErrConflict for the handler to
// report as 409, never auto-retried.
func (s *CanvasService) Save(ctx context.Context, videoID int64, elements []canvas.Element, cam canvas.Camera, actor Actor) (*Document, error) {
	access, err := s.Access(ctx, videoID, actor)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit() {
		return nil, ErrForbidden
	}

	rec := &store.CanvasRecord{
		VideoID:  videoID,
		UserID:   actor.UserID,
		Elements: canvas.NormalizeAll(elements),
		Camera:   cam.Normalized(),
	}
	if err := s.store.UpsertCanvas(ctx, rec); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"video_id": videoID,
		"user_id":  actor.UserID,
		"elements": len(rec.Elements),
		"access":   access.String(),
	}).Info("canvas saved")

	return recordToDocument(rec), nil
}

func recordToDocument(rec *store.CanvasRecord) *Document {
	doc := &Document{
		VideoID:  rec.VideoID,
		UserID:   rec.UserID,
		Elements: rec.Elements,
		Camera:   rec.Camera.Normalized(),
	}
	if doc.Elements == nil {
		doc.Elements = []canvas.Element{}
	}
	return doc
}
