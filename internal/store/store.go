package store

import (
	"context"
	"errors"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

var (
	// ErrNotFound missing video/canvas/link/note. Callers treat it as
	// "nothing to show", not as a failure.
	ErrNotFound = errors.New("record not found")

	// ErrConflict duplicate-key collision during an upsert. Surfaced to the
	// user as "try again"; never retried here.
	ErrConflict = errors.New("write conflict")
)

// NoteOrder ordering of a notes listing.
type NoteOrder int

const (
	NotesByTimeAsc     NoteOrder = iota // rawTime ascending (editor view)
	NotesByCreatedDesc                  // newest first (share preview)
)

// CanvasRecord is the storage-facing shape of a canvas document: decoded
// elements and camera, plus the owner stamp.
type CanvasRecord struct {
	VideoID  int64
	UserID   int64
	Elements []canvas.Element
	Camera   canvas.Camera
}

// Store is the persistence surface the canvas gate, share resolution and
// activity trail depend on. Handlers that only do plain CRUD (auth, videos,
// notes) talk to the database directly; everything with an access decision
// goes through here so it is testable against the in-memory implementation.
type Store interface {
	// Videos
	VideoByID(ctx context.Context, id int64) (*model.Video, error)

	// Canvas documents. UpsertCanvas is atomic, keyed by VideoID; concurrent
	// saves race and the last writer wins. A duplicate-key error surfaces as
	// ErrConflict.
	CanvasByVideo(ctx context.Context, videoID int64) (*CanvasRecord, error)
	UpsertCanvas(ctx context.Context, rec *CanvasRecord) error

	// Share links
	LinkByVideo(ctx context.Context, videoID int64) (*model.SharedLink, error)
	LinkByToken(ctx context.Context, token string) (*model.SharedLink, error)
	CreateLink(ctx context.Context, link *model.SharedLink) error

	// Notes
	NotesByVideo(ctx context.Context, videoID int64, order NoteOrder) ([]model.Note, error)

	// Activity trail
	AppendLog(ctx context.Context, entry *model.ActivityLog) error
	LogsByVideo(ctx context.Context, videoID int64, limit int) ([]model.ActivityLog, error)
}
