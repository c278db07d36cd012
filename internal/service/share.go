package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

var (
	// ErrLinkInvalid the token is unknown, expired, or points at a deleted
	// video. All of those present to the caller the same way: not found,
	// never a server error.
	ErrLinkInvalid = errors.New("link invalid or expired")
)

// DefaultLinkTTL share links lapse after 30 days, matching the TTL the
// document store used to enforce.
const DefaultLinkTTL = 30 * 24 * time.Hour

// Resolution is everything a share token unlocks: the video, its canvas
// document (or the empty default) and its notes ordered by video time.
// Both public response shapes are produced from this one value.
type Resolution struct {
	Video   model.Video
	Canvas  Document
	Notes   []model.Note
	CanEdit bool
}

// ShareService tokenized public access to a video bundle.
type ShareService struct {
	store   store.Store
	linkTTL time.Duration
	log     *logrus.Logger
}

// NewShareService ShareService 생성
func NewShareService(st store.Store, linkTTL time.Duration, log *logrus.Logger) *ShareService {
	if linkTTL <= 0 {
		linkTTL = DefaultLinkTTL
	}
	return &ShareService{store: st, linkTTL: linkTTL, log: log}
}

// CreateOrGet returns the video's share token, minting one only if none
// exists yet. Calling it twice always yields the same token.
func (s *ShareService) CreateOrGet(ctx context.Context, videoID int64) (*model.SharedLink, error) {
	if _, err := s.store.VideoByID(ctx, videoID); err != nil {
		return nil, err
	}

	link, err := s.store.LinkByVideo(ctx, videoID)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(s.linkTTL)
	link = &model.SharedLink{
		VideoID:   videoID,
		Token:     token,
		ExpiresAt: &expires,
	}
	if err := s.store.CreateLink(ctx, link); err != nil {
		// Raced with another creation: the winner's token is the one.
		if errors.Is(err, store.ErrConflict) {
			return s.store.LinkByVideo(ctx, videoID)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"video_id": videoID}).Info("share link created")
	return link, nil
}

// Resolve maps an opaque token to the bundle it grants access to. A link row
// whose video has been deleted is a dangling reference; it resolves to
// ErrLinkInvalid rather than a server error.
func (s *ShareService) Resolve(ctx context.Context, token string) (*Resolution, error) {
	link, err := s.store.LinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkInvalid
		}
		return nil, err
	}
	if linkExpired(link) {
		return nil, ErrLinkInvalid
	}

	video, err := s.store.VideoByID(ctx, link.VideoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkInvalid
		}
		return nil, err
	}

	res := &Resolution{
		Video:   *video,
		CanEdit: link.CanEdit,
		Canvas: Document{
			VideoID:  video.ID,
			UserID:   video.UserID,
			Elements: []canvas.Element{},
			Camera:   canvas.DefaultCamera(),
		},
	}

	rec, err := s.store.CanvasByVideo(ctx, video.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		res.Canvas = *recordToDocument(rec)
	}

	notes, err := s.store.NotesByVideo(ctx, video.ID, store.NotesByTimeAsc)
	if err != nil {
		return nil, err
	}
	res.Notes = notes

	return res, nil
}

// NotesNewestFirst returns the resolution's notes in preview order (most
// recently created first) without touching the stored ordering.
func (r *Resolution) NotesNewestFirst() []model.Note {
	out := append([]model.Note(nil), r.Notes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// WatchURL is the canonical YouTube URL for the resolved video, rebuilt from
// the stored 11-char ID when the original URL is missing.
func (r *Resolution) WatchURL() string {
	if r.Video.YoutubeURL != "" {
		return r.Video.YoutubeURL
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", r.Video.YoutubeID)
}

func linkExpired(link *model.SharedLink) bool {
	return link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now())
}

// generateToken mints a 128-bit URL-safe opaque token, hex-encoded.
func generateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
