package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

// MemoryStore map-backed Store used by the service tests and local
// development without Postgres. Same semantics as GormStore, including
// last-write-wins upserts and ErrConflict on duplicate link rows.
type MemoryStore struct {
	mu sync.RWMutex

	videos   map[int64]model.Video
	canvases map[int64]CanvasRecord // keyed by videoID
	links    map[int64]model.SharedLink
	notes    []model.Note
	logs     []model.ActivityLog

	nextID int64
}

// NewMemoryStore MemoryStore 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		videos:   make(map[int64]model.Video),
		canvases: make(map[int64]CanvasRecord),
		links:    make(map[int64]model.SharedLink),
	}
}

// AddVideo seeds a video row and returns its ID.
func (s *MemoryStore) AddVideo(v model.Video) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		s.nextID++
		v.ID = s.nextID
	}
	s.videos[v.ID] = v
	return v.ID
}

// RemoveVideo deletes a video row, leaving any link rows dangling. Used to
// exercise the "invalid link" resolution path.
func (s *MemoryStore) RemoveVideo(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.videos, id)
}

func (s *MemoryStore) VideoByID(_ context.Context, id int64) (*model.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *MemoryStore) CanvasByVideo(_ context.Context, videoID int64) (*CanvasRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.canvases[videoID]
	if !ok {
		return nil, ErrNotFound
	}
	out := rec
	out.Elements = append([]canvas.Element(nil), rec.Elements...)
	return &out, nil
}

func (s *MemoryStore) UpsertCanvas(_ context.Context, rec *CanvasRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *rec
	stored.Elements = append([]canvas.Element(nil), rec.Elements...)
	s.canvases[rec.VideoID] = stored
	return nil
}

func (s *MemoryStore) LinkByVideo(_ context.Context, videoID int64) (*model.SharedLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, link := range s.links {
		if link.VideoID == videoID {
			l := link
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) LinkByToken(_ context.Context, token string) (*model.SharedLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, link := range s.links {
		if link.Token == token {
			l := link
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateLink(_ context.Context, link *model.SharedLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.links {
		if existing.VideoID == link.VideoID || existing.Token == link.Token {
			return ErrConflict
		}
	}
	s.nextID++
	link.ID = s.nextID
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	s.links[link.ID] = *link
	return nil
}

// AddNote seeds a note row.
func (s *MemoryStore) AddNote(n model.Note) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == 0 {
		s.nextID++
		n.ID = s.nextID
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notes = append(s.notes, n)
	return n.ID
}

func (s *MemoryStore) NotesByVideo(_ context.Context, videoID int64, order NoteOrder) ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Note
	for _, n := range s.notes {
		if n.VideoID == videoID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == NotesByCreatedDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RawTime < out[j].RawTime
	})
	return out, nil
}

func (s *MemoryStore) AppendLog(_ context.Context, entry *model.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *MemoryStore) LogsByVideo(_ context.Context, videoID int64, limit int) ([]model.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ActivityLog
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if s.logs[i].VideoID == videoID {
			out = append(out, s.logs[i])
		}
	}
	return out, nil
}
