package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

func TestUpsertCanvasReplacesDocument(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	videoID := st.AddVideo(model.Video{UserID: 1})

	first := &CanvasRecord{
		VideoID:  videoID,
		UserID:   1,
		Elements: []canvas.Element{{ID: 1, Type: canvas.TypeRect}},
		Camera:   canvas.DefaultCamera(),
	}
	if err := st.UpsertCanvas(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &CanvasRecord{
		VideoID:  videoID,
		UserID:   2,
		Elements: []canvas.Element{{ID: 2, Type: canvas.TypeCircle}, {ID: 3, Type: canvas.TypeText, Text: "x"}},
		Camera:   canvas.Camera{X: 1, Y: 2, Zoom: 2},
	}
	if err := st.UpsertCanvas(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rec, err := st.CanvasByVideo(ctx, videoID)
	if err != nil {
		t.Fatalf("CanvasByVideo: %v", err)
	}
	if len(rec.Elements) != 2 || rec.UserID != 2 {
		t.Fatalf("rec = %+v, want full replacement by second writer", rec)
	}
}

func TestCanvasByVideoCopiesElements(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	videoID := st.AddVideo(model.Video{UserID: 1})

	if err := st.UpsertCanvas(ctx, &CanvasRecord{
		VideoID:  videoID,
		Elements: []canvas.Element{{ID: 1, Type: canvas.TypeRect, Color: "#aaa"}},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rec, _ := st.CanvasByVideo(ctx, videoID)
	rec.Elements[0].Color = "#mutated"

	again, _ := st.CanvasByVideo(ctx, videoID)
	if again.Elements[0].Color != "#aaa" {
		t.Fatal("read leaked a shared slice into the store")
	}
}

func TestCreateLinkConflicts(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	videoID := st.AddVideo(model.Video{UserID: 1})
	otherID := st.AddVideo(model.Video{UserID: 1})

	if err := st.CreateLink(ctx, &model.SharedLink{VideoID: videoID, Token: "aaa"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same video, new token.
	err := st.CreateLink(ctx, &model.SharedLink{VideoID: videoID, Token: "bbb"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate video: err = %v, want ErrConflict", err)
	}

	// New video, colliding token.
	err = st.CreateLink(ctx, &model.SharedLink{VideoID: otherID, Token: "aaa"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate token: err = %v, want ErrConflict", err)
	}
}

func TestNotesByVideoOrdering(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	videoID := st.AddVideo(model.Video{UserID: 1})

	now := time.Now()
	st.AddNote(model.Note{VideoID: videoID, Text: "late in video, created first", RawTime: 300, CreatedAt: now.Add(-2 * time.Minute)})
	st.AddNote(model.Note{VideoID: videoID, Text: "early in video, created last", RawTime: 10, CreatedAt: now})
	st.AddNote(model.Note{VideoID: 999, Text: "other video", RawTime: 1})

	byTime, err := st.NotesByVideo(ctx, videoID, NotesByTimeAsc)
	if err != nil {
		t.Fatalf("NotesByVideo asc: %v", err)
	}
	if len(byTime) != 2 || byTime[0].RawTime != 10 {
		t.Fatalf("time-asc order wrong: %+v", byTime)
	}

	byCreated, err := st.NotesByVideo(ctx, videoID, NotesByCreatedDesc)
	if err != nil {
		t.Fatalf("NotesByVideo desc: %v", err)
	}
	if byCreated[0].RawTime != 10 {
		t.Fatalf("created-desc order wrong: %+v", byCreated)
	}
}

func TestLookupsReturnNotFound(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.VideoByID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("video: %v", err)
	}
	if _, err := st.CanvasByVideo(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("canvas: %v", err)
	}
	if _, err := st.LinkByVideo(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("link by video: %v", err)
	}
	if _, err := st.LinkByToken(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("link by token: %v", err)
	}
}
