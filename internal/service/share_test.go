package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

func TestCreateOrGetIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	svc := NewShareService(st, 0, testLogger())
	ctx := context.Background()

	first, err := svc.CreateOrGet(ctx, videoID)
	if err != nil {
		t.Fatalf("first CreateOrGet: %v", err)
	}
	second, err := svc.CreateOrGet(ctx, videoID)
	if err != nil {
		t.Fatalf("second CreateOrGet: %v", err)
	}
	if first.Token != second.Token {
		t.Fatalf("tokens differ: %q vs %q", first.Token, second.Token)
	}
}

func TestCreateOrGetTokenShape(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	svc := NewShareService(st, 0, testLogger())

	link, err := svc.CreateOrGet(context.Background(), videoID)
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(link.Token) {
		t.Fatalf("token %q is not 32 hex chars", link.Token)
	}
	if link.ExpiresAt == nil || !link.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry = %v, want a future timestamp", link.ExpiresAt)
	}
}

func TestCreateOrGetMissingVideo(t *testing.T) {
	svc := NewShareService(store.NewMemoryStore(), 0, testLogger())
	_, err := svc.CreateOrGet(context.Background(), 42)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolve(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	st.AddNote(model.Note{VideoID: videoID, Text: "early", RawTime: 5, CreatedAt: time.Now().Add(-time.Minute)})
	st.AddNote(model.Note{VideoID: videoID, Text: "late", RawTime: 120, CreatedAt: time.Now()})

	canvasSvc := NewCanvasService(st, testLogger())
	if _, err := canvasSvc.Save(context.Background(), videoID,
		[]canvas.Element{{ID: 1, Type: canvas.TypeRect, W: 10, H: 10}},
		canvas.DefaultCamera(), Actor{UserID: 7}); err != nil {
		t.Fatalf("seed canvas: %v", err)
	}

	svc := NewShareService(st, 0, testLogger())
	link, err := svc.CreateOrGet(context.Background(), videoID)
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	res, err := svc.Resolve(context.Background(), link.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Video.ID != videoID {
		t.Fatalf("video ID = %d, want %d", res.Video.ID, videoID)
	}
	if len(res.Canvas.Elements) != 1 {
		t.Fatalf("canvas elements = %d, want 1", len(res.Canvas.Elements))
	}
	if len(res.Notes) != 2 || res.Notes[0].Text != "early" {
		t.Fatalf("notes = %+v, want time-ascending order", res.Notes)
	}

	// Preview ordering is independent of the stored ordering.
	newest := res.NotesNewestFirst()
	if newest[0].Text != "late" {
		t.Fatalf("NotesNewestFirst()[0] = %q, want late", newest[0].Text)
	}
	if res.Notes[0].Text != "early" {
		t.Fatal("NotesNewestFirst mutated the resolution's notes")
	}
}

func TestResolveEmptyCanvas(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	svc := NewShareService(st, 0, testLogger())
	link, _ := svc.CreateOrGet(context.Background(), videoID)

	res, err := svc.Resolve(context.Background(), link.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Canvas.Elements == nil || len(res.Canvas.Elements) != 0 {
		t.Fatalf("elements = %v, want empty non-nil default", res.Canvas.Elements)
	}
	if res.Canvas.Camera != canvas.DefaultCamera() {
		t.Fatalf("camera = %+v, want default", res.Canvas.Camera)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := NewShareService(store.NewMemoryStore(), 0, testLogger())
	_, err := svc.Resolve(context.Background(), "nope")
	if !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("err = %v, want ErrLinkInvalid", err)
	}
}

func TestResolveDanglingVideo(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	svc := NewShareService(st, 0, testLogger())
	link, err := svc.CreateOrGet(context.Background(), videoID)
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	// Video deleted out from under the link row.
	st.RemoveVideo(videoID)

	_, err = svc.Resolve(context.Background(), link.Token)
	if !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("err = %v, want ErrLinkInvalid for dangling link", err)
	}
}

func TestResolveExpiredLink(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	past := time.Now().Add(-time.Hour)
	token := seedLink(t, st, videoID, false, &past)

	svc := NewShareService(st, 0, testLogger())
	_, err := svc.Resolve(context.Background(), token)
	if !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("err = %v, want ErrLinkInvalid for expired link", err)
	}
}

func TestWatchURL(t *testing.T) {
	res := &Resolution{Video: model.Video{YoutubeURL: "https://youtu.be/abc123def45", YoutubeID: "abc123def45"}}
	if got := res.WatchURL(); got != "https://youtu.be/abc123def45" {
		t.Fatalf("WatchURL() = %q, want the stored URL", got)
	}

	res.Video.YoutubeURL = ""
	if got := res.WatchURL(); got != "https://www.youtube.com/watch?v=abc123def45" {
		t.Fatalf("WatchURL() = %q, want rebuilt watch URL", got)
	}
}
