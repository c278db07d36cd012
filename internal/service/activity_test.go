package service

import (
	"context"
	"testing"
	"time"

	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

func TestRecordAndRecent(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)
	svc := NewActivityService(st, testLogger())

	svc.Record(videoID, Actor{UserID: 7, Email: "o@x.com"}, model.LogCreateNote, "Added note: \"hi\" at 01:30")

	// The write is fire-and-forget; poll briefly for it to land.
	deadline := time.Now().Add(2 * time.Second)
	var logs []model.ActivityLog
	for time.Now().Before(deadline) {
		var err error
		logs, err = svc.Recent(context.Background(), videoID)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(logs) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if logs[0].Action != "CREATE_NOTE" || logs[0].UserEmail != "o@x.com" {
		t.Fatalf("log = %+v", logs[0])
	}
}

func TestRecentNewestFirstAndLimited(t *testing.T) {
	st := store.NewMemoryStore()
	videoID := seedVideo(st, 7)

	for i := 0; i < RecentLogsLimit+5; i++ {
		if err := st.AppendLog(context.Background(), &model.ActivityLog{
			VideoID: videoID,
			Action:  "SAVE_CANVAS",
			Details: "Canvas saved",
		}); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	svc := NewActivityService(st, testLogger())
	logs, err := svc.Recent(context.Background(), videoID)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(logs) != RecentLogsLimit {
		t.Fatalf("len(logs) = %d, want %d", len(logs), RecentLogsLimit)
	}
	if logs[0].ID <= logs[len(logs)-1].ID {
		t.Fatal("logs are not newest first")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"exactly twenty chars", "exactly twenty chars"},
		{"this text is longer than twenty characters", "this text is longer ..."},
	}
	for _, tt := range tests {
		if got := Snippet(tt.in); got != tt.want {
			t.Errorf("Snippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
