package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// RecentLogsLimit how many activity entries a video's log view shows.
const RecentLogsLimit = 20

// ActivityService fire-and-forget audit trail. A failed write is logged and
// dropped; it never fails the mutation that triggered it, and nothing spans
// a transaction across canvas, notes and logs.
type ActivityService struct {
	store store.Store
	log   *logrus.Logger
}

// NewActivityService ActivityService 생성
func NewActivityService(st store.Store, log *logrus.Logger) *ActivityService {
	return &ActivityService{store: st, log: log}
}

// Record appends an audit entry in the background.
func (s *ActivityService) Record(videoID int64, actor Actor, action model.LogAction, details string) {
	entry := &model.ActivityLog{
		VideoID:   videoID,
		UserID:    actor.UserID,
		UserEmail: actor.Email,
		Action:    action.String(),
		Details:   details,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.AppendLog(ctx, entry); err != nil {
			s.log.WithFields(logrus.Fields{
				"video_id": videoID,
				"action":   action.String(),
			}).WithError(err).Warn("activity log write failed")
		}
	}()
}

// Recent returns the latest entries for a video, newest first.
func (s *ActivityService) Recent(ctx context.Context, videoID int64) ([]model.ActivityLog, error) {
	return s.store.LogsByVideo(ctx, videoID, RecentLogsLimit)
}

// Snippet shortens free text for log details the way the activity view
// expects ("Added note: \"first twenty chars...\"").
func Snippet(text string) string {
	const max = 20
	if len(text) <= max {
		return text
	}
	return fmt.Sprintf("%s...", text[:max])
}
