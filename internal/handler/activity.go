package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/obaidurrehman72007/deep-lens/internal/service"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// ActivityHandler 활동 로그 핸들러
type ActivityHandler struct {
	activity      *service.ActivityService
	canvasService *service.CanvasService
}

// NewActivityHandler ActivityHandler 생성
func NewActivityHandler(activity *service.ActivityService, canvasService *service.CanvasService) *ActivityHandler {
	return &ActivityHandler{activity: activity, canvasService: canvasService}
}

// GetVideoLogs 영상의 최근 활동 로그 (최신순)
func (h *ActivityHandler) GetVideoLogs(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	access, err := h.canvasService.Access(c.Context(), videoID, actorFromCtx(c))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "video not found",
		})
	}
	if err != nil || !access.CanView() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	logs, err := h.activity.Recent(c.Context(), videoID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load activity logs",
		})
	}

	return c.JSON(logs)
}
