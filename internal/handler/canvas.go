package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/obaidurrehman72007/deep-lens/internal/cache"
	"github.com/obaidurrehman72007/deep-lens/internal/canvas"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// CanvasHandler 캔버스 문서 핸들러
type CanvasHandler struct {
	canvasService *service.CanvasService
	activity      *service.ActivityService
	cache         *cache.RedisClient // nil이면 캐시 없이 동작
}

// NewCanvasHandler CanvasHandler 생성
func NewCanvasHandler(canvasService *service.CanvasService, activity *service.ActivityService, redis *cache.RedisClient) *CanvasHandler {
	return &CanvasHandler{
		canvasService: canvasService,
		activity:      activity,
		cache:         redis,
	}
}

// SaveCanvasRequest 캔버스 저장 요청
type SaveCanvasRequest struct {
	Elements []canvas.Element `json:"elements"`
	Camera   canvas.Camera    `json:"camera"`
}

// GetCanvas 캔버스 문서 조회 (소유자 또는 공유 토큰)
func (h *CanvasHandler) GetCanvas(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	doc, err := h.canvasService.Load(c.Context(), videoID, actorFromCtx(c))
	if err != nil {
		return canvasError(c, err)
	}

	return c.JSON(doc)
}

// GetFrame 서버측 렌더 결과 조회 (그리기 순서대로의 드로우 명령 목록)
func (h *CanvasHandler) GetFrame(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	doc, err := h.canvasService.Load(c.Context(), videoID, actorFromCtx(c))
	if err != nil {
		return canvasError(c, err)
	}

	return c.JSON(canvas.Render(doc.Elements, doc.Camera))
}

// SaveCanvas 캔버스 문서 저장 (전체 교체, last write wins)
func (h *CanvasHandler) SaveCanvas(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	var req SaveCanvasRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	actor := actorFromCtx(c)
	doc, err := h.canvasService.Save(c.Context(), videoID, req.Elements, req.Camera, actor)
	if err != nil {
		return canvasError(c, err)
	}

	h.activity.Record(videoID, actor, model.LogSaveCanvas, "Canvas saved")

	// 토큰 경유 저장이면 해당 공유 뷰 캐시 무효화
	if h.cache != nil && actor.Token != "" {
		_ = h.cache.InvalidateShareView(c.Context(), actor.Token)
	}

	return c.JSON(doc)
}

// canvasError 서비스 에러를 HTTP 상태로 변환
func canvasError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "video not found",
		})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	case errors.Is(err, store.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "canvas was saved concurrently, reload and try again",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "canvas operation failed",
		})
	}
}
