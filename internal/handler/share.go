package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/obaidurrehman72007/deep-lens/internal/cache"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// ShareHandler 공유 링크 핸들러
type ShareHandler struct {
	shareService *service.ShareService
	activity     *service.ActivityService
	cache        *cache.RedisClient // nil이면 캐시 없이 동작
}

// NewShareHandler ShareHandler 생성
func NewShareHandler(shareService *service.ShareService, activity *service.ActivityService, redis *cache.RedisClient) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		activity:     activity,
		cache:        redis,
	}
}

// CreateShareLink 공유 링크 생성 (멱등: 있으면 기존 토큰 반환)
func (h *ShareHandler) CreateShareLink(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	link, err := h.shareService.CreateOrGet(c.Context(), videoID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "video not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create share link",
		})
	}

	h.activity.Record(videoID, actorFromCtx(c), model.LogCreateLink, "Created share link")

	return c.JSON(fiber.Map{
		"token": link.Token,
	})
}

// GetSharedContent 공유 미리보기 (노트 최신순)
func (h *ShareHandler) GetSharedContent(c *fiber.Ctx) error {
	token := c.Params("token")

	// 캐시 히트 시 저장된 JSON 그대로 반환
	if h.cache != nil {
		if data, err := h.cache.GetShareView(c.Context(), token); err == nil {
			c.Set("Content-Type", "application/json")
			return c.Send(data)
		}
	}

	res, err := h.shareService.Resolve(c.Context(), token)
	if err != nil {
		return shareError(c, err)
	}

	payload := fiber.Map{
		"videoId":    res.Video.ID,
		"videoTitle": res.Video.Title,
		"videoUrl":   res.WatchURL(),
		"elements":   res.Canvas.Elements,
		"camera":     res.Canvas.Camera,
		"notes":      res.NotesNewestFirst(),
	}

	if h.cache != nil {
		_ = h.cache.SetShareView(c.Context(), token, payload, cache.DefaultShareTTL)
		_, _ = h.cache.TouchVideo(c.Context(), res.Video.ID)
	}

	return c.JSON(payload)
}

// GetSharedCanvasData 공유 편집기 진입용 전체 번들
func (h *ShareHandler) GetSharedCanvasData(c *fiber.Ctx) error {
	token := c.Params("token")

	res, err := h.shareService.Resolve(c.Context(), token)
	if err != nil {
		return shareError(c, err)
	}

	// URL에 videoId가 붙어 오면 토큰이 가리키는 영상과 일치해야 한다
	if raw := c.Params("videoId"); raw != "" {
		videoID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || videoID != res.Video.ID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "link invalid or expired",
			})
		}
	}

	return c.JSON(fiber.Map{
		"videoId":    res.Video.ID,
		"youtubeId":  res.Video.YoutubeID,
		"ownerId":    res.Video.UserID,
		"videoUrl":   res.WatchURL(),
		"videoTitle": res.Video.Title,
		"canEdit":    res.CanEdit,
		"canvasData": fiber.Map{
			"elements": res.Canvas.Elements,
			"camera":   res.Canvas.Camera,
		},
	})
}

// GetShareStats 공유 뷰 조회수 집계 (Redis 카운터)
func (h *ShareHandler) GetShareStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "stats not available without cache",
		})
	}

	hits, err := h.cache.VideoHits(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load stats",
		})
	}

	return c.JSON(fiber.Map{
		"hits": hits,
	})
}

func shareError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrLinkInvalid) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "link invalid or expired",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "failed to resolve share link",
	})
}
