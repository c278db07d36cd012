package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/obaidurrehman72007/deep-lens/internal/auth"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// VideoMiddleware 영상 권한 미들웨어
type VideoMiddleware struct {
	store store.Store
}

// NewVideoMiddleware VideoMiddleware 생성
func NewVideoMiddleware(s store.Store) *VideoMiddleware {
	return &VideoMiddleware{store: s}
}

// getVideoIDFromContext URL에서 영상 ID 추출
func getVideoIDFromContext(c *fiber.Ctx) (int64, error) {
	idStr := c.Params("videoId")
	if idStr == "" {
		idStr = c.Params("id")
	}
	if idStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "video ID is required")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// RequireVideoOwner 영상 소유자 필수
func (m *VideoMiddleware) RequireVideoOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.GetClaimsFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		videoID, err := getVideoIDFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid video ID",
			})
		}

		video, err := m.store.VideoByID(c.Context(), videoID)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "video not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load video",
			})
		}

		if video.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "owner permission required",
			})
		}

		// 영상을 컨텍스트에 저장
		c.Locals("video", video)
		c.Locals("videoID", videoID)
		return c.Next()
	}
}
