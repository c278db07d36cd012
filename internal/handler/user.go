package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/obaidurrehman72007/deep-lens/internal/auth"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

// UserHandler 사용자 설정 핸들러
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler UserHandler 생성
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// SaveKeyRequest API 키 저장 요청
type SaveKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// SaveAPIKey 요약용 API 키 저장 (빈 문자열이면 삭제)
func (h *UserHandler) SaveAPIKey(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	var req SaveKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	key := strings.TrimSpace(req.APIKey)
	if key != "" && !strings.HasPrefix(key, "sk-") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "key must start with sk-",
		})
	}

	var user model.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	if key == "" {
		user.OpenAIKey = nil
	} else {
		user.OpenAIKey = &key
	}
	if err := h.db.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save key",
		})
	}

	return c.JSON(fiber.Map{
		"message": "saved",
		"has_key": user.OpenAIKey != nil,
	})
}
