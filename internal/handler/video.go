package handler

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/obaidurrehman72007/deep-lens/internal/ai"
	"github.com/obaidurrehman72007/deep-lens/internal/auth"
	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
)

// youtubeIDPattern group 7 captures the video ID from any common URL shape
var youtubeIDPattern = regexp.MustCompile(`^.*((youtu.be/)|(v/)|(/u/\w/)|(embed/)|(watch\?))\??v?=?([^#&?]*).*`)

// ExtractYoutubeID pulls the 11-character video ID from a YouTube URL.
// Returns "" when the URL is not a recognizable YouTube link.
func ExtractYoutubeID(url string) string {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if match == nil || len(match[7]) != 11 {
		return ""
	}
	return match[7]
}

// VideoHandler 영상 카드 핸들러
type VideoHandler struct {
	db       *gorm.DB
	validate *validator.Validate
	activity *service.ActivityService
	ai       *ai.Client
}

// NewVideoHandler VideoHandler 생성
func NewVideoHandler(db *gorm.DB, activity *service.ActivityService, aiClient *ai.Client) *VideoHandler {
	return &VideoHandler{
		db:       db,
		validate: validator.New(),
		activity: activity,
		ai:       aiClient,
	}
}

// AddVideoRequest 영상 추가 요청
type AddVideoRequest struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title" validate:"required,min=1,max=255"`
}

// AddVideo 영상 추가
func (h *VideoHandler) AddVideo(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	var req AddVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed: " + err.Error(),
		})
	}

	youtubeID := ExtractYoutubeID(req.URL)
	if youtubeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "not a valid youtube url",
		})
	}

	video := model.Video{
		UserID:     claims.UserID,
		YoutubeID:  youtubeID,
		YoutubeURL: req.URL,
		Title:      req.Title,
		Thumbnail:  "https://img.youtube.com/vi/" + youtubeID + "/mqdefault.jpg",
	}

	if err := h.db.Create(&video).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save video",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

// GetCards 대시보드 카드 목록 (최신순)
func (h *VideoHandler) GetCards(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	var videos []model.Video
	if err := h.db.
		Where("user_id = ?", claims.UserID).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load videos",
		})
	}

	return c.JSON(videos)
}

// GetVideo 영상 단건 조회 (소유자 미들웨어가 로드해 둔 것을 반환)
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	video := c.Locals("video").(*model.Video)
	return c.JSON(video)
}

// DeleteCard 영상 삭제 (노트/링크/캔버스/로그 포함)
func (h *VideoHandler) DeleteCard(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)
	video := c.Locals("video").(*model.Video)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", video.ID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&model.SharedLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&model.CanvasDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&model.ActivityLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Video{}, video.ID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete video",
		})
	}

	h.activity.Record(video.ID, service.Actor{UserID: claims.UserID, Email: claims.Email},
		model.LogDeleteVideo, "Deleted video: \""+video.Title+"\"")

	return c.JSON(fiber.Map{
		"message": "Deleted successfully",
	})
}

// Summarize 영상 노트 요약 (요청자의 API 키 사용)
func (h *VideoHandler) Summarize(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)
	video := c.Locals("video").(*model.Video)

	var user model.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	if user.OpenAIKey == nil || *user.OpenAIKey == "" {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{
			"error": "no API key configured; add one in settings",
		})
	}

	var notes []model.Note
	if err := h.db.
		Where("video_id = ?", video.ID).
		Order("raw_time ASC").
		Find(&notes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load notes",
		})
	}

	if len(notes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nothing to summarize",
		})
	}

	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, "["+n.Time+"] "+n.Text)
	}

	summary, err := h.ai.Summarize(c.Context(), *user.OpenAIKey, video.Title, lines)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "summarization failed",
		})
	}

	return c.JSON(fiber.Map{
		"summary": summary,
	})
}
