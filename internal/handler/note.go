package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/obaidurrehman72007/deep-lens/internal/model"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
)

// NoteHandler 타임스탬프 노트 핸들러
type NoteHandler struct {
	db            *gorm.DB
	validate      *validator.Validate
	canvasService *service.CanvasService
	activity      *service.ActivityService
}

// NewNoteHandler NoteHandler 생성
func NewNoteHandler(db *gorm.DB, canvasService *service.CanvasService, activity *service.ActivityService) *NoteHandler {
	return &NoteHandler{
		db:            db,
		validate:      validator.New(),
		canvasService: canvasService,
		activity:      activity,
	}
}

// AddNoteRequest 노트 추가 요청
type AddNoteRequest struct {
	Text    string  `json:"text" validate:"required"`
	Time    string  `json:"time" validate:"required,max=10"`
	RawTime float64 `json:"rawTime" validate:"gte=0"`
}

// UpdateNoteRequest 노트 수정 요청
type UpdateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

// requireNoteAccess 노트 조작 권한 확인 (소유자 또는 편집 가능 토큰)
func (h *NoteHandler) requireNoteAccess(c *fiber.Ctx, videoID int64, needEdit bool) (service.Actor, bool) {
	actor := actorFromCtx(c)

	access, err := h.canvasService.Access(c.Context(), videoID, actor)
	if err != nil {
		return actor, false
	}
	if needEdit && !access.CanEdit() {
		return actor, false
	}
	if !needEdit && !access.CanView() {
		return actor, false
	}
	return actor, true
}

// GetNotes 영상의 노트 목록 (재생 시간순)
func (h *NoteHandler) GetNotes(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	if _, ok := h.requireNoteAccess(c, videoID, false); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	var notes []model.Note
	if err := h.db.
		Where("video_id = ?", videoID).
		Order("raw_time ASC").
		Find(&notes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load notes",
		})
	}

	return c.JSON(notes)
}

// AddNote 노트 추가
func (h *NoteHandler) AddNote(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid video ID",
		})
	}

	actor, ok := h.requireNoteAccess(c, videoID, true)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	var req AddNoteRequest
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

	note := model.Note{
		VideoID:      videoID,
		UserID:       actor.UserID,
		CreatorEmail: actor.Email,
		Text:         req.Text,
		Time:         req.Time,
		RawTime:      req.RawTime,
	}
	if err := h.db.Create(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save note",
		})
	}

	h.activity.Record(videoID, actor, model.LogCreateNote,
		"Added note: \""+service.Snippet(req.Text)+"\" at "+req.Time)

	return c.Status(fiber.StatusCreated).JSON(note)
}

// UpdateNote 노트 텍스트 수정
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	noteID, err := parseID(c, "noteId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid note ID",
		})
	}

	var note model.Note
	if err := h.db.First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "note not found",
		})
	}

	actor, ok := h.requireNoteAccess(c, note.VideoID, true)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	var req UpdateNoteRequest
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

	note.Text = req.Text
	note.LastEditedBy = &actor.Email
	if err := h.db.Save(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update note",
		})
	}

	h.activity.Record(note.VideoID, actor, model.LogUpdateNote,
		"Edited note text to: \""+service.Snippet(req.Text)+"\"")

	return c.JSON(note)
}

// DeleteNote 노트 삭제
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	noteID, err := parseID(c, "noteId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid note ID",
		})
	}

	var note model.Note
	if err := h.db.First(&note, "id = ?", noteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "note not found",
		})
	}

	actor, ok := h.requireNoteAccess(c, note.VideoID, true)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	if err := h.db.Delete(&note).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete note",
		})
	}

	h.activity.Record(note.VideoID, actor, model.LogDeleteNote,
		"Deleted note: \""+service.Snippet(note.Text)+"\"")

	return c.JSON(fiber.Map{
		"message": "Deleted",
	})
}
