package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"cvbuilder_backend/internal/editor"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/render"
	"cvbuilder_backend/internal/services"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxSectionBody - предел тела запроса формы одного шага
const maxSectionBody = 1 << 20

// ============================================
// RESUME HANDLER
// ============================================

type ResumeHandler struct {
	*BaseHandler
	resumeService services.ResumeService
	uploadConfig  *services.UploadConfig
}

func NewResumeHandler(base *BaseHandler, resumeService services.ResumeService, uploadConfig *services.UploadConfig) *ResumeHandler {
	if uploadConfig == nil {
		uploadConfig = services.GetDefaultUploadConfig()
	}
	return &ResumeHandler{
		BaseHandler:   base,
		resumeService: resumeService,
		uploadConfig:  uploadConfig,
	}
}

// ============================================
// ROUTES
// ============================================

func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	resumes := rg.Group("/resumes")
	resumes.Use(h.RequireAuth())
	{
		resumes.GET("", h.List)
		resumes.POST("", h.Create)
		resumes.POST("/preview", h.PreviewDraft)

		resumes.GET("/:id", h.Get)
		resumes.PUT("/:id", h.Update)
		resumes.DELETE("/:id", h.Delete)
		resumes.GET("/:id/preview", h.Preview)
		resumes.PUT("/:id/sections/:step", h.UpdateSection)
		resumes.PUT("/:id/style", h.UpdateStyle)
	}
}

// ============================================
// REQUEST PARSING
// ============================================

// bindResume читает черновик из JSON или из multipart (поле data + файл photo).
// Файл проверяется по размеру и типу до обращения к сервису.
func (h *ResumeHandler) bindResume(c *gin.Context) (dto.ResumeValues, error) {
	var values dto.ResumeValues

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&values); err != nil {
			return values, apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		}
		return values, nil
	}

	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &values); err != nil {
			return values, apperrors.NewBadRequestError("Invalid data field: " + err.Error())
		}
	}

	fh, err := c.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return values, nil
	case err != nil:
		return values, apperrors.NewBadRequestError("Invalid multipart form: " + err.Error())
	}

	file, err := services.ReadImage(fh, h.uploadConfig.PhotoMaxSize, h.uploadConfig.AllowedTypes)
	if err != nil {
		return values, err
	}
	values.Photo = dto.PhotoFromFile(file)
	return values, nil
}

// ============================================
// CRUD
// ============================================

// List godoc
// @Summary Список резюме текущего пользователя
// @Tags resumes
// @Produce json
// @Success 200 {array} dto.ResumeResponse
// @Router /api/v1/resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumes, err := h.resumeService.List(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// Create godoc
// @Summary Создать резюме
// @Description JSON или multipart: поле data (JSON) и необязательный файл photo
// @Tags resumes
// @Accept json,mpfd
// @Produce json
// @Param resume body dto.ResumeValues true "Черновик"
// @Success 201 {object} dto.SaveResumeResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /api/v1/resumes [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	values, err := h.bindResume(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	values.ID = ""

	saved, err := h.resumeService.Save(c.Request.Context(), h.GetDB(c), userID, values)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SaveResumeResponse{Message: "Resume created", Resume: saved})
}

// Update godoc
// @Summary Сохранить резюме
// @Tags resumes
// @Accept json,mpfd
// @Produce json
// @Param id path string true "ID резюме"
// @Param resume body dto.ResumeValues true "Черновик"
// @Success 200 {object} dto.SaveResumeResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/resumes/{id} [put]
func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	values, err := h.bindResume(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	values.ID = c.Param("id")

	saved, err := h.resumeService.Save(c.Request.Context(), h.GetDB(c), userID, values)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SaveResumeResponse{Message: "Resume saved", Resume: saved})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.Get(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// Delete godoc
// @Summary Удалить резюме
// @Tags resumes
// @Produce json
// @Param id path string true "ID резюме"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.resumeService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted"})
}

// ============================================
// SECTIONS (многошаговый редактор)
// ============================================

// UpdateSection godoc
// @Summary Сохранить один шаг редактора
// @Description Форма шага применяется к сохраненному резюме и сразу сохраняется
// @Tags resumes
// @Accept json
// @Produce json
// @Param id path string true "ID резюме"
// @Param step path string true "Шаг редактора"
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /api/v1/resumes/{id}/sections/{step} [put]
func (h *ResumeHandler) UpdateSection(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	step := editor.Step(c.Param("step"))
	if !step.IsValid() {
		h.HandleServiceError(c, apperrors.NewBadRequestError(editor.ErrUnknownStep.Error()+": "+string(step)))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSectionBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleServiceError(c, apperrors.ErrRequestTooLarge.WithDetails(map[string]int64{"maxSize": maxSectionBody}))
			return
		}
		h.HandleServiceError(c, apperrors.NewBadRequestError("failed to read request body"))
		return
	}
	evt, err := editor.DecodeEvent(step, body)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid section body: "+err.Error()))
		return
	}

	saved, ed, ok := h.commitEvent(c, userID, step, evt)
	if !ok {
		return
	}

	next := ""
	if ed.Next() {
		next = string(ed.Current())
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Resume saved",
		"resume":   saved,
		"step":     step,
		"nextStep": next,
	})
}

// UpdateStyle godoc
// @Summary Сменить цвет, рамку фото или шаблон
// @Description Пустые поля не меняются; изменение сразу сохраняется
// @Tags resumes
// @Accept json
// @Produce json
// @Param id path string true "ID резюме"
// @Param style body editor.StyleChanged true "Оформление"
// @Success 200 {object} dto.SaveResumeResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/resumes/{id}/style [put]
func (h *ResumeHandler) UpdateStyle(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var evt editor.StyleChanged
	if err := c.ShouldBindJSON(&evt); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	saved, _, ok := h.commitEvent(c, userID, "", evt)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.SaveResumeResponse{Message: "Resume saved", Resume: saved})
}

// commitEvent применяет событие редактора к сохраненному резюме и сохраняет его.
// При ошибке ответ уже записан.
func (h *ResumeHandler) commitEvent(c *gin.Context, userID string, step editor.Step, evt editor.Event) (*dto.ResumeResponse, *editor.Editor, bool) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	current, err := h.resumeService.Get(ctx, db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, nil, false
	}

	saver := editor.SaverFunc(func(ctx context.Context, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error) {
		return h.resumeService.Save(ctx, db, userID, values)
	})
	ed := editor.New(current.ResumeValues, saver, editor.WithInitialStep(step), editor.WithValidator(h.validator))
	ed.Apply(evt)

	saved, err := ed.Commit(ctx, userID)
	if err != nil {
		h.HandleServiceError(c, toValidationError(err))
		return nil, nil, false
	}
	return saved, ed, true
}

// ============================================
// PREVIEW
// ============================================

// templateFor: параметр ?template= важнее шаблона резюме
func templateFor(c *gin.Context, fallback string) models.TemplateType {
	if t := c.Query("template"); t != "" {
		return models.ParseTemplateType(t)
	}
	return models.ParseTemplateType(fallback)
}

func (h *ResumeHandler) writePreview(c *gin.Context, values dto.ResumeValues) {
	doc := render.Render(values.Normalize(), templateFor(c, values.TemplateType))
	defer doc.Release()

	page, err := render.HTML(doc)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Preview godoc
// @Summary Предпросмотр сохраненного резюме
// @Tags resumes
// @Produce html
// @Param id path string true "ID резюме"
// @Param template query string false "blank, professional, creative, minimal"
// @Success 200 {string} string "HTML"
// @Router /api/v1/resumes/{id}/preview [get]
func (h *ResumeHandler) Preview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.Get(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.writePreview(c, resume.ResumeValues)
}

// PreviewDraft отрисовывает несохраненный черновик; ничего не пишет.
func (h *ResumeHandler) PreviewDraft(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	values, err := h.bindResume(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.writePreview(c, values)
}
