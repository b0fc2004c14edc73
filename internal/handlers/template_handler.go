package handlers

import (
	"net/http"

	"cvbuilder_backend/internal/editor"
	"cvbuilder_backend/internal/templates"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// TemplateHandler отдает каталог заготовок и черновики на их основе
type TemplateHandler struct {
	*BaseHandler
}

func NewTemplateHandler(base *BaseHandler) *TemplateHandler {
	return &TemplateHandler{BaseHandler: base}
}

func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tpl := rg.Group("/templates")
	{
		tpl.GET("", h.List)
		tpl.GET("/:id/draft", h.RequireAuth(), h.Draft)
	}
}

// List godoc
// @Summary Каталог шаблонов
// @Tags templates
// @Produce json
// @Success 200 {array} templates.Template
// @Router /api/v1/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, templates.All())
}

// Draft возвращает копию заготовки как новый несохраненный черновик
// вместе с шагами редактора.
func (h *TemplateHandler) Draft(c *gin.Context) {
	draft, ok := templates.NewDraft(c.Param("id"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrTemplateNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft": draft,
		"steps": editor.StepInfos(),
	})
}
