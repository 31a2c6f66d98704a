package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// FieldConfigAPI reads and edits form section definitions
type FieldConfigAPI interface {
	Sections(ctx context.Context, formKey string) ([]models.FormSection, models.Notifications, error)
	Upsert(ctx context.Context, formKey string, id models.SectionID, req models.UpsertSectionRequest) (*models.FormSection, error)
	Delete(ctx context.Context, formKey string, id models.SectionID) error
}

// FormHandlers serves the field configuration of each form
type FormHandlers struct {
	service FieldConfigAPI
	logger  *logging.SafeLogger
}

// NewFormHandlers creates the form configuration handlers
func NewFormHandlers(service FieldConfigAPI, logger *logging.SafeLogger) *FormHandlers {
	return &FormHandlers{service: service, logger: logger}
}

// GetSections godoc
// @Summary Campos do formulário
// @Description Lista as abas e campos configurados. Sem configuração salva, retorna os campos padrão.
// @Tags forms
// @Produce json
// @Security ApiKeyAuth
// @Param form_key path string true "Chave do formulário (ex: cliente, simulacao:123)"
// @Success 200 {object} models.SectionsResponse
// @Router /forms/{form_key}/sections [get]
func (h *FormHandlers) GetSections(c *gin.Context) {
	formKey := c.Param("form_key")
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "get_form_sections")
	defer span.End()
	utils.AddSpanAttribute(span, "form_key", formKey)

	sections, notes, err := h.service.Sections(ctx, formKey)
	if err != nil {
		utils.RecordErrorInSpan(span, err)
		h.logger.Error("failed to load form sections", zap.String("form_key", formKey), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SectionsResponse{FormKey: formKey, Sections: sections, Notifications: notes})
}

// UpsertSection godoc
// @Summary Configurar aba
// @Description Substitui os campos de uma aba. Campos repetidos: vale o último. Tipos desconhecidos são recusados.
// @Tags forms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param form_key path string true "Chave do formulário"
// @Param section path string true "Aba"
// @Param data body models.UpsertSectionRequest true "Campos da aba"
// @Success 200 {object} models.FormSection
// @Failure 400 {object} ErrorResponse "Configuração inválida"
// @Failure 403 {object} ErrorResponse "Acesso restrito a administradores"
// @Router /admin/forms/{form_key}/sections/{section} [put]
func (h *FormHandlers) UpsertSection(c *gin.Context) {
	formKey := c.Param("form_key")
	section := models.SectionID(c.Param("section"))

	var req models.UpsertSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body")
		return
	}

	stored, err := h.service.Upsert(c.Request.Context(), formKey, section, req)
	if err != nil {
		h.logger.Warn("rejected section configuration",
			zap.String("form_key", formKey),
			zap.String("section", string(section)),
			zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// DeleteSection godoc
// @Summary Remover configuração de aba
// @Tags forms
// @Security ApiKeyAuth
// @Param form_key path string true "Chave do formulário"
// @Param section path string true "Aba"
// @Success 204
// @Failure 404 {object} ErrorResponse "Aba não configurada"
// @Router /admin/forms/{form_key}/sections/{section} [delete]
func (h *FormHandlers) DeleteSection(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("form_key"), models.SectionID(c.Param("section")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
