package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/services"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// WizardAPI is the wizard service as seen by the HTTP layer
type WizardAPI interface {
	Start(ctx context.Context, caller services.Caller, req models.StartWizardRequest) (*models.WizardResponse, error)
	Get(ctx context.Context, id string) (*models.WizardResponse, error)
	Discard(ctx context.Context, id string) error
	SetField(ctx context.Context, id string, req models.SetFieldRequest) (*models.WizardResponse, error)
	Next(ctx context.Context, id string) (*models.WizardResponse, error)
	Previous(ctx context.Context, id string) (*models.WizardResponse, error)
	GoTo(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error)
	ValidateSection(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error)
	Submit(ctx context.Context, caller services.Caller, id string) (*models.SubmitResponse, error)
	LoadOptions(ctx context.Context, caller services.Caller, id, list, parent string) (*models.OptionsResponse, error)
}

// WizardHandlers handles the registration wizard endpoints
type WizardHandlers struct {
	service WizardAPI
	logger  *logging.SafeLogger
}

// NewWizardHandlers creates the wizard handlers
func NewWizardHandlers(service WizardAPI, logger *logging.SafeLogger) *WizardHandlers {
	return &WizardHandlers{service: service, logger: logger}
}

// RegisterRoutes mounts the wizard endpoints on r
func (h *WizardHandlers) RegisterRoutes(r gin.IRouter) {
	r.POST("/wizards", h.StartWizard)
	r.GET("/wizards/:id", h.GetWizard)
	r.DELETE("/wizards/:id", h.DiscardWizard)
	r.PATCH("/wizards/:id/fields", h.SetField)
	r.POST("/wizards/:id/next", h.Next)
	r.POST("/wizards/:id/previous", h.Previous)
	r.POST("/wizards/:id/goto/:section", h.GoTo)
	r.GET("/wizards/:id/sections/:section/validation", h.ValidateSection)
	r.POST("/wizards/:id/submit", h.Submit)
	r.GET("/wizards/:id/options/:list", h.LoadOptions)
}

func (h *WizardHandlers) startSpan(c *gin.Context, name string) (context.Context, func()) {
	start := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), name)
	span.SetAttributes(
		attribute.String("service", "wizard"),
		attribute.String("wizard.id", c.Param("id")),
	)
	return ctx, func() {
		utils.AddTimingToSpan(span, start)
		span.End()
	}
}

// StartWizard godoc
// @Summary Abrir cadastro de cliente
// @Description Abre um assistente de cadastro. No modo edit o estado é carregado do cliente informado.
// @Tags wizard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param data body models.StartWizardRequest false "Formulário, modo e cliente"
// @Success 201 {object} models.WizardResponse "Assistente criado"
// @Failure 400 {object} ErrorResponse "Requisição inválida"
// @Failure 502 {object} ErrorResponse "Falha no backend"
// @Router /wizards [post]
func (h *WizardHandlers) StartWizard(c *gin.Context) {
	ctx, end := h.startSpan(c, "StartWizard")
	defer end()

	var req models.StartWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, "Invalid request body")
			return
		}
	}

	resp, err := h.service.Start(ctx, callerFrom(c), req)
	if err != nil {
		h.logger.Warn("failed to start wizard", zap.String("mode", string(req.Mode)), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetWizard godoc
// @Summary Consultar assistente
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Success 200 {object} models.WizardResponse
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id} [get]
func (h *WizardHandlers) GetWizard(c *gin.Context) {
	ctx, end := h.startSpan(c, "GetWizard")
	defer end()

	resp, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DiscardWizard godoc
// @Summary Fechar assistente sem salvar
// @Tags wizard
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Success 204
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id} [delete]
func (h *WizardHandlers) DiscardWizard(c *gin.Context) {
	ctx, end := h.startSpan(c, "DiscardWizard")
	defer end()

	if err := h.service.Discard(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetField godoc
// @Summary Alterar campo
// @Description Grava um valor pelo caminho pontilhado (ex: enderecos.0.cep). Um CEP completo dispara a busca do endereço.
// @Tags wizard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Param data body models.SetFieldRequest true "Caminho e valor"
// @Success 200 {object} models.WizardResponse
// @Failure 400 {object} ErrorResponse "Caminho inválido"
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Failure 409 {object} ErrorResponse "Campo bloqueado"
// @Router /wizards/{id}/fields [patch]
func (h *WizardHandlers) SetField(c *gin.Context) {
	ctx, end := h.startSpan(c, "SetField")
	defer end()

	_, parseSpan := utils.TraceInputParsing(ctx, "set_field_request")
	var req models.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err)
		parseSpan.End()
		bindError(c, "Invalid request body")
		return
	}
	parseSpan.End()

	resp, err := h.service.SetField(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Next godoc
// @Summary Avançar aba
// @Description Valida a aba atual e avança quando válida.
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Success 200 {object} models.WizardResponse
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id}/next [post]
func (h *WizardHandlers) Next(c *gin.Context) {
	ctx, end := h.startSpan(c, "NextTab")
	defer end()

	resp, err := h.service.Next(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Previous godoc
// @Summary Voltar aba
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Success 200 {object} models.WizardResponse
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id}/previous [post]
func (h *WizardHandlers) Previous(c *gin.Context) {
	ctx, end := h.startSpan(c, "PreviousTab")
	defer end()

	resp, err := h.service.Previous(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoTo godoc
// @Summary Ir para aba
// @Description Avançar valida as abas intermediárias e para na primeira inválida. Voltar é livre.
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Param section path string true "Aba" Enums(DadosPessoais, Contato, Enderecos, DadosBancarios, Documentos)
// @Success 200 {object} models.WizardResponse
// @Failure 400 {object} ErrorResponse "Aba desconhecida"
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id}/goto/{section} [post]
func (h *WizardHandlers) GoTo(c *gin.Context) {
	ctx, end := h.startSpan(c, "GoToTab")
	defer end()

	resp, err := h.service.GoTo(ctx, c.Param("id"), models.SectionID(c.Param("section")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateSection godoc
// @Summary Validar aba
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Param section path string true "Aba"
// @Success 200 {object} models.WizardResponse
// @Failure 400 {object} ErrorResponse "Aba desconhecida"
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id}/sections/{section}/validation [get]
func (h *WizardHandlers) ValidateSection(c *gin.Context) {
	ctx, end := h.startSpan(c, "ValidateSection")
	defer end()

	resp, err := h.service.ValidateSection(ctx, c.Param("id"), models.SectionID(c.Param("section")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Salvar cliente
// @Description Valida todas as abas e envia o cliente ao backend. Uma aba inválida passa a ser a ativa e nada é enviado.
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Success 200 {object} models.SubmitResponse "Cliente salvo"
// @Failure 422 {object} models.SubmitResponse "Validação ou backend recusou"
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Router /wizards/{id}/submit [post]
func (h *WizardHandlers) Submit(c *gin.Context) {
	ctx, end := h.startSpan(c, "SubmitWizard")
	defer end()

	resp, err := h.service.Submit(ctx, callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !resp.Submitted {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

// LoadOptions godoc
// @Summary Carregar opções dependentes
// @Description Carrega convênios, modalidades ou categorias. Uma resposta superada por requisição mais nova retorna 409.
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID do assistente"
// @Param list path string true "Lista" Enums(convenios, modalidades, categorias)
// @Param parent query string false "Valor selecionado na lista pai"
// @Success 200 {object} models.OptionsResponse
// @Failure 400 {object} ErrorResponse "Lista desconhecida"
// @Failure 404 {object} ErrorResponse "Assistente não encontrado"
// @Failure 409 {object} ErrorResponse "Resposta superada"
// @Router /wizards/{id}/options/{list} [get]
func (h *WizardHandlers) LoadOptions(c *gin.Context) {
	ctx, end := h.startSpan(c, "LoadOptions")
	defer end()

	resp, err := h.service.LoadOptions(ctx, callerFrom(c), c.Param("id"), c.Param("list"), c.Query("parent"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
