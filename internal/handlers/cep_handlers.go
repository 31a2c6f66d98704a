package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/models"
)

// AddressLookupAPI resolves postal codes
type AddressLookupAPI interface {
	Lookup(ctx context.Context, cep string) (*models.Address, error)
}

// CEPHandlers exposes the postal code lookup
type CEPHandlers struct {
	service AddressLookupAPI
}

// NewCEPHandlers creates the CEP handlers
func NewCEPHandlers(service AddressLookupAPI) *CEPHandlers {
	return &CEPHandlers{service: service}
}

// LookupCEP godoc
// @Summary Buscar endereço por CEP
// @Tags cep
// @Produce json
// @Security ApiKeyAuth
// @Param cep path string true "CEP (00000-000 ou 00000000)"
// @Success 200 {object} models.CEPResponse
// @Failure 400 {object} ErrorResponse "CEP inválido"
// @Failure 404 {object} ErrorResponse "CEP não encontrado"
// @Failure 429 {object} ErrorResponse "Muitas consultas"
// @Router /cep/{cep} [get]
func (h *CEPHandlers) LookupCEP(c *gin.Context) {
	address, err := h.service.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		respondError(c, err)
		return
	}
	var notes models.Notifications
	notes.Success("Address found")
	c.JSON(http.StatusOK, models.CEPResponse{Address: address, Notifications: notes})
}
