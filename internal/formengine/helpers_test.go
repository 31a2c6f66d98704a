package formengine

import (
	"testing"

	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/stretchr/testify/require"
)

func clienteSections(t *testing.T) []models.FormSection {
	t.Helper()
	sections, err := DefaultSections(models.FormKeyCliente)
	require.NoError(t, err)
	return sections
}

func newClienteWizard(t *testing.T) *Wizard {
	t.Helper()
	w, err := NewWizard(clienteSections(t))
	require.NoError(t, err)
	return w
}

// validClientState passes every default cliente section
func validClientState() models.FormState {
	return models.FormState{
		"nome":             "Maria da Silva",
		"cpf":              "529.982.247-25",
		"data_nascimento":  "1985-04-12",
		"nome_mae":         "Ana da Silva",
		"tipo_documento":   "1",
		"numero_documento": "12.345.678-9",
		"telefones": []interface{}{
			map[string]interface{}{"ddd": "21", "numero": "98765-4321"},
		},
		"emails": []interface{}{
			map[string]interface{}{"email": "maria@example.com"},
		},
		"enderecos": []interface{}{
			map[string]interface{}{
				"cep":        "01310-100",
				"logradouro": "Avenida Paulista",
				"numero":     "1000",
				"bairro":     "Bela Vista",
				"cidade":     "São Paulo",
				"estado":     "São Paulo",
				"uf":         "SP",
			},
		},
		"dados_bancarios": []interface{}{
			map[string]interface{}{
				"banco":      "001",
				"agencia":    "1234",
				"conta":      "12345-6",
				"tipo_conta": "corrente",
			},
		},
	}
}

func newSession(w *Wizard, state models.FormState) *models.WizardSession {
	return &models.WizardSession{
		ID:    "session-1",
		Order: w.Order(),
		State: state,
	}
}
