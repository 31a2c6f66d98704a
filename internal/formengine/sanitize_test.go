package formengine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	state := models.FormState{
		"nome":             "Maria-José S. Lima",
		"cpf":              "529.982.247-25",
		"numero_documento": "11.222.333/0001-81",
		"telefones": []interface{}{
			map[string]interface{}{"ddd": "21", "numero": "98765-4321"},
			map[string]interface{}{"ddd": "11", "numero": "3333-4444"},
		},
		"enderecos": []interface{}{
			map[string]interface{}{"cep": "01310-100", "numero": "10-A"},
			map[string]interface{}{"cep": "20040-020"},
		},
	}
	before := Clone(state)

	got := Sanitize(state)

	want := models.FormState{
		"nome":             "Maria-José S. Lima",
		"cpf":              "52998224725",
		"numero_documento": "11222333000181",
		"telefones": []interface{}{
			map[string]interface{}{"ddd": "21", "numero": "987654321"},
			map[string]interface{}{"ddd": "11", "numero": "33334444"},
		},
		"enderecos": []interface{}{
			map[string]interface{}{"cep": "01310100", "numero": "10-A"},
			map[string]interface{}{"cep": "20040-020"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, state); diff != "" {
		t.Errorf("input state changed (-want +got):\n%s", diff)
	}
}

func TestSanitize_PseudoArrays(t *testing.T) {
	state := models.FormState{
		"telefones": map[string]interface{}{
			"0": map[string]interface{}{"ddd": "21", "numero": "9876-5432"},
		},
		"enderecos": map[string]interface{}{
			"0": map[string]interface{}{"cep": "01310-100"},
		},
	}

	got := Sanitize(state)
	assert.Equal(t, "98765432", GetString(got, MustParsePath("telefones.0.numero")))
	assert.Equal(t, "01310100", GetString(got, MustParsePath("enderecos.0.cep")))
}

func TestSanitize_MissingAndNonText(t *testing.T) {
	state := models.FormState{"cpf": float64(52998224725)}
	got := Sanitize(state)
	assert.Equal(t, models.FormState{"cpf": float64(52998224725)}, got)
}
