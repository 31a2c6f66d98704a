package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger := Logger()
	require.NotNil(t, logger)

	// Should be safe to use
	logger.Info("test message")
}

func TestMaskCPF(t *testing.T) {
	tests := []struct {
		name     string
		cpf      string
		expected string
	}{
		{
			name:     "valid 11-digit CPF",
			cpf:      "12345678901",
			expected: "123.***.789-**",
		},
		{
			name:     "CPF too short",
			cpf:      "123456789",
			expected: "***.***.***-**",
		},
		{
			name:     "empty CPF",
			cpf:      "",
			expected: "***.***.***-**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskCPF(tt.cpf))
		})
	}
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "********", MaskValue("cpf", "12345678901"))
	assert.Equal(t, "********", MaskValue("telefones.0.numero", "987654321"))
	assert.Equal(t, "********", MaskValue("dados_bancarios.0.chave_pix", "x@y.com"))
	assert.Equal(t, "Centro", MaskValue("enderecos.0.bairro", "Centro"))
}

func TestMaskSensitiveData_Nested(t *testing.T) {
	data := map[string]interface{}{
		"nome": "José Silva",
		"cpf":  "12345678901",
		"telefones": []interface{}{
			map[string]interface{}{"ddd": "21", "numero": "987654321", "tipo": "celular"},
		},
		"enderecos": []interface{}{
			map[string]interface{}{"cep": "01310100", "cidade": "São Paulo"},
		},
	}

	masked := MaskSensitiveData(data)

	assert.Equal(t, "José Silva", masked["nome"])
	assert.Equal(t, "********", masked["cpf"])

	phone := masked["telefones"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "********", phone["ddd"])
	assert.Equal(t, "********", phone["numero"])
	assert.Equal(t, "celular", phone["tipo"])

	address := masked["enderecos"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "São Paulo", address["cidade"])

	// Input is left untouched
	assert.Equal(t, "12345678901", data["cpf"])
}

func TestMaskSensitiveData_EmptyMap(t *testing.T) {
	masked := MaskSensitiveData(map[string]interface{}{})

	assert.NotNil(t, masked)
	assert.Len(t, masked, 0)
}
