package formengine

import (
	"testing"

	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSections(t *testing.T) {
	sections, err := DefaultSections(models.FormKeyCliente)
	require.NoError(t, err)
	require.Len(t, sections, 4)

	for i, id := range models.DefaultSectionOrder {
		assert.Equal(t, id, sections[i].Section)
		assert.Equal(t, models.FormKeyCliente, sections[i].FormKey)
		assert.NotEmpty(t, sections[i].Fields)
	}
	assert.Equal(t, "enderecos.0", sections[2].Prefix)

	sections[0].Fields[0].Label = "changed"
	again, err := DefaultSections(models.FormKeyCliente)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Fields[0].Label)
}

func TestDefaultSections_Unknown(t *testing.T) {
	_, err := DefaultSections(models.SimulationFormKey("42"))
	assert.ErrorIs(t, err, models.ErrSectionsNotFound)
}

func TestParseSectionsFile(t *testing.T) {
	file, err := ParseSectionsFile([]byte(`
form_key: "simulacao:7"
sections:
  - section: DadosPessoais
    fields:
      - { name: valor, label: Valor, type: number, required: true }
`))
	require.NoError(t, err)
	assert.Equal(t, "simulacao:7", file.FormKey)
	assert.Equal(t, "simulacao:7", file.Sections[0].FormKey)
	assert.Equal(t, models.FieldTypeNumber, file.Sections[0].Fields[0].Type)

	tests := map[string]string{
		"no form key": `sections: []`,
		"bad type": `
form_key: cliente
sections:
  - section: Contato
    fields:
      - { name: foto, type: file }`,
		"unknown section": `
form_key: cliente
sections:
  - section: Extras`,
		"duplicate section": `
form_key: cliente
sections:
  - section: Contato
  - section: Contato`,
		"not yaml": `form_key: [`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSectionsFile([]byte(doc))
			assert.Error(t, err)
		})
	}
}
