package models

// FormState is the shared nested form object of a wizard session.
// It mirrors the backend client payload: scalar personal fields plus the
// telefones, enderecos, emails and dados_bancarios collections.
type FormState map[string]interface{}

// NewDefaultFormState returns the state a create wizard starts from
func NewDefaultFormState() FormState {
	return FormState{
		"nome":            "",
		"cpf":             "",
		"data_nascimento": "",
		"telefones":       []interface{}{map[string]interface{}{"ddd": "", "numero": ""}},
		"emails":          []interface{}{map[string]interface{}{"email": ""}},
		"enderecos": []interface{}{map[string]interface{}{
			"cep":        "",
			"logradouro": "",
			"numero":     "",
			"bairro":     "",
			"cidade":     "",
			"estado":     "",
			"uf":         "",
		}},
		"dados_bancarios": []interface{}{map[string]interface{}{
			"banco":          "",
			"agencia":        "",
			"conta":          "",
			"tipo_chave_pix": "",
			"chave_pix":      "",
		}},
	}
}
