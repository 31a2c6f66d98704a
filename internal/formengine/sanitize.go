package formengine

import (
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils"
)

// sanitizedPaths are the formatted fields sent to the backend as bare digits.
// Phone ddd and numero are handled for every entry of telefones.
var sanitizedPaths = []Path{
	PathOf("cpf"),
	PathOf("numero_documento"),
	PathOf("enderecos", 0, "cep"),
}

var sanitizedPhoneFields = []string{"ddd", "numero"}

// Sanitize returns a copy of state with punctuation stripped from the
// allow-listed paths. Other fields are left untouched.
func Sanitize(state models.FormState) models.FormState {
	out := Clone(state)
	root := map[string]interface{}(out)

	for _, p := range sanitizedPaths {
		stripAt(root, p)
	}

	switch phones := root["telefones"].(type) {
	case []interface{}:
		for i := range phones {
			for _, f := range sanitizedPhoneFields {
				stripAt(root, PathOf("telefones", i, f))
			}
		}
	case map[string]interface{}:
		for k := range phones {
			for _, f := range sanitizedPhoneFields {
				stripAt(root, PathOf("telefones", k, f))
			}
		}
	}

	return out
}

func stripAt(root map[string]interface{}, p Path) {
	v, ok := Get(models.FormState(root), p)
	if !ok {
		return
	}
	s, isString := v.(string)
	if !isString {
		return
	}
	_, _ = setIn(root, p, utils.StripPunctuation(s))
}
