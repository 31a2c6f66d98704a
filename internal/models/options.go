package models

// Option lists of the cascading product dropdowns
const (
	OptionListConvenios  = "convenios"
	OptionListModalidade = "modalidades"
	OptionListCategorias = "categorias"
)

// OptionCascade maps a dropdown field to the fields that depend on it
var OptionCascade = map[string][]string{
	"convenio_id":   {"modalidade_id", "categoria_id"},
	"modalidade_id": {"categoria_id"},
}

// OptionListParents maps each list to the query parameter naming its parent selection
var OptionListParents = map[string]string{
	OptionListConvenios:  "",
	OptionListModalidade: "convenio_id",
	OptionListCategorias: "modalidade_id",
}

// OptionItem is one entry of a remote option list
type OptionItem struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Ativo bool   `json:"ativo"`
}

// OptionsResponse is the answer of an option list request
type OptionsResponse struct {
	List       string       `json:"list"`
	Generation int64        `json:"generation"`
	Items      []OptionItem `json:"items"`
}
