package models

// Address is the result of a CEP lookup
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	UF          string `json:"uf"`
}

// ViaCEPResponse is the payload of the public postal code service
type ViaCEPResponse struct {
	CEP         string      `json:"cep"`
	Logradouro  string      `json:"logradouro"`
	Complemento string      `json:"complemento"`
	Bairro      string      `json:"bairro"`
	Localidade  string      `json:"localidade"`
	UF          string      `json:"uf"`
	Estado      string      `json:"estado"`
	Erro        interface{} `json:"erro,omitempty"`
}

// NotFound reports the {"erro": true} marker, which the service also sends as a string
func (r ViaCEPResponse) NotFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// ToAddress converts the lookup payload into the back-filled address fields
func (r ViaCEPResponse) ToAddress() Address {
	estado := r.Estado
	if estado == "" {
		estado = r.UF
	}
	return Address{
		CEP:         r.CEP,
		Logradouro:  r.Logradouro,
		Complemento: r.Complemento,
		Bairro:      r.Bairro,
		Cidade:      r.Localidade,
		Estado:      estado,
		UF:          r.UF,
	}
}

// CEPResponse wraps a lookup result for the HTTP surface
type CEPResponse struct {
	Address       *Address       `json:"address,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}
