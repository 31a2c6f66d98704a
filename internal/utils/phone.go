package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// PhoneComponents represents the parsed components of a Brazilian phone number
type PhoneComponents struct {
	DDI    string `json:"ddi"`
	DDD    string `json:"ddd"`
	Numero string `json:"numero"`
	E164   string `json:"e164"`
}

// ParseBrazilianPhone parses an area code and local number pair
func ParseBrazilianPhone(ddd, numero string) (*PhoneComponents, error) {
	ddd = OnlyDigits(ddd)
	numero = OnlyDigits(numero)
	if len(ddd) != 2 {
		return nil, fmt.Errorf("invalid area code: %q", ddd)
	}

	num, err := phonenumbers.Parse("+55"+ddd+numero, "BR")
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumberForRegion(num, "BR") {
		return nil, fmt.Errorf("invalid phone number: (%s) %s", ddd, numero)
	}

	national := phonenumbers.GetNationalSignificantNumber(num)
	return &PhoneComponents{
		DDI:    fmt.Sprintf("%d", num.GetCountryCode()),
		DDD:    national[:2],
		Numero: national[2:],
		E164:   phonenumbers.Format(num, phonenumbers.E164),
	}, nil
}

// IsMobile reports whether the local number is a mobile line
func (p *PhoneComponents) IsMobile() bool {
	return len(p.Numero) == 9 && strings.HasPrefix(p.Numero, "9")
}

// FormatLocalNumber punctuates the local part of a phone number
func FormatLocalNumber(numero string) string {
	digits := OnlyDigits(numero)
	if len(digits) > 8 {
		return ApplyTemplate(TemplatePhone9, digits)
	}
	return ApplyTemplate(TemplatePhone8, digits)
}
