package utils

import "strings"

// Punctuation templates; '#' consumes one digit
const (
	TemplateCPF    = "###.###.###-##"
	TemplateCNPJ   = "##.###.###/####-##"
	TemplateRGCNH  = "##.###.###-#"
	TemplateCEP    = "#####-###"
	TemplatePhone8 = "####-####"
	TemplatePhone9 = "#####-####"
)

// Values of the tipo_documento selector
const (
	DocumentTypeRGCNH = "1"
	DocumentTypeCNPJ  = "2"
)

var (
	cpfFirstWeights   = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfSecondWeights  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits drops every non-digit rune
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripPunctuation removes the characters the document templates insert
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '/':
			return -1
		}
		return r
	}, s)
}

// ApplyTemplate formats the digits of raw with a punctuation template.
// Output stops when the digits run out. Digits beyond the template are
// appended unpunctuated, so switching templates never loses input.
func ApplyTemplate(template, raw string) string {
	digits := OnlyDigits(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	next := 0
	for _, t := range template {
		if next >= len(digits) {
			break
		}
		if t == '#' {
			b.WriteByte(digits[next])
			next++
			continue
		}
		b.WriteRune(t)
	}
	b.WriteString(digits[next:])
	return b.String()
}

// DocumentTemplate returns the template of a tipo_documento value
func DocumentTemplate(documentType string) (string, bool) {
	switch strings.TrimSpace(documentType) {
	case DocumentTypeRGCNH:
		return TemplateRGCNH, true
	case DocumentTypeCNPJ:
		return TemplateCNPJ, true
	}
	return "", false
}

// FormatDocumentNumber punctuates a document number with the template of its type.
// Unknown types leave the value unchanged.
func FormatDocumentNumber(documentType, raw string) string {
	template, ok := DocumentTemplate(documentType)
	if !ok {
		return raw
	}
	return ApplyTemplate(template, raw)
}

// FormatCPF punctuates a CPF
func FormatCPF(raw string) string {
	return ApplyTemplate(TemplateCPF, raw)
}

// FormatCEP punctuates a postal code
func FormatCEP(raw string) string {
	return ApplyTemplate(TemplateCEP, raw)
}

// ValidateCPF validates the check digits of a CPF, ignoring punctuation
func ValidateCPF(cpf string) bool {
	digits := OnlyDigits(cpf)
	if len(digits) != 11 || allSame(digits) {
		return false
	}
	return checkDigit(digits, cpfFirstWeights) == digits[9] &&
		checkDigit(digits, cpfSecondWeights) == digits[10]
}

// ValidateCNPJ validates the check digits of a CNPJ, ignoring punctuation
func ValidateCNPJ(cnpj string) bool {
	digits := OnlyDigits(cnpj)
	if len(digits) != 14 || allSame(digits) {
		return false
	}
	return checkDigit(digits, cnpjFirstWeights) == digits[12] &&
		checkDigit(digits, cnpjSecondWeights) == digits[13]
}

// ValidateCEP checks that a postal code has exactly 8 digits in 00000-000 or 00000000 form
func ValidateCEP(cep string) bool {
	cep = strings.TrimSpace(cep)
	switch len(cep) {
	case 8:
		return isDigits(cep)
	case 9:
		return cep[5] == '-' && isDigits(cep[:5]) && isDigits(cep[6:])
	}
	return false
}

// checkDigit computes the mod 11 verifier over the first len(weights) digits
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
