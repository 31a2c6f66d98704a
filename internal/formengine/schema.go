package formengine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils"
)

var (
	validate = newValidator()

	phoneNumberPath = regexp.MustCompile(`^telefones\.\d+\.numero$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return utils.ValidateCPF(fl.Field().String())
	})
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return utils.ValidateCEP(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return true
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	})
	return v
}

// tagMessages maps validator tags to user facing messages
var tagMessages = map[string]string{
	"email":   "must be a valid email address",
	"oneof":   "must be one of the allowed values",
	"isodate": "must be a date in YYYY-MM-DD format",
	"numeric": "must be a number",
	"cpf":     "must be a valid CPF",
	"cep":     "must be a valid CEP",
}

// Rule is the resolved validation of one field
type Rule struct {
	Path     string
	Label    string
	Required bool
	Tags     []string
	Options  []string
}

// Schema is the validation object of one section
type Schema struct {
	rules []Rule
}

// Dedupe removes repeated names. The last descriptor for a name wins and
// takes the position of the first occurrence.
func Dedupe(fields []models.FieldDescriptor) []models.FieldDescriptor {
	index := make(map[string]int, len(fields))
	out := make([]models.FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		if i, seen := index[f.Name]; seen {
			out[i] = f
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}

// Resolve turns descriptors into a schema. Names must be absolute paths.
// A descriptor of an unknown type is rejected.
func Resolve(fields []models.FieldDescriptor) (*Schema, error) {
	fields = Dedupe(fields)
	rules := make([]Rule, 0, len(fields))

	for _, f := range fields {
		if !f.Type.IsValid() {
			return nil, fmt.Errorf("%w: %q on field %s", models.ErrUnsupportedFieldType, f.Type, f.Name)
		}
		if _, err := ParsePath(f.Name); err != nil {
			return nil, err
		}

		r := Rule{
			Path:     f.Name,
			Label:    f.Label,
			Required: f.Required,
		}
		if r.Label == "" {
			r.Label = f.Name
		}

		last := f.Name
		if i := strings.LastIndex(last, "."); i >= 0 {
			last = last[i+1:]
		}

		switch {
		case last == "tipo_documento":
			r.Tags = append(r.Tags, "oneof="+utils.DocumentTypeRGCNH+" "+utils.DocumentTypeCNPJ)
		case strings.Contains(last, "email"):
			r.Tags = append(r.Tags, "email")
		case last == "cpf":
			r.Tags = append(r.Tags, "cpf")
		case last == "cep":
			r.Tags = append(r.Tags, "cep")
		}

		switch f.Type {
		case models.FieldTypeDate:
			r.Tags = append(r.Tags, "isodate")
		case models.FieldTypeNumber:
			r.Tags = append(r.Tags, "numeric")
		case models.FieldTypeSelect:
			for _, o := range f.Options {
				r.Options = append(r.Options, o.Value)
			}
		}

		rules = append(rules, r)
	}

	return &Schema{rules: rules}, nil
}

// Rules returns the resolved rules in declaration order
func (s *Schema) Rules() []Rule {
	return s.rules
}

// Validate checks state against every rule and never modifies it
func (s *Schema) Validate(state models.FormState) *models.ValidationResult {
	result := models.NewValidationResult("")

	for _, r := range s.rules {
		path := MustParsePath(r.Path)
		raw, _ := Get(state, path)

		value, ok := textValue(raw)
		if !ok {
			result.AddError(r.Path, r.Label+" must be text")
			continue
		}

		if strings.TrimSpace(value) == "" {
			if r.Required {
				result.AddError(r.Path, r.Label+" is required")
			}
			continue
		}

		if msg := checkTags(value, r.Tags); msg != "" {
			result.AddError(r.Path, r.Label+" "+msg)
			continue
		}

		if len(r.Options) > 0 && !containsString(r.Options, value) {
			result.AddError(r.Path, r.Label+" "+tagMessages["oneof"])
			continue
		}

		if msg := checkSiblings(state, path, value); msg != "" {
			result.AddError(r.Path, r.Label+" "+msg)
		}
	}

	return result
}

func checkTags(value string, tags []string) string {
	for _, tag := range tags {
		if err := validate.Var(value, tag); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
				if msg, found := tagMessages[verrs[0].Tag()]; found {
					return msg
				}
			}
			return "is invalid"
		}
	}
	return ""
}

// checkSiblings runs the checks that depend on a neighbouring field
func checkSiblings(state models.FormState, path Path, value string) string {
	switch {
	case phoneNumberPath.MatchString(path.String()):
		ddd := GetString(state, path.Sibling("ddd"))
		if ddd == "" {
			return ""
		}
		if _, err := utils.ParseBrazilianPhone(ddd, value); err != nil {
			return "must be a valid phone number"
		}
	case path.Last().Key == "numero_documento":
		if GetString(state, path.Sibling("tipo_documento")) == utils.DocumentTypeCNPJ && !utils.ValidateCNPJ(value) {
			return "must be a valid CNPJ"
		}
	}
	return ""
}

// textValue renders a JSON scalar as text
func textValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
