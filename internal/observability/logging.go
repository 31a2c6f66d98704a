package observability

import (
	"strings"

	"github.com/promotora-credito/app-cadastro/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// sensitiveKeys are form keys whose values never reach the logs
var sensitiveKeys = []string{
	"cpf",
	"numero_documento",
	"nome_mae",
	"nome_pai",
	"numero",
	"ddd",
	"conta",
	"agencia",
	"chave_pix",
}

// MaskCPF masks a CPF number for logging
func MaskCPF(cpf string) string {
	if len(cpf) != 11 {
		return "***.***.***-**"
	}
	return cpf[:3] + ".***" + "." + cpf[6:9] + "-**"
}

// IsSensitivePath reports whether the last segment of a dotted path names sensitive data
func IsSensitivePath(path string) bool {
	last := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		last = path[i+1:]
	}
	return contains(sensitiveKeys, last)
}

// MaskValue masks the value written to a path when the path is sensitive
func MaskValue(path string, value interface{}) interface{} {
	if IsSensitivePath(path) {
		return "********"
	}
	return value
}

// MaskSensitiveData masks sensitive data in a nested form state
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for k, v := range data {
		if contains(sensitiveKeys, k) {
			masked[k] = "********"
			continue
		}
		masked[k] = maskNested(v)
	}

	return masked
}

func maskNested(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return MaskSensitiveData(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = maskNested(item)
		}
		return out
	default:
		return v
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
