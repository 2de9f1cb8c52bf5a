package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fallbackMessage = "Something went wrong"

// extractMessage pulls a renderable error string out of a decoded payload.
// The service does not guarantee one error shape across its failure modes:
// plain handlers use "message" or "error", the validation layer uses
// "detail" as a string, a structured object, or a list of field errors.
// The rules apply in order until one matches.
func extractMessage(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return fallbackMessage
	}

	if s, ok := obj["message"].(string); ok {
		return s
	}
	if s, ok := obj["error"].(string); ok {
		return s
	}

	switch detail := obj["detail"].(type) {
	case string:
		return detail
	case []any:
		return joinDetailList(detail)
	case map[string]any:
		if s, ok := detail["msg"].(string); ok {
			return s
		}
		if s, ok := detail["message"].(string); ok {
			return s
		}
		return structuralDump(detail)
	}

	return fallbackMessage
}

// joinDetailList renders a validation error list as "<field>: <msg>"
// entries joined with ". ". The field qualifier is dropped when the
// validator reports the root marker.
func joinDetailList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch e := item.(type) {
		case string:
			parts = append(parts, e)
		case map[string]any:
			field := ""
			if loc, ok := e["loc"].([]any); ok && len(loc) > 0 {
				field = fmt.Sprint(loc[len(loc)-1])
			}
			msg := "Invalid value"
			if s, ok := e["msg"].(string); ok {
				msg = s
			}
			if field != "" && field != "__root__" {
				parts = append(parts, field+": "+msg)
			} else {
				parts = append(parts, msg)
			}
		default:
			parts = append(parts, fmt.Sprint(item))
		}
	}
	if len(parts) == 0 {
		return fallbackMessage
	}
	return strings.Join(parts, ". ")
}

func structuralDump(detail map[string]any) string {
	enc, err := json.Marshal(detail)
	if err != nil {
		return fallbackMessage
	}
	return string(enc)
}
