package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FormatError turns any error-like value into a message that is safe to show
// a user. It never panics and always returns a string.
//
// Precedence: validation failures (messages joined by a single space), then
// nested API error objects ({"error":{"message":"..."}}) in any form, then
// anything that exposes a message, then the JSON serialisation of the value.
func FormatError(v interface{}) (formatted string) {
	defer func() {
		if r := recover(); r != nil {
			formatted = fmt.Sprintf("%v", r)
		}
	}()

	if v == nil {
		return "null"
	}

	if de, ok := v.(*DomainError); ok {
		if de == nil {
			return "null"
		}
		return de.Message
	}

	if err, ok := v.(error); ok {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return strings.Join(lo.Map(verrs, func(fe FieldError, _ int) string { return fe.Message }), " ")
		}
	}

	if msg, ok := nestedAPIMessage(v); ok {
		return msg
	}

	switch val := v.(type) {
	case error:
		var de *DomainError
		if errors.As(val, &de) && de != nil {
			return de.Message
		}
		return val.Error()
	case interface{ Message() string }:
		return val.Message()
	case map[string]interface{}:
		if msg, ok := val["message"].(string); ok {
			return msg
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	// structs of the same shapes, matched through their JSON form
	if msg, ok := parseAPIEnvelope(b); ok {
		return msg
	}
	if msg, ok := parseMessageField(b); ok {
		return msg
	}
	return string(b)
}

// apiErrorEnvelope is the error body shape used by OpenAI-compatible providers.
type apiErrorEnvelope struct {
	Error *struct {
		Message *string `json:"message"`
	} `json:"error"`
}

func nestedAPIMessage(v interface{}) (string, bool) {
	switch val := v.(type) {
	case map[string]interface{}:
		inner, ok := val["error"].(map[string]interface{})
		if !ok {
			return "", false
		}
		msg, ok := inner["message"].(string)
		return msg, ok
	case json.RawMessage:
		return parseAPIEnvelope([]byte(val))
	case []byte:
		return parseAPIEnvelope(val)
	case string:
		return parseAPIEnvelope([]byte(val))
	case error:
		return parseAPIEnvelope([]byte(val.Error()))
	}
	return "", false
}

func parseAPIEnvelope(raw []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	var env apiErrorEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return "", false
	}
	if env.Error == nil || env.Error.Message == nil {
		return "", false
	}
	return *env.Error.Message, true
}

func parseMessageField(raw []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	var body struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &body); err != nil || body.Message == nil {
		return "", false
	}
	return *body.Message, true
}
