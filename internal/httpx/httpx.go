package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// MissingFields lists every "required" failure so a create request with
// several absent fields reports all of them in one response.
func MissingFields(errs validator.ValidationErrors) []string {
	fields := make([]string, 0, len(errs))
	for _, err := range errs {
		if err.Tag() == "required" {
			fields = append(fields, err.Field())
		}
	}
	return fields
}

// ValidationMessage names every missing required field in one message.
// Mixed failures fall back to a generic message; the details map still
// carries the per-field tags.
func ValidationMessage(errs validator.ValidationErrors) string {
	missing := MissingFields(errs)
	if len(missing) > 0 && len(missing) == len(errs) {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return "validation error"
}

func ParseLimit(values url.Values) (int64, error) {
	raw := strings.TrimSpace(values.Get("limit"))
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid limit")
	}
	return parsed, nil
}
