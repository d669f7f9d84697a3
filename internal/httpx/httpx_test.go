package httpx

import (
	"net/url"
	"strings"
	"testing"

	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
)

type createPayload struct {
	Title string `json:"title" validate:"required"`
	Year  string `json:"year" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var out createPayload
	err := DecodeJSON(strings.NewReader(`{"title":"a"}{"title":"b"}`), &out)
	if err == nil {
		t.Fatalf("two concatenated objects should be rejected")
	}
}

func TestDecodeJSONSingleObject(t *testing.T) {
	var out createPayload
	if err := DecodeJSON(strings.NewReader(`{"title":"a","year":"2026"}`), &out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if out.Title != "a" || out.Year != "2026" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestValidationMessageListsAllMissing(t *testing.T) {
	val := validation.New()
	err := val.Struct(createPayload{})
	errs := val.ValidationErrors(err)

	msg := ValidationMessage(errs)
	if !strings.HasPrefix(msg, "Missing required fields:") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "title") || !strings.Contains(msg, "year") {
		t.Fatalf("message should name both fields, got %q", msg)
	}
}

func TestValidationMessageMixedFailures(t *testing.T) {
	val := validation.New()
	err := val.Struct(createPayload{Title: "a", Email: "not-an-email"})
	errs := val.ValidationErrors(err)

	msg := ValidationMessage(errs)
	if strings.HasPrefix(msg, "Missing required fields:") && strings.Contains(msg, "email") {
		t.Fatalf("format failures must not be reported as missing: %q", msg)
	}
	details := ValidationDetails(errs)
	if details["email"] != "email" {
		t.Fatalf("details should carry the failing tag per field, got %v", details)
	}
	if details["year"] != "required" {
		t.Fatalf("details should include the missing field, got %v", details)
	}
}

func TestParseLimit(t *testing.T) {
	if limit, err := ParseLimit(url.Values{}); err != nil || limit != 0 {
		t.Fatalf("absent limit should be 0, got %d err %v", limit, err)
	}
	if limit, err := ParseLimit(url.Values{"limit": {"25"}}); err != nil || limit != 25 {
		t.Fatalf("expected 25, got %d err %v", limit, err)
	}
	if _, err := ParseLimit(url.Values{"limit": {"-3"}}); err == nil {
		t.Fatalf("negative limit should be rejected")
	}
	if _, err := ParseLimit(url.Values{"limit": {"many"}}); err == nil {
		t.Fatalf("non-numeric limit should be rejected")
	}
}
