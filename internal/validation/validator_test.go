package validation

import "testing"

type clockPayload struct {
	StartTime string `json:"startTime" validate:"required,clock"`
}

func TestClockRule(t *testing.T) {
	val := New()

	for _, ok := range []string{"09:30", "00:00", "23:59"} {
		if err := val.Struct(clockPayload{StartTime: ok}); err != nil {
			t.Fatalf("%q should be a valid clock value: %v", ok, err)
		}
	}
	for _, bad := range []string{"24:00", "9:75", "half past nine", "14.30"} {
		if err := val.Struct(clockPayload{StartTime: bad}); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestErrorsUseJSONFieldNames(t *testing.T) {
	val := New()

	err := val.Struct(clockPayload{})
	errs := val.ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("expected one failure, got %d", len(errs))
	}
	if errs[0].Field() != "startTime" {
		t.Fatalf("expected wire name startTime, got %q", errs[0].Field())
	}
}
