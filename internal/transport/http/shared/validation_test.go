package shared

import (
	"net/http/httptest"
	"testing"
)

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.Required("rfc", "XAXX010101000", "rfc is required")
	v.Enum("zone", "CENTRO", []string{"GENERAL", "FRONTERA_NORTE"}, "zone is not allowed")
	v.Min("periodNumber", 0, 1, "periodNumber must be at least 1")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %+v", len(issues), issues)
	}
}

func TestValidatorEnumCaseInsensitive(t *testing.T) {
	v := NewValidator()
	v.Enum("frequency", "Quincenal", []string{"semanal", "quincenal"}, "bad frequency")
	if v.HasIssues() {
		t.Fatalf("expected no issues, got %+v", v.Issues())
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("startDate", "2024-01-15"); !ok {
		t.Fatal("expected valid date")
	}
	if _, ok := v.Date("endDate", "15/01/2024"); ok {
		t.Fatal("expected invalid date")
	}
	if !v.HasIssues() {
		t.Fatal("expected issue for bad date")
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}

	v.Add("rfc", "rfc format is invalid")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Fatal("leap day should parse")
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatal("month 13 should not parse")
	}
}
