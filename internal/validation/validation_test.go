package validation

import "testing"

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "Awa", v)
	Required("empty", "", v)
	Required("blank", "   ", v)
	if !v.Empty() && len(v) != 2 {
		t.Fatalf("violations = %v", v)
	}
	if v["empty"] != "required" || v["blank"] != "required" {
		t.Errorf("missing violations: %v", v)
	}
	if _, bad := v["name"]; bad {
		t.Errorf("valid field flagged: %v", v)
	}
}

func TestFloatValidators(t *testing.T) {
	v := make(Violations)
	PositiveFloat("ok", 1, v)
	PositiveFloat("zero", 0, v)
	NonNegativeFloat("free", 0, v)
	NonNegativeFloat("neg", -1, v)
	RangeFloat("in", 50, 0, 100, v)
	RangeFloat("over", 101, 0, 100, v)
	RangeFloat("under", -0.5, 0, 100, v)

	want := map[string]string{
		"zero":  "must_be_positive",
		"neg":   "must_not_be_negative",
		"over":  "out_of_range",
		"under": "out_of_range",
	}
	if len(v) != len(want) {
		t.Fatalf("violations = %v, want %v", v, want)
	}
	for field, code := range want {
		if v[field] != code {
			t.Errorf("%s = %q, want %q", field, v[field], code)
		}
	}
}
