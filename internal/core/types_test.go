package core

import (
	"encoding/json"
	"testing"
)

func TestSigns_Order(t *testing.T) {
	expected := []string{
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	}

	for i, s := range Signs {
		if string(s) != expected[i] {
			t.Errorf("expected %s at %d, got %s", expected[i], i, s)
		}
	}
}

func TestSign_IsValid(t *testing.T) {
	tests := []struct {
		sign Sign
		want bool
	}{
		{SignAries, true},
		{SignPisces, true},
		{Sign("Ophiuchus"), false},
		{Sign(""), false},
		{Sign("aries"), false},
	}
	for _, tt := range tests {
		if got := tt.sign.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.sign, got, tt.want)
		}
	}
}

func TestChart_JSONFields(t *testing.T) {
	c := Chart{
		Ascendant:  SignLeo,
		Sun:        SignSagittarius,
		Moon:       SignLibra,
		ChartRuler: PlanetSun,
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(fields) != 4 {
		t.Errorf("expected exactly 4 fields, got %d: %v", len(fields), fields)
	}
	if fields["chartRuler"] != "Sun" {
		t.Errorf("expected chartRuler Sun, got %q", fields["chartRuler"])
	}
	if fields["ascendant"] != "Leo" {
		t.Errorf("expected ascendant Leo, got %q", fields["ascendant"])
	}
}
