package model

import "testing"

func TestParseImpact(t *testing.T) {
	tests := []struct {
		in     string
		want   Impact
		wantOk bool
	}{
		{"CRITICAL", ImpactCritical, true},
		{"high", ImpactHigh, true},
		{" Medium-High ", ImpactMediumHigh, true},
		{"low-medium", ImpactLowMedium, true},
		{"URGENT", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseImpact(tt.in)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ParseImpact(%q): esperado (%q, %v), obtido (%q, %v)", tt.in, tt.want, tt.wantOk, got, ok)
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	onlyWarnings := []Defect{{File: "a.md", Field: "x", Problem: "p", Warning: true}}
	if HasErrors(onlyWarnings) {
		t.Error("avisos sozinhos não são erro")
	}
	mixed := append(onlyWarnings, Defect{File: "b.md", Field: "title", Problem: "ausente"})
	if !HasErrors(mixed) {
		t.Error("esperado HasErrors true com defeito não-aviso")
	}
}
