package format

import "testing"

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "$0"},
		{"Rounds half up", 1749531.5, "$1,749,532"},
		{"Negative", -100000, "-$100,000"},
		{"Tiny negative rounds to zero", -0.4, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WholeCurrency(tt.input); got != tt.expected {
				t.Errorf("WholeCurrency(%v) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCurrencyOrDash(t *testing.T) {
	if got := CurrencyOrDash(0); got != "—" {
		t.Errorf("CurrencyOrDash(0) = %s, expected dash", got)
	}
	if got := CurrencyOrDash(100000); got != "$100,000" {
		t.Errorf("CurrencyOrDash(100000) = %s", got)
	}
}

func TestPercentAndNumber(t *testing.T) {
	if got := Percent(7543.9); got != "7,544%" {
		t.Errorf("Percent() = %s, expected 7,544%%", got)
	}
	if got := Percent(-100); got != "-100%" {
		t.Errorf("Percent() = %s, expected -100%%", got)
	}
	if got := Number(2.66666, 1); got != "2.7" {
		t.Errorf("Number() = %s, expected 2.7", got)
	}
	if got := Number(50000, 0); got != "50,000" {
		t.Errorf("Number() = %s, expected 50,000", got)
	}
}
