package param

import "testing"

func TestPercentRoundTrip(t *testing.T) {
	if got := PercentFormatter(0.35); got != "35%" {
		t.Errorf("PercentFormatter(0.35) = %q", got)
	}

	for _, s := range []string{"35%", "35 %", " 35% "} {
		v, err := PercentParser(s)
		if err != nil {
			t.Fatalf("PercentParser(%q): %v", s, err)
		}
		if v != 0.35 {
			t.Errorf("PercentParser(%q) = %v, want 0.35", s, v)
		}
	}
}

func TestRatioFormatter(t *testing.T) {
	if got := RatioFormatter(0.5); got != "0.50 (straight)" {
		t.Errorf("RatioFormatter(0.5) = %q", got)
	}
	if got := RatioFormatter(0.66); got != "0.66" {
		t.Errorf("RatioFormatter(0.66) = %q", got)
	}

	v, err := RatioParser("0.50 (straight)")
	if err != nil {
		t.Fatalf("RatioParser: %v", err)
	}
	if v != 0.5 {
		t.Errorf("RatioParser = %v, want 0.5", v)
	}
}

func TestVelocityFormatter(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "+20"},
		{-15, "-15"},
		{0, "+0"},
	}
	for _, tt := range tests {
		if got := VelocityFormatter(tt.in); got != tt.want {
			t.Errorf("VelocityFormatter(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	v, err := VelocityParser("+20")
	if err != nil {
		t.Fatalf("VelocityParser: %v", err)
	}
	if v != 20 {
		t.Errorf("VelocityParser = %v, want 20", v)
	}
}

func TestOnOffParser(t *testing.T) {
	for _, s := range []string{"On", "ON", "yes", "true", "1"} {
		v, err := OnOffParser(s)
		if err != nil || v != 1 {
			t.Errorf("OnOffParser(%q) = %v, %v; want 1, nil", s, v, err)
		}
	}
	for _, s := range []string{"off", "No", "false", "0"} {
		v, err := OnOffParser(s)
		if err != nil || v != 0 {
			t.Errorf("OnOffParser(%q) = %v, %v; want 0, nil", s, v, err)
		}
	}
	if _, err := OnOffParser("maybe"); err == nil {
		t.Error("OnOffParser accepted garbage")
	}

	if got := OnOffFormatter(1); got != "On" {
		t.Errorf("OnOffFormatter(1) = %q", got)
	}
	if got := OnOffFormatter(0); got != "Off" {
		t.Errorf("OnOffFormatter(0) = %q", got)
	}
}
