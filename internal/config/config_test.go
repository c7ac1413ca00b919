package config

import "testing"

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}
	for _, tt := range tests {
		c := &Config{AppEnv: tt.env}
		if got := c.IsDevelopment(); got != tt.want {
			t.Errorf("AppEnv=%q: IsDevelopment() = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	c := &Config{AppTimezone: "Not/AZone"}
	if got := c.Location(); got.String() != "UTC" {
		t.Errorf("Location() = %v, want UTC fallback", got)
	}
}
