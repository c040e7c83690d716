package config

import (
	"strings"
	"testing"
)

func TestValidate_ProductionRequiresStrongSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"missing_secret", "", true},
		{"placeholder_secret", "change-this-in-production", true},
		{"short_secret", "too-short", true},
		{"strong_secret", strings.Repeat("s", 32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Environment: "production",
				TokenSecret: tt.secret,
			}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidate_DevelopmentDefaultsSecret(t *testing.T) {
	cfg := &Config{Environment: "development"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenSecret == "" {
		t.Error("development secret default not applied")
	}
}

func TestEnvironmentPredicates(t *testing.T) {
	prod := &Config{Environment: "prod"}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Error("prod misclassified")
	}

	dev := &Config{Environment: ""}
	if dev.IsProduction() || !dev.IsDevelopment() {
		t.Error("empty environment should be development")
	}
}
