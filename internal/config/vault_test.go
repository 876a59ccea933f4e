package config

import (
	"log/slog"
	"os"
	"testing"

	"careerlens/internal/errors"
)

func TestApplyVaultSecretsDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	config := &Config{
		Vault: VaultConfig{
			Enabled: false,
		},
	}

	if err := ApplyVaultSecrets(config, logger); err != nil {
		t.Fatalf("ApplyVaultSecrets with vault disabled: %v", err)
	}
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int64", input: int64(3), want: 3},
		{name: "float64 from JSON", input: float64(7), want: 7},
		{name: "numeric string", input: "42", want: 42},
		{name: "garbage string", input: "not-a-number", wantErr: true},
		{name: "unexpected type", input: []string{"1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "secret/data/test")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseVersionValue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	config := &Config{}
	config.AI.Fit.APIKey = "operation-specific"

	applyGeminiKeyToConfig(config, "vault-key")

	if config.AI.APIKey != "vault-key" {
		t.Errorf("global APIKey = %q, want vault-key", config.AI.APIKey)
	}
	if config.AI.Analyze.APIKey != "vault-key" {
		t.Errorf("analyze APIKey = %q, want vault-key", config.AI.Analyze.APIKey)
	}
	// An operation with its own key keeps it
	if config.AI.Fit.APIKey != "operation-specific" {
		t.Errorf("fit APIKey = %q, want operation-specific", config.AI.Fit.APIKey)
	}
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Error("expected nil client when vault is disabled")
	}
}

func TestResolveVaultTokenMissing(t *testing.T) {
	_, err := resolveVaultToken(VaultConfig{Enabled: true}, nil)
	if err == nil {
		t.Fatal("expected error when no token is configured")
	}
}

func TestResolveVaultTokenFromFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := dir + "/token"
	if err := os.WriteFile(tokenFile, []byte("  s.token-value\n"), 0600); err != nil {
		t.Fatal(err)
	}

	token, err := resolveVaultToken(VaultConfig{Enabled: true, TokenFile: tokenFile}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "s.token-value" {
		t.Errorf("token = %q, want s.token-value (trimmed)", token)
	}
}
