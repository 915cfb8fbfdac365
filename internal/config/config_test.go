package config

import (
	"testing"
	"time"
)

func TestParseKeyList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"multiple keys", "key-a,key-b,key-c", []string{"key-a", "key-b", "key-c"}},
		{"whitespace trimmed", " key-a , key-b ", []string{"key-a", "key-b"}},
		{"empty segments dropped", "key-a,,key-b,", []string{"key-a", "key-b"}},
		{"empty input", "", nil},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := parseKeyList(tt.raw)
			if len(keys) != len(tt.expected) {
				t.Fatalf("parseKeyList(%q) = %v, expected %v", tt.raw, keys, tt.expected)
			}
			for i := range keys {
				if keys[i] != tt.expected[i] {
					t.Errorf("parseKeyList(%q)[%d] = %q, expected %q", tt.raw, i, keys[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error when JWT_SECRET is unset")
	}

	t.Setenv("JWT_SECRET", "too-short")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error when JWT_SECRET is shorter than 32 characters")
	}
}

func TestLoadConfigCredentialList(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-characters!!")
	t.Setenv("OPENROUTER_API_KEYS", "key-1, key-2,key-3")
	t.Setenv("OPENROUTER_API_KEY", "legacy-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.LLM.APIKeys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(cfg.LLM.APIKeys))
	}
	if cfg.LLM.APIKeys[0] != "key-1" || cfg.LLM.APIKeys[2] != "key-3" {
		t.Errorf("Key order not preserved: %v", cfg.LLM.APIKeys)
	}
}

func TestLoadConfigSingleKeyFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-characters!!")
	t.Setenv("OPENROUTER_API_KEYS", "")
	t.Setenv("OPENROUTER_API_KEY", "legacy-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.LLM.APIKeys) != 1 || cfg.LLM.APIKeys[0] != "legacy-key" {
		t.Errorf("Expected fallback to single key, got %v", cfg.LLM.APIKeys)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-characters!!")
	t.Setenv("RATE_LIMIT_DRIVER", "")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.RateLimit.Driver != "postgres" {
		t.Errorf("Expected default driver postgres, got %q", cfg.RateLimit.Driver)
	}
	if cfg.RateLimit.WindowSeconds != 600 || cfg.RateLimit.MaxRequests != 20 {
		t.Errorf("Unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Auth.TokenExpiration != 24*time.Hour {
		t.Errorf("Expected 24h token expiration default, got %s", cfg.Auth.TokenExpiration)
	}
}
