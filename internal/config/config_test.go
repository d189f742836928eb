package config

import (
	"strings"
	"testing"
	"time"
)

// envMap returns a lookup function backed by m.
func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Source.URL != "bundled:data/projects.csv" {
		t.Errorf("Source.URL = %q, want %q", cfg.Source.URL, "bundled:data/projects.csv")
	}
	if cfg.Source.Charset != "utf-8" {
		t.Errorf("Source.Charset = %q, want utf-8", cfg.Source.Charset)
	}
	if cfg.Source.MaxBytes != 5242880 {
		t.Errorf("Source.MaxBytes = %d, want %d", cfg.Source.MaxBytes, 5242880)
	}
	if cfg.Source.FetchTimeout != 0 {
		t.Errorf("Source.FetchTimeout = %v, want 0 (no timeout)", cfg.Source.FetchTimeout)
	}
	if cfg.Source.RefreshInterval != 0 {
		t.Errorf("Source.RefreshInterval = %v, want 0", cfg.Source.RefreshInterval)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 120 || cfg.Rate.Burst != 20 {
		t.Errorf("Rate = %+v, want enabled 120/min burst 20", cfg.Rate)
	}
	if cfg.Security.RequireAPIKey() {
		t.Error("RequireAPIKey should be false without API_KEYS")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SERVER_PORT":               "9090",
		"PROJECTS_CSV_URL":          "https://cdn.example.com/projects.csv",
		"PROJECTS_REFRESH_INTERVAL": "5m",
		"LOG_LEVEL":                 "debug",
		"API_KEYS":                  "one, two ,",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Source.URL != "https://cdn.example.com/projects.csv" {
		t.Errorf("Source.URL = %q", cfg.Source.URL)
	}
	if cfg.Source.RefreshInterval != 5*time.Minute {
		t.Errorf("Source.RefreshInterval = %v, want 5m", cfg.Source.RefreshInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if len(cfg.Security.APIKeys) != 2 || cfg.Security.APIKeys[1] != "two" {
		t.Errorf("Security.APIKeys = %q, want [one two]", cfg.Security.APIKeys)
	}
	if !cfg.Security.RequireAPIKey() {
		t.Error("RequireAPIKey should be true when API_KEYS is set")
	}
}

func TestLoad_AlternateNames(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                  "3000",
		"VITE_PROJECTS_CSV_URL": "/srv/data/projects.csv",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000 from PORT", cfg.Server.Port)
	}
	if cfg.Source.URL != "/srv/data/projects.csv" {
		t.Errorf("Source.URL = %q, want value from VITE_PROJECTS_CSV_URL", cfg.Source.URL)
	}

	// Primary name wins over the alternate
	cfg, err = LoadFrom(envMap(map[string]string{
		"SERVER_PORT": "4000",
		"PORT":        "3000",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000 from SERVER_PORT", cfg.Server.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "non-numeric port",
			env:     map[string]string{"SERVER_PORT": "http"},
			wantErr: "invalid value for SERVER_PORT",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"PROJECTS_REFRESH_INTERVAL": "soon"},
			wantErr: "invalid duration",
		},
		{
			name:    "bad bool",
			env:     map[string]string{"RATE_LIMIT_ENABLED": "maybe"},
			wantErr: "invalid boolean",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"SERVER_PORT": "70000"},
			wantErr: "SERVER_PORT (70000) must be 1-65535",
		},
		{
			name:    "unknown charset",
			env:     map[string]string{"PROJECTS_CSV_CHARSET": "ebcdic"},
			wantErr: "must be one of: utf-8, windows-1252, iso-8859-1",
		},
		{
			name:    "negative refresh interval",
			env:     map[string]string{"PROJECTS_REFRESH_INTERVAL": "-1m"},
			wantErr: "PROJECTS_REFRESH_INTERVAL must be non-negative",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "trace"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "zero rate",
			env:     map[string]string{"RATE_LIMIT_REQUESTS_PER_MINUTE": "0"},
			wantErr: "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_CharsetAliases(t *testing.T) {
	for _, name := range []string{"UTF8", "cp1252", "Latin1"} {
		cfg, err := LoadFrom(envMap(map[string]string{"PROJECTS_CSV_CHARSET": name}))
		if err != nil {
			t.Errorf("charset %q: LoadFrom() error = %v", name, err)
			continue
		}
		if cfg.Source.Charset != name {
			t.Errorf("Source.Charset = %q, want %q", cfg.Source.Charset, name)
		}
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	cfg.Server.Port = 0
	cfg.Source.MaxBytes = 0
	cfg.Logging.Format = "xml"

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"SERVER_PORT", "PROJECTS_CSV_MAX_BYTES", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err.Error(), want)
		}
	}
}

func TestConfig_StringHidesAPIKeys(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"API_KEYS": "s3cret"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "s3cret") {
		t.Errorf("String() leaked an API key: %s", s)
	}
	if !strings.Contains(s, "1 configured") {
		t.Errorf("String() should report key count: %s", s)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := c.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8080")
	}

	c = ServerConfig{Port: 9000}
	if got := c.Addr(); got != ":9000" {
		t.Errorf("Addr() = %q, want %q", got, ":9000")
	}
}
