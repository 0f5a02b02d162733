package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mail-ticket-poller/internal/classifier"
)

// isolate runs the test in an empty directory with every config variable unset.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	for _, key := range []string{
		"EMAIL", "PASSWORD", "IMAP_SERVER", "IMAP_PORT", "IMAP_MAILBOX",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION",
		"KEYWORDS", "POLL_INTERVAL", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ADDR",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := isolate(t)

	yamlContent := `email:
  imap: "imap.test.com"
  port: 1993
  login: "test@example.com"
  password: "testpass"
  pollInterval: 30s
  mailbox: "Soporte"
mongo:
  uri: "mongodb://mongo:27017"
  database: "Helpdesk"
keywords:
  - factura
  - soporte
log:
  level: debug
  format: json
metrics:
  addr: ":9100"
`

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Email.Imap != "imap.test.com" {
		t.Errorf("Expected imap 'imap.test.com', got '%s'", cfg.Email.Imap)
	}

	if cfg.Email.Port != 1993 {
		t.Errorf("Expected port 1993, got %d", cfg.Email.Port)
	}

	if cfg.Email.PollInterval != 30*time.Second {
		t.Errorf("Expected pollInterval 30s, got %v", cfg.Email.PollInterval)
	}

	if cfg.Email.MailBox != "Soporte" {
		t.Errorf("Expected mailbox 'Soporte', got '%s'", cfg.Email.MailBox)
	}

	if cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.Database != "Helpdesk" {
		t.Errorf("Unexpected mongo config: %+v", cfg.Mongo)
	}

	if cfg.Mongo.Collection != "tickets" {
		t.Errorf("Expected default collection 'tickets', got '%s'", cfg.Mongo.Collection)
	}

	if len(cfg.Keywords) != 2 || cfg.Keywords[0] != "factura" {
		t.Errorf("Unexpected keywords: %v", cfg.Keywords)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Expected metrics addr ':9100', got '%s'", cfg.Metrics.Addr)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	t.Setenv("IMAP_SERVER", "imap.test.com")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Email.Port != DefaultPort {
		t.Errorf("Expected port %d, got %d", DefaultPort, cfg.Email.Port)
	}
	if cfg.Email.MailBox != "INBOX" {
		t.Errorf("Expected mailbox INBOX, got %s", cfg.Email.MailBox)
	}
	if cfg.Email.PollInterval != time.Minute {
		t.Errorf("Expected poll interval 1m, got %v", cfg.Email.PollInterval)
	}
	if cfg.Mongo.Database != "TicketsMail" || cfg.Mongo.Collection != "tickets" {
		t.Errorf("Unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if len(cfg.Keywords) != len(classifier.DefaultKeywords) {
		t.Errorf("Expected default keywords, got %v", cfg.Keywords)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("Expected metrics disabled, got %q", cfg.Metrics.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("email:\n  imap: from-file\n  login: file-user\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("IMAP_SERVER", "imap.env.com")
	t.Setenv("IMAP_PORT", " 143 ")
	t.Setenv("EMAIL", "env@example.com")
	t.Setenv("PASSWORD", "secret")
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("KEYWORDS", "reclamo,garantía")
	t.Setenv("POLL_INTERVAL", "5m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Email.Imap != "imap.env.com" {
		t.Errorf("Expected env imap, got %s", cfg.Email.Imap)
	}
	if cfg.Email.Port != 143 {
		t.Errorf("Expected port 143, got %d", cfg.Email.Port)
	}
	if cfg.Email.Login != "env@example.com" || cfg.Email.Password != "secret" {
		t.Errorf("Unexpected credentials: %s / %s", cfg.Email.Login, cfg.Email.Password)
	}
	if cfg.Mongo.URI != "mongodb://env:27017" {
		t.Errorf("Expected env mongo uri, got %s", cfg.Mongo.URI)
	}
	if len(cfg.Keywords) != 2 || cfg.Keywords[1] != "garantía" {
		t.Errorf("Unexpected keywords: %v", cfg.Keywords)
	}
	if cfg.Email.PollInterval != 5*time.Minute {
		t.Errorf("Expected 5m, got %v", cfg.Email.PollInterval)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)

	env := "EMAIL=dotenv@example.com\nIMAP_SERVER=imap.dotenv.com\nIMAP_PORT=995\nMONGO_URI=mongodb://dotenv:27017\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("EMAIL")
		_ = os.Unsetenv("IMAP_SERVER")
		_ = os.Unsetenv("IMAP_PORT")
		_ = os.Unsetenv("MONGO_URI")
	})

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Email.Login != "dotenv@example.com" {
		t.Errorf("Expected login from .env, got %s", cfg.Email.Login)
	}
	if cfg.Email.Port != 995 {
		t.Errorf("Expected port 995, got %d", cfg.Email.Port)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	dir := isolate(t)
	t.Setenv("IMAP_PORT", "nine-nine-three")

	if _, err := Load(filepath.Join(dir, "config.yaml")); err == nil {
		t.Fatal("Expected error for non-integer IMAP_PORT")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("email: [unterminated"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "No IMAP server",
			env:  map[string]string{"MONGO_URI": "mongodb://localhost:27017"},
		},
		{
			name: "No Mongo URI",
			env:  map[string]string{"IMAP_SERVER": "imap.test.com"},
		},
		{
			name: "Blank values count as missing",
			env:  map[string]string{"IMAP_SERVER": "", "MONGO_URI": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(filepath.Join(dir, "config.yaml")); err == nil {
				t.Fatal("Expected error for missing required settings")
			}
		})
	}
}

func TestLoad_EmptyKeywordsKeepsDefaults(t *testing.T) {
	for _, value := range []string{"", "   "} {
		t.Run("KEYWORDS="+value, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv("IMAP_SERVER", "imap.test.com")
			t.Setenv("MONGO_URI", "mongodb://localhost:27017")
			t.Setenv("KEYWORDS", value)

			cfg, err := Load(filepath.Join(dir, "config.yaml"))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if len(cfg.Keywords) != len(classifier.DefaultKeywords) {
				t.Errorf("Expected default keywords, got %v", cfg.Keywords)
			}
		})
	}
}
