package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadInto_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
name: meetscribe
environment: staging
speech:
  region: westeurope
  result_ttl_hours: 12
storage:
  bucket: audio-staging
server:
  port: 9090
`)

	var cfg Config
	if err := LoadInto(ServiceName, &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Speech.Region != "westeurope" {
		t.Errorf("Speech.Region = %q", cfg.Speech.Region)
	}
	if cfg.Speech.ResultTTLHours != 12 {
		t.Errorf("Speech.ResultTTLHours = %d", cfg.Speech.ResultTTLHours)
	}
	if cfg.Storage.Bucket != "audio-staging" {
		t.Errorf("Storage.Bucket = %q", cfg.Storage.Bucket)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
}

func TestLoadInto_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
speech:
  region: eastus
`)
	t.Setenv("SPEECH_REGION", "japaneast")
	t.Setenv("SPEECH_KEY", "env-secret")

	var cfg Config
	if err := LoadInto(ServiceName, &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if cfg.Speech.Region != "japaneast" {
		t.Errorf("Speech.Region = %q, want the env value", cfg.Speech.Region)
	}
	if cfg.Speech.Key != "env-secret" {
		t.Errorf("Speech.Key = %q", cfg.Speech.Key)
	}
}

func TestLoadInto_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "STORAGE_ACCESS_KEY=minio\nSTORAGE_SECRET_KEY=minio123\n")

	var cfg Config
	if err := LoadInto(ServiceName, &cfg, WithEnvFile(envFile)); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if cfg.Storage.AccessKey != "minio" {
		t.Errorf("Storage.AccessKey = %q", cfg.Storage.AccessKey)
	}
	if cfg.Storage.SecretKey != "minio123" {
		t.Errorf("Storage.SecretKey = %q", cfg.Storage.SecretKey)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Name != ServiceName {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default on in development")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug in development", cfg.Logging.Level)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Speech.ResultTTLHours != 24 {
		t.Errorf("Speech.ResultTTLHours = %d", cfg.Speech.ResultTTLHours)
	}
	if cfg.Storage.Provider == "" {
		t.Error("Storage.Provider not defaulted")
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Environment = "production"
	cfg.Speech.Key = "secret"
	cfg.Speech.Region = "eastus"
	cfg.Storage.Bucket = "audio"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := cfg
	bad.Environment = "qa"
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for an invalid environment")
	}

	bad = cfg
	bad.Speech.Key = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for a missing speech key")
	}
}
