package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\nLOG_LEVEL=debug\n\nWEB_PORT = 9443\nBROKEN_LINE\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("WEB_PORT")
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("WEB_PORT")
	})

	if err := LoadEnv(envPath); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if got := os.Getenv("LOG_LEVEL"); got != "debug" {
		t.Errorf("LOG_LEVEL = %q, want debug", got)
	}
	if got := os.Getenv("WEB_PORT"); got != "9443" {
		t.Errorf("WEB_PORT = %q, want 9443", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "does-not-exist.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestGenerateSessionID(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	if len(a) != 16 {
		t.Errorf("session id length = %d, want 16", len(a))
	}
	if a == b {
		t.Error("two generated session ids are equal")
	}
}
