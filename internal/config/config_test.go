package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":8080" || c.Server.BasePath != "/api" {
		t.Errorf("server defaults = %+v", c.Server)
	}
	if c.Auth.TokenTTLHours != 24 {
		t.Errorf("token ttl = %d", c.Auth.TokenTTLHours)
	}
	if c.Admin.Email != "admin" {
		t.Errorf("admin email = %q", c.Admin.Email)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	workspace := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workspace, ".ostrack"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c := Default()
	c.Server.Addr = ":9090"
	c.Auth.JWTSecret = "s3cret"
	if err := Save(workspace, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(workspace)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Server.Addr != ":9090" || got.Auth.JWTSecret != "s3cret" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestFromYAMLValidation(t *testing.T) {
	if _, err := FromYAML([]byte("server:\n  addr: \"\"\n")); err == nil || !strings.Contains(err.Error(), "addr") {
		t.Fatalf("expected addr validation error, got %v", err)
	}
	if _, err := FromYAML([]byte("auth:\n  token_ttl_hours: 0\n")); err == nil || !strings.Contains(err.Error(), "token_ttl") {
		t.Fatalf("expected ttl validation error, got %v", err)
	}
	if _, err := FromYAML([]byte("not: [valid")); err == nil {
		t.Fatal("expected parse error")
	}
}
