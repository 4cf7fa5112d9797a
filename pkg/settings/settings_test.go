package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileIsEmpty(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s.DefaultOrgID != "" || s.EnvFile != "" {
		t.Errorf("expected empty settings, got %+v", s)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.yaml")
	s := &Settings{
		DefaultOrgID: "203d3d02-dbbd-4c1c-8549-76896a3330f4",
		EnvFile:      "/tmp/.mist_env",
		ReportDir:    "/tmp/reports",
	}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *got != *s {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, s)
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("default_org_id: [not a scalar"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFallbacks(t *testing.T) {
	s := &Settings{}
	if got := s.GetEnvFile(); got != "~/.mist_env" {
		t.Errorf("GetEnvFile = %q", got)
	}
	if got := s.GetLogFile(); got != "./script.log" {
		t.Errorf("GetLogFile = %q", got)
	}
	s.EnvFile = "/etc/mist_env"
	if got := s.GetEnvFile(); got != "/etc/mist_env" {
		t.Errorf("override GetEnvFile = %q", got)
	}
}
