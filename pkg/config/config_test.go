package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("NAV_TEST_NAME", "board")
	p := writeFile(t, "name: ${NAV_TEST_NAME}\nport: 9000\n")

	var got sample
	if err := Load(p, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "board" || got.Port != 9000 {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	p := writeFile(t, "name: x\n")
	var got sample
	if err := Load(p, &got); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	got := sample{Name: "default", Port: 8080}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &got); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if got.Name != "default" || got.Port != 8080 {
		t.Errorf("got %+v", got)
	}

	var empty sample
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &empty); err == nil {
		t.Error("defaults should still be validated")
	}
}

func TestLoadOptional_OverridesDefaults(t *testing.T) {
	p := writeFile(t, "port: 9100\n")
	got := sample{Name: "default", Port: 8080}
	if err := LoadOptional(p, &got); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if got.Name != "default" || got.Port != 9100 {
		t.Errorf("got %+v", got)
	}
}
