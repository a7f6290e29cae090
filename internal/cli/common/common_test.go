package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadWithIncludes(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", "name: gdps\nredis:\n  addr: a:1\n  db: 2\n")
	inc := writeFile(t, dir, "inc.yaml", "redis:\n  addr: b:2\n")

	v, err := LoadWithIncludes(base, []string{inc})
	if err != nil {
		t.Fatal(err)
	}
	if got := v.GetString("redis.addr"); got != "b:2" {
		t.Fatalf("redis.addr = %q", got)
	}
	if got := v.GetInt("redis.db"); got != 2 {
		t.Fatalf("redis.db = %d", got)
	}
	if _, err := LoadWithIncludes(base, []string{filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Fatal("missing include accepted")
	}
}

func TestApplyProfile(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", `
port: 8888
pubsub:
  driver: local
  topic: gdps.control
profiles:
  prod:
    pubsub:
      driver: kafka
`)
	v, err := LoadWithIncludes(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	p, err := ApplyProfile(v, "prod")
	if err != nil {
		t.Fatal(err)
	}
	if p.GetString("pubsub.driver") != "kafka" || p.GetString("pubsub.topic") != "gdps.control" || p.GetInt("port") != 8888 {
		t.Fatalf("settings = %v", p.AllSettings())
	}
	if p.IsSet("profiles") {
		t.Fatal("profiles section kept")
	}
	if _, err := ApplyProfile(v, "staging"); err == nil {
		t.Fatal("unknown profile accepted")
	}
}

func TestSettingsExpandsEnv(t *testing.T) {
	t.Setenv("GDPS_TEST_DSN", "file:test.db")
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", "database:\n  datasource: ${GDPS_TEST_DSN}\n")
	v, err := LoadWithIncludes(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	db := Settings(v)["database"].(map[string]any)
	if db["datasource"] != "file:test.db" {
		t.Fatalf("datasource = %v", db["datasource"])
	}
}

func TestValidateSchema(t *testing.T) {
	schema := []byte(`{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "port": {"type": "integer", "minimum": 1}
  }
}`)
	if err := ValidateSchema(schema, map[string]any{"name": "gdps", "port": 8888}); err != nil {
		t.Fatal(err)
	}
	err := ValidateSchema(schema, map[string]any{"port": 0})
	if err == nil || !strings.Contains(err.Error(), "name") || !strings.Contains(err.Error(), "port") {
		t.Fatalf("err = %v", err)
	}
}
