package config

import "testing"

func setGatewayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PG_USER", "app")
	t.Setenv("PG_HOST", "db.local")
	t.Setenv("PG_DATABASE", "salud")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_PORT", "5432")
}

func TestLoadDefaults(t *testing.T) {
	setGatewayEnv(t)
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.OpenAI.Model != "gpt-4o-realtime-preview-2024-12-17" {
		t.Fatalf("unexpected model %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.TokenVoice != "verse" || cfg.OpenAI.SessionVoice != "coral" {
		t.Fatalf("unexpected voices: %+v", cfg.OpenAI)
	}
}

func TestLoadMissingDBVars(t *testing.T) {
	setGatewayEnv(t)
	t.Setenv("PG_HOST", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing PG_HOST")
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	setGatewayEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{User: "app", Password: "pw", Host: "db", Port: "5432", Database: "salud", SSLMode: "require"}
	want := "user=app password=pw host=db port=5432 dbname=salud sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Fatalf("unexpected DSN: %q", got)
	}
}
