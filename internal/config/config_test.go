package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := GetEnvString("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("got %q", got)
	}
	if got := GetEnvString("TEST_STRING_UNSET", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "42", want: 42},
		{name: "garbage", value: "abc", want: 7},
		{name: "empty", value: "", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := GetEnvInt("TEST_INT", 7); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "T", want: true},
		{value: "false", want: false},
		{value: "0", want: false},
		{value: "maybe", want: true}, // falls back to default
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := GetEnvBool("TEST_BOOL", true); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	if got := GetEnvDuration("TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("got %v", got)
	}
	t.Setenv("TEST_DUR", "soon")
	if got := GetEnvDuration("TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("got %v, want default", got)
	}
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "tech, business , ,science")
	got := GetEnvStringList("TEST_LIST", nil)
	want := []string{"tech", "business", "science"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "valid", secret: "an-acceptably-long-signing-secret-0123", wantErr: false},
		{name: "missing", secret: "", wantErr: true},
		{name: "too short", secret: "short", wantErr: true},
		{name: "weak value", secret: "password", wantErr: true},
		{name: "weak with suffix", secret: "secret123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			got, err := LoadJWTSecret()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.secret {
				t.Errorf("secret = %q", got)
			}
		})
	}
}

func TestLoadWorkerConfig_Defaults(t *testing.T) {
	cfg, err := LoadWorkerConfig()
	if err != nil {
		t.Fatalf("LoadWorkerConfig err=%v", err)
	}
	if cfg.CronSchedule != "*/30 * * * *" {
		t.Errorf("schedule = %q", cfg.CronSchedule)
	}
	if len(cfg.Topics) != 3 {
		t.Errorf("topics = %v", cfg.Topics)
	}
	if !cfg.WarmFeatured {
		t.Error("WarmFeatured = false, want true by default")
	}
}

func TestLoadWorkerConfig_WarmFeaturedDisabled(t *testing.T) {
	t.Setenv("WORKER_WARM_FEATURED", "false")

	cfg, err := LoadWorkerConfig()
	if err != nil {
		t.Fatalf("LoadWorkerConfig err=%v", err)
	}
	if cfg.WarmFeatured {
		t.Error("WarmFeatured = true, want env override to false")
	}
}

func TestLoadWorkerConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.yaml")
	content := []byte(`
cron_schedule: "0 * * * *"
topics:
  - sports
articles_per_run: 20
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORKER_CONFIG_FILE", path)
	t.Setenv("WORKER_TOPICS", "health,gaming")

	cfg, err := LoadWorkerConfig()
	if err != nil {
		t.Fatalf("LoadWorkerConfig err=%v", err)
	}
	if cfg.CronSchedule != "0 * * * *" {
		t.Errorf("schedule = %q, want file value", cfg.CronSchedule)
	}
	if cfg.ArticlesPerRun != 20 {
		t.Errorf("articles_per_run = %d, want file value", cfg.ArticlesPerRun)
	}
	// Env wins over the file.
	if len(cfg.Topics) != 2 || cfg.Topics[0] != "health" {
		t.Errorf("topics = %v, want env value", cfg.Topics)
	}
}

func TestLoadWorkerConfig_Invalid(t *testing.T) {
	t.Setenv("WORKER_ARTICLES_PER_RUN", "-5")
	if _, err := LoadWorkerConfig(); err == nil {
		t.Fatal("expected validation error")
	}
}
