package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gzctime/internal/calendar"
	"gzctime/internal/zone"
)

func TestLoadCreatesDefault(t *testing.T) {
	for _, name := range []string{"gzctime.yaml", "gzctime.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Listen != defaultListen || cfg.Epoch != "wide" || cfg.ICS.MaxOccurrences != defaultMaxOccurrences {
				t.Errorf("Load() = %+v, want defaults", cfg)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("config file not created: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0o600 {
				t.Errorf("permissions = %o, want 600", perm)
			}

			again, err := Load(path)
			if err != nil {
				t.Fatalf("reload error: %v", err)
			}
			if *again != *cfg {
				t.Errorf("reload = %+v, want %+v", again, cfg)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gzctime.toml")
	data := `
listen = ":9000"
timezone = "UTC"
epoch = "Y2038"
default_zone = "DST+01:00"

[ics]
max_occurrences = 10

[basic_auth]
username = "admin"
password = "secret"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.Mode() != calendar.Y2038 || cfg.ICS.MaxOccurrences != 10 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.ICS.ProductID != defaultProductID || cfg.ClockCron != defaultClockCron {
		t.Errorf("defaults not filled in: %+v", cfg)
	}
	if cfg.BasicAuth == nil || cfg.BasicAuth.Username != "admin" {
		t.Errorf("basic auth = %+v", cfg.BasicAuth)
	}
	r, err := cfg.Request()
	if err != nil {
		t.Fatal(err)
	}
	if r != zone.GeographicTo(zone.Hours(1), zone.Active) {
		t.Errorf("Request() = %v", r)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gzctime.yaml")
	data := "listen: \":7000\"\nepoch: bogus\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Listen != ":7000" || cfg.Epoch != "wide" || cfg.LogLevel != "debug" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("listen: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of broken YAML should fail")
	}
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") should fail")
	}
}

func TestEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	e, err := cfg.Engine()
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	c, err := e.ToCalendar(0, zone.Local())
	if err != nil || c.Hour != 0 || c.Year != 1970 {
		t.Errorf("ToCalendar(0) = %v, %v", c, err)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Engine(); !errors.Is(err, zone.ErrPlatformUnavailable) {
		t.Errorf("Engine() error = %v, want ErrPlatformUnavailable", err)
	}

	cfg.DefaultZone = "sometimes"
	if _, err := cfg.Request(); err == nil {
		t.Error("Request() should reject an unknown zone")
	}
}
