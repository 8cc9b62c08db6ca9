package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes body to a config file in a fresh temp dir.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Book.Duplicates != "overwrite" {
		t.Errorf("default duplicates = %q, want %q", cfg.Book.Duplicates, "overwrite")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("default format = %q, want %q", cfg.Output.Format, "text")
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("default color = %q, want %q", cfg.Output.Color, "auto")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "warn")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	cfgPath := writeConfig(t, `
book:
  duplicates: reject
output:
  format: yaml
  color: never
log:
  level: debug
seed: demo
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Book:   Book{Duplicates: "reject"},
		Output: Output{Format: "yaml", Color: "never"},
		Log:    Log{Level: "debug"},
		Seed:   "demo",
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, "{{invalid yaml")

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	cfgPath := writeConfig(t, `
output:
  color: always
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Color != "always" {
		t.Errorf("color = %q, want %q", cfg.Output.Color, "always")
	}
	// Unset fields should retain defaults.
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want default %q", cfg.Output.Format, "text")
	}
	if cfg.Book.Duplicates != "overwrite" {
		t.Errorf("duplicates = %q, want default %q", cfg.Book.Duplicates, "overwrite")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := writeConfig(t, `
output:
  colour: never
`)

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'colour'")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# just a comment\n"))
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("Load(comment-only) = %+v, want defaults", *cfg)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("Load(empty) = %+v, want defaults", *cfg)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given a user config that sets format and duplicates,
	// and a project config that overrides only duplicates
	userCfg := writeConfig(t, `
book:
  duplicates: reject
output:
  format: yaml
`)
	projectCfg := writeConfig(t, `
book:
  duplicates: overwrite
`)

	// When both layers are loaded
	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then the project layer wins where it is set
	if cfg.Book.Duplicates != "overwrite" {
		t.Errorf("duplicates = %q, want %q", cfg.Book.Duplicates, "overwrite")
	}
	// And the user layer survives where the project is silent
	if cfg.Output.Format != "yaml" {
		t.Errorf("format = %q, want %q", cfg.Output.Format, "yaml")
	}
	// And defaults fill the rest
	if cfg.Output.Color != "auto" {
		t.Errorf("color = %q, want default %q", cfg.Output.Color, "auto")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", *cfg)
	}
}

func TestLoadLayered_UnknownField(t *testing.T) {
	bad := writeConfig(t, "book:\n  dupes: reject\n")
	if _, err := LoadLayered(bad); err == nil {
		t.Fatal("LoadLayered() should return error for unknown field 'dupes'")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		envs  map[string]string
		check func(*testing.T, Config)
	}{
		{
			name: "ADDRESSBOOK_DUPLICATES overrides duplicates",
			envs: map[string]string{"ADDRESSBOOK_DUPLICATES": "reject"},
			check: func(t *testing.T, c Config) {
				if c.Book.Duplicates != "reject" {
					t.Errorf("duplicates = %q, want %q", c.Book.Duplicates, "reject")
				}
			},
		},
		{
			name: "ADDRESSBOOK_FORMAT overrides format",
			envs: map[string]string{"ADDRESSBOOK_FORMAT": "yaml"},
			check: func(t *testing.T, c Config) {
				if c.Output.Format != "yaml" {
					t.Errorf("format = %q, want %q", c.Output.Format, "yaml")
				}
			},
		},
		{
			name: "ADDRESSBOOK_COLOR overrides color",
			envs: map[string]string{"ADDRESSBOOK_COLOR": "never"},
			check: func(t *testing.T, c Config) {
				if c.Output.Color != "never" {
					t.Errorf("color = %q, want %q", c.Output.Color, "never")
				}
			},
		},
		{
			name: "ADDRESSBOOK_LOG_LEVEL overrides level",
			envs: map[string]string{"ADDRESSBOOK_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "debug" {
					t.Errorf("level = %q, want %q", c.Log.Level, "debug")
				}
			},
		},
		{
			name: "ADDRESSBOOK_SEED overrides seed",
			envs: map[string]string{"ADDRESSBOOK_SEED": "demo"},
			check: func(t *testing.T, c Config) {
				if c.Seed != "demo" {
					t.Errorf("seed = %q, want %q", c.Seed, "demo")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "reject duplicates",
			modify: func(c *Config) { c.Book.Duplicates = "reject" },
		},
		{
			name:    "unknown duplicates policy",
			modify:  func(c *Config) { c.Book.Duplicates = "merge" },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "json" },
			wantErr: true,
		},
		{
			name:    "empty color",
			modify:  func(c *Config) { c.Output.Color = "" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
