package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Title.Fallback != "" || cfg.Title.FileName != "" {
		t.Errorf("Title = %+v, want empty", cfg.Title)
	}
	if cfg.Page != (PageConfig{}) {
		t.Errorf("Page = %+v, want zero", cfg.Page)
	}
	if !cfg.Code.HighlightEnabled() {
		t.Error("Code.HighlightEnabled() = false, want true")
	}
	if len(cfg.Output.Formats) != 0 {
		t.Errorf("Output.Formats = %v, want empty", cfg.Output.Formats)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
		{name: "length counts bytes", value: "特許明細書", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	off := false

	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{name: "nil config", cfg: nil},
		{
			name: "full valid config",
			cfg: &Config{
				Title:  TitleConfig{Fallback: "特許明細書草案", FileName: "draft"},
				Page:   PageConfig{Size: "A4", Orientation: "Landscape", Margin: 1},
				Fonts:  FontsConfig{CJK: "/usr/share/fonts/ipaexg.ttf"},
				Code:   CodeConfig{Highlight: &off, Style: "monokai"},
				Output: OutputConfig{DefaultDir: "out", Formats: []string{"pdf", ".DOCX"}},
			},
		},
		{
			name:    "fallback title too long",
			cfg:     &Config{Title: TitleConfig{Fallback: strings.Repeat("x", MaxTitleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "file name with separator",
			cfg:     &Config{Title: TitleConfig{FileName: "a/b"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown page size",
			cfg:     &Config{Page: PageConfig{Size: "b5"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "page size too long",
			cfg:     &Config{Page: PageConfig{Size: "extra-large-size"}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown orientation",
			cfg:     &Config{Page: PageConfig{Orientation: "upright"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative margin",
			cfg:     &Config{Page: PageConfig{Margin: -1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "style too long",
			cfg:     &Config{Code: CodeConfig{Style: strings.Repeat("s", MaxStyleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown output format",
			cfg:     &Config{Output: OutputConfig{Formats: []string{"pdf", "odt"}}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCodeConfig_HighlightEnabled(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name string
		cfg  CodeConfig
		want bool
	}{
		{name: "unset", cfg: CodeConfig{}, want: true},
		{name: "true", cfg: CodeConfig{Highlight: &on}, want: true},
		{name: "false", cfg: CodeConfig{Highlight: &off}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HighlightEnabled(); got != tt.want {
				t.Errorf("HighlightEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `title:
  fallback: "無題"
  fileName: "untitled"
page:
  size: "letter"
  orientation: "landscape"
  margin: 1.0
fonts:
  cjk: "/fonts/ipaexg.ttf"
code:
  highlight: false
  style: "monokai"
input:
  defaultDir: "/path/to/input"
output:
  defaultDir: "/path/to/output"
  formats: ["pdf"]
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Title.Fallback != "無題" || cfg.Title.FileName != "untitled" {
			t.Errorf("Title = %+v", cfg.Title)
		}
		if cfg.Page != (PageConfig{Size: "letter", Orientation: "landscape", Margin: 1}) {
			t.Errorf("Page = %+v", cfg.Page)
		}
		if cfg.Fonts.CJK != "/fonts/ipaexg.ttf" {
			t.Errorf("Fonts.CJK = %q", cfg.Fonts.CJK)
		}
		if cfg.Code.HighlightEnabled() || cfg.Code.Style != "monokai" {
			t.Errorf("Code = highlight %v style %q, want false/monokai", cfg.Code.HighlightEnabled(), cfg.Code.Style)
		}
		if cfg.Input.DefaultDir != "/path/to/input" {
			t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
		}
		if cfg.Output.DefaultDir != "/path/to/output" || len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "pdf" {
			t.Errorf("Output = %+v", cfg.Output)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "page: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "style: \"default\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value is rejected after parsing", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "page:\n  size: \"tabloid\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name prefers yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yaml", "code:\n  style: \"yaml\"\n")
		writeConfig(t, dir, "myconfig.yml", "code:\n  style: \"yml\"\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Code.Style != "yaml" {
			t.Errorf("Code.Style = %q, want %q (should prefer .yaml)", cfg.Code.Style, "yaml")
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		if got, err := os.UserConfigDir(); err != nil || got != home {
			t.Skip("user config dir does not follow XDG_CONFIG_HOME on this platform")
		}

		appConfigDir := filepath.Join(home, appDir)
		if err := os.MkdirAll(appConfigDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appConfigDir, "testconfig.yml", "code:\n  style: \"userdir\"\n")
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("testconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Code.Style != "userdir" {
			t.Errorf("Code.Style = %q, want %q", cfg.Code.Style, "userdir")
		}
	})

	t.Run("config name not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nonexistent.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}
