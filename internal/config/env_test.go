package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	t.Run("set variable wins", func(t *testing.T) {
		t.Setenv("INKFRAME_TEST_VAL", "direct")
		if got := Get("INKFRAME_TEST_VAL", "fallback"); got != "direct" {
			t.Errorf("Get = %q, want %q", got, "direct")
		}
	})

	t.Run("file indirection", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		t.Setenv("INKFRAME_TEST_FILEVAL_FILE", path)
		if got := Get("INKFRAME_TEST_FILEVAL", "fallback"); got != "from-file" {
			t.Errorf("Get = %q, want %q", got, "from-file")
		}
	})

	t.Run("default", func(t *testing.T) {
		if got := Get("INKFRAME_TEST_UNSET", "fallback"); got != "fallback" {
			t.Errorf("Get = %q, want %q", got, "fallback")
		}
	})
}

func TestGetInt(t *testing.T) {
	t.Setenv("INKFRAME_TEST_INT", "42")
	if got := GetInt("INKFRAME_TEST_INT", 7); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	t.Setenv("INKFRAME_TEST_INT", "not-a-number")
	if got := GetInt("INKFRAME_TEST_INT", 7); got != 7 {
		t.Errorf("GetInt = %d, want default 7", got)
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{"go syntax", "45s", time.Minute, 45 * time.Second},
		{"bare seconds", "90", time.Minute, 90 * time.Second},
		{"garbage falls back", "soon", time.Minute, time.Minute},
		{"unset falls back", "", time.Minute, time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("INKFRAME_TEST_DUR", tt.value)
			}
			if got := GetDuration("INKFRAME_TEST_DUR", tt.def); got != tt.want {
				t.Errorf("GetDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
