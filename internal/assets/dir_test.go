package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTheme creates dir/sub/name with content.
func writeTheme(t *testing.T, dir, sub, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, sub, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDir_InvalidPath(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "theme.css")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"", "/nonexistent/theme/abc123", file} {
		if _, err := OpenDir(dir); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("OpenDir(%q) error = %v, want ErrInvalidBasePath", dir, err)
		}
	}
}

func TestOpenDir_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "styles", "site.css", "body{}")

	theme, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if css, err := theme.LoadStyle("site"); err != nil || css != "body{}" {
		t.Errorf("LoadStyle(site) = %q, %v", css, err)
	}
	if _, err := theme.LoadStyle("print"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(print) error = %v, want ErrStyleNotFound", err)
	}
}

func TestOpenDir_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(dir, "styles", "leak.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	theme, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	css, err := theme.LoadStyle("leak")
	if err == nil {
		t.Fatalf("LoadStyle(leak) = %q, want error", css)
	}
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle(leak) error = %v, want ErrAssetRead", err)
	}
}
