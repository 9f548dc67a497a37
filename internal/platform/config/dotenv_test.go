package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "feed.env")
	if err := os.WriteFile(p, []byte("FEED_TEST_DOTENV_A=from-file\nFEED_TEST_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEED_TEST_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("FEED_TEST_DOTENV_A") })

	if err := LoadDotenv(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	c := New().Prefix("FEED_TEST_DOTENV_")
	if got := c.MayString("A", ""); got != "from-file" {
		t.Fatalf("A = %q", got)
	}
	if got := c.MayString("B", ""); got != "from-env" {
		t.Fatalf("B = %q, env must win", got)
	}
}
