// ABOUTME: Tests for the .env loader: parsing, quoting, comments, and the
// ABOUTME: no-clobber rule for variables already in the environment.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDotEnvBasic(t *testing.T) {
	t.Setenv("SECWEEKLY_TEST_A", "")
	os.Unsetenv("SECWEEKLY_TEST_A")

	path := writeEnvFile(t, "SECWEEKLY_TEST_A=hello\n")
	loadDotEnv(path)

	if got := os.Getenv("SECWEEKLY_TEST_A"); got != "hello" {
		t.Errorf("SECWEEKLY_TEST_A = %q", got)
	}
}

func TestLoadDotEnvQuotesAndComments(t *testing.T) {
	for _, key := range []string{"SECWEEKLY_TEST_B", "SECWEEKLY_TEST_C", "SECWEEKLY_TEST_D"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := writeEnvFile(t, `# comment line
SECWEEKLY_TEST_B="double quoted"
SECWEEKLY_TEST_C='single quoted'
export SECWEEKLY_TEST_D=exported=value
`)
	loadDotEnv(path)

	if got := os.Getenv("SECWEEKLY_TEST_B"); got != "double quoted" {
		t.Errorf("SECWEEKLY_TEST_B = %q", got)
	}
	if got := os.Getenv("SECWEEKLY_TEST_C"); got != "single quoted" {
		t.Errorf("SECWEEKLY_TEST_C = %q", got)
	}
	if got := os.Getenv("SECWEEKLY_TEST_D"); got != "exported=value" {
		t.Errorf("SECWEEKLY_TEST_D = %q", got)
	}
}

func TestLoadDotEnvDoesNotClobber(t *testing.T) {
	t.Setenv("SECWEEKLY_TEST_E", "original")

	path := writeEnvFile(t, "SECWEEKLY_TEST_E=overwritten\n")
	loadDotEnv(path)

	if got := os.Getenv("SECWEEKLY_TEST_E"); got != "original" {
		t.Errorf("SECWEEKLY_TEST_E = %q, want original", got)
	}
}

func TestLoadDotEnvMissingFileIsNoop(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
}

func TestLoadDotEnvAutoSearchesParents(t *testing.T) {
	t.Setenv("SECWEEKLY_TEST_F", "")
	os.Unsetenv("SECWEEKLY_TEST_F")

	parent := t.TempDir()
	if err := os.WriteFile(filepath.Join(parent, ".env"), []byte("SECWEEKLY_TEST_F=fromparent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	child := filepath.Join(parent, "nested", "deeper")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Chdir(child)
	loadDotEnvAuto()

	if got := os.Getenv("SECWEEKLY_TEST_F"); got != "fromparent" {
		t.Errorf("SECWEEKLY_TEST_F = %q, want fromparent", got)
	}
}
