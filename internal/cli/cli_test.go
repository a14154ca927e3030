package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/droidpowers/droidpowers/internal/installer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestHelp(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("--help: %v", err)
	}
	for _, want := range []string{"Usage:", "install", "doctor", "publish"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if stdout != "droidpowers v1.2.3\n" {
		t.Errorf("--version = %q", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "1.2.3\n" {
		t.Errorf("version --short = %q", stdout)
	}

	stdout, _, err = runCLI(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("version --json is not JSON: %v\n%s", err, stdout)
	}
	if info["version"] != "1.2.3" || info["commit"] != "abc123" {
		t.Errorf("version --json = %v", info)
	}
}

func TestInstall(t *testing.T) {
	isolate(t)
	templates := setupTemplates(t)
	project := setupProject(t)

	stdout, stderr, err := runCLI(t, "install", project, "--templates", templates)
	if err != nil {
		t.Fatalf("install: %v\nstderr: %s", err, stderr)
	}

	for _, want := range []string{"✓ .factory/ added", "✓ AGENTS.md.template added", "installed successfully", "Next steps:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("install output missing %q:\n%s", want, stdout)
		}
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	assertFile(t, filepath.Join(project, ".factory", "droids", "planner.md"), "planner\n")
	assertFile(t, filepath.Join(project, "AGENTS.md.template"), "agents\n")
}

func TestInstallTwiceNeedsForce(t *testing.T) {
	isolate(t)
	templates := setupTemplates(t)
	project := setupProject(t)

	if _, _, err := runCLI(t, "install", project, "--templates", templates); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(project, "AGENTS.md.template"), "customized\n")

	_, stderr, err := runCLI(t, "install", project, "--templates", templates)
	if err == nil {
		t.Fatal("second install without --force should fail")
	}
	if !strings.HasPrefix(stderr, "❌ ") || !strings.Contains(stderr, "already exists") {
		t.Errorf("stderr = %q", stderr)
	}

	stdout, _, err := runCLI(t, "install", project, "--templates", templates, "--force")
	if err != nil {
		t.Fatalf("install --force: %v", err)
	}
	if !strings.Contains(stdout, "AGENTS.md.template already present (kept)") {
		t.Errorf("install --force output:\n%s", stdout)
	}
	assertFile(t, filepath.Join(project, "AGENTS.md.template"), "customized\n")
}

func TestInstallWarnsOutsideProject(t *testing.T) {
	isolate(t)
	templates := setupTemplates(t)

	_, stderr, err := runCLI(t, "install", t.TempDir(), "--templates", templates)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(stderr, "this does not appear to be a project directory"); n != 1 {
		t.Errorf("project warning printed %d times, want once; stderr = %q", n, stderr)
	}
	if !strings.HasPrefix(stderr, "⚠️  ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestInstallMissingTarget(t *testing.T) {
	isolate(t)
	templates := setupTemplates(t)

	_, stderr, err := runCLI(t, "install", filepath.Join(t.TempDir(), "nope"), "--templates", templates)
	if err == nil {
		t.Fatal("expected error for missing target")
	}
	if !strings.Contains(stderr, "does not exist") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestInstallChecksTargetBeforeTemplates(t *testing.T) {
	isolate(t)
	missingTarget := filepath.Join(t.TempDir(), "nope")
	missingTemplates := filepath.Join(t.TempDir(), "no-templates")

	for _, command := range []string{"install", "doctor"} {
		t.Run(command, func(t *testing.T) {
			_, _, err := runCLI(t, command, missingTarget, "--templates", missingTemplates)
			var notFound *installer.TargetNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("error = %v (%T), want *installer.TargetNotFoundError", err, err)
			}
		})
	}
}

func TestInstallWithUnusableLockDir(t *testing.T) {
	isolate(t)
	home := filepath.Join(t.TempDir(), "home")
	writeTestFile(t, home, "not a directory")
	t.Setenv("DROIDPOWERS_HOME", home)
	templates := setupTemplates(t)
	project := setupProject(t)

	_, stderr, err := runCLI(t, "install", project, "--templates", templates)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if !strings.Contains(stderr, "⚠️  continuing without install lock") {
		t.Errorf("stderr = %q", stderr)
	}
	assertFile(t, filepath.Join(project, ".factory", "droids", "planner.md"), "planner\n")
}

func TestDoctor(t *testing.T) {
	isolate(t)
	templates := setupTemplates(t)
	project := setupProject(t)

	_, _, err := runCLI(t, "doctor", project, "--templates", templates)
	if err == nil {
		t.Fatal("doctor before install should report missing assets")
	}

	if _, _, err := runCLI(t, "install", project, "--templates", templates); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := runCLI(t, "doctor", project, "--templates", templates)
	if err != nil {
		t.Fatalf("doctor after install: %v", err)
	}
	if !strings.Contains(stdout, "Installation looks good") {
		t.Errorf("doctor output:\n%s", stdout)
	}

	writeTestFile(t, filepath.Join(project, "AGENTS.md.template"), "agents\nlocal rules\n")
	stdout, _, err = runCLI(t, "doctor", project, "--templates", templates, "--diff")
	if err != nil {
		t.Fatalf("doctor --diff: %v", err)
	}
	for _, want := range []string{"modified: AGENTS.md.template", "--- bundled/AGENTS.md.template", "+local rules"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("doctor --diff output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigSetGet(t *testing.T) {
	home := isolate(t)

	stdout, _, err := runCLI(t, "config", "set", "publish.test_script", "make test")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "Set publish.test_script = make test\n" {
		t.Errorf("config set = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	viper.Reset()
	stdout, _, err = runCLI(t, "config", "get", "publish.test_script")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "make test\n" {
		t.Errorf("config get = %q", stdout)
	}
}

func TestPublishRejectsUnknownBump(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, "publish", "--bump", "huge", "--dir", t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown bump")
	}
	if !strings.Contains(stderr, "unknown version bump") {
		t.Errorf("stderr = %q", stderr)
	}
}

// ─── Test Helpers ───

// isolate points the config directory at a temp dir and clears viper state.
// It returns the config directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DROIDPOWERS_HOME", home)
	t.Setenv("DROIDPOWERS_TEMPLATES", "")
	t.Setenv("NO_COLOR", "1")
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background(), "1.2.3", "abc123", "2026-01-01")
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag in the tree to its default so one run's
// flags do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func setupTemplates(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".factory", "droids", "planner.md"), "planner\n")
	writeTestFile(t, filepath.Join(root, ".factory", "commands", "review.md"), "review\n")
	writeTestFile(t, filepath.Join(root, "AGENTS.md.template"), "agents\n")
	writeTestFile(t, filepath.Join(root, "DSM_README.md"), "dsm\n")
	return root
}

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "package.json"), `{"name":"app","version":"1.0.0"}`)
	return dir
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", path, got, want)
	}
}
