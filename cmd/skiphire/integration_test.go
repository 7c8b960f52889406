package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/skiphire/internal/tuitest"
)

func TestSelectSkipOnSecondPageAndContinue(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary and drives it through a PTY")
	}
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--source", "mock", "--delay", "50ms"},
		Dir:     t.TempDir(),
		Env:     isolatedEnv(t),
		Width:   100,
		Height:  40,
		Steps: []tuitest.Step{
			tuitest.WaitFor("Page 1/2", []byte("n")),
			tuitest.WaitFor("Page 2/2", tuitest.KeyEnter),
			tuitest.WaitFor("Selected Skip", []byte("c")),
		},
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if !rec.Contains("Choose Your Perfect Skip") {
		t.Fatalf("hero never rendered:\n%s", rec.Output())
	}
	if !rec.Contains("16 Yard Skip - £") {
		t.Fatalf("selection summary never rendered:\n%s", rec.Output())
	}
	if out := rec.Output(); !strings.Contains(out, "Selected skip: 16-yard") {
		t.Fatalf("hand-off missing from output:\n%s", out)
	}
}

func TestRetryAfterFailedLoadThenGoBack(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary and drives it through a PTY")
	}
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--delay", "50ms", "--fail-first", "1"},
		Dir:     t.TempDir(),
		Env:     isolatedEnv(t),
		Width:   100,
		Height:  40,
		Steps: []tuitest.Step{
			tuitest.WaitFor("Try Again", []byte("r")),
			tuitest.WaitFor("Page 1/2", []byte("b")),
		},
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if !rec.Contains("Failed to load skip options") {
		t.Fatalf("error screen never rendered:\n%s", rec.Output())
	}
	if _, ok := rec.LastFrameContaining("Page 1/2"); !ok {
		t.Fatalf("catalog never loaded after retry:\n%s", rec.Output())
	}
	if out := rec.Output(); !strings.Contains(out, "Returning to Waste Type.") {
		t.Fatalf("back hand-off missing from output:\n%s", out)
	}
}

func TestCatalogCommandPrintsTable(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	t.Parallel()

	binary := buildBinary(t, moduleDir(t))
	cmd := exec.Command(binary, "catalog", "--delay", "0s")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), isolatedEnv(t)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("catalog command: %v\n%s", err, output)
	}
	for _, want := range []string{"4-yard", "20-yard", "£227", "8 skip options"} {
		if !strings.Contains(string(output), want) {
			t.Fatalf("catalog output missing %q:\n%s", want, output)
		}
	}
}

func isolatedEnv(t *testing.T) []string {
	t.Helper()
	return []string{
		"XDG_CONFIG_HOME=" + t.TempDir(),
		"XDG_STATE_HOME=" + t.TempDir(),
		"SKIPHIRE_CONFIG=",
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	tmp := t.TempDir()
	name := "skiphire-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(tmp, name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
