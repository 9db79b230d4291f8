// Package conformance_test runs the chemprog binary against the fixtures in
// testdata/. Each fixture directory holds a steps.yml or steps.toml document,
// the expected stdout in expected.txt, and optionally an args file (one CLI
// argument per line), an expected-exit file, and a .chemprog.yml config.
//
// TestMain builds the binary once into a temporary directory before any test
// runs, then removes the directory on exit.
package conformance_test

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// chemprogBinary is the absolute path to the compiled binary, set by TestMain.
var chemprogBinary string

const fixturesDir = "testdata"

func TestMain(m *testing.M) {
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		fmt.Fprintf(os.Stderr, "filepath.Abs: %v\n", err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "conformance-chemprog-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "os.MkdirTemp: %v\n", err)
		os.Exit(1)
	}

	chemprogBinary = filepath.Join(tmpDir, "chemprog")
	build := exec.Command("go", "build", "-o", chemprogBinary, ".")
	build.Dir = repoRoot
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "go build failed: %v\n%s\n", err, out)
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// TestConformance_PseudoFixtures runs `chemprog pseudo` for every fixture
// directory and compares stdout and the exit code.
func TestConformance_PseudoFixtures(t *testing.T) {
	entries, err := os.ReadDir(fixturesDir)
	if err != nil {
		t.Fatalf("os.ReadDir(%s): %v", fixturesDir, err)
	}

	ran := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fixturePath := filepath.Join(fixturesDir, entry.Name())
		t.Run(entry.Name(), func(t *testing.T) {
			runPseudoFixture(t, fixturePath)
		})
		ran++
	}
	if ran == 0 {
		t.Fatal("no fixtures found")
	}
}

func runPseudoFixture(t *testing.T, fixturePath string) {
	t.Helper()

	skipIfMissingFiles(t, fixturePath, []string{"expected.txt"})

	stepsFile := findStepsFile(t, fixturePath)
	args := append([]string{"pseudo"}, readArgs(t, fixturePath)...)
	args = append(args, stepsFile)

	cmd := exec.Command(chemprogBinary, args...)
	cmd.Dir = fixturePath
	stdout, runErr := cmd.Output()

	exitCode := 0
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	} else if runErr != nil {
		t.Fatalf("chemprog pseudo: %v", runErr)
	}

	if want := readExpectedExit(t, fixturePath); exitCode != want {
		t.Errorf("exit code = %d, want %d (stderr: %s)", exitCode, want, stderrOf(runErr))
	}

	expected, err := os.ReadFile(filepath.Join(fixturePath, "expected.txt"))
	if err != nil {
		t.Fatalf("reading expected.txt: %v", err)
	}
	if string(stdout) != string(expected) {
		t.Errorf("stdout mismatch\ngot:\n%s\nwant:\n%s", stdout, expected)
	}
}

func findStepsFile(t *testing.T, dir string) string {
	t.Helper()
	for _, name := range []string{"steps.yml", "steps.yaml", "steps.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	t.Fatalf("no steps document in %s", dir)
	return ""
}

func readArgs(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "args"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading args: %v", err)
	}
	var args []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			args = append(args, line)
		}
	}
	return args
}

func readExpectedExit(t *testing.T, dir string) int {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "expected-exit"))
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	if err != nil {
		t.Fatalf("reading expected-exit: %v", err)
	}
	code, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatalf("parsing expected-exit: %v", err)
	}
	return code
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(exitErr.Stderr)
	}
	return ""
}

func skipIfMissingFiles(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Skipf("required file %q missing; skipping", f)
		}
	}
}
