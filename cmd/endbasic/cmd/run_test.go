package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withTempStore points configPath at a config file whose work_dir is a
// fresh temp directory, so runScript's native.Store never touches the
// repository's own working directory.
func withTempStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "endbasic.yaml")
	yamlText := "work_dir: " + filepath.Join(dir, "progs") + "\n"
	if err := os.WriteFile(cfgPath, []byte(yamlText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	oldConfig := configPath
	configPath = cfgPath
	t.Cleanup(func() { configPath = oldConfig })
}

func TestRunScriptExecutesInlineExpression(t *testing.T) {
	withTempStore(t)
	oldExpr := evalExpr
	evalExpr = `PRINT "hello"`
	defer func() { evalExpr = oldExpr }()

	out, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if strings.TrimRight(out, "\n") != "hello" {
		t.Errorf("output = %q, want %q", out, "hello")
	}
}

func TestRunScriptRequiresFileOrEval(t *testing.T) {
	withTempStore(t)
	oldExpr := evalExpr
	evalExpr = ""
	defer func() { evalExpr = oldExpr }()

	if _, err := captureStdout(t, func() error { return runScript(runCmd, nil) }); err == nil {
		t.Fatal("runScript with neither a file nor -e should fail")
	}
}

func TestRunScriptReportsExecutionFailure(t *testing.T) {
	withTempStore(t)
	oldExpr := evalExpr
	evalExpr = `a% = 1 : a# = 2.0`
	defer func() { evalExpr = oldExpr }()

	if _, err := captureStdout(t, func() error { return runScript(runCmd, nil) }); err == nil {
		t.Fatal("runScript on a program with a type error should fail")
	}
}

func TestRunScriptWithoutAutoSeedRNGIsDeterministicAcrossRuns(t *testing.T) {
	withTempStore(t)
	oldExpr := evalExpr
	evalExpr = "PRINT RND(1)"
	defer func() { evalExpr = oldExpr }()

	first, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	second, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if first != second {
		t.Errorf("with no auto_seed_rng, two runs produced %q and %q, want the same fixed-seed sequence", first, second)
	}
}

func TestRunScriptWithAutoSeedRNGVariesAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "endbasic.yaml")
	yamlText := "work_dir: " + filepath.Join(dir, "progs") + "\nauto_seed_rng: true\n"
	if err := os.WriteFile(cfgPath, []byte(yamlText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	oldConfig := configPath
	configPath = cfgPath
	defer func() { configPath = oldConfig }()

	oldExpr := evalExpr
	evalExpr = "PRINT RND(1)"
	defer func() { evalExpr = oldExpr }()

	first, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	second, err := captureStdout(t, func() error { return runScript(runCmd, nil) })
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if first == second {
		t.Errorf("with auto_seed_rng true, two runs both produced %q, want independently seeded sequences", first)
	}
}

func TestStoreDirPrefersConfiguredWorkDir(t *testing.T) {
	if got, want := storeDir(config{WorkDir: "/configured"}), "/configured"; got != want {
		t.Errorf("storeDir = %q, want %q", got, want)
	}
}

func TestStoreDirFallsBackToCurrentDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd: %v", err)
	}
	if got := storeDir(config{}); got != wd {
		t.Errorf("storeDir(zero config) = %q, want the current directory %q", got, wd)
	}
}
