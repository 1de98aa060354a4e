package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

func TestLexScriptTokenizesInlineExpression(t *testing.T) {
	old := lexEvalExpr
	oldPos, oldType, oldErrs := showPos, showType, onlyErrors
	lexEvalExpr = "PRINT 1"
	defer func() {
		lexEvalExpr, showPos, showType, onlyErrors = old, oldPos, oldType, oldErrs
	}()

	out, err := captureStdout(t, func() error { return lexScript(lexCmd, nil) })
	if err != nil {
		t.Fatalf("lexScript: %v", err)
	}
	if !strings.Contains(out, `"PRINT"`) || !strings.Contains(out, `"1"`) {
		t.Errorf("output %q missing expected tokens", out)
	}
}

func TestLexScriptOnlyErrorsReportsIllegalTokens(t *testing.T) {
	old := lexEvalExpr
	oldErrs := onlyErrors
	lexEvalExpr = "a @ b"
	onlyErrors = true
	defer func() { lexEvalExpr, onlyErrors = old, oldErrs }()

	_, err := captureStdout(t, func() error { return lexScript(lexCmd, nil) })
	if err == nil {
		t.Fatal("lexScript --only-errors should fail when an illegal token is present")
	}
}

func TestLexScriptRequiresFileOrEval(t *testing.T) {
	old := lexEvalExpr
	lexEvalExpr = ""
	defer func() { lexEvalExpr = old }()

	if _, err := captureStdout(t, func() error { return lexScript(lexCmd, nil) }); err == nil {
		t.Fatal("lexScript with neither a file nor -e should fail")
	}
}
