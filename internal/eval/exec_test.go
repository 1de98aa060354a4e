package eval

import (
	"context"
	"testing"
)

func TestIfGuardMustBeBoolean(t *testing.T) {
	_, m := newTestMachine()
	err := m.RunSource(context.Background(), "IF 1 THEN\nPRINT 1\nEND IF")
	if err == nil {
		t.Fatal("IF with a non-BOOLEAN guard should be a type error")
	}
}

func TestElseifChainPicksFirstTrueBranch(t *testing.T) {
	console, m := newTestMachine()
	src := `a% = 2
IF a% = 1 THEN
PRINT "one"
ELSEIF a% = 2 THEN
PRINT "two"
ELSEIF a% = 2 THEN
PRINT "also two"
ELSE
PRINT "other"
END IF`
	if err := m.RunSource(context.Background(), src); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if got, want := console.Out.String(), "two\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWhileLoopRuns(t *testing.T) {
	console, m := newTestMachine()
	src := "a% = 0\nWHILE a% < 3\nPRINT a%\na% = a% + 1\nEND WHILE"
	if err := m.RunSource(context.Background(), src); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if got, want := console.Out.String(), "0\n1\n2\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWhileGuardMustBeBoolean(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "WHILE 1\nEND WHILE"); err == nil {
		t.Fatal("WHILE with a non-BOOLEAN guard should be a type error")
	}
}

func TestNestedForCannotReuseOuterControlVariable(t *testing.T) {
	_, m := newTestMachine()
	src := "FOR i = 1 TO 2\nFOR i = 1 TO 2\nNEXT\nNEXT"
	if err := m.RunSource(context.Background(), src); err == nil {
		t.Fatal("a nested FOR reusing the enclosing control variable should fail")
	}
}

func TestForStepZeroIsRejected(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "FOR i = 1 TO 10 STEP 0\nNEXT"); err == nil {
		t.Fatal("FOR with STEP 0 should fail")
	}
}

func TestForEndKindMustMatchStartKind(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), `FOR i = 1 TO "x"` + "\nNEXT"); err == nil {
		t.Fatal("FOR with a start/end kind mismatch should be a type error")
	}
}

func TestExitStopsExecutionMidProgram(t *testing.T) {
	console, m := newTestMachine()
	src := `PRINT "before" : EXIT 1 : PRINT "after"`
	if err := m.RunSource(context.Background(), src); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if got, want := console.Out.String(), "before\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	exited, code := m.Exited()
	if !exited || code != 1 {
		t.Errorf("Exited() = (%v, %d), want (true, 1)", exited, code)
	}
}

func TestExitInsideLoopStopsTheLoop(t *testing.T) {
	console, m := newTestMachine()
	src := "FOR i = 1 TO 5\nPRINT i\nIF i = 2 THEN\nEXIT\nEND IF\nNEXT"
	if err := m.RunSource(context.Background(), src); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if got, want := console.Out.String(), "1\n2\n"; got != want {
		t.Errorf("output = %q, want %q (loop should stop once EXIT runs)", got, want)
	}
}

func TestDimDeclaresVariableWithZeroValue(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "DIM n AS INTEGER"); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	slot, ok := m.Vars().Get("N")
	if !ok {
		t.Fatal("DIM should define the variable")
	}
	if slot.Value.String() != "0" {
		t.Errorf("N after DIM = %v, want the zero value 0", slot.Value)
	}
}

func TestCallingAFunctionAsACommandIsAnError(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "LEN"); err == nil {
		t.Fatal("calling a Function from statement position should fail")
	}
}

func TestCallingAnUndefinedCommandIsANameError(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "NOSUCHCOMMAND"); err == nil {
		t.Fatal("calling an undefined command should be a name error")
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	_, m := newTestMachine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(ctx, mustParse(t, "PRINT 1"))
	if err == nil {
		t.Fatal("Run should report an error once its context is already cancelled")
	}
}
