package builtins_test

import (
	"context"
	"strings"
	"testing"
)

func TestClearDiscardsVariables(t *testing.T) {
	m := newMachine()
	ctx := context.Background()
	if err := m.RunSource(ctx, "a% = 1"); err != nil {
		t.Fatalf("assignment: %v", err)
	}
	if err := m.RunSource(ctx, "CLEAR"); err != nil {
		t.Fatalf("CLEAR: %v", err)
	}
	if m.Vars().Has("A") {
		t.Error("CLEAR should drop all variables")
	}
}

func TestClearRejectsArguments(t *testing.T) {
	m := newMachine()
	if err := m.RunSource(context.Background(), "CLEAR 1"); err == nil {
		t.Fatal("CLEAR takes no arguments")
	}
}

func TestExitSetsExitedStateAndStopsExecution(t *testing.T) {
	console, m := newConsoleMachine()
	if err := m.RunSource(context.Background(), `EXIT 2 : PRINT "unreachable"`); err != nil {
		t.Fatalf("EXIT: %v", err)
	}
	exited, code := m.Exited()
	if !exited || code != 2 {
		t.Errorf("Exited() = (%v, %d), want (true, 2)", exited, code)
	}
	if console.Out.String() != "" {
		t.Errorf("statement after EXIT should not run, got output %q", console.Out.String())
	}
}

func TestExitDefaultsToZero(t *testing.T) {
	m := newMachine()
	if err := m.RunSource(context.Background(), "EXIT"); err != nil {
		t.Fatalf("EXIT: %v", err)
	}
	exited, code := m.Exited()
	if !exited || code != 0 {
		t.Errorf("Exited() = (%v, %d), want (true, 0)", exited, code)
	}
}

func TestHelpWithNoArgumentListsEveryCategory(t *testing.T) {
	console, m := newConsoleMachine()
	if err := m.RunSource(context.Background(), "HELP"); err != nil {
		t.Fatalf("HELP: %v", err)
	}
	out := console.Out.String()
	for _, want := range []string{"CLEAR", "PRINT", "LEN", "RND", "SAVE"} {
		if !strings.Contains(out, want) {
			t.Errorf("HELP index missing builtin %q, got:\n%s", want, out)
		}
	}
}

func TestHelpWithTopicUsesHelpTopicsJSON(t *testing.T) {
	console, m := newConsoleMachine()
	if err := m.RunSource(context.Background(), `HELP "RND"`); err != nil {
		t.Fatalf("HELP: %v", err)
	}
	if got := console.Out.String(); !strings.Contains(got, "pseudo-random") {
		t.Errorf("HELP \"RND\" = %q, want the help_topics.json description", got)
	}
}

func TestHelpWithUnknownTopicFails(t *testing.T) {
	m := newMachine()
	if err := m.RunSource(context.Background(), `HELP "NOSUCHTHING"`); err == nil {
		t.Fatal("HELP with an unknown topic should fail")
	}
}
