package native

import (
	"fmt"
	"os"
	"os/exec"
)

// Editor opens the user's $EDITOR (falling back to "vi") against a
// temporary file pre-loaded with the current program text, the
// conventional Go-CLI way of delegating full-screen editing rather than
// embedding a text-editing widget: nothing in the dependency stack this
// repository draws on is a terminal UI toolkit.
type Editor struct{}

func (Editor) Edit(currentText string) (string, error) {
	f, err := os.CreateTemp("", "endbasic-*.bas")
	if err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(currentText); err != nil {
		f.Close()
		return "", fmt.Errorf("editor: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}
	return string(edited), nil
}
