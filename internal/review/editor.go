package review

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// OpenInEditor blocks while the user edits path in their editor. An empty
// editor falls back to vi. Editor values may carry arguments ("code --wait").
func OpenInEditor(path, editor string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	args := append(parts[1:], path)

	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", editor, err)
	}
	return nil
}
