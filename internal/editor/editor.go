// Package editor edits completion notes in the user's external editor.
package editor

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// commentPrefix marks instruction lines that are stripped from the result.
const commentPrefix = "#"

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Template builds the editor buffer for notes on a prompt: commented header
// lines describing the prompt followed by the current notes.
func Template(promptText, date, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", commentPrefix, promptText)
	fmt.Fprintf(&b, "%s Notes for %s. Lines starting with %q are ignored.\n", commentPrefix, date, commentPrefix)
	b.WriteString(notes)
	if notes != "" && !strings.HasSuffix(notes, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// StripComments drops comment lines and surrounding blank space.
func StripComments(s string) string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Edit opens initial in the editor and returns the notes the user saved,
// with comment lines removed. changed is false when the notes are the same
// as before.
func Edit(editorCmd string, initial string) (notes string, changed bool, err error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, errors.New("empty editor command")
	}

	tmp, err := os.CreateTemp("", "kindctl-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command(parts[0], append(parts[1:], tmpName)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	before := StripComments(initial)
	after := StripComments(string(data))
	return after, after != before, nil
}
