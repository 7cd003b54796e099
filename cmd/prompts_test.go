package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-regnier/kindctl/internal/prompt"
)

func TestPromptsInitThenList(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := promptsListRun(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No prompts in the catalog") {
		t.Errorf("empty catalog output = %q", buf.String())
	}

	buf.Reset()
	if err := promptsInitRun(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Installed") {
		t.Errorf("init output = %q", buf.String())
	}

	buf.Reset()
	if err := promptsInitRun(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "nothing to do") {
		t.Errorf("second init output = %q", buf.String())
	}

	buf.Reset()
	if err := promptsListRun(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(prompt.Defaults()) {
		t.Errorf("listed %d prompts, want %d", len(lines), len(prompt.Defaults()))
	}
}

func TestPromptsImportAndExport(t *testing.T) {
	s := setupTestEnv(t)
	ctx := context.Background()

	dir := t.TempDir()
	extra := []prompt.Prompt{
		{ID: 901, Text: "Return a shopping cart for someone.", Category: "courtesy"},
		{ID: 902, Text: "Bake something for a neighbor.", Category: "community"},
	}
	if err := prompt.WriteDir(dir, extra); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := promptsImportRun(ctx, &buf, dir); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Imported 2 of 2") {
		t.Errorf("import output = %q", buf.String())
	}

	buf.Reset()
	if err := promptsImportRun(ctx, &buf, dir); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Imported 0 of 2") {
		t.Errorf("re-import output = %q", buf.String())
	}

	out := filepath.Join(t.TempDir(), "export")
	buf.Reset()
	if err := promptsExportRun(ctx, &buf, out); err != nil {
		t.Fatal(err)
	}
	back, err := prompt.LoadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := s.Store.CountPrompts(ctx)
	if len(back) != n || n != 2 {
		t.Errorf("exported %d prompts, catalog has %d", len(back), n)
	}
}
