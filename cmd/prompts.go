package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

// importResult is the JSON form of prompts init/import.
type importResult struct {
	Read  int `json:"read"`
	Added int `json:"added"`
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage the prompt catalog",
	Long: `List the prompt catalog.

Prompts are stored as markdown files with YAML front matter:

  ---
  id: 101
  category: community
  ---

  Leave a thank-you note for your mail carrier.

Import adds prompts whose ID is not in the catalog yet; existing prompts are
never changed.`,
	Example: `  kindctl prompts
  kindctl prompts init
  kindctl prompts export ./prompts
  kindctl prompts import ./prompts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return promptsListRun(cmd.Context(), os.Stdout)
	},
}

func promptsListRun(ctx context.Context, w io.Writer) error {
	ps, err := svc.Store.ListPrompts(ctx)
	if err != nil {
		return fmt.Errorf("listing prompts: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, ps)
	}
	ui.FormatPromptList(w, ps)
	return nil
}

var promptsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the default prompts into an empty catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return promptsInitRun(cmd.Context(), os.Stdout)
	},
}

func promptsInitRun(ctx context.Context, w io.Writer) error {
	added, err := svc.Selector.InitializeDatabase(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, importResult{Read: len(prompt.Defaults()), Added: added})
	}
	if added == 0 {
		fmt.Fprintln(w, "Catalog already has prompts; nothing to do.")
		return nil
	}
	fmt.Fprintf(w, "Installed %d default prompts.\n", added)
	return nil
}

var promptsImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import markdown prompts from a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return promptsImportRun(cmd.Context(), os.Stdout, args[0])
	},
}

func promptsImportRun(ctx context.Context, w io.Writer, dir string) error {
	ps, err := prompt.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("reading prompts from %s: %w", dir, err)
	}
	added, err := svc.Store.InsertPrompts(ctx, ps)
	if err != nil {
		return fmt.Errorf("importing prompts: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, importResult{Read: len(ps), Added: added})
	}
	fmt.Fprintf(w, "Imported %d of %d prompts from %s.\n", added, len(ps), dir)
	return nil
}

var promptsExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the catalog to a directory as markdown files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return promptsExportRun(cmd.Context(), os.Stdout, args[0])
	},
}

func promptsExportRun(ctx context.Context, w io.Writer, dir string) error {
	ps, err := svc.Store.ListPrompts(ctx)
	if err != nil {
		return fmt.Errorf("listing prompts: %w", err)
	}
	if err := prompt.WriteDir(dir, ps); err != nil {
		return fmt.Errorf("writing prompts to %s: %w", dir, err)
	}
	fmt.Fprintf(w, "Exported %d prompts to %s.\n", len(ps), dir)
	return nil
}

func init() {
	promptsCmd.AddCommand(promptsInitCmd, promptsImportCmd, promptsExportCmd)
	rootCmd.AddCommand(promptsCmd)
}
