package cmd

import (
	"os"

	"github.com/chris-regnier/kindctl/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Shell completions
- Prompt hook exporting KINDCTL_TODAY and KINDCTL_STREAK
- kindctl_prompt_info helper function

Supported shells: bash, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(kindctl init bash)"

  # Add to ~/.zshrc
  eval "$(kindctl init zsh)"`,
	Args:        cobra.ExactArgs(1),
	ValidArgs:   shell.Shells,
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.WriteInit(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
