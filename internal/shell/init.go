package shell

import (
	"fmt"
	"io"
)

// Shells lists the shells WriteInit supports.
var Shells = []string{"bash", "zsh"}

const bashInit = `# kindctl shell integration
__kindctl_prompt_hook() {
  eval "$(command kindctl status --env 2>/dev/null)"
}

kindctl_prompt_info() {
  command kindctl status 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__kindctl_prompt_hook"
else
  PROMPT_COMMAND="__kindctl_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command kindctl completion bash 2>/dev/null)"
`

const zshInit = `# kindctl shell integration
__kindctl_prompt_hook() {
  eval "$(command kindctl status --env 2>/dev/null)"
}

kindctl_prompt_info() {
  command kindctl status 2>/dev/null
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd __kindctl_prompt_hook

eval "$(command kindctl completion zsh 2>/dev/null)"
`

// WriteInit writes the integration script for shell to w.
func WriteInit(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		_, err := io.WriteString(w, bashInit)
		return err
	case "zsh":
		_, err := io.WriteString(w, zshInit)
		return err
	}
	return fmt.Errorf("unsupported shell %q (supported: bash, zsh)", shell)
}
