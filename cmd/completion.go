package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/gopher-go/internal/config"
)

var (
	completionCommands = []string{
		"chat", "tui", "list", "do", "init", "config", "logs", "doctor", "completion", "version", "help",
	}
	completionFlags = []string{
		"-tasks", "-ui", "-log-level", "-log-format", "-log-dir", "-log-timestamps",
		"-log-caller", "-find-cache", "-help", "-version",
	}
	completionSessionWords = []string{
		"todo", "deadline", "event", "list", "mark", "unmark", "delete", "find", "update", "bye",
	}
)

// completionCommand prints a shell completion script.
func completionCommand(_ *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gopher completion <bash|zsh|fish>")
	}

	commands := strings.Join(completionCommands, " ")
	flags := strings.Join(completionFlags, " ")
	words := strings.Join(completionSessionWords, " ")

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, commands, flags, words)
	case "zsh":
		fmt.Printf(zshCompletion, commands, flags, words)
	case "fish":
		fmt.Printf(fishCompletion, commands, flags, words)
	default:
		return fmt.Errorf("unsupported shell %q, use bash, zsh or fish", args[0])
	}
	return nil
}

const bashCompletion = `# gopher bash completion
_gopher() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        -ui) COMPREPLY=($(compgen -W "console tui" -- "$cur")); return ;;
        -log-level) COMPREPLY=($(compgen -W "debug info warn error" -- "$cur")); return ;;
        -log-format) COMPREPLY=($(compgen -W "text json logfmt" -- "$cur")); return ;;
        -tasks|-log-dir) COMPREPLY=($(compgen -f -- "$cur")); return ;;
        do) COMPREPLY=($(compgen -W "%[3]s" -- "$cur")); return ;;
    esac
    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%[2]s" -- "$cur"))
    else
        COMPREPLY=($(compgen -W "%[1]s" -- "$cur"))
    fi
}
complete -F _gopher gopher
`

const zshCompletion = `#compdef gopher
# gopher zsh completion
_gopher() {
    if [[ "${words[CURRENT-1]}" == "do" ]]; then
        compadd -- %[3]s
        return
    fi
    if [[ "$PREFIX" == -* ]]; then
        compadd -- %[2]s
    else
        compadd -- %[1]s
    fi
}
compdef _gopher gopher
`

const fishCompletion = `# gopher fish completion
complete -c gopher -f
complete -c gopher -n "__fish_use_subcommand" -a "%[1]s"
complete -c gopher -n "__fish_seen_subcommand_from do" -a "%[3]s"
for flag in %[2]s
    complete -c gopher -o (string trim -l -c - -- $flag)
end
`
