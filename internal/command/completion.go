package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/farelens/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for farelens
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_farelens()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cq tq dq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --local --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    cq)
      local opts="$common --schema --in -i --cabin --point-value --stops --nodedupe --nocache"
            ;;
        tq)
      local opts="$common --schema --in -i --cabin --point-value --top --nocache"
            ;;
        dq)
      local opts="$common --in -i --older --newer --terse"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--cabin" ]]; then
        COMPREPLY=( $(compgen -W "economy premium business first" -- "$cur") )
        return 0
    fi

  # If current token starts with '-', offer flags
  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise complete files for the document refs
  COMPREPLY=( $(compgen -o default -- "$cur") )
  return 0
}

complete -F _farelens farelens
`

const zshCompletionScript = `#compdef farelens

_farelens() {
  local -a cmds
  cmds=(
    'cq:cluster query'
    'tq:tab price query'
    'dq:fare document diff'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--local[render timestamps in local timezone]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'farelens commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    cq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-i --in)'{-i,--in}'[fare document]:file:_files' \
        '--cabin[cabin to include]:cabin:(economy premium business first)' \
        '--point-value[cash value of one mile]:value' \
        '--stops[stop section to activate]:stops' \
        '--nodedupe[keep duplicate signatures separate]' \
        '--nocache[bypass the result cache]'
      ;;
    tq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-i --in)'{-i,--in}'[fare document]:file:_files' \
        '--cabin[cabin to include]:cabin:(economy premium business first)' \
        '--point-value[cash value of one mile]:value' \
        '--top[show auto-enrichment candidates]' \
        '--nocache[bypass the result cache]'
      ;;
    dq)
      _arguments -C \
        $common \
        '(-i --in)'{-i,--in}'[versioned fare document]:file:_files' \
        '--older[older fare document]:file:_files' \
        '--newer[newer fare document]:file:_files' \
        '--terse[only report change counts]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _farelens farelens
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: farelens completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "farelens completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
