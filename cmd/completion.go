package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_promptvault() {
    local cur prev words cword
    _init_completion || return

    local commands="add update get history tag promote ls status diff dump restore keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        update|get|history|tag|promote|diff)
            if [[ $cword -eq 2 ]]; then
                local keys
                keys=$(promptvault ls 2>/dev/null | awk '{print $1}')
                COMPREPLY=($(compgen -W "$keys" -- "$cur"))
            fi
            ;;
        dump)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--plain" -- "$cur"))
            else
                _filedir
            fi
            ;;
        restore)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--allow-missing" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _promptvault promptvault
`

const zshCompletion = `#compdef promptvault

_promptvault() {
    local -a commands
    commands=(
        'add:Create a new prompt'
        'update:Add a new version to a prompt'
        'get:Print a prompt version'
        'history:List all versions of a prompt'
        'tag:Point a tag at a version'
        'promote:Point a tag at the latest version'
        'ls:List all prompts'
        'status:Show vault status'
        'diff:Compare two versions of a prompt'
        'dump:Write a vault backup file'
        'restore:Replace the vault from a backup file'
        'keyring:Manage backup password in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'promptvault commands' commands
            ;;
        args)
            case "${words[2]}" in
                update|get|history|tag|promote|diff)
                    _promptvault_keys
                    ;;
                dump)
                    _arguments \
                        '--plain[Write the backup unencrypted]' \
                        '*:file:_files'
                    ;;
                restore)
                    _arguments \
                        '--allow-missing[Reset to an empty vault when the file is missing]' \
                        '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'promptvault commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_promptvault_keys() {
    local -a keys
    keys=(${(f)"$(promptvault ls 2>/dev/null | awk '{print $1}')"})
    _describe -t keys 'prompts' keys
}

_promptvault "$@"
`

const fishCompletion = `# promptvault fish completions

set -l commands add update get history tag promote ls status diff dump restore keyring help completion

complete -c promptvault -f

# Commands
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a add -d 'Create a new prompt'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a update -d 'Add a new version'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a get -d 'Print a prompt version'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a history -d 'List versions of a prompt'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a tag -d 'Point a tag at a version'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a promote -d 'Tag the latest version'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List all prompts'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare two versions'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a dump -d 'Write a vault backup'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a restore -d 'Restore from a backup'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage backup password in OS keyring'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c promptvault -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# Prompt key completion
complete -c promptvault -n "__fish_seen_subcommand_from update get history tag promote diff" -a "(promptvault ls 2>/dev/null | awk '{print \$1}')"

# dump flags
complete -c promptvault -n "__fish_seen_subcommand_from dump" -l plain -d 'Write the backup unencrypted'
complete -c promptvault -n "__fish_seen_subcommand_from dump" -F

# restore flags
complete -c promptvault -n "__fish_seen_subcommand_from restore" -l allow-missing -d 'Reset to empty when the file is missing'
complete -c promptvault -n "__fish_seen_subcommand_from restore" -F

# keyring subcommands
complete -c promptvault -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c promptvault -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c promptvault -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
