package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/live-labs/promptvault/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(os.Args[2:])
	case "update":
		runUpdate(os.Args[2:])
	case "get":
		runGet(os.Args[2:])
	case "history":
		runHistory(os.Args[2:])
	case "tag":
		runTag(os.Args[2:])
	case "promote":
		runPromote(os.Args[2:])
	case "ls":
		runLs(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "dump":
		runDump(os.Args[2:])
	case "restore":
		runRestore(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault add <key> [content]")
		os.Exit(1)
	}
	cmd.Add(fs.Arg(0), fs.Arg(1))
}

func runUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	message := fs.String("m", "", "Message describing the change")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault update [-m message] <key> [content]")
		os.Exit(1)
	}
	cmd.Update(fs.Arg(0), fs.Arg(1), *message)
}

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	output := fs.String("o", "", "Write content to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault get [-o file] <key> [version|tag|latest]")
		os.Exit(1)
	}
	cmd.Get(fs.Arg(0), fs.Arg(1), *output)
}

func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault history <key>")
		os.Exit(1)
	}
	cmd.History(fs.Arg(0))
}

func runTag(args []string) {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault tag <key> <name> [version]")
		os.Exit(1)
	}
	cmd.Tag(fs.Arg(0), fs.Arg(1), fs.Arg(2))
}

func runPromote(args []string) {
	fs := flag.NewFlagSet("promote", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault promote <key> <name>")
		os.Exit(1)
	}
	cmd.Promote(fs.Arg(0), fs.Arg(1))
}

func runLs(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.List()
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault diff <key> <from> [to]")
		os.Exit(1)
	}
	cmd.Diff(fs.Arg(0), fs.Arg(1), fs.Arg(2))
}

func runDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	plain := fs.Bool("plain", false, "Write the backup unencrypted")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault dump [--plain] <file>")
		os.Exit(1)
	}
	cmd.Dump(fs.Arg(0), *plain)
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	allowMissing := fs.Bool("allow-missing", false, "Reset to an empty vault when the file is missing")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault restore [--allow-missing] <file>")
		os.Exit(1)
	}
	cmd.Restore(fs.Arg(0), *allowMissing)
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault keyring <save|delete|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave()
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: promptvault keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: promptvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("promptvault - Versioned prompt storage with tags and encrypted backups")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  promptvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add         Create a new prompt")
	fmt.Println("  update      Add a new version to a prompt")
	fmt.Println("  get         Print a prompt version")
	fmt.Println("  history     List all versions of a prompt")
	fmt.Println("  tag         Point a tag at a version")
	fmt.Println("  promote     Point a tag at the latest version")
	fmt.Println("  ls          List all prompts")
	fmt.Println("  status      Show vault status")
	fmt.Println("  diff        Compare two versions of a prompt")
	fmt.Println("  dump        Write a vault backup file")
	fmt.Println("  restore     Replace the vault from a backup file")
	fmt.Println("  keyring     Manage backup password in OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  promptvault add greeting \"Hello, {name}!\"   # Create a prompt")
	fmt.Println("  promptvault update greeting < greeting.txt  # New version from stdin")
	fmt.Println("  promptvault tag greeting prod 2             # Tag version 2 as prod")
	fmt.Println("  promptvault get greeting prod               # Read the prod version")
	fmt.Println()
	fmt.Println("Use 'promptvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "add":
		fmt.Println("promptvault add <key> [content]")
		fmt.Println()
		fmt.Println("Creates a new prompt under key with version 1, tagged dev.")
		fmt.Println("When content is omitted or \"-\", it is read from stdin.")
		fmt.Println("Fails if the key already exists; use 'update' for new versions.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault add greeting \"Hello, {name}!\"")
		fmt.Println("  cat greeting.txt | promptvault add greeting")
	case "update":
		fmt.Println("promptvault update [-m message] <key> [content]")
		fmt.Println()
		fmt.Println("Appends a new version to an existing prompt and moves the dev")
		fmt.Println("tag to it. Existing versions are never modified.")
		fmt.Println("When content is omitted or \"-\", it is read from stdin.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -m    Message describing the change")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault update -m \"shorter wording\" greeting \"Hi, {name}!\"")
		fmt.Println("  promptvault update greeting < greeting.txt")
	case "get":
		fmt.Println("promptvault get [-o file] <key> [version|tag|latest]")
		fmt.Println()
		fmt.Println("Prints the selected version of a prompt. The selector is a")
		fmt.Println("version number, a tag name, or \"latest\"; omitted means latest.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o    Write content to file instead of stdout")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault get greeting          # Latest version")
		fmt.Println("  promptvault get greeting 2        # Version 2")
		fmt.Println("  promptvault get greeting prod     # Version tagged prod")
	case "history":
		fmt.Println("promptvault history <key>")
		fmt.Println()
		fmt.Println("Lists all versions of a prompt, oldest first, with timestamps,")
		fmt.Println("tags and messages.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  promptvault history greeting")
	case "tag":
		fmt.Println("promptvault tag <key> <name> [version]")
		fmt.Println()
		fmt.Println("Points a tag at a version of a prompt, replacing any previous")
		fmt.Println("target of the same name. When version is omitted the latest")
		fmt.Println("version is used. The dev tag is managed automatically and can")
		fmt.Println("only be pointed at the latest version.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault tag greeting prod 2")
		fmt.Println("  promptvault tag greeting staging")
	case "promote":
		fmt.Println("promptvault promote <key> <name>")
		fmt.Println()
		fmt.Println("Points a tag at the latest version of a prompt. Shorthand for")
		fmt.Println("'tag' without a version argument.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  promptvault promote greeting prod")
	case "ls":
		fmt.Println("promptvault ls")
		fmt.Println()
		fmt.Println("Lists every prompt key with its version count and tags.")
	case "status":
		fmt.Println("promptvault status")
		fmt.Println()
		fmt.Println("Shows vault totals: prompt, version and tag counts, the")
		fmt.Println("database path, last modification time and keyring state.")
	case "diff":
		fmt.Println("promptvault diff <key> <from> [to]")
		fmt.Println()
		fmt.Println("Prints a unified diff between two versions of a prompt.")
		fmt.Println("Selectors are version numbers, tag names, or \"latest\"; when")
		fmt.Println("to is omitted the latest version is used.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault diff greeting 1 2")
		fmt.Println("  promptvault diff greeting prod       # prod vs latest")
	case "dump":
		fmt.Println("promptvault dump [--plain] <file>")
		fmt.Println()
		fmt.Println("Writes the whole vault to a backup file. The file is written")
		fmt.Println("atomically and encrypted with a password unless --plain is")
		fmt.Println("given. The password comes from PROMPTVAULT_PASSWORD, the OS")
		fmt.Println("keyring, or an interactive prompt, in that order.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --plain    Write the backup unencrypted")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault dump prompts.vault")
		fmt.Println("  promptvault dump --plain prompts.vault")
	case "restore":
		fmt.Println("promptvault restore [--allow-missing] <file>")
		fmt.Println()
		fmt.Println("Replaces the entire live vault with the contents of a backup")
		fmt.Println("file. The previous state is discarded; on any failure the")
		fmt.Println("vault is left untouched.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --allow-missing    Reset to an empty vault when the file is missing")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  promptvault restore prompts.vault")
		fmt.Println("  promptvault restore --allow-missing prompts.vault")
	case "keyring":
		fmt.Println("promptvault keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the backup password in the OS keyring so dump and")
		fmt.Println("restore do not have to prompt for it.")
		fmt.Println()
		fmt.Println("Subcommands:")
		fmt.Println("  save      Store the backup password")
		fmt.Println("  delete    Remove the stored password")
		fmt.Println("  status    Check whether a password is stored")
	case "completion":
		fmt.Println("promptvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(promptvault completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(promptvault completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  promptvault completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
