// Package main provides an interactive shell for experimenting with an emitter.
//
// Usage:
//
//	emitterctl [-config emitter.yaml]
//
// Type help at the prompt for the list of commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/emitter"
	"github.com/rickchristie/emitter/internal/shell"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("emitterctl", flag.ContinueOnError)
	configPath := flags.String("config", "", "YAML configuration file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	completions := make([]readline.PrefixCompleterInterface, 0, len(shell.Commands))
	for _, cmd := range shell.Commands {
		completions = append(completions, readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "emitter> " + colorReset,
		AutoComplete:    readline.NewPrefixCompleter(completions...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	sh := shell.New(emitter.NewWithConfig(cfg), rl.Stdout())

	fmt.Printf("%s%sEvent Emitter Shell%s %s(max listeners: %d, type help)%s\n\n",
		colorBold, colorYellow, colorReset,
		colorDim, cfg.MaxListeners, colorReset)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if strings.TrimSpace(line) == "" {
					break
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		err = sh.Exec(line)
		if errors.Is(err, shell.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(rl.Stderr(),
				"%s%v%s\n",
				colorRed, err, colorReset)
		}
	}

	fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
	return nil
}

func loadConfig(path string) (emitter.Config, error) {
	if path == "" {
		return emitter.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return emitter.Config{}, fmt.Errorf(
			"failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := emitter.LoadConfig(f)
	if err != nil {
		return emitter.Config{}, fmt.Errorf(
			"failed to load %s: %w", path, err)
	}
	return cfg, nil
}
