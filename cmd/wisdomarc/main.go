package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wisdomarc/internal/config"
	"wisdomarc/internal/conversation"
	"wisdomarc/internal/logging"
	"wisdomarc/internal/tui"
	"wisdomarc/internal/wisdom"
)

func main() {
	cfg := config.Parse()

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisdomarc: cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := wisdom.NewClient(cfg.APIURL, cfg.CacheSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisdomarc: %v\n", err)
		os.Exit(1)
	}

	model := tui.New(client, conversation.NewStore(), logger, cfg.StageInterval)
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wisdomarc fatal error: %v\n", err)
		os.Exit(1)
	}
}
