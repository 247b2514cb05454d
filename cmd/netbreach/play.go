package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/platform/tui"
	"github.com/vovakirdan/netbreach/internal/session"
	"github.com/vovakirdan/netbreach/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a new run on the world map.

Map controls:
  Up/Down    - Move the target cursor
  Enter      - Select target
  H          - Hack the selected target
  A          - Attack from the selected (compromised) target
  U          - Upgrade shop
  Q/Ctrl+C   - Quit

Firewall round:
  Space      - Shoot
  P          - Pause
  X/Esc      - Abort (detection +15%)
  1-4        - Perks: clear, extra balls, explosive, slow down

Examples:
  netbreach play
  netbreach play --difficulty extreme
  netbreach play --config ./my-netbreach.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early for the menu
	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	if flagDifficulty != "" {
		d, parseErr := config.ParseDifficulty(flagDifficulty)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			os.Exit(1)
		}
		cfg.Difficulty = d
	} else {
		d, ok, menuErr := tui.RunMenu(cfg, rt.ScreenW, rt.ScreenH)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			os.Exit(1)
		}
		// User quit from the menu
		if !ok {
			return
		}
		cfg.Difficulty = d
	}

	logger, closeLog := openLogger(flagLogFile, flagDebug)
	defer closeLog()

	opts := session.Options{
		Config: cfg,
		Seed:   flagSeed,
		Logger: logger,
	}

	// Open run ledger
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		logger.Warn("could not open run ledger", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Ledger = store
	}

	logger.Info("starting run", "difficulty", cfg.Difficulty, "fps", flagFPS, "seed", flagSeed, "ledger", flagDBPath)
	if runErr := tui.Run(opts, rt, logger); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogger writes logs to a file so they do not corrupt the alt screen.
// Falls back to discarding logs when the file cannot be opened.
func openLogger(path string, debug bool) (*log.Logger, func()) {
	w := io.Discard
	closeFn := func() {}

	if path != "" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			//#nosec G304 -- path comes from the command line
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				w = f
				closeFn = func() { _ = f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "netbreach",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
