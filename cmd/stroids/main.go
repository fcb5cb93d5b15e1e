package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/draw"
	"github.com/tomz197/stroids/internal/input"
	"github.com/tomz197/stroids/internal/loop"
)

const defaultHeadlessDuration = 30 * time.Second

func main() {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := newLogger(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	settings := config.FromEnv()
	game, err := loop.New(settings, loop.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create game: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if interactive {
		err = runInteractive(ctx, game, logger)
	} else {
		err = runHeadless(ctx, game, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the logger from STROIDS_LOG_LEVEL and STROIDS_LOG_FILE.
// The interactive session owns the terminal, so without a log file it
// logs nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if interactive {
		w = io.Discard
	}
	if path := config.GetEnv("STROIDS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	level, err := log.ParseLevel(config.GetEnv("STROIDS_LOG_LEVEL", "info"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "stroids",
	})
	return logger, closeFn, nil
}

// runInteractive plays the game in the terminal with mouse input.
func runInteractive(ctx context.Context, game *loop.Game, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		logger.Info("interactive session", "cols", w, "rows", h)
	}

	renderer := draw.NewRenderer(screen)
	stream := input.StartStream(screen, renderer)
	return loop.Run(ctx, game, stream, renderer, game.Settings().TickRate)
}

// runHeadless lets an autopilot play for STROIDS_HEADLESS_DURATION and logs
// a summary of every round.
func runHeadless(ctx context.Context, game *loop.Game, logger *log.Logger) error {
	duration := config.GetEnvDuration("STROIDS_HEADLESS_DURATION", defaultHeadlessDuration)
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	pilot := newAutopilot(game, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)))
	report := &roundReport{logger: logger}
	logger.Info("headless session", "duration", duration)

	err := loop.Run(ctx, game, pilot, report, game.Settings().TickRate)
	report.finish(game)
	return err
}
