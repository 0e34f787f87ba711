package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"consolebot/internal/console"
	"consolebot/internal/host"
	"consolebot/internal/logging"
	"consolebot/internal/textbackend"
)

// runConsole wires the host framework to the text backend and serves until
// the input ends or the process is interrupted.
func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	framework := host.New(cfg, logging.Get(logger, logging.CategoryHost))

	var opts []textbackend.Option
	if asUser != "" {
		opts = append(opts, textbackend.WithUser(asUser))
	}
	backend, err := textbackend.New(cfg, framework, logging.Get(logger, logging.CategoryBackend), opts...)
	if err != nil {
		return fmt.Errorf("failed to start text backend: %w", err)
	}
	framework.SetBackend(backend)

	if !cfg.Text.DemoMode {
		printBanner(cmd.ErrOrStderr(), cfg.BotPrefix)
	}
	return backend.Serve(ctx)
}

func printBanner(w io.Writer, prefix string) {
	styles := console.NewStyles(w, console.ColorEnabled())
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintln(w, styles.Banner.Render("consolebot text backend"))
	fmt.Fprintf(w, "Commands start with %q. Try %shelp, %sinroom or %sasuser bob.\n", prefix, prefix, prefix, prefix)
	fmt.Fprintln(w, "Ctrl-D or Ctrl-C ends the session.")
	fmt.Fprintln(w, strings.Repeat("─", 60))
}
