// Command picksctl is an operator console for the picks API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/magentamen/picks/external/picksapi"
	"github.com/magentamen/picks/internal/platform/logging"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	level := logging.LevelWarn
	if raw := strings.TrimSpace(os.Getenv("PICKSCTL_LOG_LEVEL")); raw != "" {
		if parsed, err := logging.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	logger := logging.NewConsole(level)
	defer func() { _ = logger.Sync() }()

	baseURL := strings.TrimSpace(os.Getenv("PICKS_API_URL"))
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &console{
		api: picksapi.NewClient(picksapi.ClientConfig{
			BaseURL: baseURL,
			Timeout: 20 * time.Second,
			Logger:  logger.Named("picksapi"),
		}),
		out: os.Stdout,
	}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintf(os.Stderr, "%s\n\n", usage)
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: picksctl <command> [flags]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  games        -week N")
	fmt.Fprintln(w, "  options      -week N [-player NAME]")
	fmt.Fprintln(w, "  board        -week N")
	fmt.Fprintln(w, "  picks        -week N")
	fmt.Fprintln(w, "  results      -week N")
	fmt.Fprintln(w, "  scores       -week N")
	fmt.Fprintln(w, "  leaderboard")
	fmt.Fprintln(w, "  starters     -teams \"Chiefs,Bills\"")
	fmt.Fprintln(w, "  pick         -week N -player NAME -category CAT -value VALUE")
	fmt.Fprintln(w, "  outcome      -week N -player NAME -category CAT -outcome W|L|P|\"\"")
	fmt.Fprintln(w, "  refresh      games|results -week N")
	fmt.Fprintln(w, "  calculate    -week N")
	fmt.Fprintln(w, "  lock         -week N [-by NAME]")
	fmt.Fprintln(w, "  unlock       -week N")
	fmt.Fprintln(w, "  status       -week N")
	fmt.Fprintln(w, "env: PICKS_API_URL (default "+defaultAPIURL+")")
}
