package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tnunamak/codexmeter/internal/api"
)

const fetchingMsg = "  ◆ Fetching usage data... "

type CredentialResolver interface {
	Resolve() (api.Credential, error)
}

type UsageFetcher interface {
	Fetch(ctx context.Context, cred api.Credential) (*api.UsageSnapshot, error)
}

// Runner resolves a credential, fetches usage and prints the report.
type Runner struct {
	Resolver CredentialResolver
	Fetcher  UsageFetcher
	Stdout   io.Writer
	Logger   *slog.Logger

	// Interactive enables the transient fetching indicator.
	Interactive bool
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Status runs one report. Nothing is written to Stdout except the
// indicator (which is erased) unless the fetch succeeds.
func (r *Runner) Status(ctx context.Context, mode Mode) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	indicator := mode == ModeFancy && r.Interactive

	if indicator {
		fmt.Fprint(r.Stdout, "\n"+fetchingMsg)
	}
	usage, err := r.fetch(ctx)
	if indicator {
		fmt.Fprint(r.Stdout, "\r"+strings.Repeat(" ", len([]rune(fetchingMsg)))+"\r")
	}
	if err != nil {
		return err
	}

	logger.Debug("rendering report", "mode", mode)
	_, err = io.WriteString(r.Stdout, Render(usage, mode))
	if mode == ModeFancy && err == nil {
		_, err = io.WriteString(r.Stdout, "\n")
	}
	return err
}

func (r *Runner) fetch(ctx context.Context) (*api.UsageSnapshot, error) {
	cred, err := r.Resolver.Resolve()
	if err != nil {
		return nil, err
	}
	return r.Fetcher.Fetch(ctx, cred)
}
