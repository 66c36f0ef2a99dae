package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	apperrors "github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Option func(*Reporter)

// WithWriter sends the report somewhere other than stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) { r.writer = w }
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	r := &Reporter{config: cfg, writer: os.Stdout, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.NoColor || !isTerminal(r.writer) {
		color.NoColor = true
	}
	return r, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, report *domain.BootstrapReport) error {
	if report == nil {
		fmt.Fprintln(r.writer, "No bootstrap run recorded.")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

	env := report.Environment
	fmt.Fprintln(tw, "Halyard Bootstrap Report")
	fmt.Fprintln(tw, "========================")
	fmt.Fprintf(tw, "Project:\t%s\n", orUnknown(env.Project))
	fmt.Fprintf(tw, "Zone:\t%s\n", orUnknown(env.Zone))
	fmt.Fprintf(tw, "Instance:\t%s\n", orUnknown(env.Instance))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Status\tStep\tDuration\tDetails")
	fmt.Fprintln(tw, "------\t----\t--------\t-------")
	for _, step := range report.Steps {
		status := ""
		details := step.Detail
		switch step.Status {
		case domain.StepDone:
			status = green("[DONE]")
		case domain.StepSkipped:
			status = cyan("[SKIPPED]")
		case domain.StepFailed:
			status = red("[FAILED]")
			details = failureDetails(step.Error)
		default:
			status = "[UNKNOWN]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, step.Name, step.Duration.Round(time.Millisecond), details)
	}

	if len(report.Providers) > 0 {
		fmt.Fprintln(tw, "\nProviders:")
		fmt.Fprintln(tw, "---------")
		for _, p := range report.Providers {
			state := string(p.State)
			switch p.State {
			case domain.StateRegistered:
				state = green(state)
			case domain.StateFailed:
				state = red(state)
			case domain.StateSkipped:
				state = cyan(state)
			default:
				state = yellow(state)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Provider, state, orDash(p.Account), orDash(p.CredentialPath))
		}
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	if len(report.APIs) > 0 {
		fmt.Fprintf(tw, "APIs enabled:\t%d\n", len(report.APIs))
	}
	if report.Bucket != "" {
		fmt.Fprintf(tw, "Storage bucket:\t%s\n", report.Bucket)
	}
	if report.Succeeded {
		fmt.Fprintf(tw, "Result:\t%s\n", green("SUCCEEDED"))
	} else {
		fmt.Fprintf(tw, "Result:\t%s\n", red("FAILED"))
	}

	if err := tw.Flush(); err != nil {
		r.logger.Errorf(ctx, err, "Failed to write text report")
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to write text report")
	}
	return nil
}

func failureDetails(err error) string {
	if err == nil {
		return "failed"
	}
	msg, hint, ok := apperrors.GetUserFacingMessage(err)
	if !ok {
		return err.Error()
	}
	if hint != "" {
		return fmt.Sprintf("%s (%s)", msg, hint)
	}
	return msg
}

func orUnknown(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
