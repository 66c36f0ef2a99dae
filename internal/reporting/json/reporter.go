package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Compact bool `mapstructure:"compact"`
}

type Option func(*Reporter)

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
	return r, nil
}

type jsonReport struct {
	Environment domain.Environment `json:"environment"`
	Succeeded   bool               `json:"succeeded"`
	Bucket      string             `json:"bucket,omitempty"`
	APIs        []string           `json:"apis_enabled,omitempty"`
	Steps       []jsonStep         `json:"steps"`
	Providers   []jsonProvider     `json:"providers"`
}

type jsonStep struct {
	Name         string            `json:"name"`
	Status       domain.StepStatus `json:"status"`
	Detail       string            `json:"detail,omitempty"`
	DurationMS   int64             `json:"duration_ms"`
	ErrorCode    errors.Code       `json:"error_code,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Suggestion   string            `json:"suggestion,omitempty"`
}

type jsonProvider struct {
	Provider       domain.Provider      `json:"provider"`
	Account        string               `json:"account,omitempty"`
	State          domain.ProviderState `json:"state"`
	CredentialPath string               `json:"credential_path,omitempty"`
	Detail         string               `json:"detail,omitempty"`
	ErrorMessage   string               `json:"error_message,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, report *domain.BootstrapReport) error {
	if report == nil {
		report = &domain.BootstrapReport{}
	}
	if ctx.Err() != nil {
		r.logger.Warnf(ctx, "JSON report generation cancelled.")
		return ctx.Err()
	}

	out := jsonReport{
		Environment: report.Environment,
		Succeeded:   report.Succeeded,
		Bucket:      report.Bucket,
		APIs:        report.APIs,
		Steps:       make([]jsonStep, 0, len(report.Steps)),
		Providers:   make([]jsonProvider, 0, len(report.Providers)),
	}

	for _, s := range report.Steps {
		item := jsonStep{
			Name:       s.Name,
			Status:     s.Status,
			Detail:     s.Detail,
			DurationMS: s.Duration.Milliseconds(),
		}
		if s.Error != nil {
			item.ErrorCode = errors.GetCode(s.Error)
			item.ErrorMessage = s.Error.Error()
			if _, hint, ok := errors.GetUserFacingMessage(s.Error); ok {
				item.Suggestion = hint
			}
		}
		out.Steps = append(out.Steps, item)
	}

	for _, p := range report.Providers {
		item := jsonProvider{
			Provider:       p.Provider,
			Account:        p.Account,
			State:          p.State,
			CredentialPath: p.CredentialPath,
			Detail:         p.Detail,
		}
		if p.Error != nil {
			item.ErrorMessage = p.Error.Error()
		}
		out.Providers = append(out.Providers, item)
	}

	encoder := json.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(out); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeInternal, "failed to encode JSON report")
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
