package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/pkg/poll"
)

// Step names as they appear in the report.
const (
	StepEnvironment = "resolve-environment"
	StepAttributes  = "load-attributes"
	StepReady       = "wait-for-halyard"
	StepDisarm      = "disarm-startup-script"
	StepAPIs        = "enable-apis"
	StepStorage     = "configure-storage"
	StepDeploy      = "deploy"
)

const DefaultDeploymentType = "localdebian"

// BootstrapperConfig carries everything the bootstrap sequence drives.
// Enabler and Inspector-backed storage are optional; a nil Enabler skips API
// enablement.
type BootstrapperConfig struct {
	Metadata       ports.MetadataService
	Attributes     *AttributeLoader
	Tool           ports.DeploymentTool
	ReadyPoller    *poll.Poller
	Trigger        *StartupTrigger
	Enabler        ports.APIEnabler
	Registry       *ConfiguratorRegistry
	Storage        *StorageConfigurator
	DeploymentType string
	Logger         ports.Logger
}

// Bootstrapper runs the first-boot sequence once, strictly in order. Any
// failed step stops the run.
type Bootstrapper struct {
	cfg    BootstrapperConfig
	logger ports.Logger
}

func NewBootstrapper(cfg BootstrapperConfig) (*Bootstrapper, error) {
	switch {
	case cfg.Metadata == nil:
		return nil, errors.New(errors.CodeConfigValidation, "metadata service cannot be nil")
	case cfg.Attributes == nil:
		return nil, errors.New(errors.CodeConfigValidation, "attribute loader cannot be nil")
	case cfg.Tool == nil:
		return nil, errors.New(errors.CodeConfigValidation, "deployment tool cannot be nil")
	case cfg.Trigger == nil:
		return nil, errors.New(errors.CodeConfigValidation, "startup trigger cannot be nil")
	case cfg.Registry == nil:
		return nil, errors.New(errors.CodeConfigValidation, "configurator registry cannot be nil")
	case cfg.Storage == nil:
		return nil, errors.New(errors.CodeConfigValidation, "storage configurator cannot be nil")
	case cfg.Logger == nil:
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil")
	}
	if cfg.ReadyPoller == nil {
		cfg.ReadyPoller = poll.New(time.Second, 0)
	}
	if cfg.DeploymentType == "" {
		cfg.DeploymentType = DefaultDeploymentType
	}
	return &Bootstrapper{cfg: cfg, logger: cfg.Logger}, nil
}

// Run executes the sequence. The returned report is never nil and describes
// every step attempted, including the one that failed.
func (b *Bootstrapper) Run(ctx context.Context) (*domain.BootstrapReport, error) {
	report := &domain.BootstrapReport{}

	err := b.step(ctx, report, StepEnvironment, func(ctx context.Context) (string, error) {
		env, err := b.resolveEnvironment(ctx)
		report.Environment = env
		return fmt.Sprintf("project=%s zone=%s instance=%s", env.Project, env.Zone, env.Instance), err
	})
	if err != nil {
		return report, err
	}
	env := report.Environment

	var attrs domain.Attributes
	err = b.step(ctx, report, StepAttributes, func(ctx context.Context) (string, error) {
		var err error
		attrs, err = b.cfg.Attributes.Load(ctx, env)
		return fmt.Sprintf("account=%s", attrs.GCEAccount), err
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, report, StepReady, func(ctx context.Context) (string, error) {
		return "", WaitForReady(ctx, b.cfg.Tool, b.cfg.ReadyPoller, b.logger)
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, report, StepDisarm, func(ctx context.Context) (string, error) {
		disarmed, err := b.cfg.Trigger.Disarm(ctx)
		if !disarmed {
			return "no startup script present", err
		}
		return "startup script removed", err
	})
	if err != nil {
		return report, err
	}

	if err := b.enableAPIs(ctx, report, env, attrs); err != nil {
		return report, err
	}

	for _, c := range b.cfg.Registry.Ordered() {
		if err := b.configureProvider(ctx, report, c, env, attrs); err != nil {
			return report, err
		}
	}

	err = b.step(ctx, report, StepStorage, func(ctx context.Context) (string, error) {
		credentialPath := ""
		if res, ok := report.Provider(domain.ProviderGoogle); ok {
			credentialPath = res.CredentialPath
		}
		bucket, err := b.cfg.Storage.Configure(ctx, env.Project, credentialPath)
		report.Bucket = bucket
		return describeBucket(bucket, credentialPath), err
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, report, StepDeploy, func(ctx context.Context) (string, error) {
		if err := b.cfg.Tool.SetDeploymentType(ctx, b.cfg.DeploymentType); err != nil {
			return "", err
		}
		return "type " + b.cfg.DeploymentType, b.cfg.Tool.ApplyDeployment(ctx)
	})
	if err != nil {
		return report, err
	}

	report.Succeeded = true
	b.logger.Infof(ctx, "Bootstrap complete for %s", env.Instance)
	return report, nil
}

func (b *Bootstrapper) resolveEnvironment(ctx context.Context) (domain.Environment, error) {
	zone, err := b.cfg.Metadata.Zone(ctx)
	if err != nil || zone == "" {
		if err == nil {
			err = errors.New(errors.CodeMetadataError, "zone is empty")
		}
		return domain.Environment{}, errors.WrapUserFacing(err, errors.CodeNotOnGCE,
			"could not determine the instance zone; not running on Google Compute Engine",
			"Run halyard-bootstrap on a Compute Engine VM or point GCE_METADATA_HOST at a metadata server.")
	}

	project, err := b.cfg.Metadata.ProjectID(ctx)
	if err != nil {
		return domain.Environment{Zone: zone}, errors.Wrap(err, errors.CodeMetadataError, "failed to read project id")
	}
	instance, err := b.cfg.Metadata.InstanceName(ctx)
	if err != nil {
		return domain.Environment{Zone: zone, Project: project}, errors.Wrap(err, errors.CodeMetadataError, "failed to read instance name")
	}
	return domain.Environment{Project: project, Zone: zone, Instance: instance}, nil
}

func (b *Bootstrapper) enableAPIs(ctx context.Context, report *domain.BootstrapReport, env domain.Environment, attrs domain.Attributes) error {
	apis := attrs.RequiredAPIs()
	if b.cfg.Enabler == nil {
		b.skip(ctx, report, StepAPIs, "API enablement disabled")
		return nil
	}
	return b.step(ctx, report, StepAPIs, func(ctx context.Context) (string, error) {
		if err := b.cfg.Enabler.EnableAPIs(ctx, env.Project, apis); err != nil {
			return "", err
		}
		report.APIs = apis
		return strings.Join(apis, ", "), nil
	})
}

func (b *Bootstrapper) configureProvider(ctx context.Context, report *domain.BootstrapReport, c ports.ProviderConfigurator, env domain.Environment, attrs domain.Attributes) error {
	name := "configure-" + c.Provider().String()
	plog := b.logger.WithFields(map[string]any{"provider": c.Provider().String()})

	start := time.Now()
	res, err := c.Configure(ctx, env, attrs)
	if res.Provider == "" {
		res.Provider = c.Provider()
	}
	if err != nil {
		res.State = domain.StateFailed
		res.Error = err
	}
	report.AddProvider(res)

	step := domain.StepResult{Name: name, Detail: res.Detail, Duration: time.Since(start)}
	switch {
	case err != nil:
		step.Status = domain.StepFailed
		step.Error = err
		plog.Errorf(ctx, err, "Provider configuration failed")
	case res.State == domain.StateSkipped:
		step.Status = domain.StepSkipped
		plog.Debugf(ctx, "Provider not enabled")
	default:
		step.Status = domain.StepDone
		plog.Infof(ctx, "Registered account %s", res.Account)
	}
	report.AddStep(step)
	return err
}

func (b *Bootstrapper) step(ctx context.Context, report *domain.BootstrapReport, name string, fn func(ctx context.Context) (string, error)) error {
	stepLog := b.logger.WithFields(map[string]any{"step": name})
	stepLog.Debugf(ctx, "Starting step")

	start := time.Now()
	detail, err := fn(ctx)
	res := domain.StepResult{Name: name, Detail: detail, Duration: time.Since(start), Status: domain.StepDone}
	if err != nil {
		res.Status = domain.StepFailed
		res.Error = err
		stepLog.Errorf(ctx, err, "Step failed")
	} else {
		stepLog.Infof(ctx, "Step done in %s", res.Duration.Round(time.Millisecond))
	}
	report.AddStep(res)
	return err
}

func (b *Bootstrapper) skip(ctx context.Context, report *domain.BootstrapReport, name, detail string) {
	b.logger.WithFields(map[string]any{"step": name}).Infof(ctx, "Step skipped: %s", detail)
	report.AddStep(domain.StepResult{Name: name, Status: domain.StepSkipped, Detail: detail})
}
