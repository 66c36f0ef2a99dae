package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/exec"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/filesystem"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/halyard"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/metadata/gce"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/gcs"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/gke"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/iam"
	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/serviceusage"
	"github.com/olusolaa/halyard-bootstrap/internal/config"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/core/service"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/log"
	"github.com/olusolaa/halyard-bootstrap/internal/providers/appengine"
	"github.com/olusolaa/halyard-bootstrap/internal/providers/dockerregistry"
	"github.com/olusolaa/halyard-bootstrap/internal/providers/google"
	"github.com/olusolaa/halyard-bootstrap/internal/providers/kubernetes"
	jsonreporter "github.com/olusolaa/halyard-bootstrap/internal/reporting/json"
	"github.com/olusolaa/halyard-bootstrap/internal/reporting/text"
	"github.com/olusolaa/halyard-bootstrap/pkg/poll"
)

const clientInitHint = "Run on a Compute Engine VM with a service account, or set google.credentials_file."

// BuildApplicationFromViper loads configuration from v and wires every
// adapter the bootstrap sequence needs.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := config.Load(ctx, v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLogger(cfg.Settings.Config, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.Level, cfg.Settings.Format)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	bootstrapper, err := buildBootstrapper(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	reporter, err := buildReporter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(bootstrapper, reporter, logger), nil
}

func buildBootstrapper(ctx context.Context, cfg *config.Config, logger ports.Logger) (*service.Bootstrapper, error) {
	auth := func(endpoint string) gcp.AuthOptions {
		return gcp.AuthOptions{Credentials: cfg.Google.CredentialsFile, Endpoint: endpoint}
	}
	component := func(name string) ports.Logger {
		return logger.WithFields(map[string]any{"component": name})
	}

	remover, err := gce.NewComputeRemover(ctx, auth(cfg.Google.ComputeEndpoint), component("metadata"))
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodePlatformAPIError, "failed to initialize Compute Engine client", clientInitHint)
	}
	metadata := gce.NewAccessor(cfg.Metadata.Timeout, remover, component("metadata"))

	writer, err := filesystem.NewWriter(cfg.Credentials.ServiceUser, component("filesystem"))
	if err != nil {
		return nil, err
	}

	var runnerOpts []exec.Option
	if cfg.Halyard.StreamOutput {
		runnerOpts = append(runnerOpts, exec.WithOutput(os.Stderr))
	}
	tool := halyard.NewClient(exec.NewRunner(component("exec"), runnerOpts...), cfg.Halyard.Binary, component("halyard"))

	var enabler ports.APIEnabler
	if cfg.APIs.Enabled {
		enabler, err = serviceusage.NewEnabler(ctx, auth(cfg.Google.ServiceUsageEndpoint), cfg.APIs.PollInterval, cfg.APIs.Timeout, component("serviceusage"))
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodePlatformAPIError, "failed to initialize Service Usage client", clientInitHint)
		}
	} else {
		logger.Infof(ctx, "API enablement disabled by configuration")
	}

	keys, err := iam.NewKeyCreator(ctx, auth(cfg.Google.IAMEndpoint), component("iam"))
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodePlatformAPIError, "failed to initialize IAM client", clientInitHint)
	}
	clusters, err := gke.NewClusterCredentials(ctx, auth(cfg.Google.ContainerEndpoint), component("gke"))
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodePlatformAPIError, "failed to initialize GKE client", clientInitHint)
	}

	var inspector ports.BucketInspector
	if cfg.Storage.InspectBucket {
		inspector, err = gcs.NewInspector(ctx, auth(cfg.Google.StorageEndpoint), component("gcs"))
		if err != nil {
			logger.Warnf(ctx, "Bucket inspection unavailable: %v", err)
			inspector = nil
		}
	}

	registry := service.NewConfiguratorRegistry()
	configurators := []ports.ProviderConfigurator{
		dockerregistry.NewConfigurator(tool, metadata, keys, writer, cfg.Credentials.RegistryKeyPath, component("docker-registry")),
		kubernetes.NewConfigurator(tool, clusters, writer, cfg.Credentials.KubeconfigPath, component("kubernetes")),
		google.NewConfigurator(tool, service.NewMaterializer(metadata, writer, component("materializer")), cfg.Credentials.GCEPath, component("google")),
		appengine.NewConfigurator(tool, metadata, component("appengine")),
	}
	for _, c := range configurators {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
		logger.Debugf(ctx, "Registered configurator for: %s", c.Provider())
	}

	b, err := service.NewBootstrapper(service.BootstrapperConfig{
		Metadata:       metadata,
		Attributes:     service.NewAttributeLoader(metadata, component("attributes")),
		Tool:           tool,
		ReadyPoller:    poll.New(cfg.Halyard.ReadyPollInterval, cfg.Halyard.ReadyTimeout),
		Trigger:        service.NewStartupTrigger(metadata, writer, cfg.Startup.Attribute, cfg.Startup.BackupPath, component("startup")),
		Enabler:        enabler,
		Registry:       registry,
		Storage:        service.NewStorageConfigurator(tool, inspector, component("storage")),
		DeploymentType: cfg.Halyard.DeploymentType,
		Logger:         component("bootstrap"),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize bootstrapper")
	}
	return b, nil
}

func buildReporter(ctx context.Context, cfg *config.Config, logger ports.Logger) (ports.Reporter, error) {
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		r, err := text.NewReporter(cfg.Settings.Reporter.Text, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		reportLog.Infof(ctx, "Using Text reporter (Color: %t)", !cfg.Settings.Reporter.Text.NoColor)
		return r, nil
	case jsonreporter.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreporter.ReporterTypeJSON})
		r, err := jsonreporter.NewReporter(cfg.Settings.Reporter.JSON, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
		return r, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
}
