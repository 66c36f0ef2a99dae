package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/halyard"
	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/service"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/log"
	"github.com/olusolaa/halyard-bootstrap/internal/reporting/json"
	"github.com/olusolaa/halyard-bootstrap/internal/reporting/text"
)

type Config struct {
	Settings    SettingsConfig    `mapstructure:"settings"`
	Metadata    MetadataConfig    `mapstructure:"metadata"`
	Halyard     HalyardConfig     `mapstructure:"halyard"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Startup     StartupConfig     `mapstructure:"startup"`
	APIs        APIsConfig        `mapstructure:"apis"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Google      GoogleConfig      `mapstructure:"google"`
}

type SettingsConfig struct {
	log.Config   `mapstructure:",squash"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

type ReporterConfigs struct {
	Text text.Config `mapstructure:"text"`
	JSON json.Config `mapstructure:"json"`
}

type MetadataConfig struct {
	// Timeout bounds each request to the metadata server.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type HalyardConfig struct {
	Binary            string        `mapstructure:"binary" validate:"required"`
	ReadyPollInterval time.Duration `mapstructure:"ready_poll_interval" validate:"gt=0"`
	// ReadyTimeout of zero waits for the daemon indefinitely.
	ReadyTimeout   time.Duration `mapstructure:"ready_timeout" validate:"gte=0"`
	DeploymentType string        `mapstructure:"deployment_type" validate:"required"`
	StreamOutput   bool          `mapstructure:"stream_output"`
}

type CredentialsConfig struct {
	ServiceUser     string `mapstructure:"service_user"`
	GCEPath         string `mapstructure:"gce_path" validate:"required"`
	RegistryKeyPath string `mapstructure:"registry_key_path" validate:"required"`
	KubeconfigPath  string `mapstructure:"kubeconfig_path" validate:"required"`
}

type StartupConfig struct {
	Attribute  string `mapstructure:"attribute" validate:"required"`
	BackupPath string `mapstructure:"backup_path"`
}

type APIsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type StorageConfig struct {
	InspectBucket bool `mapstructure:"inspect_bucket"`
}

// GoogleConfig overrides how Google API clients authenticate and where they
// connect. Empty values mean Application Default Credentials and the public
// endpoints.
type GoogleConfig struct {
	CredentialsFile      string `mapstructure:"credentials_file"`
	ComputeEndpoint      string `mapstructure:"compute_endpoint" validate:"omitempty,url"`
	ServiceUsageEndpoint string `mapstructure:"serviceusage_endpoint" validate:"omitempty,url"`
	IAMEndpoint          string `mapstructure:"iam_endpoint" validate:"omitempty,url"`
	ContainerEndpoint    string `mapstructure:"container_endpoint" validate:"omitempty,url"`
	StorageEndpoint      string `mapstructure:"storage_endpoint" validate:"omitempty,url"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			Config:       log.DefaultConfig(),
			ReporterType: text.ReporterTypeText,
		},
		Metadata: MetadataConfig{Timeout: 10 * time.Second},
		Halyard: HalyardConfig{
			Binary:            halyard.DefaultBinary,
			ReadyPollInterval: 2 * time.Second,
			DeploymentType:    service.DefaultDeploymentType,
		},
		Credentials: CredentialsConfig{
			ServiceUser:     "spinnaker",
			GCEPath:         "/home/spinnaker/.gcp/gce-account.json",
			RegistryKeyPath: "/home/spinnaker/.gcp/gcr-account.json",
			KubeconfigPath:  "/home/spinnaker/.kube/config",
		},
		Startup: StartupConfig{
			Attribute:  domain.KeyStartupScript,
			BackupPath: "/var/spinnaker/startup/first_time_boot.sh",
		},
		APIs: APIsConfig{
			Enabled:      true,
			PollInterval: 2 * time.Second,
			Timeout:      5 * time.Minute,
		},
		Storage: StorageConfig{InspectBucket: true},
	}
}

// SetDefaults registers every key of DefaultConfig with v so that
// environment variables are honoured for keys absent from the config file.
func SetDefaults(v *viper.Viper) error {
	var flat map[string]any
	if err := mapstructure.Decode(DefaultConfig(), &flat); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to flatten default configuration")
	}
	setNested(v, "", flat)
	return nil
}

func setNested(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch nested := val.(type) {
		case map[string]any:
			setNested(v, key, nested)
		default:
			v.SetDefault(key, val)
		}
	}
}

// Load decodes v over the defaults and validates the result.
func Load(ctx context.Context, v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}
	cfg.Settings.Level = log.ParseLevel(string(cfg.Settings.Level))
	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(ctx context.Context, cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}
	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file, HALBOOT_ environment variables or flags.")
}
