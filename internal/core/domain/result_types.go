package domain

import "time"

type ProviderState string

const (
	StateSkipped     ProviderState = "SKIPPED"
	StateConfiguring ProviderState = "CONFIGURING"
	StateRegistered  ProviderState = "REGISTERED"
	StateFailed      ProviderState = "FAILED"
)

// Parameter is a single `--name value` pair handed to Halyard. Order is kept.
// An empty Value renders a bare flag, which Halyard answers by reading stdin.
type Parameter struct {
	Name  string
	Value string
}

// AccountRequest describes one "add account" call. Stdin carries sensitive
// values Halyard prompts for; it is never logged.
type AccountRequest struct {
	Provider   Provider
	Account    string
	Parameters []Parameter
	Stdin      string
}

type ProviderResult struct {
	Provider       Provider
	Account        string
	State          ProviderState
	CredentialPath string
	Detail         string
	Error          error
}

type StepStatus string

const (
	StepDone    StepStatus = "DONE"
	StepSkipped StepStatus = "SKIPPED"
	StepFailed  StepStatus = "FAILED"
)

type StepResult struct {
	Name     string
	Status   StepStatus
	Detail   string
	Duration time.Duration
	Error    error
}

// BootstrapReport is built up as the sequence runs, so a failed run still
// reports how far it got.
type BootstrapReport struct {
	Environment Environment
	Steps       []StepResult
	Providers   []ProviderResult
	APIs        []string
	Bucket      string
	Succeeded   bool
}

func (r *BootstrapReport) AddStep(step StepResult) {
	r.Steps = append(r.Steps, step)
}

func (r *BootstrapReport) AddProvider(result ProviderResult) {
	r.Providers = append(r.Providers, result)
}

// Provider returns the recorded result for p, if any.
func (r *BootstrapReport) Provider(p Provider) (ProviderResult, bool) {
	for _, res := range r.Providers {
		if res.Provider == p {
			return res, true
		}
	}
	return ProviderResult{}, false
}
