package kubernetes

import (
	"context"
	"fmt"

	"github.com/olusolaa/halyard-bootstrap/internal/core/domain"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/providers"
)

// Configurator registers a Kubernetes account for a GKE cluster.
type Configurator struct {
	tool           ports.DeploymentTool
	clusters       ports.ClusterCredentialsFetcher
	writer         ports.SecretWriter
	kubeconfigPath string
	logger         ports.Logger
}

func NewConfigurator(
	tool ports.DeploymentTool,
	clusters ports.ClusterCredentialsFetcher,
	writer ports.SecretWriter,
	kubeconfigPath string,
	logger ports.Logger,
) *Configurator {
	return &Configurator{
		tool:           tool,
		clusters:       clusters,
		writer:         writer,
		kubeconfigPath: kubeconfigPath,
		logger:         logger,
	}
}

func (c *Configurator) Provider() domain.Provider {
	return domain.ProviderKubernetes
}

func (c *Configurator) Configure(ctx context.Context, env domain.Environment, attrs domain.Attributes) (domain.ProviderResult, error) {
	if !attrs.Kube.Enabled {
		return providers.Skipped(c.Provider()), nil
	}

	res := domain.ProviderResult{
		Provider: c.Provider(),
		Account:  attrs.Kube.Account,
		State:    domain.StateConfiguring,
	}
	if attrs.Kube.Cluster == "" {
		return providers.Failed(res, errors.NewUserFacing(errors.CodeMissingAttribute,
			"kube_enabled is set but kube_cluster is missing", "Set the kube_cluster metadata attribute."))
	}

	zone := attrs.Kube.Zone
	if zone == "" {
		zone = env.Zone
	}
	kubeconfig, err := c.clusters.Kubeconfig(ctx, env.Project, zone, attrs.Kube.Cluster)
	if err != nil {
		return providers.Failed(res, err)
	}
	if err := c.writer.WriteSecret(c.kubeconfigPath, kubeconfig); err != nil {
		return providers.Failed(res, errors.Wrap(err, errors.CodeCredentialWrite, "failed to write kubeconfig"))
	}
	res.CredentialPath = c.kubeconfigPath

	params := []domain.Parameter{{Name: "kubeconfig-file", Value: c.kubeconfigPath}}
	if attrs.GCR.Enabled {
		params = append(params, domain.Parameter{Name: "docker-registries", Value: attrs.GCR.Account})
	}
	req := domain.AccountRequest{Provider: c.Provider(), Account: attrs.Kube.Account, Parameters: params}
	if err := providers.Register(ctx, c.tool, req, c.logger); err != nil {
		return providers.Failed(res, err)
	}

	res.State = domain.StateRegistered
	res.Detail = fmt.Sprintf("cluster %s in %s", attrs.Kube.Cluster, zone)
	return res, nil
}
