package gke

import (
	"context"
	"encoding/base64"
	"fmt"

	container "google.golang.org/api/container/v1"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp"
	gcperrors "github.com/olusolaa/halyard-bootstrap/internal/adapters/platform/gcp/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const (
	authPluginCommand    = "gke-gcloud-auth-plugin"
	authPluginAPIVersion = "client.authentication.k8s.io/v1beta1"
	authInstallHint      = "Install gke-gcloud-auth-plugin for use with kubectl by following https://cloud.google.com/kubernetes-engine/docs/how-to/cluster-access-for-kubectl#install_plugin"
)

// ClusterCredentials renders kubeconfig documents for GKE clusters. The
// result matches what `gcloud container clusters get-credentials` writes.
type ClusterCredentials struct {
	svc    *container.Service
	logger ports.Logger
}

func NewClusterCredentials(ctx context.Context, auth gcp.AuthOptions, logger ports.Logger) (*ClusterCredentials, error) {
	svc, err := container.NewService(ctx, gcp.ClientOptions(auth)...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create GKE client")
	}
	return &ClusterCredentials{svc: svc, logger: logger}, nil
}

// Kubeconfig fetches the cluster endpoint and CA and returns a serialized
// kubeconfig whose current context points at it.
func (c *ClusterCredentials) Kubeconfig(ctx context.Context, project, location, cluster string) ([]byte, error) {
	name := fmt.Sprintf("projects/%s/locations/%s/clusters/%s", project, location, cluster)
	c.logger.Infof(ctx, "Fetching credentials for cluster %s", name)

	gc, err := c.svc.Projects.Locations.Clusters.Get(name).Context(ctx).Do()
	if err != nil {
		return nil, gcperrors.HandleGoogleError(ctx, "cluster", name, err)
	}
	if gc.Endpoint == "" {
		return nil, errors.Newf(errors.CodePlatformAPIError, "cluster %s has no endpoint", name)
	}

	var ca []byte
	if gc.MasterAuth != nil && gc.MasterAuth.ClusterCaCertificate != "" {
		ca, err = base64.StdEncoding.DecodeString(gc.MasterAuth.ClusterCaCertificate)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("malformed CA certificate for %s", name))
		}
	}

	data, err := clientcmd.Write(*BuildConfig(project, location, cluster, gc.Endpoint, ca))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to serialize kubeconfig")
	}
	return data, nil
}

// BuildConfig assembles a single-context kubeconfig authenticating through
// the gke-gcloud-auth-plugin exec plugin.
func BuildConfig(project, location, cluster, endpoint string, ca []byte) *clientcmdapi.Config {
	contextName := fmt.Sprintf("gke_%s_%s_%s", project, location, cluster)

	cfg := clientcmdapi.NewConfig()
	cfg.Clusters[contextName] = &clientcmdapi.Cluster{
		Server:                   "https://" + endpoint,
		CertificateAuthorityData: ca,
	}
	cfg.AuthInfos[contextName] = &clientcmdapi.AuthInfo{
		Exec: &clientcmdapi.ExecConfig{
			Command:            authPluginCommand,
			APIVersion:         authPluginAPIVersion,
			InstallHint:        authInstallHint,
			ProvideClusterInfo: true,
			InteractiveMode:    clientcmdapi.IfAvailableExecInteractiveMode,
		},
	}
	cfg.Contexts[contextName] = &clientcmdapi.Context{
		Cluster:  contextName,
		AuthInfo: contextName,
	}
	cfg.CurrentContext = contextName
	return cfg
}
