package domain

// Provider names a Halyard provider, spelled the way `hal config provider` expects it.
type Provider string

const (
	ProviderDockerRegistry Provider = "docker-registry"
	ProviderKubernetes     Provider = "kubernetes"
	ProviderGoogle         Provider = "google"
	ProviderAppEngine      Provider = "appengine"
)

// ProviderOrder is the fixed configuration order. The registry comes first so
// the Kubernetes account can reference it for image pulls.
var ProviderOrder = []Provider{
	ProviderDockerRegistry,
	ProviderKubernetes,
	ProviderGoogle,
	ProviderAppEngine,
}

func (p Provider) String() string {
	return string(p)
}
