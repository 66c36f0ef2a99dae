package domain

// Environment is resolved once from the metadata server and passed by value
// to every step that needs a project- or zone-scoped name.
type Environment struct {
	Project  string `json:"project"`
	Zone     string `json:"zone"`
	Instance string `json:"instance"`
}

// Attributes is the typed view of the instance metadata key space. The attr
// tag names the metadata key a field was read from. Secrets are absent; they
// are read and erased where they are consumed.
type Attributes struct {
	GCEAccount string `attr:"gce_account" validate:"required"`
	GCR        RegistryAttributes
	Kube       KubernetesAttributes
	AppEngine  AppEngineAttributes
}

type RegistryAttributes struct {
	Enabled bool   `attr:"gcr_enabled"`
	Account string `attr:"gcr_account" validate:"required_if=Enabled true"`
	Address string `attr:"gcr_address" validate:"required_if=Enabled true"`
}

type KubernetesAttributes struct {
	Enabled bool   `attr:"kube_enabled"`
	Account string `attr:"kube_account" validate:"required_if=Enabled true"`
	Cluster string `attr:"kube_cluster" validate:"required_if=Enabled true"`
	Zone    string `attr:"kube_zone"`
}

type AppEngineAttributes struct {
	Enabled     bool   `attr:"appengine_enabled"`
	Account     string `attr:"appengine_account" validate:"required_if=Enabled true"`
	GitUsername string `attr:"appengine_git_https_username"`
}

// RequiredAPIs lists the Google APIs the enabled providers depend on. Storage
// is always needed for the persistence bucket.
func (a Attributes) RequiredAPIs() []string {
	apis := []string{APIStorage}
	if a.GCR.Enabled || a.Kube.Enabled {
		apis = append(apis, APIRegistry, APIIAM, APIResourceManager)
	}
	if a.AppEngine.Enabled {
		apis = append(apis, APIAppEngine)
	}
	return apis
}
