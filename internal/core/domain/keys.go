package domain

// Instance metadata attribute keys.
const (
	KeyGCEAccount = "gce_account"
	KeyGCECreds   = "gce_creds"

	KeyGCREnabled = "gcr_enabled"
	KeyGCRAccount = "gcr_account"
	KeyGCRAddress = "gcr_address"

	KeyKubeEnabled = "kube_enabled"
	KeyKubeAccount = "kube_account"
	KeyKubeCluster = "kube_cluster"
	KeyKubeZone    = "kube_zone"

	KeyAppEngineEnabled     = "appengine_enabled"
	KeyAppEngineAccount     = "appengine_account"
	KeyAppEngineGitUsername = "appengine_git_https_username"
	KeyAppEngineGitPassword = "appengine_git_https_password"

	KeyStartupScript = "startup-script"
)

// Default account names used when an enabled block omits its account attribute.
const (
	DefaultGCRAccount       = "my-gcr-account"
	DefaultGCRAddress       = "gcr.io"
	DefaultKubeAccount      = "my-kubernetes-account"
	DefaultAppEngineAccount = "my-appengine-account"
)

// Google API service names enabled before providers are configured.
const (
	APIStorage         = "storage-api.googleapis.com"
	APIRegistry        = "containerregistry.googleapis.com"
	APIIAM             = "iam.googleapis.com"
	APIResourceManager = "cloudresourcemanager.googleapis.com"
	APIAppEngine       = "appengine.googleapis.com"
)
