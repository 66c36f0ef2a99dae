package gcp

import (
	"net/http"
	"strings"

	"google.golang.org/api/option"
)

// AuthOptions selects credentials and endpoints for Google API clients.
type AuthOptions struct {
	// Credentials is either JSON key content (starts with "{"), a key file
	// path, or empty to use Application Default Credentials, which on a VM
	// means the instance service account via the metadata server.
	Credentials string
	// Endpoint overrides the service base URL.
	Endpoint string
	// HTTPClient bypasses credential discovery entirely.
	HTTPClient *http.Client
}

func ClientOptions(opts AuthOptions) []option.ClientOption {
	var clientOpts []option.ClientOption

	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	} else if opts.Credentials != "" {
		if strings.HasPrefix(strings.TrimSpace(opts.Credentials), "{") {
			clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.Credentials)))
		} else {
			clientOpts = append(clientOpts, option.WithCredentialsFile(opts.Credentials))
		}
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	return clientOpts
}
