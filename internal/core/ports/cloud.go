package ports

import "context"

type APIEnabler interface {
	EnableAPIs(ctx context.Context, project string, apis []string) error
}

type ServiceAccountKeyCreator interface {
	CreateKey(ctx context.Context, email string) ([]byte, error)
}

type ClusterCredentialsFetcher interface {
	Kubeconfig(ctx context.Context, project, location, cluster string) ([]byte, error)
}

type BucketInspector interface {
	BucketExists(ctx context.Context, name string) (bool, error)
}
