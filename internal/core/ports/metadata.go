package ports

import "context"

//go:generate mockery --name MetadataService --output ./mocks --outpkg mocks --case underscore

// MetadataService reads and erases instance metadata. Get returns an empty
// string and nil error for an attribute that is not defined; only transport
// failures surface as errors.
type MetadataService interface {
	Get(ctx context.Context, name string) (string, error)
	Has(ctx context.Context, name string) (bool, error)
	Clear(ctx context.Context, name string) error
	ProjectID(ctx context.Context) (string, error)
	Zone(ctx context.Context) (string, error)
	InstanceName(ctx context.Context) (string, error)
	ServiceAccountEmail(ctx context.Context) (string, error)
}

// AttributeRemover deletes a single key from an instance's metadata.
type AttributeRemover interface {
	RemoveAttribute(ctx context.Context, project, zone, instance, key string) error
}
