package ports

import "context"

// SecretWriter materializes sensitive bytes as an owner-read-only file.
// A failed write leaves no file behind.
type SecretWriter interface {
	WriteSecret(path string, data []byte) error
	WriteFile(path string, data []byte, executable bool) error
}

type CredentialMaterializer interface {
	Materialize(ctx context.Context, attribute, path string) (bool, error)
}
