package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAPIEnabler is a mock implementation of ports.APIEnabler
type MockAPIEnabler struct {
	mock.Mock
}

func (m *MockAPIEnabler) EnableAPIs(ctx context.Context, project string, apis []string) error {
	return m.Called(ctx, project, apis).Error(0)
}

// MockKeyCreator is a mock implementation of ports.ServiceAccountKeyCreator
type MockKeyCreator struct {
	mock.Mock
}

func (m *MockKeyCreator) CreateKey(ctx context.Context, email string) ([]byte, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockClusterCredentials is a mock implementation of ports.ClusterCredentialsFetcher
type MockClusterCredentials struct {
	mock.Mock
}

func (m *MockClusterCredentials) Kubeconfig(ctx context.Context, project, location, cluster string) ([]byte, error) {
	args := m.Called(ctx, project, location, cluster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockBucketInspector is a mock implementation of ports.BucketInspector
type MockBucketInspector struct {
	mock.Mock
}

func (m *MockBucketInspector) BucketExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockSecretWriter is a mock implementation of ports.SecretWriter
type MockSecretWriter struct {
	mock.Mock
}

func (m *MockSecretWriter) WriteSecret(path string, data []byte) error {
	return m.Called(path, data).Error(0)
}

func (m *MockSecretWriter) WriteFile(path string, data []byte, executable bool) error {
	return m.Called(path, data, executable).Error(0)
}

// MockMaterializer is a mock implementation of ports.CredentialMaterializer
type MockMaterializer struct {
	mock.Mock
}

func (m *MockMaterializer) Materialize(ctx context.Context, attribute, path string) (bool, error) {
	args := m.Called(ctx, attribute, path)
	return args.Bool(0), args.Error(1)
}
