package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gw-converter-cli/internal/models"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

func (m *MockClient) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockClient) PostData(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Token() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSessionStore) SetToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockSessionStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSessionStore) IsAuthenticated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSessionStore) Claims() (*models.SessionClaims, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionClaims), args.Error(1)
}
