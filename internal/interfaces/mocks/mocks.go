// Package mocks provides testify-based mocks for the service interfaces
// consumed by the API layer.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"chat-relay/internal/model"
	"chat-relay/internal/service"
)

// MockChatService mocks interfaces.ChatService.
type MockChatService struct {
	mock.Mock
}

// NewMockChatService creates the mock and registers an expectation check to
// run when the test finishes.
func NewMockChatService(t *testing.T) *MockChatService {
	m := &MockChatService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChatService) CreateSession() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockChatService) HandleChat(ctx context.Context, req *service.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockModelService mocks interfaces.ModelService.
type MockModelService struct {
	mock.Mock
}

func NewMockModelService(t *testing.T) *MockModelService {
	m := &MockModelService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockModelService) List(ctx context.Context, providerKey string) ([]model.ModelOption, error) {
	args := m.Called(ctx, providerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ModelOption), args.Error(1)
}

func (m *MockModelService) Status() map[string]bool {
	args := m.Called()
	return args.Get(0).(map[string]bool)
}
