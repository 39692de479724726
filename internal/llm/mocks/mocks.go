// Package mocks provides a testify-based mock of the llm.Provider contract.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"chat-relay/internal/model"
)

// MockProvider mocks llm.Provider.
type MockProvider struct {
	mock.Mock
}

func NewMockProvider(t *testing.T) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]model.ModelOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ModelOption), args.Error(1)
}

func (m *MockProvider) GenerateReply(ctx context.Context, userText string, history []model.ChatTurn, modelID string) (string, error) {
	args := m.Called(ctx, userText, history, modelID)
	return args.String(0), args.Error(1)
}
