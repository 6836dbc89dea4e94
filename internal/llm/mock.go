package llm

import (
	"context"
	"errors"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu         sync.Mutex
	calls      int
	prompts    []string
	lastSystem string
}

func (m *MockClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.lastSystem = system
	m.mu.Unlock()
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt devuelve el ultimo prompt recibido.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// LastSystem devuelve el ultimo mensaje de sistema recibido.
func (m *MockClient) LastSystem() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem
}

type disabledClient struct {
	reason string
}

// NewDisabledClient devuelve un cliente que siempre falla; se usa cuando no hay API key configurada.
func NewDisabledClient(reason string) LLMClient {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _, _ string) (string, error) {
	if c.reason == "" {
		return "", errors.New("llm client disabled")
	}
	return "", errors.New(c.reason)
}
