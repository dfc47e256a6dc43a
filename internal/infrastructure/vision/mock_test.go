package vision

import (
	"context"
	"sync"
)

// MockModel возвращает заранее заданный ответ и запоминает запросы
type MockModel struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []Request
}

func (m *MockModel) Ask(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	return m.Response, m.Err
}
