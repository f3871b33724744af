package middleware

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu   sync.Mutex
	logs []LogEntry
}

type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

func (m *MockLogger) add(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) { m.add("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields map[string]interface{})  { m.add("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields map[string]interface{})  { m.add("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields map[string]interface{}) { m.add("ERROR", msg, fields) }

// failingStore always errors
type failingStore struct{}

func (failingStore) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("redis: connection refused")
}
func (failingStore) Limit() int            { return 1 }
func (failingStore) Window() time.Duration { return time.Minute }

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	observed []observation
}

func (o *recordingObserver) ObserveHTTP(method, path string, status int, duration time.Duration) {
	o.observed = append(o.observed, observation{method, path, status})
}
