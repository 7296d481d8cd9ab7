// Package testutil provides test utilities and helpers for agentup tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hctsai/agentup/internal/runner"
)

// CallRecord records a single Run call with metadata.
type CallRecord struct {
	Name      string
	Args      []string
	Env       []string
	Timestamp time.Time
	Result    *runner.Result
	Err       error
}

// MockRunnerBuilder provides a fluent API for configuring mock runner behavior.
type MockRunnerBuilder struct {
	responses    []mockResponse
	currentIndex int
	calls        []CallRecord
	lookups      []string
	paths        map[string]string
	mu           sync.Mutex
	t            *testing.T
}

type mockResponse struct {
	result *runner.Result
	err    error
	stdout string
}

// NewMockRunnerBuilder creates a new MockRunnerBuilder.
func NewMockRunnerBuilder(t *testing.T) *MockRunnerBuilder {
	t.Helper()

	return &MockRunnerBuilder{
		responses: make([]mockResponse, 0),
		calls:     make([]CallRecord, 0),
		paths:     make(map[string]string),
		t:         t,
	}
}

// WithPath registers an executable name resolvable via LookPath.
func (b *MockRunnerBuilder) WithPath(name, path string) *MockRunnerBuilder {
	b.paths[name] = path
	return b
}

// WithExit queues a Run response with the given exit code.
func (b *MockRunnerBuilder) WithExit(code int) *MockRunnerBuilder {
	b.responses = append(b.responses, mockResponse{result: &runner.Result{ExitCode: code}})
	return b
}

// WithError queues a Run response that fails to start.
func (b *MockRunnerBuilder) WithError(err error) *MockRunnerBuilder {
	b.responses = append(b.responses, mockResponse{err: err})
	return b
}

// WithStdout attaches output to the most recently queued response. The
// output is written to the command's Stdout writer when attached, otherwise
// returned captured in the Result.
func (b *MockRunnerBuilder) WithStdout(out string) *MockRunnerBuilder {
	if len(b.responses) > 0 {
		b.responses[len(b.responses)-1].stdout = out
	}
	return b
}

// Build returns the configured MockRunner.
func (b *MockRunnerBuilder) Build() *MockRunner {
	return &MockRunner{builder: b}
}

// MockRunner implements runner.Runner for testing without real processes.
type MockRunner struct {
	builder *MockRunnerBuilder
}

// LookPath resolves names registered with WithPath.
func (m *MockRunner) LookPath(name string) (string, error) {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	m.builder.lookups = append(m.builder.lookups, name)
	if path, ok := m.builder.paths[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Run records the call and returns the next queued response. With no
// responses left it returns a zero exit code.
func (m *MockRunner) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	record := CallRecord{
		Name:      cmd.Name,
		Args:      append([]string(nil), cmd.Args...),
		Env:       append([]string(nil), cmd.Env...),
		Timestamp: time.Now(),
	}

	resp := mockResponse{result: &runner.Result{}}
	if m.builder.currentIndex < len(m.builder.responses) {
		resp = m.builder.responses[m.builder.currentIndex]
		m.builder.currentIndex++
	}

	if resp.err != nil {
		record.Err = resp.err
		m.builder.calls = append(m.builder.calls, record)
		return nil, resp.err
	}

	result := &runner.Result{ExitCode: resp.result.ExitCode}
	if resp.stdout != "" {
		if cmd.Stdout != nil {
			_, _ = io.WriteString(cmd.Stdout, resp.stdout)
		} else {
			result.Stdout = resp.stdout
		}
	}

	record.Result = result
	m.builder.calls = append(m.builder.calls, record)
	return result, nil
}

// Calls returns all recorded Run calls.
func (m *MockRunner) Calls() []CallRecord {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	result := make([]CallRecord, len(m.builder.calls))
	copy(result, m.builder.calls)
	return result
}

// CallCount returns the number of Run calls made.
func (m *MockRunner) CallCount() int {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()
	return len(m.builder.calls)
}

// Lookups returns all names passed to LookPath.
func (m *MockRunner) Lookups() []string {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	result := make([]string, len(m.builder.lookups))
	copy(result, m.builder.lookups)
	return result
}

// AssertRan verifies that some Run call's command line contains the given
// substring.
func (m *MockRunner) AssertRan(t *testing.T, substring string) {
	t.Helper()

	for _, call := range m.Calls() {
		line := call.Name + " " + strings.Join(call.Args, " ")
		if strings.Contains(line, substring) {
			return
		}
	}
	t.Errorf("expected a command containing %q, got %d calls", substring, m.CallCount())
}

// AssertNotRan verifies that no Run call's command line contains the given
// substring.
func (m *MockRunner) AssertNotRan(t *testing.T, substring string) {
	t.Helper()

	for _, call := range m.Calls() {
		line := call.Name + " " + strings.Join(call.Args, " ")
		if strings.Contains(line, substring) {
			t.Errorf("expected no command containing %q, found %q", substring, line)
		}
	}
}

// AssertCallCount verifies the number of Run calls.
func (m *MockRunner) AssertCallCount(t *testing.T, expected int) {
	t.Helper()

	if got := m.CallCount(); got != expected {
		t.Errorf("expected %d Run calls, got %d", expected, got)
	}
}
