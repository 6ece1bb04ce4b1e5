package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Args      []interface{}
	Timestamp time.Time
}

// queryOutcome is a scripted result for a single Query/Write call.
type queryOutcome struct {
	result QueryResult
	err    error
}

// MockClient is a mock implementation of Client for testing. Query and
// Write consume scripted outcomes in FIFO order and every method call
// is recorded for verification.
type MockClient struct {
	mu sync.RWMutex

	connected     bool
	healthStatus  types.HealthStatus
	nodes         map[string]mockNode
	relationships []mockRelationship
	calls         []MockCall
	nextNodeID    int

	queryOutcomes   []queryOutcome
	connectError    error
	closeError      error
	createNodeError error
	createRelError  error
}

// mockNode represents a stored node for the mock.
type mockNode struct {
	ID     string
	Labels []string
	Props  map[string]any
}

// mockRelationship represents a stored relationship for the mock.
type mockRelationship struct {
	FromID string
	ToID   string
	Type   string
	Props  map[string]any
}

// NewMockClient creates a new mock graph client for testing.
func NewMockClient() *MockClient {
	return &MockClient{
		connected:     false,
		healthStatus:  types.NewHealthStatus(types.HealthStateHealthy, "mock graph client"),
		nodes:         make(map[string]mockNode),
		relationships: make([]mockRelationship, 0),
		calls:         make([]MockCall, 0),
		queryOutcomes: make([]queryOutcome, 0),
		nextNodeID:    1,
	}
}

// Connect records the call and simulates connection.
func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect")

	if m.connectError != nil {
		return m.connectError
	}

	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close")

	if m.closeError != nil {
		return m.closeError
	}

	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health")

	if !m.connected {
		return types.Unhealthy("not connected")
	}

	return m.healthStatus
}

// Query records the call and consumes the next scripted outcome.
func (m *MockClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.consume(ctx, "Query", cypher, params)
}

// Write records the call and consumes the next scripted outcome.
func (m *MockClient) Write(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.consume(ctx, "Write", cypher, params)
}

func (m *MockClient) consume(ctx context.Context, method, cypher string, params map[string]any) (QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return QueryResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(method, cypher, params)

	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed,
			"not connected")
	}

	if len(m.queryOutcomes) > 0 {
		outcome := m.queryOutcomes[0]
		m.queryOutcomes = m.queryOutcomes[1:]
		if outcome.err != nil {
			return QueryResult{}, outcome.err
		}
		return outcome.result, nil
	}

	// Default to an empty but successful result
	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
		Summary: QuerySummary{},
	}, nil
}

// CreateNode records the call and creates a mock node.
func (m *MockClient) CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("CreateNode", labels, props)

	if !m.connected {
		return "", types.NewError(ErrCodeGraphConnectionClosed,
			"not connected")
	}

	if m.createNodeError != nil {
		return "", m.createNodeError
	}

	nodeID := fmt.Sprintf("mock-node-%d", m.nextNodeID)
	m.nextNodeID++

	m.nodes[nodeID] = mockNode{
		ID:     nodeID,
		Labels: labels,
		Props:  props,
	}

	return nodeID, nil
}

// CreateRelationship records the call and creates a mock relationship.
func (m *MockClient) CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("CreateRelationship", fromID, toID, relType, props)

	if !m.connected {
		return types.NewError(ErrCodeGraphConnectionClosed,
			"not connected")
	}

	if m.createRelError != nil {
		return m.createRelError
	}

	if _, exists := m.nodes[fromID]; !exists {
		return types.NewError(ErrCodeGraphNodeNotFound,
			fmt.Sprintf("from node not found: %s", fromID))
	}
	if _, exists := m.nodes[toID]; !exists {
		return types.NewError(ErrCodeGraphNodeNotFound,
			fmt.Sprintf("to node not found: %s", toID))
	}

	m.relationships = append(m.relationships, mockRelationship{
		FromID: fromID,
		ToID:   toID,
		Type:   relType,
		Props:  props,
	})

	return nil
}

// DeleteNode records the call and removes the mock node with its
// relationships.
func (m *MockClient) DeleteNode(ctx context.Context, nodeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("DeleteNode", nodeID)

	if !m.connected {
		return types.NewError(ErrCodeGraphConnectionClosed,
			"not connected")
	}

	if _, exists := m.nodes[nodeID]; !exists {
		return types.NewError(ErrCodeGraphNodeNotFound,
			fmt.Sprintf("node not found: %s", nodeID))
	}

	delete(m.nodes, nodeID)

	filtered := make([]mockRelationship, 0, len(m.relationships))
	for _, rel := range m.relationships {
		if rel.FromID != nodeID && rel.ToID != nodeID {
			filtered = append(filtered, rel)
		}
	}
	m.relationships = filtered

	return nil
}

// record appends a call entry. Callers must hold the lock.
func (m *MockClient) record(method string, args ...interface{}) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

// EnqueueResult scripts a successful outcome for the next unscripted
// Query or Write call.
func (m *MockClient) EnqueueResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryOutcomes = append(m.queryOutcomes, queryOutcome{result: result})
}

// EnqueueError scripts a failing outcome for the next unscripted Query
// or Write call.
func (m *MockClient) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryOutcomes = append(m.queryOutcomes, queryOutcome{err: err})
}

// SetHealthStatus configures what Health() should return.
func (m *MockClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// SetConnectError configures Connect() to return an error.
func (m *MockClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to return an error.
func (m *MockClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetCreateNodeError configures CreateNode() to return an error.
func (m *MockClient) SetCreateNodeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createNodeError = err
}

// SetCreateRelationshipError configures CreateRelationship() to return an error.
func (m *MockClient) SetCreateRelationshipError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createRelError = err
}

// GetCalls returns all recorded method calls.
func (m *MockClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// CallCount returns the total number of method calls.
func (m *MockClient) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// GetNodes returns all stored nodes.
func (m *MockClient) GetNodes() map[string]mockNode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	nodes := make(map[string]mockNode, len(m.nodes))
	for k, v := range m.nodes {
		nodes[k] = v
	}
	return nodes
}

// GetRelationships returns all stored relationships.
func (m *MockClient) GetRelationships() []mockRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rels := make([]mockRelationship, len(m.relationships))
	copy(rels, m.relationships)
	return rels
}

// IsConnected returns whether the mock is in connected state.
func (m *MockClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Reset clears all recorded calls and resets the mock to its initial state.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	m.healthStatus = types.NewHealthStatus(types.HealthStateHealthy, "mock graph client")
	m.nodes = make(map[string]mockNode)
	m.relationships = make([]mockRelationship, 0)
	m.calls = make([]MockCall, 0)
	m.queryOutcomes = make([]queryOutcome, 0)
	m.nextNodeID = 1
	m.connectError = nil
	m.closeError = nil
	m.createNodeError = nil
	m.createRelError = nil
}
