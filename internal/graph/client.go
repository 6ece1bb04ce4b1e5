package graph

import (
	"context"
	"time"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Client provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type Client interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	Close(ctx context.Context) error

	// Health returns the current health status of the connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a read Cypher query with the given parameters.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Write executes a write Cypher query with the given parameters.
	Write(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// CreateNode creates a node with the specified labels and properties
	// and returns its element ID.
	CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error)

	// CreateRelationship creates a relationship between two nodes
	// identified by element ID.
	CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error

	// DeleteNode detaches and deletes a node by its element ID.
	DeleteNode(ctx context.Context, nodeID string) error
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// Empty reports whether the query succeeded but matched nothing.
func (r QueryResult) Empty() bool {
	return len(r.Records) == 0
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// Config contains connection options for graph database clients.
type Config struct {
	// URI is the bolt/neo4j connection URI.
	URI string `mapstructure:"uri"`

	// Username for authentication.
	Username string `mapstructure:"username"`

	// Password for authentication.
	Password string `mapstructure:"password"`

	// Database name; empty uses the server default.
	Database string `mapstructure:"database"`

	// MaxConnectionPoolSize limits pooled connections. Zero uses the
	// driver default.
	MaxConnectionPoolSize int `mapstructure:"max_connection_pool_size"`

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout"`

	// MaxTransactionRetryTime is the maximum time the driver retries
	// failed transactions.
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time"`
}

// DefaultConfig returns a Config with sensible defaults for a local
// Neo4j instance.
func DefaultConfig() Config {
	return Config{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
