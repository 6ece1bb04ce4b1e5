package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Neo4jClient implements Client for Neo4j graph databases.
// It provides connection pooling, retried connect, and health checks.
type Neo4jClient struct {
	config Config
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config Config) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect establishes a connection to the Neo4j database with
// exponential backoff.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	driverConfig := func(config *neo4j.Config) {
		config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
		// Encryption is controlled by the URI scheme (bolt:// vs bolt+s://)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = c.config.ConnectionTimeout
	policy.MaxElapsedTime = 0 // bounded by retry count instead

	attempt := func() error {
		driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, driverConfig)
		if err != nil {
			return err
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			_ = driver.Close(ctx)
			return err
		}
		c.driver = driver
		return nil
	}

	const maxRetries = 5
	err := backoff.Retry(attempt,
		backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries-1), ctx))
	if err != nil {
		if ctx.Err() != nil {
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
		return types.WrapError(ErrCodeGraphConnectionFailed,
			fmt.Sprintf("failed to connect after %d attempts", maxRetries), err)
	}

	return nil
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}

	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed,
			"failed to close driver", err)
	}

	c.driver = nil
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// Query executes a read Cypher query with the given parameters.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.run(ctx, cypher, params, false)
}

// Write executes a write Cypher query with the given parameters.
func (c *Neo4jClient) Write(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.run(ctx, cypher, params, true)
}

func (c *Neo4jClient) run(ctx context.Context, cypher string, params map[string]any, write bool) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	startTime := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(records, summary), nil
	}

	var result any
	var err error
	if write {
		result, err = session.ExecuteWrite(ctx, work)
	} else {
		result, err = session.ExecuteRead(ctx, work)
	}

	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeGraphQueryFailed,
			"query execution failed", err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// CreateNode creates a new node with the specified labels and properties.
func (c *Neo4jClient) CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error) {
	if c.driver == nil {
		return "", types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	labelStr := ""
	if len(labels) > 0 {
		labelStr = ":" + strings.Join(labels, ":")
	}

	cypher := fmt.Sprintf("CREATE (n%s) SET n = $props RETURN elementId(n) as id", labelStr)

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, map[string]any{"props": props})
		if err != nil {
			return nil, err
		}

		record, err := neoResult.Single(ctx)
		if err != nil {
			return nil, err
		}

		id, ok := record.Get("id")
		if !ok {
			return nil, fmt.Errorf("id not found in result")
		}

		return id.(string), nil
	})

	if err != nil {
		return "", types.WrapError(ErrCodeGraphNodeCreateFailed,
			"failed to create node", err)
	}

	return result.(string), nil
}

// CreateRelationship creates a relationship between two nodes.
func (c *Neo4jClient) CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error {
	if c.driver == nil {
		return types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	cypher := fmt.Sprintf(`
		MATCH (from), (to)
		WHERE elementId(from) = $fromId AND elementId(to) = $toId
		CREATE (from)-[r:%s]->(to)
		SET r = $props
		RETURN r
	`, relType)

	params := map[string]any{
		"fromId": fromID,
		"toId":   toID,
		"props":  props,
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		_, err = neoResult.Single(ctx)
		return nil, err
	})

	if err != nil {
		return types.WrapError(ErrCodeGraphRelationshipCreateFailed,
			"failed to create relationship", err)
	}

	return nil
}

// DeleteNode detaches and deletes a node by its element ID.
func (c *Neo4jClient) DeleteNode(ctx context.Context, nodeID string) error {
	if c.driver == nil {
		return types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	cypher := "MATCH (n) WHERE elementId(n) = $id DETACH DELETE n"
	params := map[string]any{"id": nodeID}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, cypher, params)
		return nil, err
	})

	if err != nil {
		return types.WrapError(ErrCodeGraphNodeDeleteFailed,
			"failed to delete node", err)
	}

	return nil
}

// convertNeo4jResult converts Neo4j records and summary to QueryResult.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		recordMap := make(map[string]any)
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}
