package graph

import "github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"

// Graph database error codes
const (
	ErrCodeGraphConnectionFailed = types.GRAPH_CONNECTION_FAILED
	ErrCodeGraphConnectionClosed = types.GRAPH_CONNECTION_CLOSED
	ErrCodeGraphQueryFailed      = types.GRAPH_QUERY_FAILED

	ErrCodeGraphInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	ErrCodeGraphNodeCreateFailed         types.ErrorCode = "GRAPH_NODE_CREATE_FAILED"
	ErrCodeGraphNodeDeleteFailed         types.ErrorCode = "GRAPH_NODE_DELETE_FAILED"
	ErrCodeGraphNodeNotFound             types.ErrorCode = "GRAPH_NODE_NOT_FOUND"
	ErrCodeGraphRelationshipCreateFailed types.ErrorCode = "GRAPH_RELATIONSHIP_CREATE_FAILED"
)
