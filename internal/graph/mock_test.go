package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

func TestMockClient_ConnectAndClose(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()

	assert.False(t, mock.IsConnected())

	require.NoError(t, mock.Connect(ctx))
	assert.True(t, mock.IsConnected())
	assert.True(t, mock.Health(ctx).IsHealthy())

	require.NoError(t, mock.Close(ctx))
	assert.False(t, mock.IsConnected())
	assert.True(t, mock.Health(ctx).IsUnhealthy())
}

func TestMockClient_QueryRequiresConnection(t *testing.T) {
	mock := NewMockClient()

	_, err := mock.Query(context.Background(), "MATCH (n) RETURN n", nil)
	require.Error(t, err)

	var ferr *types.FortressError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, types.GRAPH_CONNECTION_CLOSED, ferr.Code)
}

func TestMockClient_ScriptedOutcomesFIFO(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	queryErr := errors.New("Invalid input 'FROM': expected MATCH")
	mock.EnqueueError(queryErr)
	mock.EnqueueResult(QueryResult{
		Records: []map[string]any{{"count": int64(3)}},
		Columns: []string{"count"},
	})

	_, err := mock.Query(ctx, "SELECT * FROM companies", nil)
	require.ErrorIs(t, err, queryErr)

	result, err := mock.Query(ctx, "MATCH (n) RETURN count(n) AS count", nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(3), result.Records[0]["count"])
}

func TestMockClient_DefaultsToEmptyResult(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	result, err := mock.Query(ctx, "MATCH (n:Policy) RETURN n", nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Columns)
}

func TestMockClient_RecordsCalls(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	_, _ = mock.Query(ctx, "MATCH (n) RETURN n LIMIT 1", map[string]any{"x": 1})
	_, _ = mock.Write(ctx, "CREATE (n:Policy)", nil)

	queries := mock.GetCallsByMethod("Query")
	require.Len(t, queries, 1)
	assert.Equal(t, "MATCH (n) RETURN n LIMIT 1", queries[0].Args[0])

	writes := mock.GetCallsByMethod("Write")
	require.Len(t, writes, 1)

	// Connect + Query + Write
	assert.Equal(t, 3, mock.CallCount())
}

func TestMockClient_CreateNodeAndRelationship(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	fromID, err := mock.CreateNode(ctx, []string{LabelUserCompany}, map[string]any{
		"companyName": "대한정밀",
	})
	require.NoError(t, err)
	require.NotEmpty(t, fromID)

	toID, err := mock.CreateNode(ctx, []string{LabelMacroIndicator}, map[string]any{
		"indicatorName": "기준금리",
	})
	require.NoError(t, err)

	err = mock.CreateRelationship(ctx, fromID, toID, RelIsExposedTo, map[string]any{
		"exposureLevel": "HIGH",
	})
	require.NoError(t, err)

	rels := mock.GetRelationships()
	require.Len(t, rels, 1)
	assert.Equal(t, RelIsExposedTo, rels[0].Type)
	assert.Len(t, mock.GetNodes(), 2)
}

func TestMockClient_CreateRelationshipMissingNode(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	err := mock.CreateRelationship(ctx, "missing-a", "missing-b", RelSimilarTo, nil)
	require.Error(t, err)
}

func TestMockClient_DeleteNodeDetaches(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))

	fromID, err := mock.CreateNode(ctx, []string{LabelUserCompany}, nil)
	require.NoError(t, err)
	toID, err := mock.CreateNode(ctx, []string{LabelKBProduct}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.CreateRelationship(ctx, fromID, toID, RelIsEligibleFor, nil))

	require.NoError(t, mock.DeleteNode(ctx, fromID))

	assert.Len(t, mock.GetNodes(), 1)
	assert.Empty(t, mock.GetRelationships())

	err = mock.DeleteNode(ctx, fromID)
	require.Error(t, err)
}

func TestMockClient_Reset(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()
	require.NoError(t, mock.Connect(ctx))
	mock.EnqueueError(errors.New("boom"))
	_, _ = mock.CreateNode(ctx, []string{LabelPolicy}, nil)

	mock.Reset()

	assert.False(t, mock.IsConnected())
	assert.Equal(t, 0, mock.CallCount())
	assert.Empty(t, mock.GetNodes())
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.URI = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Password = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ConnectionTimeout = 0
	require.Error(t, cfg.Validate())
}
