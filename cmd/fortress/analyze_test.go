package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

func TestLoadProfile_RebuildsRatios(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	store.EnqueueResult(graph.QueryResult{Records: []map[string]any{{
		"companyName":      "대한정밀",
		"industry":         "자동차부품 제조",
		"location":         "경기도 안산시",
		"revenue":          int64(150),
		"employees":        int64(45),
		"debtAmount":       int64(80),
		"variableRateDebt": int64(56),
		"exportAmount":     int64(45),
	}}})

	profile, err := loadProfile(ctx, store, "대한정밀")
	require.NoError(t, err)

	assert.Equal(t, "대한정밀", profile.CompanyName)
	assert.Equal(t, 80, profile.Debt)
	assert.Equal(t, 70, profile.VariableDebtRatio)
	assert.Equal(t, 30, profile.ExportRatio)
	assert.Equal(t, 56, profile.VariableRateDebt())
	assert.Equal(t, 45, profile.ExportAmount())
}

func TestLoadProfile_NotRegistered(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMockClient()
	require.NoError(t, store.Connect(ctx))

	_, err := loadProfile(ctx, store, "없는회사")
	require.Error(t, err)

	var ferr *types.FortressError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, types.COMPANY_NOT_FOUND, ferr.Code)
}

func TestRecordInt(t *testing.T) {
	record := map[string]any{
		"a": int64(7),
		"b": 8,
		"c": 9.0,
		"d": "x",
	}
	assert.Equal(t, 7, recordInt(record, "a"))
	assert.Equal(t, 8, recordInt(record, "b"))
	assert.Equal(t, 9, recordInt(record, "c"))
	assert.Zero(t, recordInt(record, "d"))
	assert.Zero(t, recordInt(record, "missing"))
}
