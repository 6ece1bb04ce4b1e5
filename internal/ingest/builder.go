package ingest

import (
	"context"
	"log/slog"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Builder runs the full knowledge-graph build: batch the source
// documents, extract graph elements per batch, then write everything.
type Builder struct {
	transformer *Transformer
	writer      *Writer
	batchSize   int
	logger      *slog.Logger
}

// NewBuilder returns a Builder with the given batch size.
func NewBuilder(transformer *Transformer, writer *Writer, batchSize int, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Builder{
		transformer: transformer,
		writer:      writer,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// Build extracts and writes the graph for the given documents. A
// failed batch is skipped and counted; Build fails only when the
// context ends or every batch failed.
func (b *Builder) Build(ctx context.Context, documents []Document) (BuildReport, error) {
	batches := b.split(documents)
	report := BuildReport{
		Batches:            len(batches),
		NodeCounts:         make(map[string]int),
		RelationshipCounts: make(map[string]int),
	}

	var allNodes []ExtractedNode
	var allRelationships []ExtractedRelationship

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return report, types.WrapError(types.INGEST_EXTRACTION_FAILED,
				"build interrupted", err)
		}

		result, err := b.transformer.Extract(ctx, batch)
		if err != nil {
			report.FailedBatches++
			b.logger.Warn("batch extraction failed",
				"batch", i+1, "of", len(batches), "error", err)
			continue
		}

		allNodes = append(allNodes, result.Nodes...)
		allRelationships = append(allRelationships, result.Relationships...)
		b.logger.Info("batch extracted",
			"batch", i+1, "of", len(batches),
			"nodes", len(result.Nodes),
			"relationships", len(result.Relationships))
	}

	if len(batches) > 0 && report.FailedBatches == len(batches) {
		return report, types.NewError(types.INGEST_EXTRACTION_FAILED,
			"every extraction batch failed")
	}

	report.NodeCounts = b.writer.WriteNodes(ctx, allNodes)
	report.RelationshipCounts = b.writer.WriteRelationships(ctx, allRelationships)

	b.logger.Info("knowledge graph build finished",
		"batches", report.Batches,
		"failed_batches", report.FailedBatches,
		"nodes", report.TotalNodes(),
		"relationships", report.TotalRelationships())
	return report, nil
}

func (b *Builder) split(documents []Document) [][]Document {
	var batches [][]Document
	for start := 0; start < len(documents); start += b.batchSize {
		end := start + b.batchSize
		if end > len(documents) {
			end = len(documents)
		}
		batches = append(batches, documents[start:end])
	}
	return batches
}
