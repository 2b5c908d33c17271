package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/style-transfer/internal/evaluation"
	"github.com/jonathan/style-transfer/internal/types"
)

// GetRequestByRunID loads the original request from the database for a run
func (db *DB) GetRequestByRunID(ctx context.Context, runID uuid.UUID) (*types.StyleTransferRequest, error) {
	content, err := db.GetArtifact(ctx, runID, StepRequest)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var request types.StyleTransferRequest
	if err := json.Unmarshal(content, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return &request, nil
}

// GetEnrichedStylesByRunID loads the enriched reference styles for a run
func (db *DB) GetEnrichedStylesByRunID(ctx context.Context, runID uuid.UUID) ([]types.ReferenceStyle, error) {
	content, err := db.GetArtifact(ctx, runID, StepEnrichedStyles)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var styles []types.ReferenceStyle
	if err := json.Unmarshal(content, &styles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal enriched styles: %w", err)
	}
	return styles, nil
}

// GetResponsesByRunID loads the generated responses for a run
func (db *DB) GetResponsesByRunID(ctx context.Context, runID uuid.UUID) ([]types.StyleTransferResponse, error) {
	content, err := db.GetArtifact(ctx, runID, StepResponses)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var responses []types.StyleTransferResponse
	if err := json.Unmarshal(content, &responses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
	}
	return responses, nil
}

// GetEvaluationByRunID loads the per-response evaluation results for a run
func (db *DB) GetEvaluationByRunID(ctx context.Context, runID uuid.UUID) ([][]evaluation.Result, error) {
	content, err := db.GetArtifact(ctx, runID, StepEvaluation)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var results [][]evaluation.Result
	if err := json.Unmarshal(content, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}
	return results, nil
}
