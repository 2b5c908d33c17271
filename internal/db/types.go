package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a style transfer run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	StyleName   string     `json:"style_name"`
	Focus       string     `json:"focus"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types
const (
	StepRequest        = "request"
	StepEnrichedStyles = "enriched_styles"
	StepResponses      = "responses"
	StepRenderedText   = "rendered_text"
	StepEvaluation     = "evaluation"
)
