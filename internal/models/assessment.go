package models

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is one stored engine run as returned to API callers
type Assessment struct {
	ID        uuid.UUID              `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Result    DryingAssessmentResult `json:"result"`
}
