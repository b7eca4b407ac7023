package database

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal returns true for statuses that represent a final state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type ThoughtStatus string

const (
	ThoughtStatusDraft    ThoughtStatus = "draft"
	ThoughtStatusActive   ThoughtStatus = "active"
	ThoughtStatusArchived ThoughtStatus = "archived"
)

// ThoughtStatuses lists the accepted values for the thought status filter,
// in the order they are reported in validation errors.
var ThoughtStatuses = []ThoughtStatus{ThoughtStatusDraft, ThoughtStatusActive, ThoughtStatusArchived}

// BasisEntry is a piece of source material eligible to seed generated
// content once approved.
type BasisEntry struct {
	ID         string    `json:"id"`
	BasisType  string    `json:"basis_type"`
	Reference  string    `json:"reference"`
	SourceText string    `json:"source_text"`
	Theme      string    `json:"theme"`
	Angle      *string   `json:"angle"`
	Notes      *string   `json:"notes"`
	SourceLink *string   `json:"source_link"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContentJob is a unit of asynchronous work with a lifecycle status.
// Status moves queued -> processing (claim) -> completed or failed, and the
// terminal transition happens at most once.
type ContentJob struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      JobStatus       `json:"status"`
	WorkerID    *string         `json:"worker_id,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// PersonalThought is a derived piece of written content, optionally traced
// back to a basis entry. strength_score is managed outside this service and
// is never written here.
type PersonalThought struct {
	ID            string        `json:"id"`
	BasisID       *string       `json:"basis_id"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	Category      string        `json:"category"`
	Status        ThoughtStatus `json:"status"`
	StrengthScore *float64      `json:"strength_score"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BasisEntryInput holds validated fields for creating a basis entry.
// Pointer fields distinguish "not supplied" from an explicit null.
type BasisEntryInput struct {
	BasisType  string
	Reference  string
	SourceText string
	Theme      string
	Angle      *string
	Notes      *string
	SourceLink *string
	Approved   *bool
}

// ThoughtInput holds validated fields for creating a thought. Status is not
// part of the input: new thoughts always start as drafts.
type ThoughtInput struct {
	BasisID  *string
	Title    string
	Body     string
	Category string
}
