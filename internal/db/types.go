package db

import "time"

// Run represents a provisioning run record
type Run struct {
	ID            string     `json:"id"`
	Game          string     `json:"game"`
	CharacterName string     `json:"character_name"`
	Storyteller   string     `json:"storyteller"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Step identifiers for saved artifacts
const (
	StepRecord        = "character_record"
	StepTemplates     = "templates"
	StepSpreadsheets  = "spreadsheets"
	StepMasterlistRow = "masterlist_row"
	StepProfile       = "profile"
)

// Artifact categories
const (
	CategoryResolution = "resolution"
	CategoryCreation   = "creation"
	CategoryMutation   = "mutation"
	CategorySummary    = "summary"
)
