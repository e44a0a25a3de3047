package model

import (
	"time"

	"github.com/google/uuid"
)

type ImportStatus string

const (
	ImportPending ImportStatus = "pending"
	ImportDone    ImportStatus = "done"
	ImportFailed  ImportStatus = "failed"
)

// ImportJob asks the worker to build an article from a web page.
// The worker writes on behalf of RequestedBy.
type ImportJob struct {
	ID              uuid.UUID    `json:"id"`
	URL             string       `json:"url"`
	Language        string       `json:"language"`
	Color           string       `json:"color,omitempty"`
	RequestedBy     uuid.UUID    `json:"requestedBy"`
	RequestedByName string       `json:"requestedByName,omitempty"`
	Status          ImportStatus `json:"status"`
	ArticleID       *uuid.UUID   `json:"articleId,omitempty"`
	ErrorMessage    string       `json:"errorMessage,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	FinishedAt      *time.Time   `json:"finishedAt,omitempty"`
}

// NewImportJob creates a pending job for rawURL.
func NewImportJob(rawURL, language string, requestedBy uuid.UUID) ImportJob {
	return ImportJob{
		ID:          uuid.New(),
		URL:         rawURL,
		Language:    language,
		RequestedBy: requestedBy,
		Status:      ImportPending,
		CreatedAt:   time.Now().UTC(),
	}
}
