package dto

import "time"

// ImportSubmitResponse acknowledges an accepted workbook upload.
type ImportSubmitResponse struct {
	ID string `json:"id"`
}

// ImportStatusResponse describes the progress of a submitted import job.
type ImportStatusResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	State       string    `json:"state"`
	Inserted    int       `json:"inserted"`
	Warnings    []string  `json:"warnings,omitempty"`
	Error       string    `json:"error,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
}
