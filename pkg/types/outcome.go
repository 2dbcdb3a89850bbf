// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus classifies the overall result of one pipeline run.
type RunStatus string

const (
	// StatusSuccess: generation, publishing, and delivery all succeeded.
	StatusSuccess RunStatus = "success"

	// StatusPartial: generation succeeded but publishing or delivery did not.
	// Archive failures alone never downgrade a run below partial.
	StatusPartial RunStatus = "partial"

	// StatusFailed: generation itself failed; nothing was published or sent.
	StatusFailed RunStatus = "failed"

	// StatusBusy: the run was rejected because another run was active.
	StatusBusy RunStatus = "busy"
)

// Stage names used to tag outcome errors with their origin.
const (
	StageHistory  = "history"
	StageGenerate = "generate"
	StagePublish  = "publish"
	StageArchive  = "archive"
	StageDeliver  = "deliver"
	StageRecord   = "record"
)

// StageError is one recorded failure, tagged with the stage it came from.
// Raw client errors never escape the orchestrator; they are flattened to
// messages here.
type StageError struct {
	Stage   string `json:"stage" yaml:"stage"`
	Message string `json:"message" yaml:"message"`
}

// RunOutcome is what a caller of RunOnce observes: one status, the references
// produced along the way, and every error recorded across the run, in order.
type RunOutcome struct {
	Status      RunStatus     `json:"status" yaml:"status"`
	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	DocumentRef string        `json:"document_ref,omitempty" yaml:"document_ref,omitempty"`
	ArchiveRef  string        `json:"archive_ref,omitempty" yaml:"archive_ref,omitempty"`
	EmailSent   bool          `json:"email_sent" yaml:"email_sent"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Errors      []StageError  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// AddError appends a stage-tagged error message to the outcome.
func (o *RunOutcome) AddError(stage string, err error) {
	o.Errors = append(o.Errors, StageError{Stage: stage, Message: err.Error()})
}

// ErrorsFor returns the recorded messages for one stage, in order.
func (o *RunOutcome) ErrorsFor(stage string) []string {
	var msgs []string
	for _, e := range o.Errors {
		if e.Stage == stage {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
