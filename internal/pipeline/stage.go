package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Stage names, in execution order. Each stage runs to completion over its
// whole upstream collection before the next stage starts.
const (
	StagePatients        = "patients"
	StageDiagnoses       = "diagnoses"
	StageSamples         = "samples"
	StageSequencing      = "sequencing"
	StageJobs            = "jobs"
	StageVariants        = "variants"
	StageInterpretations = "interpretations"
	StageTherapies       = "therapies"
	StageFollowups       = "followups"
)

// StageOrder is the pipeline's fixed linear order.
var StageOrder = []string{
	StagePatients,
	StageDiagnoses,
	StageSamples,
	StageSequencing,
	StageJobs,
	StageVariants,
	StageInterpretations,
	StageTherapies,
	StageFollowups,
}

// ErrUnknownStage reports a resume request naming a stage outside the order.
var ErrUnknownStage = errors.New("unknown stage")

// StageError is a fatal stage precondition failure: the stage's upstream
// collection was neither generated this run nor found in a checkpoint.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageResult is one stage's accounting in the run summary.
type StageResult struct {
	Stage    string        `json:"stage"`
	Created  int           `json:"created"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// RunSummary is the full run's accounting.
type RunSummary struct {
	RunID     string        `json:"runId"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Stages    []StageResult `json:"stages"`
	Created   int           `json:"created"`
	Failed    int           `json:"failed"`
}

func stageIndex(stage string) (int, error) {
	for i, s := range StageOrder {
		if s == stage {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
}
