// Package pipeline drives the dataset generation as a strictly linear stage
// machine: patients, then diagnoses, samples, sequencing runs, variant
// calling jobs, variants, interpretations, therapies, and follow-ups. Every
// stage finishes over its whole upstream collection before the next starts,
// checkpoints its accepted records, and reports success and failure counts
// into the run summary.
//
// A run may start from any stage; each stage's upstream collection must then
// come from this run or from a checkpoint, and a missing checkpoint halts
// the run with a StageError. Item-level failures never halt anything.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oncoseed/internal/checkpoint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/generator"
)

// RemoteService is the slice of the gateway the orchestrator itself uses:
// the readiness gate before any stage runs, and entity reads to verify that
// checkpointed records still exist when resuming.
type RemoteService interface {
	WaitUntilReady(ctx context.Context) error
	Get(ctx context.Context, path string) (domain.Record, error)
}

// Options are the per-run knobs.
type Options struct {
	// Patients is the number of root records to generate.
	Patients int

	// FromStage resumes the run at the named stage; empty starts from the
	// beginning. Upstream collections come from checkpoints.
	FromStage string

	// InvalidateDownstream deletes the checkpoints of the starting stage
	// and everything after it before running, so a resume never mixes a
	// regenerated stage with stale descendants.
	InvalidateDownstream bool
}

// Pipeline wires the generator, the remote service, and the checkpoint
// store into one run loop.
type Pipeline struct {
	gen    *generator.Generator
	remote RemoteService
	store  checkpoint.Store
	logger *logrus.Logger
}

// New constructs a Pipeline.
func New(gen *generator.Generator, remote RemoteService, store checkpoint.Store, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{gen: gen, remote: remote, store: store, logger: logger}
}

// Run executes the pipeline from Options.FromStage through the final stage.
// The returned summary is valid even on a fatal error and covers the stages
// that completed before the halt.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	start := 0
	if opts.FromStage != "" {
		idx, err := stageIndex(opts.FromStage)
		if err != nil {
			return summary, err
		}
		start = idx
	}

	log := p.logger.WithField("run_id", summary.RunID)
	log.WithFields(logrus.Fields{
		"patients":   opts.Patients,
		"from_stage": StageOrder[start],
	}).Info("Starting pipeline run")

	if err := p.remote.WaitUntilReady(ctx); err != nil {
		return summary, fmt.Errorf("readiness gate: %w", err)
	}

	if opts.InvalidateDownstream {
		for _, stage := range StageOrder[start:] {
			if err := p.store.Delete(ctx, stage); err != nil {
				return summary, fmt.Errorf("invalidate checkpoint %s: %w", stage, err)
			}
		}
	}

	// Collections generated this run; checkpoints fill the gaps on resume.
	generated := make(map[string][]domain.Record)

	for _, stage := range StageOrder[start:] {
		began := time.Now()

		res, err := p.runStage(ctx, stage, opts, generated)
		if err != nil {
			return summary, err
		}

		generated[stage] = res.Records
		if err := p.store.Save(ctx, stage, res.Records); err != nil {
			return summary, &StageError{Stage: stage, Err: fmt.Errorf("save checkpoint: %w", err)}
		}

		summary.Stages = append(summary.Stages, StageResult{
			Stage:    stage,
			Created:  res.Created,
			Failed:   res.Failed,
			Duration: time.Since(began),
		})
		summary.Created += res.Created
		summary.Failed += res.Failed
	}

	log.WithFields(logrus.Fields{
		"created": summary.Created,
		"failed":  summary.Failed,
	}).Info("Pipeline run finished")
	return summary, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage string, opts Options, generated map[string][]domain.Record) (generator.Result, error) {
	switch stage {
	case StagePatients:
		return p.gen.Patients(ctx, opts.Patients), nil
	case StageDiagnoses:
		return p.withUpstream(ctx, stage, StagePatients, generated, p.gen.Diagnoses)
	case StageSamples:
		return p.withUpstream(ctx, stage, StageDiagnoses, generated, p.gen.Samples)
	case StageSequencing:
		return p.withUpstream(ctx, stage, StageSamples, generated, p.gen.Sequencing)
	case StageJobs:
		return p.withUpstream(ctx, stage, StageSamples, generated, p.gen.Jobs)
	case StageVariants:
		return p.withUpstream(ctx, stage, StageJobs, generated, p.gen.Variants)
	case StageInterpretations:
		return p.withUpstream(ctx, stage, StageVariants, generated, p.gen.Interpretations)
	case StageTherapies:
		return p.withUpstream(ctx, stage, StageVariants, generated, p.gen.Therapies)
	case StageFollowups:
		return p.withUpstream(ctx, stage, StageTherapies, generated, p.gen.Followups)
	default:
		return generator.Result{}, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
}

// withUpstream resolves the stage's input collection and runs its generator.
// A collection generated earlier in this run wins; otherwise the upstream
// checkpoint is loaded, and its absence is a fatal precondition failure. A
// present but empty collection is a valid input and yields an empty result.
func (p *Pipeline) withUpstream(
	ctx context.Context,
	stage, upstream string,
	generated map[string][]domain.Record,
	run func(context.Context, []domain.Record) generator.Result,
) (generator.Result, error) {
	records, ok := generated[upstream]
	if !ok {
		var err error
		records, err = p.store.Load(ctx, upstream)
		if err != nil {
			return generator.Result{}, &StageError{Stage: stage, Err: fmt.Errorf("upstream %s: %w", upstream, err)}
		}
		if err := p.verifyResumed(ctx, upstream, records); err != nil {
			return generator.Result{}, &StageError{Stage: stage, Err: err}
		}
		p.logger.WithFields(logrus.Fields{
			"stage":    stage,
			"upstream": upstream,
			"records":  len(records),
		}).Info("Loaded upstream collection from checkpoint")
	}
	return run(ctx, records), nil
}

// verifyResumed spot-checks a checkpointed collection against the remote
// service before building on it. Patient records are the pipeline's roots
// and the only entities the service exposes a direct read for, so the first
// checkpointed patient is fetched; a missing parent means the checkpoint
// outlived the dataset and the resume must halt rather than orphan children.
func (p *Pipeline) verifyResumed(ctx context.Context, upstream string, records []domain.Record) error {
	if upstream != StagePatients || len(records) == 0 {
		return nil
	}

	id := records[0].Int64(domain.KeyPatientID)
	if _, err := p.remote.Get(ctx, fmt.Sprintf("/patients/%d", id)); err != nil {
		return fmt.Errorf("verify checkpointed patient %d: %w", id, err)
	}
	return nil
}
