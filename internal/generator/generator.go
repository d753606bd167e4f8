// Package generator produces each pipeline stage's entities: it draws
// constrained values from the constraint engine, submits every candidate to
// the remote service through the gateway, and collects the accepted records
// enriched with the linkage metadata the next stage needs.
//
// Generators are stateless with respect to each other. An item-level
// submission failure increments the stage's error count and moves on; it
// never aborts the stage. An empty upstream collection yields an empty,
// non-fatal result.
package generator

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
)

// Submitter is the slice of the gateway the generators depend on.
type Submitter interface {
	CreateJSON(ctx context.Context, path string, payload any) (domain.Record, error)
	CreateForm(ctx context.Context, path string, values url.Values) (domain.Record, error)
}

// Result is one stage's outcome: the accepted records in submission order
// plus the stage's success and failure counts.
type Result struct {
	Records []domain.Record
	Created int
	Failed  int
}

// Generator runs the per-stage entity generation.
type Generator struct {
	gw     Submitter
	engine *constraint.Engine
	logger *logrus.Logger
}

// New constructs a Generator. The engine's seed determines every constrained
// draw, so two generators with equal seeds produce identical candidates.
func New(gw Submitter, engine *constraint.Engine, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{gw: gw, engine: engine, logger: logger}
}

// accept records a successful submission: the remote record is normalized so
// its identifier is reachable under the canonical key, linkage metadata is
// attached, and the record joins the result set.
func (g *Generator) accept(res *Result, rec domain.Record, idKey string, linkage domain.Record) domain.Record {
	if !rec.Has(idKey) && rec.Has("id") {
		rec[idKey] = rec.Int64("id")
	}
	for k, v := range linkage {
		if !rec.Has(k) {
			rec[k] = v
		}
	}
	res.Records = append(res.Records, rec)
	res.Created++
	return rec
}

// fail counts an item-level submission failure and logs it.
func (g *Generator) fail(res *Result, path string, err error) {
	res.Failed++
	g.logger.WithError(err).WithField("path", path).Warn("Submission failed")
}

func (g *Generator) logStage(stage string, res Result) {
	g.logger.WithFields(logrus.Fields{
		"stage":   stage,
		"created": res.Created,
		"failed":  res.Failed,
	}).Info("Stage generation finished")
}
