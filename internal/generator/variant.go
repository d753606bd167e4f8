package generator

import (
	"context"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

const variantsPath = "/variants"

// Variants creates two to five called variants for every job that did not
// fail. Gene symbols are drawn from the job's cancer type driver list so the
// dataset stays biologically coherent; jobs in a FAILED state produce no
// variants, which is a valid outcome rather than an error.
func (g *Generator) Variants(ctx context.Context, jobs []domain.Record) Result {
	var res Result
	e := g.engine

	for _, job := range jobs {
		if domain.JobStatus(job.String(domain.KeyJobStatus)) == domain.JOB_FAILED {
			continue
		}

		ct := reference.CancerTypeByName(job.String(domain.KeyCancerType))
		jobID := job.Int64(domain.KeyJobID)

		n := e.IntBetween(constraint.MinVariantsPerJob, constraint.MaxVariantsPerJob)
		for i := 0; i < n; i++ {
			genes := reference.CancerTypes[0].DriverGenes
			if ct != nil && len(ct.DriverGenes) > 0 {
				genes = ct.DriverGenes
			}
			gene := constraint.Pick(e, genes)

			ref := constraint.Pick(e, reference.Bases)
			alt := constraint.Pick(e, reference.Bases)
			for alt == ref {
				alt = constraint.Pick(e, reference.Bases)
			}

			payload := domain.VariantPayload{
				JobID:           jobID,
				GeneSymbol:      gene,
				Chromosome:      constraint.Pick(e, reference.Chromosomes),
				Position:        e.Int64Between(1_000_000, 250_000_000),
				ReferenceAllele: ref,
				AlternateAllele: alt,
				VariantType:     constraint.Pick(e, reference.VariantTypes),
				AlleleFrequency: round2(e.FloatBetween(0.05, 0.95)),
				ReadDepth:       e.IntBetween(50, 500),
				FilterStatus:    constraint.Pick(e, reference.FilterStatuses),
			}

			rec, err := g.gw.CreateJSON(ctx, variantsPath, payload)
			if err != nil {
				g.fail(&res, variantsPath, err)
				continue
			}
			g.accept(&res, rec, domain.KeyVariantID, domain.Record{
				domain.KeyJobID:         jobID,
				domain.KeyGeneSymbol:    gene,
				domain.KeyDiagnosisID:   job.Int64(domain.KeyDiagnosisID),
				domain.KeyPatientID:     job.Int64(domain.KeyPatientID),
				domain.KeyCancerType:    job.String(domain.KeyCancerType),
				domain.KeyDiagnosisDate: job.String(domain.KeyDiagnosisDate),
			})
		}
	}

	g.logStage("variants", res)
	return res
}
