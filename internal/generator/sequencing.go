package generator

import (
	"context"
	"fmt"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// Sequencing creates exactly one sequencing run per sample. Coverage depth
// is drawn from the assay's characteristic range and the run date falls
// between the sample's collection date and now.
func (g *Generator) Sequencing(ctx context.Context, samples []domain.Record) Result {
	var res Result
	e := g.engine

	for _, sample := range samples {
		sampleID := sample.Int64(domain.KeySampleID)
		path := fmt.Sprintf("/samples/%d/sequencing", sampleID)

		assay := constraint.Pick(e, reference.AssayTypes)
		seqDate := e.DaysAfterCapped(sample.Date(domain.KeyCollectionDate), 1, 14)

		payload := domain.SequencingPayload{
			Platform:       constraint.Pick(e, reference.SequencingPlatforms),
			LibraryPrep:    constraint.Pick(e, reference.LibraryPreps),
			AssayType:      assay,
			SequencingDate: seqDate.Format(domain.DateLayout),
			ReadLength:     constraint.Pick(e, reference.ReadLengths),
			Coverage:       constraint.CoverageFor(e, assay),
			FastqPath:      fmt.Sprintf("/data/fastq/sample_%d_R1.fastq.gz", sampleID),
		}

		rec, err := g.gw.CreateJSON(ctx, path, payload)
		if err != nil {
			g.fail(&res, path, err)
			continue
		}
		g.accept(&res, rec, domain.KeySequencingID, domain.Record{
			domain.KeySampleID:    sampleID,
			domain.KeyDiagnosisID: sample.Int64(domain.KeyDiagnosisID),
		})
	}

	g.logStage("sequencing", res)
	return res
}
