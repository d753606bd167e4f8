package generator

import (
	"context"
	"fmt"
	"math"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// Samples creates one to three samples per diagnosis. The first sample is
// always tumor tissue and the second, when present, is always a normal blood
// sample, so every diagnosis can anchor a variant calling pair; any third
// sample draws from the remaining types. Tumor purity is emitted only for
// tumor-bearing types.
func (g *Generator) Samples(ctx context.Context, diagnoses []domain.Record) Result {
	var res Result
	e := g.engine

	for _, diag := range diagnoses {
		diagID := diag.Int64(domain.KeyDiagnosisID)
		path := fmt.Sprintf("/diagnoses/%d/samples", diagID)
		diagDate := diag.Date(domain.KeyDiagnosisDate)

		n := e.IntBetween(constraint.MinSamplesPerDiagnosis, constraint.MaxSamplesPerDiagnosis)
		for i := 0; i < n; i++ {
			var st domain.SampleType
			switch i {
			case 0:
				st = domain.SAMPLE_TUMOR
			case 1:
				st = domain.SAMPLE_NORMAL
			default:
				st = constraint.Pick(e, reference.ExtraSampleTypes)
			}

			collected := e.DaysAfterCapped(diagDate, 0, 30)

			payload := domain.SamplePayload{
				SampleType:         st,
				TissueType:         constraint.Pick(e, reference.TissueTypes[st]),
				CollectionDate:     collected.Format(domain.DateLayout),
				SampleQualityScore: round2(e.FloatBetween(0.7, 1.0)),
				StorageLocation: fmt.Sprintf("Freezer %s-Rack %d-Box %d",
					constraint.Pick(e, reference.StorageFreezers),
					e.IntBetween(1, 10), e.IntBetween(1, 100)),
			}
			if st.TumorBearing() {
				payload.TumorPurity = round2(e.FloatBetween(0.3, 0.9))
			}

			rec, err := g.gw.CreateJSON(ctx, path, payload)
			if err != nil {
				g.fail(&res, path, err)
				continue
			}
			g.accept(&res, rec, domain.KeySampleID, domain.Record{
				domain.KeyDiagnosisID:    diagID,
				domain.KeyPatientID:      diag.Int64(domain.KeyPatientID),
				domain.KeyCancerType:     diag.String(domain.KeyCancerType),
				domain.KeyDiagnosisDate:  diag.String(domain.KeyDiagnosisDate),
				domain.KeySampleType:     string(st),
				domain.KeyCollectionDate: payload.CollectionDate,
			})
		}
	}

	g.logStage("samples", res)
	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
