package generator

import (
	"context"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

const therapiesPath = "/therapies"

// Therapies creates drug recommendations per diagnosis from its variant
// group. A drug is recommended when one of the group's gene symbols appears
// in its target-gene field, linked to exactly the matching variants; a group
// with no actionable gene falls back to one randomly chosen drug from the
// cancer type's table, linked to the whole group, so no diagnosis with
// variants goes without a recommendation.
func (g *Generator) Therapies(ctx context.Context, variants []domain.Record) Result {
	var res Result
	e := g.engine

	byDiagnosis := make(map[int64][]domain.Record)
	var order []int64
	for _, v := range variants {
		diagID := v.Int64(domain.KeyDiagnosisID)
		if _, seen := byDiagnosis[diagID]; !seen {
			order = append(order, diagID)
		}
		byDiagnosis[diagID] = append(byDiagnosis[diagID], v)
	}

	for _, diagID := range order {
		group := byDiagnosis[diagID]
		first := group[0]
		ct := reference.CancerTypeByName(first.String(domain.KeyCancerType))

		recDate := e.DaysAfterCapped(first.Date(domain.KeyDiagnosisDate), 14, 45)

		for _, match := range constraint.MatchDrugs(e, ct, group) {
			notes := "Targeted therapy matched to the sequenced variant profile."
			if match.Fallback {
				notes = "Standard-of-care option; no actionable variant matched."
			}

			payload := domain.TherapyPayload{
				PatientID:          first.Int64(domain.KeyPatientID),
				DiagnosisID:        diagID,
				DrugName:           match.Drug.Name,
				Dosage:             match.Drug.Dosage,
				RecommendationDate: recDate.Format(domain.DateLayout),
				EvidenceLevel:      constraint.Pick(e, reference.EvidenceLevels),
				VariantIDs:         match.VariantIDs,
				Notes:              notes,
			}

			rec, err := g.gw.CreateJSON(ctx, therapiesPath, payload)
			if err != nil {
				g.fail(&res, therapiesPath, err)
				continue
			}
			g.accept(&res, rec, domain.KeyRecommendation, domain.Record{
				domain.KeyPatientID:   payload.PatientID,
				domain.KeyDiagnosisID: diagID,
				domain.KeyRecDate:     payload.RecommendationDate,
			})
		}
	}

	g.logStage("therapies", res)
	return res
}
