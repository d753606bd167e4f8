package generator

import (
	"context"
	"fmt"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

const interpretationsPath = "/interpretations"

// Interpretations creates exactly one clinical interpretation per variant.
// Significance is skewed toward pathogenic for driver genes of the variant's
// cancer type, and the evidence level is conditioned on the significance.
func (g *Generator) Interpretations(ctx context.Context, variants []domain.Record) Result {
	var res Result
	e := g.engine

	for _, v := range variants {
		gene := v.String(domain.KeyGeneSymbol)
		ct := reference.CancerTypeByName(v.String(domain.KeyCancerType))

		sig := constraint.SignificanceFor(e, gene, ct)

		narrative := constraint.Pick(e, reference.UncertainNarratives)
		if sig.Pathogenic() {
			narrative = constraint.Pick(e, reference.PathogenicNarratives)
		}

		payload := domain.InterpretationPayload{
			VariantID:            v.Int64(domain.KeyVariantID),
			ClinicalSignificance: sig,
			EvidenceLevel:        constraint.EvidenceLevelFor(e, sig),
			Interpretation:       fmt.Sprintf("%s variant identified. %s", gene, narrative),
			References:           fmt.Sprintf("PMID: %d", e.IntBetween(30000000, 38999999)),
		}

		rec, err := g.gw.CreateJSON(ctx, interpretationsPath, payload)
		if err != nil {
			g.fail(&res, interpretationsPath, err)
			continue
		}
		g.accept(&res, rec, domain.KeyInterpretationID, domain.Record{
			domain.KeyVariantID: payload.VariantID,
		})
	}

	g.logStage("interpretations", res)
	return res
}
