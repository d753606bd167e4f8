package constraint

import (
	"strings"

	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// DrugMatch is a therapy candidate for a diagnosis: the drug, the variants
// whose genes justify it, and whether it was chosen by the no-match
// fallback rather than a gene match.
type DrugMatch struct {
	Drug       reference.Drug
	VariantIDs []int64
	Fallback   bool
}

// MatchDrugs resolves the drug table of a cancer type against a diagnosis's
// variant group. A drug matches a variant when the variant's gene symbol
// appears in the drug's target-gene field. Each matched drug is returned
// once, linked to exactly the variants that matched it. When no variant in
// the group matches any drug, one drug is chosen uniformly from the table
// and linked to the whole group, so a diagnosis with variants never ends up
// without a recommendation.
func MatchDrugs(e *Engine, ct *reference.CancerType, variants []domain.Record) []DrugMatch {
	if ct == nil || len(ct.Drugs) == 0 || len(variants) == 0 {
		return nil
	}

	var matches []DrugMatch
	for _, drug := range ct.Drugs {
		var ids []int64
		for _, v := range variants {
			gene := v.String(domain.KeyGeneSymbol)
			if gene != "" && strings.Contains(drug.TargetGene, gene) {
				ids = append(ids, v.Int64(domain.KeyVariantID))
			}
		}
		if len(ids) > 0 {
			matches = append(matches, DrugMatch{Drug: drug, VariantIDs: ids})
		}
	}
	if len(matches) > 0 {
		return matches
	}

	// Fallback: no gene in the group is actionable for this cancer type.
	fallback := DrugMatch{Drug: Pick(e, ct.Drugs), Fallback: true}
	for _, v := range variants {
		fallback.VariantIDs = append(fallback.VariantIDs, v.Int64(domain.KeyVariantID))
	}
	return []DrugMatch{fallback}
}
