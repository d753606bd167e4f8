package constraint

import (
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// SignificanceFor draws a clinical significance for a variant. The
// distribution is skewed heavily toward pathogenic calls when the gene is a
// known driver for the variant's cancer type, and is near-flat otherwise.
func SignificanceFor(e *Engine, gene string, ct *reference.CancerType) domain.ClinicalSignificance {
	if ct != nil && ct.IsDriverGene(gene) {
		return WeightedChoice(e, []Weighted[domain.ClinicalSignificance]{
			{Value: domain.SIG_PATHOGENIC, Weight: 2},
			{Value: domain.SIG_LIKELY_PATHOGENIC, Weight: 1},
		})
	}
	return WeightedChoice(e, []Weighted[domain.ClinicalSignificance]{
		{Value: domain.SIG_PATHOGENIC, Weight: 1},
		{Value: domain.SIG_LIKELY_PATHOGENIC, Weight: 1},
		{Value: domain.SIG_VUS, Weight: 2},
		{Value: domain.SIG_LIKELY_BENIGN, Weight: 1},
		{Value: domain.SIG_BENIGN, Weight: 1},
	})
}

// EvidenceLevelFor draws an evidence level conditioned on the chosen
// significance: definitive calls lean on stronger evidence tiers, likely
// calls on the middle tiers, and uncertain calls on the weaker ones.
// reference.EvidenceLevels is ordered strongest first.
func EvidenceLevelFor(e *Engine, sig domain.ClinicalSignificance) string {
	var weights []int
	switch sig {
	case domain.SIG_PATHOGENIC, domain.SIG_BENIGN:
		weights = []int{4, 3, 2, 2, 1, 1, 1}
	case domain.SIG_LIKELY_PATHOGENIC, domain.SIG_LIKELY_BENIGN:
		weights = []int{2, 3, 3, 2, 2, 1, 1}
	default:
		weights = []int{1, 1, 2, 2, 3, 3, 4}
	}

	items := make([]Weighted[string], len(reference.EvidenceLevels))
	for i, lvl := range reference.EvidenceLevels {
		items[i] = Weighted[string]{Value: lvl, Weight: weights[i]}
	}
	return WeightedChoice(e, items)
}

// JobStatusFor draws a variant calling job status, biased toward completed
// jobs so that most pairs contribute variants downstream.
func JobStatusFor(e *Engine) domain.JobStatus {
	return WeightedChoice(e, []Weighted[domain.JobStatus]{
		{Value: domain.JOB_COMPLETED, Weight: 6},
		{Value: domain.JOB_IN_PROGRESS, Weight: 1},
		{Value: domain.JOB_PENDING, Weight: 1},
		{Value: domain.JOB_FAILED, Weight: 1},
	})
}

// CoverageFor draws a sequencing coverage depth appropriate for the assay
// breadth: targeted panels are sequenced deepest, whole genomes shallowest.
func CoverageFor(e *Engine, assay domain.AssayType) int {
	switch assay {
	case domain.ASSAY_TARGETED_PANEL:
		return e.IntBetween(400, 800)
	case domain.ASSAY_WHOLE_EXOME:
		return e.IntBetween(80, 150)
	default:
		return e.IntBetween(30, 60)
	}
}
