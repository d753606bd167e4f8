package constraint

import (
	"fmt"
	"strings"

	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// FollowupStatus draws a clinical status for the index-th of total
// follow-up records in a patient's sequence. The first assessment after
// starting therapy is restricted to improving-or-stable outcomes, the last
// allows the full range including progression, and interior assessments
// favor partial or complete response. A single-record sequence counts as a
// first assessment.
func FollowupStatus(e *Engine, index, total int) domain.ClinicalStatus {
	switch {
	case index == 0:
		return Pick(e, []domain.ClinicalStatus{
			domain.STATUS_PARTIAL_RESPONSE,
			domain.STATUS_STABLE_DISEASE,
		})
	case index == total-1:
		return Pick(e, []domain.ClinicalStatus{
			domain.STATUS_PARTIAL_RESPONSE,
			domain.STATUS_STABLE_DISEASE,
			domain.STATUS_PROGRESSIVE_DISEASE,
		})
	default:
		return Pick(e, []domain.ClinicalStatus{
			domain.STATUS_PARTIAL_RESPONSE,
			domain.STATUS_COMPLETE_RESPONSE,
			domain.STATUS_STABLE_DISEASE,
		})
	}
}

// ImagingSummary renders the imaging narrative deterministically matched to
// the clinical status; only the quantities and lesion site are random.
func ImagingSummary(e *Engine, status domain.ClinicalStatus) string {
	switch status {
	case domain.STATUS_COMPLETE_RESPONSE:
		return "No evidence of disease on imaging."
	case domain.STATUS_PARTIAL_RESPONSE:
		return fmt.Sprintf("%d%% reduction in tumor size compared to baseline.", e.IntBetween(30, 70))
	case domain.STATUS_STABLE_DISEASE:
		return "No significant change in tumor measurements since last assessment."
	case domain.STATUS_PROGRESSIVE_DISEASE:
		return fmt.Sprintf("%d%% increase in tumor size. New lesions detected in %s.",
			e.IntBetween(20, 50), Pick(e, reference.NewLesionSites))
	default:
		return "Imaging studies inconclusive."
	}
}

// AdverseEventSummary draws zero to three distinct adverse events and joins
// them into the wire representation, "None" when the draw is empty.
func AdverseEventSummary(e *Engine) string {
	events := Sample(e, reference.AdverseEvents, e.IntBetween(0, 3))
	if len(events) == 0 {
		return "None"
	}
	return strings.Join(events, ", ")
}
