package generator

import (
	"context"
	"fmt"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

// Diagnoses creates one to two diagnoses for each patient. Each accepted
// record carries the owning patient's identifier, its cancer type, and its
// diagnosis date for the downstream stages.
func (g *Generator) Diagnoses(ctx context.Context, patients []domain.Record) Result {
	var res Result
	e := g.engine

	for _, patient := range patients {
		patientID := patient.Int64(domain.KeyPatientID)
		path := fmt.Sprintf("/patients/%d/diagnoses", patientID)

		n := e.IntBetween(constraint.MinDiagnosesPerPatient, constraint.MaxDiagnosesPerPatient)
		for i := 0; i < n; i++ {
			ct := constraint.Pick(e, reference.CancerTypes)

			diagDate, err := e.DiagnosisDate()
			if err != nil {
				g.fail(&res, path, err)
				continue
			}

			payload := domain.DiagnosisPayload{
				CancerType:    ct.Name,
				DiagnosisDate: diagDate.Format(domain.DateLayout),
				TStage:        constraint.Pick(e, reference.TStages),
				NStage:        constraint.Pick(e, reference.NStages),
				MStage:        constraint.Pick(e, reference.MStages),
				Histology:     constraint.Pick(e, ct.Histologies),
			}

			rec, err := g.gw.CreateJSON(ctx, path, payload)
			if err != nil {
				g.fail(&res, path, err)
				continue
			}
			g.accept(&res, rec, domain.KeyDiagnosisID, domain.Record{
				domain.KeyPatientID:     patientID,
				domain.KeyCancerType:    ct.Name,
				domain.KeyDiagnosisDate: payload.DiagnosisDate,
			})
		}
	}

	g.logStage("diagnoses", res)
	return res
}
