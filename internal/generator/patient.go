package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

const patientsPath = "/patients"

// Patients creates count patient root records. A patient whose submission
// fails is simply absent downstream; no diagnoses are generated for it.
func (g *Generator) Patients(ctx context.Context, count int) Result {
	var res Result
	e := g.engine

	for i := 0; i < count; i++ {
		gender := constraint.Pick(e, reference.Genders)
		first := constraint.Pick(e, reference.FirstNamesFemale)
		if gender == "Male" {
			first = constraint.Pick(e, reference.FirstNamesMale)
		}
		last := constraint.Pick(e, reference.LastNames)

		dob, err := e.BirthDate()
		if err != nil {
			g.fail(&res, patientsPath, err)
			continue
		}

		payload := domain.PatientPayload{
			MedicalRecordNumber: fmt.Sprintf("MRN%06d", e.IntBetween(100000, 999999)),
			FirstName:           first,
			LastName:            last,
			DateOfBirth:         dob.Format(domain.DateLayout),
			Gender:              gender,
			ContactNumber:       fmt.Sprintf("555-%03d-%04d", e.Intn(1000), e.Intn(10000)),
			Email:               strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, e.Intn(1000))),
			Address: fmt.Sprintf("%s, %s, %s %s",
				constraint.Pick(e, reference.Streets),
				constraint.Pick(e, reference.Cities),
				constraint.Pick(e, reference.States),
				constraint.Pick(e, reference.ZipCodes)),
		}

		rec, err := g.gw.CreateJSON(ctx, patientsPath, payload)
		if err != nil {
			g.fail(&res, patientsPath, err)
			continue
		}
		g.accept(&res, rec, domain.KeyPatientID, nil)
	}

	g.logStage("patients", res)
	return res
}
