package generator

import (
	"context"
	"time"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
)

const followupsPath = "/followups"

// Followups creates one to three follow-up records per patient who received
// at least one therapy recommendation. Dates are strictly increasing: the
// first visit lags the latest recommendation by 30 to 60 days and each
// subsequent visit follows by 60 to 120 days. Only visits that have already
// happened are recorded; the sequence stops at the first date that would
// land past now. Each record's next scheduled date never overshoots the
// visit that actually happened next.
func (g *Generator) Followups(ctx context.Context, therapies []domain.Record) Result {
	var res Result
	e := g.engine

	latestRec := make(map[int64]time.Time)
	var order []int64
	for _, t := range therapies {
		patientID := t.Int64(domain.KeyPatientID)
		d := t.Date(domain.KeyRecDate)
		if prev, seen := latestRec[patientID]; !seen {
			order = append(order, patientID)
			latestRec[patientID] = d
		} else if d.After(prev) {
			latestRec[patientID] = d
		}
	}

	now := e.Now()
	for _, patientID := range order {
		planned := e.IntBetween(constraint.MinFollowupsPerPatient, constraint.MaxFollowupsPerPatient)

		var dates []time.Time
		anchor := latestRec[patientID]
		lo, hi := constraint.MinFollowupLagDays, constraint.MaxFollowupLagDays
		for len(dates) < planned {
			d := e.DaysAfter(anchor, lo, hi)
			if d.After(now) {
				break
			}
			dates = append(dates, d)
			anchor = d
			lo, hi = constraint.MinFollowupGapDays, constraint.MaxFollowupGapDays
		}

		n := len(dates)
		for i := 0; i < n; i++ {
			status := constraint.FollowupStatus(e, i, n)

			var next time.Time
			if i < n-1 {
				// Bounded by the visit that actually followed.
				d, err := e.DateBetween(dates[i].AddDate(0, 0, 1), dates[i+1].AddDate(0, 0, 1))
				if err != nil {
					d = dates[i+1]
				}
				next = d
			} else {
				next = e.DaysAfter(dates[i], constraint.MinFollowupGapDays, constraint.MaxFollowupGapDays)
			}

			payload := domain.FollowupPayload{
				PatientID:        patientID,
				FollowUpDate:     dates[i].Format(domain.DateLayout),
				ClinicalStatus:   status,
				ImagingResults:   constraint.ImagingSummary(e, status),
				AdverseEvents:    constraint.AdverseEventSummary(e),
				NextFollowUpDate: next.Format(domain.DateLayout),
			}

			rec, err := g.gw.CreateJSON(ctx, followupsPath, payload)
			if err != nil {
				g.fail(&res, followupsPath, err)
				continue
			}
			g.accept(&res, rec, domain.KeyFollowupID, domain.Record{
				domain.KeyPatientID: patientID,
			})
		}
	}

	g.logStage("followups", res)
	return res
}
