package generator

import (
	"context"
	"net/url"
	"strconv"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/reference"
)

const jobsPath = "/variant-calling/jobs"

// Jobs creates at most one variant calling job per tumor-bearing sample.
// A matched normal is attached only when the same diagnosis has one; a
// missing normal degrades to a tumor-only job, never an error. The job
// endpoint takes query-style parameters, so the submission goes through the
// form encoder; a failed submission is never re-sent as JSON.
func (g *Generator) Jobs(ctx context.Context, samples []domain.Record) Result {
	var res Result
	e := g.engine

	for _, pair := range constraint.PairSamples(e, samples) {
		tumorID := pair.Tumor.Int64(domain.KeySampleID)
		status := constraint.JobStatusFor(e)

		values := url.Values{}
		values.Set(domain.KeyTumorSampleID, strconv.FormatInt(tumorID, 10))
		if !pair.TumorOnly() {
			values.Set(domain.KeyNormalSampleID, strconv.FormatInt(pair.Normal.Int64(domain.KeySampleID), 10))
		}
		values.Set("caller", constraint.Pick(e, reference.VariantCallers))
		values.Set("referenceGenome", "hg38")
		values.Set("filterSettings", constraint.Pick(e, reference.FilterSettings))
		values.Set("analysisType", "Somatic")
		values.Set(domain.KeyJobStatus, string(status))

		rec, err := g.gw.CreateForm(ctx, jobsPath, values)
		if err != nil {
			g.fail(&res, jobsPath, err)
			continue
		}
		g.accept(&res, rec, domain.KeyJobID, domain.Record{
			domain.KeyTumorSampleID: tumorID,
			domain.KeyJobStatus:     string(status),
			domain.KeyDiagnosisID:   pair.Tumor.Int64(domain.KeyDiagnosisID),
			domain.KeyPatientID:     pair.Tumor.Int64(domain.KeyPatientID),
			domain.KeyCancerType:    pair.Tumor.String(domain.KeyCancerType),
			domain.KeyDiagnosisDate: pair.Tumor.String(domain.KeyDiagnosisDate),
		})
	}

	g.logStage("jobs", res)
	return res
}
