package generator

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/domain"
	"github.com/oncoseed/internal/gateway"
)

// fakeService accepts every submission, assigns sequential identifiers, and
// records what was sent. Paths listed in failPaths reject exactly once each.
type fakeService struct {
	nextID    int64
	jsonPaths []string
	payloads  []any
	forms     []url.Values
	failPaths map[string]int
}

func newFakeService() *fakeService {
	return &fakeService{failPaths: map[string]int{}}
}

func (f *fakeService) failOnce(path string) {
	f.failPaths[path]++
}

func (f *fakeService) CreateJSON(_ context.Context, path string, payload any) (domain.Record, error) {
	if f.failPaths[path] > 0 {
		f.failPaths[path]--
		return nil, &gateway.SubmitError{Method: "POST", Path: path, StatusCode: 500}
	}
	f.nextID++
	f.jsonPaths = append(f.jsonPaths, path)
	f.payloads = append(f.payloads, payload)
	return domain.Record{"id": f.nextID}, nil
}

func (f *fakeService) CreateForm(_ context.Context, path string, values url.Values) (domain.Record, error) {
	if f.failPaths[path] > 0 {
		f.failPaths[path]--
		return nil, &gateway.SubmitError{Method: "POST", Path: path, StatusCode: 500}
	}
	f.nextID++
	f.forms = append(f.forms, values)
	return domain.Record{"id": f.nextID}, nil
}

func newTestGenerator(seed int64) (*Generator, *fakeService) {
	svc := newFakeService()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return New(svc, constraint.New(seed), logger), svc
}

func newClockedGenerator(seed int64, now time.Time) (*Generator, *fakeService) {
	svc := newFakeService()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return New(svc, constraint.NewWithClock(seed, func() time.Time { return now }), logger), svc
}

func TestGenerator_Patients(t *testing.T) {
	gen, svc := newTestGenerator(1)

	res := gen.Patients(context.Background(), 5)

	assert.Equal(t, 5, res.Created)
	assert.Zero(t, res.Failed)
	require.Len(t, res.Records, 5)

	for _, rec := range res.Records {
		assert.NotZero(t, rec.Int64(domain.KeyPatientID))
	}

	for _, p := range svc.payloads {
		payload := p.(domain.PatientPayload)
		assert.Regexp(t, `^MRN\d{6}$`, payload.MedicalRecordNumber)
		assert.NotEmpty(t, payload.FirstName)
		assert.NotEmpty(t, payload.DateOfBirth)
		assert.Contains(t, []string{"Male", "Female"}, payload.Gender)
	}
}

func TestGenerator_Patients_FailureCountsAndContinues(t *testing.T) {
	gen, svc := newTestGenerator(1)
	svc.failOnce("/patients")

	res := gen.Patients(context.Background(), 5)

	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, res.Records, 4)
}

func TestGenerator_Diagnoses(t *testing.T) {
	gen, _ := newTestGenerator(1)
	ctx := context.Background()

	patients := gen.Patients(ctx, 4).Records
	res := gen.Diagnoses(ctx, patients)

	assert.GreaterOrEqual(t, res.Created, 4)
	assert.LessOrEqual(t, res.Created, 8)

	patientIDs := map[int64]bool{}
	for _, p := range patients {
		patientIDs[p.Int64(domain.KeyPatientID)] = true
	}
	for _, d := range res.Records {
		assert.True(t, patientIDs[d.Int64(domain.KeyPatientID)], "diagnosis must reference a created patient")
		assert.NotEmpty(t, d.String(domain.KeyCancerType))
		assert.False(t, d.Date(domain.KeyDiagnosisDate).IsZero())
	}
}

func TestGenerator_Diagnoses_EmptyUpstream(t *testing.T) {
	gen, _ := newTestGenerator(1)

	res := gen.Diagnoses(context.Background(), nil)

	assert.Zero(t, res.Created)
	assert.Zero(t, res.Failed)
	assert.Empty(t, res.Records)
}

func TestGenerator_Samples_FirstTumorSecondNormal(t *testing.T) {
	gen, _ := newTestGenerator(3)
	ctx := context.Background()

	patients := gen.Patients(ctx, 6).Records
	diagnoses := gen.Diagnoses(ctx, patients).Records
	res := gen.Samples(ctx, diagnoses)

	byDiagnosis := map[int64][]domain.Record{}
	for _, s := range res.Records {
		diagID := s.Int64(domain.KeyDiagnosisID)
		byDiagnosis[diagID] = append(byDiagnosis[diagID], s)
	}

	require.Len(t, byDiagnosis, len(diagnoses))
	for _, group := range byDiagnosis {
		require.NotEmpty(t, group)
		assert.LessOrEqual(t, len(group), 3)

		assert.Equal(t, string(domain.SAMPLE_TUMOR), group[0].String(domain.KeySampleType))
		if len(group) > 1 {
			assert.Equal(t, string(domain.SAMPLE_NORMAL), group[1].String(domain.KeySampleType))
		}
	}
}

func TestGenerator_Samples_TumorPurityOnlyOnTumorBearing(t *testing.T) {
	gen, svc := newTestGenerator(3)
	ctx := context.Background()

	patients := gen.Patients(ctx, 6).Records
	diagnoses := gen.Diagnoses(ctx, patients).Records
	gen.Samples(ctx, diagnoses)

	for _, p := range svc.payloads {
		payload, ok := p.(domain.SamplePayload)
		if !ok {
			continue
		}
		if payload.SampleType.TumorBearing() {
			assert.InDelta(t, 0.6, payload.TumorPurity, 0.3, "tumor-bearing sample needs purity in [0.3, 0.9]")
		} else {
			assert.Zero(t, payload.TumorPurity)
		}
		assert.GreaterOrEqual(t, payload.SampleQualityScore, 0.7)
	}
}

func TestGenerator_Samples_CollectionAfterDiagnosis(t *testing.T) {
	gen, _ := newTestGenerator(7)
	ctx := context.Background()

	patients := gen.Patients(ctx, 5).Records
	diagnoses := gen.Diagnoses(ctx, patients).Records
	res := gen.Samples(ctx, diagnoses)

	for _, s := range res.Records {
		collected := s.Date(domain.KeyCollectionDate)
		diagnosed := s.Date(domain.KeyDiagnosisDate)
		assert.False(t, collected.Before(diagnosed), "collection must not precede diagnosis")
	}
}

func TestGenerator_Sequencing_OneRunPerSample(t *testing.T) {
	gen, svc := newTestGenerator(5)
	ctx := context.Background()

	patients := gen.Patients(ctx, 4).Records
	diagnoses := gen.Diagnoses(ctx, patients).Records
	samples := gen.Samples(ctx, diagnoses).Records
	res := gen.Sequencing(ctx, samples)

	assert.Equal(t, len(samples), res.Created)

	for _, p := range svc.payloads {
		payload, ok := p.(domain.SequencingPayload)
		if !ok {
			continue
		}
		switch payload.AssayType {
		case domain.ASSAY_TARGETED_PANEL:
			assert.GreaterOrEqual(t, payload.Coverage, 400)
		case domain.ASSAY_WHOLE_EXOME:
			assert.GreaterOrEqual(t, payload.Coverage, 80)
			assert.LessOrEqual(t, payload.Coverage, 150)
		case domain.ASSAY_WHOLE_GENOME:
			assert.LessOrEqual(t, payload.Coverage, 60)
		}
	}
}

func TestGenerator_Jobs(t *testing.T) {
	gen, svc := newTestGenerator(5)
	ctx := context.Background()

	patients := gen.Patients(ctx, 5).Records
	diagnoses := gen.Diagnoses(ctx, patients).Records
	samples := gen.Samples(ctx, diagnoses).Records
	res := gen.Jobs(ctx, samples)

	tumorBearing := 0
	for _, s := range samples {
		if domain.SampleType(s.String(domain.KeySampleType)).TumorBearing() {
			tumorBearing++
		}
	}
	assert.Equal(t, tumorBearing, res.Created, "one job per tumor-bearing sample")

	for _, form := range svc.forms {
		assert.NotEmpty(t, form.Get(domain.KeyTumorSampleID))
		assert.Equal(t, "hg38", form.Get("referenceGenome"))
		assert.Equal(t, "Somatic", form.Get("analysisType"))
		assert.True(t, domain.JobStatus(form.Get(domain.KeyJobStatus)).IsValid())
	}

	for _, job := range res.Records {
		assert.NotZero(t, job.Int64(domain.KeyJobID))
		assert.NotZero(t, job.Int64(domain.KeyTumorSampleID))
	}
}

func TestGenerator_Variants_SkipFailedJobs(t *testing.T) {
	gen, _ := newTestGenerator(1)
	ctx := context.Background()

	jobs := []domain.Record{
		{
			domain.KeyJobID:      int64(1),
			domain.KeyJobStatus:  string(domain.JOB_COMPLETED),
			domain.KeyCancerType: "Melanoma",
		},
		{
			domain.KeyJobID:      int64(2),
			domain.KeyJobStatus:  string(domain.JOB_FAILED),
			domain.KeyCancerType: "Melanoma",
		},
	}

	res := gen.Variants(ctx, jobs)

	assert.GreaterOrEqual(t, res.Created, 2)
	assert.LessOrEqual(t, res.Created, 5)
	for _, v := range res.Records {
		assert.Equal(t, int64(1), v.Int64(domain.KeyJobID), "failed jobs must contribute no variants")
	}
}

func TestGenerator_Variants_PayloadShape(t *testing.T) {
	gen, svc := newTestGenerator(2)
	ctx := context.Background()

	jobs := []domain.Record{{
		domain.KeyJobID:      int64(1),
		domain.KeyJobStatus:  string(domain.JOB_COMPLETED),
		domain.KeyCancerType: "Breast Cancer",
	}}
	gen.Variants(ctx, jobs)

	for _, p := range svc.payloads {
		payload := p.(domain.VariantPayload)
		assert.Equal(t, int64(1), payload.JobID)
		assert.NotEqual(t, payload.ReferenceAllele, payload.AlternateAllele)
		assert.GreaterOrEqual(t, payload.AlleleFrequency, 0.05)
		assert.LessOrEqual(t, payload.AlleleFrequency, 0.95)
		assert.Contains(t, []string{"BRCA1", "BRCA2", "PIK3CA", "TP53", "PTEN", "CDH1", "PALB2"},
			payload.GeneSymbol, "gene must come from the job's cancer type")
	}
}

func TestGenerator_Interpretations_OnePerVariant(t *testing.T) {
	gen, svc := newTestGenerator(1)
	ctx := context.Background()

	variants := []domain.Record{
		{domain.KeyVariantID: int64(1), domain.KeyGeneSymbol: "BRAF", domain.KeyCancerType: "Melanoma"},
		{domain.KeyVariantID: int64(2), domain.KeyGeneSymbol: "NRAS", domain.KeyCancerType: "Melanoma"},
	}

	res := gen.Interpretations(ctx, variants)

	assert.Equal(t, 2, res.Created)
	for _, p := range svc.payloads {
		payload := p.(domain.InterpretationPayload)
		assert.True(t, payload.ClinicalSignificance.IsValid())
		assert.NotEmpty(t, payload.EvidenceLevel)
		assert.Contains(t, payload.Interpretation, "variant identified")
		assert.Regexp(t, `^PMID: \d+$`, payload.References)
	}
}

func TestGenerator_Therapies_GeneMatchOrFallback(t *testing.T) {
	gen, svc := newTestGenerator(1)
	ctx := context.Background()

	variants := []domain.Record{
		{
			domain.KeyVariantID:     int64(1),
			domain.KeyGeneSymbol:    "BRAF",
			domain.KeyDiagnosisID:   int64(10),
			domain.KeyPatientID:     int64(100),
			domain.KeyCancerType:    "Melanoma",
			domain.KeyDiagnosisDate: "2024-01-15",
		},
		{
			domain.KeyVariantID:     int64(2),
			domain.KeyGeneSymbol:    "CDKN2A", // no melanoma drug targets it
			domain.KeyDiagnosisID:   int64(20),
			domain.KeyPatientID:     int64(200),
			domain.KeyCancerType:    "Melanoma",
			domain.KeyDiagnosisDate: "2024-02-20",
		},
	}

	res := gen.Therapies(ctx, variants)
	require.Equal(t, 2, res.Created)

	byDiagnosis := map[int64]domain.TherapyPayload{}
	for _, p := range svc.payloads {
		payload := p.(domain.TherapyPayload)
		byDiagnosis[payload.DiagnosisID] = payload
	}

	matched := byDiagnosis[10]
	assert.Equal(t, "Dabrafenib + Trametinib", matched.DrugName)
	assert.Equal(t, []int64{1}, matched.VariantIDs)

	fallback := byDiagnosis[20]
	assert.NotEmpty(t, fallback.DrugName, "a diagnosis with variants never goes without a recommendation")
	assert.Equal(t, []int64{2}, fallback.VariantIDs)

	for _, payload := range byDiagnosis {
		assert.True(t, mustDate(t, payload.RecommendationDate).After(mustDate(t, "2024-01-01")))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestGenerator_Followups_StrictlyIncreasingDates(t *testing.T) {
	gen, svc := newTestGenerator(4)
	ctx := context.Background()

	therapies := []domain.Record{
		{
			domain.KeyRecommendation: int64(1),
			domain.KeyPatientID:      int64(100),
			domain.KeyRecDate:        "2024-03-01",
		},
		{
			domain.KeyRecommendation: int64(2),
			domain.KeyPatientID:      int64(100),
			domain.KeyRecDate:        "2024-04-01",
		},
	}

	res := gen.Followups(ctx, therapies)
	require.GreaterOrEqual(t, res.Created, 1)
	require.LessOrEqual(t, res.Created, 3)

	var payloads []domain.FollowupPayload
	for _, p := range svc.payloads {
		payloads = append(payloads, p.(domain.FollowupPayload))
	}

	// First visit lags the latest recommendation, not the earliest.
	first := mustDate(t, payloads[0].FollowUpDate)
	anchor := mustDate(t, "2024-04-01")
	lag := int(first.Sub(anchor).Hours() / 24)
	assert.GreaterOrEqual(t, lag, 30)
	assert.LessOrEqual(t, lag, 60)

	for i, payload := range payloads {
		date := mustDate(t, payload.FollowUpDate)
		next := mustDate(t, payload.NextFollowUpDate)
		assert.True(t, next.After(date), "next visit must be scheduled after the current one")

		if i > 0 {
			prev := mustDate(t, payloads[i-1].FollowUpDate)
			assert.True(t, date.After(prev), "follow-up dates must strictly increase")

			prevNext := mustDate(t, payloads[i-1].NextFollowUpDate)
			assert.False(t, prevNext.After(date), "scheduled date must not overshoot the actual next visit")
		}

		assert.True(t, payload.ClinicalStatus.IsValid())
		assert.NotEmpty(t, payload.ImagingResults)
		assert.NotEmpty(t, payload.AdverseEvents)
	}

	// The first assessment never shows progression.
	assert.NotEqual(t, domain.STATUS_PROGRESSIVE_DISEASE, payloads[0].ClinicalStatus)
}

func TestGenerator_FreshDiagnosisDatesNeverPassNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	gen, svc := newClockedGenerator(11, now)
	ctx := context.Background()

	// A diagnosis made today: every downstream date must still land on or
	// before today.
	diagnoses := []domain.Record{{
		domain.KeyDiagnosisID:   int64(1),
		domain.KeyPatientID:     int64(10),
		domain.KeyCancerType:    "Melanoma",
		domain.KeyDiagnosisDate: now.Format(domain.DateLayout),
	}}

	samples := gen.Samples(ctx, diagnoses).Records
	require.NotEmpty(t, samples)
	for _, s := range samples {
		assert.False(t, s.Date(domain.KeyCollectionDate).After(now), "collection date must not pass now")
	}

	gen.Sequencing(ctx, samples)

	variants := []domain.Record{{
		domain.KeyVariantID:     int64(1),
		domain.KeyGeneSymbol:    "BRAF",
		domain.KeyDiagnosisID:   int64(1),
		domain.KeyPatientID:     int64(10),
		domain.KeyCancerType:    "Melanoma",
		domain.KeyDiagnosisDate: now.Format(domain.DateLayout),
	}}
	gen.Therapies(ctx, variants)

	for _, p := range svc.payloads {
		switch payload := p.(type) {
		case domain.SequencingPayload:
			assert.False(t, mustDate(t, payload.SequencingDate).After(now), "sequencing date must not pass now")
		case domain.TherapyPayload:
			assert.False(t, mustDate(t, payload.RecommendationDate).After(now), "recommendation date must not pass now")
		}
	}
}

func TestGenerator_Followups_StopBeforeNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	gen, svc := newClockedGenerator(4, now)
	ctx := context.Background()

	therapies := []domain.Record{
		{
			domain.KeyRecommendation: int64(1),
			domain.KeyPatientID:      int64(100),
			domain.KeyRecDate:        "2024-12-01",
		},
		{
			// Recommended too recently for any visit to have happened yet.
			domain.KeyRecommendation: int64(2),
			domain.KeyPatientID:      int64(200),
			domain.KeyRecDate:        "2025-05-20",
		},
	}

	res := gen.Followups(ctx, therapies)

	byPatient := map[int64]int{}
	for _, r := range res.Records {
		byPatient[r.Int64(domain.KeyPatientID)]++
	}
	assert.GreaterOrEqual(t, byPatient[100], 1)
	assert.Zero(t, byPatient[200], "a visit that has not happened yet is not recorded")

	for _, p := range svc.payloads {
		payload := p.(domain.FollowupPayload)
		assert.False(t, mustDate(t, payload.FollowUpDate).After(now), "follow-up date must not pass now")
	}
}

func TestGenerator_SeedDeterminism(t *testing.T) {
	run := func() []any {
		gen, svc := newTestGenerator(99)
		ctx := context.Background()

		patients := gen.Patients(ctx, 3).Records
		diagnoses := gen.Diagnoses(ctx, patients).Records
		gen.Samples(ctx, diagnoses)
		return svc.payloads
	}

	assert.Equal(t, run(), run(), "equal seeds must produce identical submissions")
}
