package constraint

import (
	"github.com/oncoseed/internal/domain"
)

// JobPair is a tumor sample with an optional matched normal from the same
// diagnosis. Normal is nil for tumor-only jobs.
type JobPair struct {
	Tumor  domain.Record
	Normal domain.Record
}

// TumorOnly reports whether the pair lacks a matched normal.
func (p JobPair) TumorOnly() bool {
	return p.Normal == nil
}

// PairSamples builds one variant-calling pair per tumor-bearing sample.
// A normal sample is attached only when one exists within the same
// diagnosis, chosen uniformly at random among that diagnosis's normals;
// normals are never borrowed across diagnoses.
func PairSamples(e *Engine, samples []domain.Record) []JobPair {
	normalsByDiagnosis := make(map[int64][]domain.Record)
	for _, s := range samples {
		if domain.SampleType(s.String(domain.KeySampleType)) == domain.SAMPLE_NORMAL {
			diagID := s.Int64(domain.KeyDiagnosisID)
			normalsByDiagnosis[diagID] = append(normalsByDiagnosis[diagID], s)
		}
	}

	var pairs []JobPair
	for _, s := range samples {
		st := domain.SampleType(s.String(domain.KeySampleType))
		if !st.TumorBearing() {
			continue
		}
		pair := JobPair{Tumor: s}
		if normals := normalsByDiagnosis[s.Int64(domain.KeyDiagnosisID)]; len(normals) > 0 {
			pair.Normal = Pick(e, normals)
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
