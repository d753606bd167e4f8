// Package domain contains the entity model for the oncology genomics seed
// pipeline: the payloads submitted to the remote service, the records it
// returns, and the controlled vocabularies both sides agree on.
//
// Every entity is created exactly once by its generator and never mutated
// afterwards; records returned by the remote service are treated as
// read-only input for the next pipeline stage.
package domain

import "errors"

// SampleType classifies a sample relative to the diagnosis it belongs to.
type SampleType string

const (
	SAMPLE_TUMOR      SampleType = "TUMOR"
	SAMPLE_NORMAL     SampleType = "NORMAL"
	SAMPLE_METASTASIS SampleType = "METASTASIS"
	SAMPLE_RECURRENCE SampleType = "RECURRENCE"
	SAMPLE_OTHER      SampleType = "OTHER"
)

// JobStatus represents the lifecycle state of a variant calling job.
type JobStatus string

const (
	JOB_PENDING     JobStatus = "PENDING"
	JOB_IN_PROGRESS JobStatus = "IN_PROGRESS"
	JOB_COMPLETED   JobStatus = "COMPLETED"
	JOB_FAILED      JobStatus = "FAILED"
)

// AssayType represents the breadth of a sequencing assay. Coverage depth
// scales inversely with breadth: panel > exome > whole genome.
type AssayType string

const (
	ASSAY_TARGETED_PANEL AssayType = "Targeted Panel"
	ASSAY_WHOLE_EXOME    AssayType = "Whole Exome"
	ASSAY_WHOLE_GENOME   AssayType = "Whole Genome"
)

// ClinicalSignificance is the pathogenicity classification attached to a
// variant interpretation.
type ClinicalSignificance string

const (
	SIG_PATHOGENIC        ClinicalSignificance = "Pathogenic"
	SIG_LIKELY_PATHOGENIC ClinicalSignificance = "Likely Pathogenic"
	SIG_VUS               ClinicalSignificance = "Variant of Unknown Significance"
	SIG_LIKELY_BENIGN     ClinicalSignificance = "Likely Benign"
	SIG_BENIGN            ClinicalSignificance = "Benign"
)

// ClinicalStatus is the RECIST-style response assessment recorded at a
// follow-up visit.
type ClinicalStatus string

const (
	STATUS_COMPLETE_RESPONSE   ClinicalStatus = "Complete Response"
	STATUS_PARTIAL_RESPONSE    ClinicalStatus = "Partial Response"
	STATUS_STABLE_DISEASE      ClinicalStatus = "Stable Disease"
	STATUS_PROGRESSIVE_DISEASE ClinicalStatus = "Progressive Disease"
	STATUS_NOT_EVALUABLE       ClinicalStatus = "Not Evaluable"
)

// VariantType categorizes the structural class of a called variant.
type VariantType string

const (
	VARIANT_SNV       VariantType = "SNV"
	VARIANT_INSERTION VariantType = "Insertion"
	VARIANT_DELETION  VariantType = "Deletion"
	VARIANT_CNV       VariantType = "CNV"
)

// Validation errors for generated data integrity.
var (
	ErrInvalidSampleType   = errors.New("invalid sample type")
	ErrInvalidJobStatus    = errors.New("invalid job status")
	ErrInvalidSignificance = errors.New("invalid clinical significance")
	ErrInvalidStatus       = errors.New("invalid clinical status")
)

// IsValid reports whether the sample type is a known vocabulary value.
func (s SampleType) IsValid() bool {
	switch s {
	case SAMPLE_TUMOR, SAMPLE_NORMAL, SAMPLE_METASTASIS, SAMPLE_RECURRENCE, SAMPLE_OTHER:
		return true
	default:
		return false
	}
}

// TumorBearing reports whether samples of this type contain tumor cells and
// therefore must carry a nonzero tumor purity.
func (s SampleType) TumorBearing() bool {
	switch s {
	case SAMPLE_TUMOR, SAMPLE_METASTASIS, SAMPLE_RECURRENCE:
		return true
	default:
		return false
	}
}

// IsValid reports whether the job status is a known lifecycle state.
func (j JobStatus) IsValid() bool {
	switch j {
	case JOB_PENDING, JOB_IN_PROGRESS, JOB_COMPLETED, JOB_FAILED:
		return true
	default:
		return false
	}
}

// Terminal reports whether the job can no longer make progress.
func (j JobStatus) Terminal() bool {
	return j == JOB_COMPLETED || j == JOB_FAILED
}

// IsValid reports whether the significance is a known classification.
func (c ClinicalSignificance) IsValid() bool {
	switch c {
	case SIG_PATHOGENIC, SIG_LIKELY_PATHOGENIC, SIG_VUS, SIG_LIKELY_BENIGN, SIG_BENIGN:
		return true
	default:
		return false
	}
}

// Pathogenic reports whether the classification asserts disease causation.
func (c ClinicalSignificance) Pathogenic() bool {
	return c == SIG_PATHOGENIC || c == SIG_LIKELY_PATHOGENIC
}

// IsValid reports whether the clinical status is a known assessment value.
func (c ClinicalStatus) IsValid() bool {
	switch c {
	case STATUS_COMPLETE_RESPONSE, STATUS_PARTIAL_RESPONSE, STATUS_STABLE_DISEASE,
		STATUS_PROGRESSIVE_DISEASE, STATUS_NOT_EVALUABLE:
		return true
	default:
		return false
	}
}
