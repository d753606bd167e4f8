package domain

// Request payloads submitted to the remote service. Field names follow the
// service's JSON contract; dates are DateLayout strings.

// PatientPayload creates a patient root record.
type PatientPayload struct {
	MedicalRecordNumber string `json:"medicalRecordNumber"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	DateOfBirth         string `json:"dateOfBirth"`
	Gender              string `json:"gender"`
	ContactNumber       string `json:"contactNumber"`
	Email               string `json:"email"`
	Address             string `json:"address"`
}

// DiagnosisPayload creates a diagnosis under a patient.
type DiagnosisPayload struct {
	CancerType    string `json:"cancerType"`
	DiagnosisDate string `json:"diagnosisDate"`
	TStage        string `json:"tStage"`
	NStage        string `json:"nStage"`
	MStage        string `json:"mStage"`
	Histology     string `json:"histology"`
	Notes         string `json:"notes,omitempty"`
}

// SamplePayload creates a sample under a diagnosis. TumorPurity is emitted
// only for tumor-bearing sample types.
type SamplePayload struct {
	SampleType         SampleType `json:"sampleType"`
	TissueType         string     `json:"tissueType"`
	CollectionDate     string     `json:"collectionDate"`
	TumorPurity        float64    `json:"tumorPurity,omitempty"`
	SampleQualityScore float64    `json:"sampleQualityScore"`
	StorageLocation    string     `json:"storageLocation"`
}

// SequencingPayload creates a sequencing run under a sample.
type SequencingPayload struct {
	Platform       string    `json:"platform"`
	LibraryPrep    string    `json:"libraryPrep"`
	AssayType      AssayType `json:"assayType"`
	SequencingDate string    `json:"sequencingDate"`
	ReadLength     int       `json:"readLength"`
	Coverage       int       `json:"coverage"`
	FastqPath      string    `json:"fastqPath"`
}

// VariantPayload creates a called variant under a variant calling job.
type VariantPayload struct {
	JobID           int64       `json:"jobId"`
	GeneSymbol      string      `json:"geneSymbol"`
	Chromosome      string      `json:"chromosome"`
	Position        int64       `json:"position"`
	ReferenceAllele string      `json:"referenceAllele"`
	AlternateAllele string      `json:"alternateAllele"`
	VariantType     VariantType `json:"variantType"`
	AlleleFrequency float64     `json:"alleleFrequency"`
	ReadDepth       int         `json:"readDepth"`
	FilterStatus    string      `json:"filterStatus"`
}

// InterpretationPayload creates a clinical interpretation for a variant.
type InterpretationPayload struct {
	VariantID            int64                `json:"variantId"`
	ClinicalSignificance ClinicalSignificance `json:"clinicalSignificance"`
	EvidenceLevel        string               `json:"evidenceLevel"`
	Interpretation       string               `json:"interpretation"`
	References           string               `json:"references"`
}

// TherapyPayload creates a therapy recommendation for a patient+diagnosis,
// linked to the variants that motivated it.
type TherapyPayload struct {
	PatientID          int64   `json:"patientId"`
	DiagnosisID        int64   `json:"diagnosisId"`
	DrugName           string  `json:"drugName"`
	Dosage             string  `json:"dosage"`
	RecommendationDate string  `json:"recommendationDate"`
	EvidenceLevel      string  `json:"evidenceLevel"`
	VariantIDs         []int64 `json:"variantIds"`
	Notes              string  `json:"notes,omitempty"`
}

// FollowupPayload creates a follow-up record for a patient.
type FollowupPayload struct {
	PatientID        int64          `json:"patientId"`
	FollowUpDate     string         `json:"followUpDate"`
	ClinicalStatus   ClinicalStatus `json:"clinicalStatus"`
	ImagingResults   string         `json:"imagingResults"`
	AdverseEvents    string         `json:"adverseEvents"`
	NextFollowUpDate string         `json:"nextFollowUpDate"`
	Notes            string         `json:"notes,omitempty"`
}
