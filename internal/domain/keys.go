package domain

// Record field keys shared by the remote service's responses and the
// linkage metadata generators attach for downstream stages.
const (
	KeyPatientID        = "patientId"
	KeyDiagnosisID      = "diagnosisId"
	KeySampleID         = "sampleId"
	KeySequencingID     = "sequencingId"
	KeyJobID            = "jobId"
	KeyVariantID        = "variantId"
	KeyInterpretationID = "interpretationId"
	KeyRecommendation   = "recommendationId"
	KeyFollowupID       = "followUpId"

	KeyCancerType     = "cancerType"
	KeyDiagnosisDate  = "diagnosisDate"
	KeyCollectionDate = "collectionDate"
	KeySampleType     = "sampleType"
	KeyJobStatus      = "status"
	KeyGeneSymbol     = "geneSymbol"
	KeyRecDate        = "recommendationDate"
	KeyTumorSampleID  = "tumorSampleId"
	KeyNormalSampleID = "normalSampleId"
)
