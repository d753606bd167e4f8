// Package reference holds the static clinical vocabulary every generator
// draws from: cancer types with their histologies and driver genes, TNM
// staging vocabularies, sequencing platforms, drug tables keyed by cancer
// type, and the narrative fragments used for interpretations and imaging
// summaries. The tables are reference data only; all selection logic lives
// in the constraint package.
package reference

import "github.com/oncoseed/internal/domain"

// Drug is a targeted therapy entry in a cancer type's drug table. TargetGene
// is a free-form field that may name several genes or a biomarker (for
// example "BRCA1/2" or "MSI-H/dMMR"); matching is by substring containment
// of the variant's gene symbol.
type Drug struct {
	Name       string
	Dosage     string
	TargetGene string
}

// CancerType bundles a diagnosis vocabulary entry: its histological
// subtypes, the genes commonly mutated in it, and its drug table.
type CancerType struct {
	Name        string
	Histologies []string
	DriverGenes []string
	Drugs       []Drug
}

// CancerTypes is the diagnosis vocabulary. Histologies and driver genes
// follow standard oncology usage for each entity.
var CancerTypes = []CancerType{
	{
		Name:        "Non-Small Cell Lung Cancer",
		Histologies: []string{"Adenocarcinoma", "Squamous Cell Carcinoma", "Large Cell Carcinoma"},
		DriverGenes: []string{"EGFR", "ALK", "ROS1", "KRAS", "BRAF", "MET", "RET", "NTRK"},
		Drugs: []Drug{
			{Name: "Osimertinib", Dosage: "80mg daily", TargetGene: "EGFR"},
			{Name: "Alectinib", Dosage: "600mg twice daily", TargetGene: "ALK"},
			{Name: "Entrectinib", Dosage: "600mg daily", TargetGene: "ROS1"},
			{Name: "Sotorasib", Dosage: "960mg daily", TargetGene: "KRAS"},
			{Name: "Dabrafenib + Trametinib", Dosage: "150mg twice daily + 2mg daily", TargetGene: "BRAF"},
		},
	},
	{
		Name:        "Breast Cancer",
		Histologies: []string{"Invasive Ductal Carcinoma", "Invasive Lobular Carcinoma", "Triple Negative"},
		DriverGenes: []string{"BRCA1", "BRCA2", "PIK3CA", "TP53", "PTEN", "CDH1", "PALB2"},
		Drugs: []Drug{
			{Name: "Olaparib", Dosage: "300mg twice daily", TargetGene: "BRCA1/2"},
			{Name: "Alpelisib + Fulvestrant", Dosage: "300mg daily + 500mg monthly", TargetGene: "PIK3CA"},
			{Name: "Trastuzumab", Dosage: "6mg/kg every 3 weeks", TargetGene: "HER2"},
			{Name: "Ribociclib + Letrozole", Dosage: "600mg daily + 2.5mg daily", TargetGene: "ESR1"},
		},
	},
	{
		Name:        "Colorectal Cancer",
		Histologies: []string{"Adenocarcinoma", "Mucinous Adenocarcinoma"},
		DriverGenes: []string{"APC", "KRAS", "BRAF", "PIK3CA", "TP53", "SMAD4", "PTEN"},
		Drugs: []Drug{
			{Name: "Cetuximab", Dosage: "500mg/m² every 2 weeks", TargetGene: "KRAS-wildtype"},
			{Name: "Encorafenib + Cetuximab", Dosage: "300mg daily + 500mg/m² every 2 weeks", TargetGene: "BRAF"},
			{Name: "Pembrolizumab", Dosage: "200mg every 3 weeks", TargetGene: "MSI-H/dMMR"},
		},
	},
	{
		Name:        "Melanoma",
		Histologies: []string{"Superficial Spreading", "Nodular", "Lentigo Maligna", "Acral Lentiginous"},
		DriverGenes: []string{"BRAF", "NRAS", "NF1", "KIT", "PTEN", "CDKN2A"},
		Drugs: []Drug{
			{Name: "Dabrafenib + Trametinib", Dosage: "150mg twice daily + 2mg daily", TargetGene: "BRAF"},
			{Name: "Pembrolizumab", Dosage: "200mg every 3 weeks", TargetGene: "PD-L1"},
			{Name: "Nivolumab + Ipilimumab", Dosage: "3mg/kg + 1mg/kg every 3 weeks", TargetGene: "PD-L1/CTLA-4"},
		},
	},
	{
		Name:        "Ovarian Cancer",
		Histologies: []string{"High-Grade Serous", "Low-Grade Serous", "Clear Cell", "Endometrioid"},
		DriverGenes: []string{"BRCA1", "BRCA2", "TP53", "PTEN", "PIK3CA", "ARID1A"},
		Drugs: []Drug{
			{Name: "Olaparib", Dosage: "300mg twice daily", TargetGene: "BRCA1/2"},
			{Name: "Niraparib", Dosage: "200-300mg daily", TargetGene: "HRD-positive"},
			{Name: "Bevacizumab", Dosage: "15mg/kg every 3 weeks", TargetGene: "VEGF"},
		},
	},
}

// CancerTypeByName returns the table entry for the named cancer type, or nil.
func CancerTypeByName(name string) *CancerType {
	for i := range CancerTypes {
		if CancerTypes[i].Name == name {
			return &CancerTypes[i]
		}
	}
	return nil
}

// IsDriverGene reports whether gene is a known driver for this cancer type.
func (c *CancerType) IsDriverGene(gene string) bool {
	for _, g := range c.DriverGenes {
		if g == gene {
			return true
		}
	}
	return false
}

// TNM staging vocabularies.
var (
	TStages = []string{"T1a", "T1b", "T1c", "T2a", "T2b", "T3", "T4a", "T4b"}
	NStages = []string{"N0", "N1", "N2a", "N2b", "N3"}
	MStages = []string{"M0", "M1a", "M1b", "M1c"}
)

// TissueTypes maps a sample type to the tissue descriptions it may carry.
var TissueTypes = map[domain.SampleType][]string{
	domain.SAMPLE_TUMOR:      {"Tumor Tissue"},
	domain.SAMPLE_NORMAL:     {"Blood"},
	domain.SAMPLE_METASTASIS: {"Pleural Fluid", "Cerebrospinal Fluid", "Bone Marrow"},
	domain.SAMPLE_RECURRENCE: {"Tumor Tissue"},
	domain.SAMPLE_OTHER:      {"Blood", "Bone Marrow"},
}

// ExtraSampleTypes are the types eligible for samples beyond the fixed
// tumor/normal pair at positions one and two.
var ExtraSampleTypes = []domain.SampleType{
	domain.SAMPLE_METASTASIS,
	domain.SAMPLE_RECURRENCE,
	domain.SAMPLE_OTHER,
}

// Sequencing vocabulary.
var (
	SequencingPlatforms = []string{
		"Illumina NovaSeq 6000",
		"Illumina NextSeq 550",
		"Illumina MiSeq",
		"Ion Torrent S5",
		"PacBio Sequel II",
		"Oxford Nanopore PromethION",
	}
	LibraryPreps = []string{
		"TruSeq DNA PCR-Free",
		"Nextera DNA Flex",
		"SureSelect Human All Exon V7",
		"Agilent SureSelect XT",
		"IDT xGen Exome Research Panel",
		"Swift Accel-NGS 2S Plus",
	}
	AssayTypes = []domain.AssayType{
		domain.ASSAY_TARGETED_PANEL,
		domain.ASSAY_WHOLE_EXOME,
		domain.ASSAY_WHOLE_GENOME,
	}
	ReadLengths = []int{75, 100, 150, 250}
)

// Variant calling vocabulary.
var (
	VariantCallers = []string{"Mutect2", "Strelka2", "Varscan2"}
	FilterSettings = []string{"default", "strict", "lenient"}
	Chromosomes    = []string{
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
		"13", "14", "15", "16", "17", "18", "19", "20", "21", "22", "X", "Y",
	}
	Bases = []string{"A", "C", "G", "T"}
	VariantTypes = []domain.VariantType{
		domain.VARIANT_SNV,
		domain.VARIANT_INSERTION,
		domain.VARIANT_DELETION,
		domain.VARIANT_CNV,
	}
	// FilterStatuses is biased toward PASS.
	FilterStatuses = []string{"PASS", "LowQual", "PASS", "PASS"}
)

// EvidenceLevels, strongest first.
var EvidenceLevels = []string{
	"Level 1A", "Level 1B", "Level 2A", "Level 2B", "Level 3A", "Level 3B", "Level 4",
}

// AdverseEvents observed during therapy, CTCAE-graded.
var AdverseEvents = []string{
	"Grade 1 fatigue",
	"Grade 2 nausea",
	"Grade 1 rash",
	"Grade 2 diarrhea",
	"Grade 3 neutropenia",
	"Grade 1 peripheral neuropathy",
	"Grade 2 anemia",
	"Grade 1 elevated liver enzymes",
	"Grade 2 thrombocytopenia",
	"Grade 1 hypothyroidism",
}

// NewLesionSites are the anatomical sites named in progressive-disease
// imaging summaries.
var NewLesionSites = []string{"liver", "lung", "bone", "brain"}

// Interpretation narrative fragments, keyed by whether the classification
// is pathogenic.
var (
	PathogenicNarratives = []string{
		"Associated with increased tumor growth and proliferation.",
		"May confer resistance to standard therapies.",
		"Associated with response to targeted therapies.",
		"Indicates potential sensitivity to immunotherapy.",
		"Associated with poor prognosis.",
	}
	UncertainNarratives = []string{
		"Clinical significance is currently uncertain.",
		"Insufficient evidence to determine clinical impact.",
		"Likely represents a benign polymorphism.",
		"Not previously reported in this cancer type.",
	}
)

// StorageFreezers are the biobank freezer identifiers used in sample
// storage locations.
var StorageFreezers = []string{"A", "B", "C"}
