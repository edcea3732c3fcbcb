package types

import "fmt"

// Industry classifies a template by the business sector it targets.
type Industry string

const (
	IndustryTechnology    Industry = "technology"
	IndustryManufacturing Industry = "manufacturing"
	IndustryServices      Industry = "services"
	IndustryBusiness      Industry = "business"
	IndustryHealthcare    Industry = "healthcare"
	IndustryEducation     Industry = "education"
	IndustryRetail        Industry = "retail"
	IndustryLogistics     Industry = "logistics"
	IndustryFinance       Industry = "finance"
	IndustryLegal         Industry = "legal"
)

// Industries lists every supported industry value.
var Industries = []Industry{
	IndustryTechnology, IndustryManufacturing, IndustryServices,
	IndustryBusiness, IndustryHealthcare, IndustryEducation,
	IndustryRetail, IndustryLogistics, IndustryFinance, IndustryLegal,
}

// ParseIndustry converts a raw string into an Industry, rejecting values
// outside the closed set.
func ParseIndustry(s string) (Industry, error) {
	for _, v := range Industries {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid industry %q", s)
}

func (i Industry) String() string { return string(i) }

// CompanySize classifies the organization size a template is written for.
type CompanySize string

const (
	SizeStartup    CompanySize = "startup"
	SizeSmall      CompanySize = "small"
	SizeMedium     CompanySize = "medium"
	SizeLarge      CompanySize = "large"
	SizeEnterprise CompanySize = "enterprise"
)

// CompanySizes lists every supported company size value.
var CompanySizes = []CompanySize{
	SizeStartup, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise,
}

// ParseCompanySize converts a raw string into a CompanySize, rejecting
// values outside the closed set.
func ParseCompanySize(s string) (CompanySize, error) {
	for _, v := range CompanySizes {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid company size %q", s)
}

func (c CompanySize) String() string { return string(c) }

// Tone describes the writing style a template drives the generator toward.
type Tone string

const (
	ToneFormalCorporate        Tone = "formal_corporate"
	ToneStartupAgile           Tone = "startup_agile"
	ToneGovernmentCompliance   Tone = "government_compliance"
	ToneAcademicResearch       Tone = "academic_research"
	ToneConsultingProfessional Tone = "consulting_professional"
)

// Tones lists every supported tone value.
var Tones = []Tone{
	ToneFormalCorporate, ToneStartupAgile, ToneGovernmentCompliance,
	ToneAcademicResearch, ToneConsultingProfessional,
}

// ParseTone converts a raw string into a Tone, rejecting values outside
// the closed set.
func ParseTone(s string) (Tone, error) {
	for _, v := range Tones {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid tone %q", s)
}

func (t Tone) String() string { return string(t) }

// DocumentType classifies the kind of document a template produces.
type DocumentType string

const (
	DocProposal      DocumentType = "proposal"
	DocReport        DocumentType = "report"
	DocManual        DocumentType = "manual"
	DocPlan          DocumentType = "plan"
	DocSpecification DocumentType = "specification"
	DocPolicy        DocumentType = "policy"
	DocAgreement     DocumentType = "agreement"
)

// DocumentTypes lists every supported document type value.
var DocumentTypes = []DocumentType{
	DocProposal, DocReport, DocManual, DocPlan,
	DocSpecification, DocPolicy, DocAgreement,
}

// ParseDocumentType converts a raw string into a DocumentType, rejecting
// values outside the closed set.
func ParseDocumentType(s string) (DocumentType, error) {
	for _, v := range DocumentTypes {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", s)
}

func (d DocumentType) String() string { return string(d) }

// Complexity indicates how involved completing a template is expected to be.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Complexities lists the complexity levels in ascending order.
var Complexities = []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh}

// ParseComplexity converts a raw string into a Complexity, rejecting values
// outside the closed set.
func ParseComplexity(s string) (Complexity, error) {
	for _, v := range Complexities {
		if s == string(v) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid complexity level %q", s)
}

func (c Complexity) String() string { return string(c) }

// Ordinal returns the position of the complexity level in the fixed ordering
// low < medium < high. Unknown values rank highest so they are never
// accidentally admitted by a max-complexity filter.
func (c Complexity) Ordinal() int {
	switch c {
	case ComplexityLow:
		return 1
	case ComplexityMedium:
		return 2
	default:
		return 3
	}
}
