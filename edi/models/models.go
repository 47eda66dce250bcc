package models

import "time"

// Coverage statuses resolved from EB eligibility-benefit codes.
const (
	CoverageActive   = "active"
	CoverageInactive = "inactive"
	CoverageUnknown  = "unknown"
)

// Network indicators resolved from the EB in-plan-network element.
const (
	NetworkIn      = "in"
	NetworkOut     = "out"
	NetworkUnknown = "unknown"
)

// Prior-authorization decision statuses. A request starts out as "requested"
// and only moves when an HCR action code says so.
const (
	AuthRequested = "requested"
	AuthApproved  = "approved"
	AuthPended    = "pended"
	AuthDenied    = "denied"
)

// Clinical types resolved from the HSD unit-of-measure element.
const (
	ClinicalInpatient  = "inpatient"
	ClinicalOutpatient = "outpatient"
)

// Request categories carried verbatim on the 278 UM segment.
const (
	RequestCategoryPriorAuth = "HS"
	RequestCategoryReferral  = "AR"
)

const (
	ClaimInstitutional = "institutional"
	ClaimProfessional  = "professional"
)

const ClaimStatusPaid = "paid"

// An EDIFile is the bookkeeping record for one imported interchange file.
type EDIFile struct {
	ID             uint
	Name           string
	TransactionSet string
	Timestamp      time.Time
	ImportStatus   string
}

// An EligibilityInquiry is one decoded 270/271 transaction. MemberID is
// required for the record to exist; transactions without one are dropped
// during finalization.
type EligibilityInquiry struct {
	ID               uint
	FileID           uint
	InquiryTimestamp *time.Time
	SourceChannel    string
	PayerID          string
	MemberID         string
	ProviderNPI      string
	ServiceTypeCodes []string
	PlaceOfService   string
	NetworkIndicator string
	CoverageStatus   string
	RawTransaction   string
}

// A PriorAuthorization is one decoded 278 transaction. MemberID and
// AuthorizationID are both required. ServicingProviderNPI defaults to
// RequestingProviderNPI when the transaction never names one.
type PriorAuthorization struct {
	ID                    uint
	FileID                uint
	AuthorizationID       string
	RequestTimestamp      *time.Time
	DecisionTimestamp     *time.Time
	Status                string
	MemberID              string
	RequestingProviderNPI string
	ServicingProviderNPI  string
	ServiceFromDate       *time.Time
	ServiceToDate         *time.Time
	DiagnosisCodes        []string
	ProcedureCodes        []string
	ClinicalType          string
	RequestCategory       string
}

// A ClaimHeader owns its service lines. TotalBilledAmount comes from the CLM
// monetary element; TotalAllowedAmount and TotalPaidAmount are derived as the
// sum over the owned lines and are never parsed independently.
type ClaimHeader struct {
	ID                   uint
	FileID               uint
	ClaimID              string
	MemberID             string
	ClaimType            string
	FromDate             *time.Time
	ThruDate             *time.Time
	ReceivedTimestamp    *time.Time
	ClaimStatus          string
	BillingProviderNPI   string
	RenderingProviderNPI string
	FacilityNPI          string
	TotalBilledAmount    float64
	TotalAllowedAmount   float64
	TotalPaidAmount      float64

	Lines []ClaimLine
}

// A ClaimLine belongs to exactly one claim. Line numbers are dense and
// 1-based within the claim. ServiceDate inherits the header's from-date
// unless a line-level DTP overrides it.
type ClaimLine struct {
	ClaimID       string
	LineNumber    int
	ServiceDate   *time.Time
	ProcedureCode string
	RevenueCode   string
	Modifier      string
	Units         float64
	BilledAmount  float64
	AllowedAmount float64
	PaidAmount    float64
	LineStatus    string
}

// A Member is one demographics record from the enrollment system's JSON
// export. The export is already structured; no EDI decoding is involved.
type Member struct {
	MemberID         string  `json:"member_id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	DateOfBirth      string  `json:"date_of_birth"`
	Gender           string  `json:"gender"`
	Address          Address `json:"address"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	PlanType         string  `json:"plan_type"`
	Network          string  `json:"network"`
	GeographicRegion string  `json:"geographic_region"`
	EnrollmentDate   string  `json:"enrollment_date"`
	EnrollmentStatus string  `json:"enrollment_status"`
	TerminationDate  string  `json:"termination_date"`
	PrimaryCare      PCP     `json:"primary_care_provider"`
	RiskScore        float64 `json:"risk_score"`
	HCCScore         float64 `json:"hcc_score"`

	ChronicConditions []ChronicCondition `json:"chronic_conditions"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type PCP struct {
	NPI       string `json:"npi"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type ChronicCondition struct {
	ICD10Code     string `json:"icd10_code"`
	Description   string `json:"description"`
	DiagnosisDate string `json:"diagnosis_date"`
}

// An RxBenefitInquiry is one pharmacy benefit check. The prototype feed is
// JSON; production would parse NCPDP D.0.
type RxBenefitInquiry struct {
	InquiryID          string  `json:"inquiry_id"`
	MemberID           string  `json:"member_id"`
	InquiryDate        string  `json:"inquiry_date"`
	NDCCode            string  `json:"ndc_code"`
	DrugName           string  `json:"drug_name"`
	DrugClass          string  `json:"drug_class"`
	PrescriberNPI      string  `json:"prescriber_npi"`
	PharmacyNPI        string  `json:"pharmacy_npi"`
	DaysSupply         int     `json:"days_supply"`
	Quantity           float64 `json:"quantity"`
	CoverageStatus     string  `json:"coverage_status"`
	CopayAmount        float64 `json:"copay_amount"`
	Indication         string  `json:"indication"`
	RawTransactionData string  `json:"raw_transaction_data"`
}
