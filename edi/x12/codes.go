package x12

import (
	"github.com/clinicalforecast/edi-loader/edi/models"
)

// EntityRole classifies an NM1 entity-identifier code into the role the
// extractors care about. Codes outside the table map to RoleUnknown and are
// ignored, which keeps the decoder forward-compatible with transaction
// variants not explicitly modeled.
type EntityRole int

const (
	RoleUnknown EntityRole = iota
	RoleMember
	RoleInquiryProvider
	RolePayer
	RoleBillingProvider
	RoleRenderingProvider
	RoleFacility
	RoleServicingProvider
)

var entityRoles = map[string]EntityRole{
	"IL": RoleMember,
	"1P": RoleInquiryProvider,
	"2B": RoleInquiryProvider,
	"PR": RolePayer,
	"85": RoleBillingProvider,
	"82": RoleRenderingProvider,
	"71": RoleRenderingProvider,
	"77": RoleFacility,
	"SJ": RoleServicingProvider,
}

func LookupEntityRole(code string) EntityRole {
	return entityRoles[code]
}

// Date/time qualifiers (DTP element 1) used by these transaction families.
const (
	DateQualServiceFallback = "291" // 270/271 service date fallback
	DateQualService         = "472" // 278 service date, 837 line service date
	DateQualDecision        = "AAH" // 278 decision date
	DateQualStatementFrom   = "434" // 837 statement from
	DateQualStatementThru   = "435" // 837 statement thru
	DateQualReceived        = "050" // 837 received date
)

// CoverageStatus maps an EB eligibility-benefit code to a coverage status.
// Codes outside the two sets leave the prior status unchanged.
func CoverageStatus(code, prior string) string {
	switch code {
	case "1", "A", "B", "C":
		return models.CoverageActive
	case "I", "T":
		return models.CoverageInactive
	}
	return prior
}

// NetworkIndicator maps the EB in-plan-network element to a network
// indicator, leaving the prior value in place for anything else.
func NetworkIndicator(code, prior string) string {
	switch code {
	case "Y":
		return models.NetworkIn
	case "N":
		return models.NetworkOut
	}
	return prior
}

// AuthorizationStatus maps an HCR action code to a decision status. A 278
// with no HCR segment keeps its initial "requested" status.
func AuthorizationStatus(code, prior string) string {
	switch code {
	case "A1":
		return models.AuthApproved
	case "A2":
		return models.AuthPended
	case "A3":
		return models.AuthDenied
	}
	return prior
}
