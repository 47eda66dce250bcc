package x12

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

func TestParsePriorAuth(t *testing.T) {
	content := "ISA*00~GS*HI~" +
		"ST*278*0001~" +
		"BHT*0007*13*AUTH001*20241201*1045~" +
		"UM*HS*I*2~" +
		"NM1*IL*1*DOE*JOHN****MI*M00001~" +
		"NM1*1P*2*NORTHSIDE ORTHO*****XX*1234567890~" +
		"NM1*SJ*2*SURGICAL ASSOC*****XX*9876543210~" +
		"DTP*472*D8*20250110~" +
		"DTP*AAH*D8*20241205~" +
		"HI*ABK:M17.11*ABF:Z96.651~" +
		"SV2*HC:27447~" +
		"HSD*DY*3~" +
		"HCR*A1*CERT123~" +
		"SE*13*0001~"

	auths := ParsePriorAuth(content, DefaultDelimiters())
	assert.Len(t, auths, 1)

	auth := auths[0]
	assert.Equal(t, "AUTH001", auth.AuthorizationID)
	assert.Equal(t, "M00001", auth.MemberID)
	assert.Equal(t, "1234567890", auth.RequestingProviderNPI)
	assert.Equal(t, "9876543210", auth.ServicingProviderNPI)
	assert.Equal(t, models.AuthApproved, auth.Status)
	assert.Equal(t, models.RequestCategoryPriorAuth, auth.RequestCategory)
	assert.Equal(t, models.ClinicalInpatient, auth.ClinicalType)
	assert.Equal(t, []string{"M17.11", "Z96.651"}, auth.DiagnosisCodes)
	assert.Equal(t, []string{"27447"}, auth.ProcedureCodes)
	assert.Equal(t, time.Date(2024, 12, 1, 10, 45, 0, 0, time.UTC), *auth.RequestTimestamp)
	assert.Equal(t, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), *auth.DecisionTimestamp)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *auth.ServiceFromDate)
	assert.Equal(t, *auth.ServiceFromDate, *auth.ServiceToDate)
}

func TestParsePriorAuthStatus(t *testing.T) {
	base := "ST*278*0001~BHT*0007*13*AUTH002*20241201~NM1*IL*1*DOE*JOHN****MI*M00001~%sSE*5*0001~"

	tests := []struct {
		name   string
		hcr    string
		expect string
	}{
		{"denied", "HCR*A3*CERT~", models.AuthDenied},
		{"pended", "HCR*A2*CERT~", models.AuthPended},
		{"no HCR stays requested", "", models.AuthRequested},
		{"unknown action keeps prior", "HCR*A9*CERT~", models.AuthRequested},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			content := fmt.Sprintf(base, tt.hcr)
			auths := ParsePriorAuth(content, DefaultDelimiters())
			assert.Len(sub, auths, 1)
			assert.Equal(sub, tt.expect, auths[0].Status)
		})
	}
}

func TestParsePriorAuthReferral(t *testing.T) {
	content := "ST*278*0001~" +
		"BHT*0007*13*REF001*20241201~" +
		"UM*AR*I*2~" +
		"NM1*IL*1*DOE*JOHN****MI*M00001~" +
		"NM1*1P*2*PCP GROUP*****XX*1234567890~" +
		"HSD*VS*4~" +
		"SE*7*0001~"

	auths := ParsePriorAuth(content, DefaultDelimiters())
	assert.Len(t, auths, 1)
	assert.Equal(t, models.RequestCategoryReferral, auths[0].RequestCategory)
	assert.Equal(t, models.ClinicalOutpatient, auths[0].ClinicalType)
	// No SJ entity: the servicing provider falls back to the requester.
	assert.Equal(t, "1234567890", auths[0].ServicingProviderNPI)
}

func TestParsePriorAuthRequiredIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing member id",
			"ST*278*0001~BHT*0007*13*AUTH003*20241201~NM1*1P*2*ORTHO*****XX*1234567890~SE*4*0001~"},
		{"missing authorization id",
			"ST*278*0001~BHT*0007*13~NM1*IL*1*DOE*JOHN****MI*M00001~SE*4*0001~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			assert.Empty(sub, ParsePriorAuth(tt.content, DefaultDelimiters()))
		})
	}
}

func TestParsePriorAuthServiceDateRange(t *testing.T) {
	content := "ST*278*0001~" +
		"BHT*0007*13*AUTH004*20241201~" +
		"NM1*IL*1*DOE*JOHN****MI*M00001~" +
		"DTP*472*RD8*20250110-20250112~" +
		"SE*5*0001~"

	auths := ParsePriorAuth(content, DefaultDelimiters())
	assert.Len(t, auths, 1)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *auths[0].ServiceFromDate)
	assert.Equal(t, *auths[0].ServiceFromDate, *auths[0].ServiceToDate)
}
