package x12

import (
	"github.com/clinicalforecast/edi-loader/edi/constants"
	"github.com/clinicalforecast/edi-loader/edi/models"
)

// priorAuthBuilder accumulates one 278 transaction. Both the member id and
// the authorization id must be present for finalize to emit a record.
type priorAuthBuilder struct {
	rec models.PriorAuthorization
}

func newPriorAuthBuilder() *priorAuthBuilder {
	return &priorAuthBuilder{rec: models.PriorAuthorization{
		Status:          models.AuthRequested,
		RequestCategory: models.RequestCategoryPriorAuth,
	}}
}

func (b *priorAuthBuilder) apply(seg Segment, tok Tokenizer) {
	switch seg.ID() {
	case "BHT":
		// BHT*0007*13*AUTH001*20241201*1045
		b.rec.AuthorizationID = seg.Element(3)
		if date := seg.Element(4); date != "" {
			ts := seg.Element(5)
			if ts == "" {
				ts = "0000"
			}
			b.rec.RequestTimestamp = ParseTimestamp(date, ts)
		}
	case "UM":
		if category := seg.Element(1); category != "" {
			b.rec.RequestCategory = category
		}
	case "NM1":
		switch LookupEntityRole(seg.Element(1)) {
		case RoleMember:
			b.rec.MemberID = seg.Element(9)
		case RoleInquiryProvider:
			b.rec.RequestingProviderNPI = seg.Element(9)
		case RoleServicingProvider:
			b.rec.ServicingProviderNPI = seg.Element(9)
		}
	case "DTP":
		switch seg.Element(1) {
		case DateQualService:
			// Single-date model: from and to are the same bound.
			date := ParseDate(seg.Element(3))
			b.rec.ServiceFromDate, b.rec.ServiceToDate = date, date
		case DateQualDecision:
			b.rec.DecisionTimestamp = ParseTimestamp(seg.Element(3), "0000")
		}
	case "HI":
		for i := 1; i < len(seg); i++ {
			if tok.IsComposite(seg[i]) {
				b.rec.DiagnosisCodes = append(b.rec.DiagnosisCodes, tok.Sub(seg[i], 1))
			}
		}
	case "SV2":
		if v := seg.Element(1); tok.IsComposite(v) {
			b.rec.ProcedureCodes = append(b.rec.ProcedureCodes, tok.Sub(v, 1))
		}
	case "HSD":
		switch seg.Element(1) {
		case "VS":
			b.rec.ClinicalType = models.ClinicalOutpatient
		case "DY":
			b.rec.ClinicalType = models.ClinicalInpatient
		}
	case "HCR":
		b.rec.Status = AuthorizationStatus(seg.Element(1), b.rec.Status)
	}
}

func (b *priorAuthBuilder) finalize() *models.PriorAuthorization {
	if b.rec.MemberID == "" || b.rec.AuthorizationID == "" {
		return nil
	}
	if b.rec.ServicingProviderNPI == "" {
		b.rec.ServicingProviderNPI = b.rec.RequestingProviderNPI
	}
	return &b.rec
}

// ParsePriorAuth decodes every 278 transaction in content into prior
// authorization records.
func ParsePriorAuth(content string, d Delimiters) []models.PriorAuthorization {
	tok := NewTokenizer(d)

	var auths []models.PriorAuthorization
	for _, txn := range tok.Transactions(content, constants.SetPriorAuth) {
		b := newPriorAuthBuilder()
		for _, seg := range txn.Segments {
			b.apply(seg, tok)
		}
		if rec := b.finalize(); rec != nil {
			auths = append(auths, *rec)
		}
	}
	return auths
}
