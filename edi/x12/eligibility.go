package x12

import (
	"github.com/clinicalforecast/edi-loader/edi/constants"
	"github.com/clinicalforecast/edi-loader/edi/models"
)

// eligibilityBuilder accumulates one 270/271 transaction. finalize applies
// the completeness gate in one place: no member id, no record.
type eligibilityBuilder struct {
	rec models.EligibilityInquiry
}

func newEligibilityBuilder(raw string) *eligibilityBuilder {
	return &eligibilityBuilder{rec: models.EligibilityInquiry{
		SourceChannel:    "edi_gateway",
		NetworkIndicator: models.NetworkUnknown,
		CoverageStatus:   models.CoverageUnknown,
		RawTransaction:   raw,
	}}
}

func (b *eligibilityBuilder) apply(seg Segment, tok Tokenizer) {
	switch seg.ID() {
	case "BHT":
		// BHT*0022*13*REF123*20241201*1045
		if date := seg.Element(4); date != "" {
			ts := seg.Element(5)
			if ts == "" {
				ts = "0000"
			}
			b.rec.InquiryTimestamp = ParseTimestamp(date, ts)
		}
	case "NM1":
		switch LookupEntityRole(seg.Element(1)) {
		case RoleMember:
			// NM1*IL*1*DOE*JOHN****MI*M00001
			b.rec.MemberID = seg.Element(9)
		case RoleInquiryProvider:
			b.rec.ProviderNPI = seg.Element(9)
		case RolePayer:
			b.rec.PayerID = seg.Element(9)
		}
	case "DTP":
		// Service date is only a fallback when BHT carried no usable date.
		if seg.Element(1) == DateQualServiceFallback && b.rec.InquiryTimestamp == nil {
			b.rec.InquiryTimestamp = ParseDate(seg.Element(3))
		}
	case "EQ":
		if code := seg.Element(1); code != "" {
			b.rec.ServiceTypeCodes = append(b.rec.ServiceTypeCodes, code)
		}
	case "EB":
		b.rec.CoverageStatus = CoverageStatus(seg.Element(1), b.rec.CoverageStatus)
		if len(seg) >= 13 {
			b.rec.NetworkIndicator = NetworkIndicator(seg.Element(12), b.rec.NetworkIndicator)
		}
	}
}

func (b *eligibilityBuilder) finalize() *models.EligibilityInquiry {
	if b.rec.MemberID == "" {
		return nil
	}
	return &b.rec
}

// ParseEligibility decodes every 270/271 transaction in content into
// eligibility inquiry records. Decoding is best effort: malformed segments
// leave fields unset, and transactions that never resolve a member id are
// dropped silently.
func ParseEligibility(content string, d Delimiters) []models.EligibilityInquiry {
	tok := NewTokenizer(d)

	var inquiries []models.EligibilityInquiry
	for _, txn := range tok.Transactions(content,
		constants.SetEligibilityInquiry, constants.SetEligibilityResponse) {
		b := newEligibilityBuilder(txn.Raw)
		for _, seg := range txn.Segments {
			b.apply(seg, tok)
		}
		if rec := b.finalize(); rec != nil {
			inquiries = append(inquiries, *rec)
		}
	}
	return inquiries
}
