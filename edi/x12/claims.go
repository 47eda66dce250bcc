package x12

import (
	"strconv"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

// claimBuilder accumulates one claim window (CLM up to the next CLM or SE).
// Lines are held as pointers until finalize so the current-line cursor stays
// valid while new lines are appended.
type claimBuilder struct {
	header  models.ClaimHeader
	lines   []*models.ClaimLine
	current *models.ClaimLine
}

func newClaimBuilder() *claimBuilder {
	return &claimBuilder{header: models.ClaimHeader{
		ClaimType:   models.ClaimInstitutional,
		ClaimStatus: models.ClaimStatusPaid,
	}}
}

func (b *claimBuilder) openLine() *models.ClaimLine {
	line := &models.ClaimLine{
		ClaimID:     b.header.ClaimID,
		LineNumber:  len(b.lines) + 1,
		ServiceDate: b.header.FromDate,
		Units:       1,
		LineStatus:  models.ClaimStatusPaid,
	}
	b.lines = append(b.lines, line)
	b.current = line
	return line
}

func (b *claimBuilder) apply(seg Segment, tok Tokenizer) {
	switch seg.ID() {
	case "CLM":
		// CLM*CLAIM001*12500
		b.header.ClaimID = seg.Element(1)
		b.header.TotalBilledAmount = parseAmount(seg.Element(2))
	case "DTP":
		if b.current != nil {
			// Line-level override; header dates are settled before the
			// first service line opens.
			if seg.Element(1) == DateQualService {
				b.current.ServiceDate = ParseDate(seg.Element(3))
			}
			return
		}
		switch seg.Element(1) {
		case DateQualStatementFrom:
			b.header.FromDate = ParseDate(seg.Element(3))
		case DateQualStatementThru:
			b.header.ThruDate = ParseDate(seg.Element(3))
		case DateQualReceived:
			b.header.ReceivedTimestamp = ParseTimestamp(seg.Element(3), "0000")
		}
	case "NM1":
		switch LookupEntityRole(seg.Element(1)) {
		case RoleMember:
			b.header.MemberID = seg.Element(9)
		case RoleBillingProvider:
			b.header.BillingProviderNPI = seg.Element(9)
		case RoleRenderingProvider:
			b.header.RenderingProviderNPI = seg.Element(9)
		case RoleFacility:
			b.header.FacilityNPI = seg.Element(9)
		}
	case "SV1":
		// Professional service line: SV1*HC:99213:25*250*UN**1
		line := b.openLine()
		if v := seg.Element(1); tok.IsComposite(v) {
			line.ProcedureCode = tok.Sub(v, 1)
			line.Modifier = tok.Sub(v, 2)
		}
		line.BilledAmount = parseAmount(seg.Element(2))
		if u := seg.Element(5); u != "" {
			if n, err := strconv.Atoi(u); err == nil {
				line.Units = float64(n)
			}
		}
		b.header.ClaimType = models.ClaimProfessional
	case "SV2":
		// Institutional service line: SV2*RB:0300*HC:80053*450*UN*1
		line := b.openLine()
		if v := seg.Element(1); tok.IsComposite(v) {
			line.RevenueCode = tok.Sub(v, 1)
		}
		if v := seg.Element(2); tok.IsComposite(v) {
			line.ProcedureCode = tok.Sub(v, 1)
		}
		line.BilledAmount = parseAmount(seg.Element(3))
		if u := seg.Element(5); u != "" {
			// Institutional units may be fractional.
			if f, err := strconv.ParseFloat(u, 64); err == nil {
				line.Units = f
			}
		}
	}
}

// finalize freezes the claim. Paid and allowed totals are derived from the
// owned lines; they default to zero until a downstream adjudication source
// populates the line amounts. A claim missing its id or member id is dropped
// together with its lines — no orphans.
func (b *claimBuilder) finalize() *models.ClaimHeader {
	if b.header.ClaimID == "" || b.header.MemberID == "" {
		return nil
	}

	b.header.Lines = make([]models.ClaimLine, 0, len(b.lines))
	for _, line := range b.lines {
		b.header.Lines = append(b.header.Lines, *line)
		b.header.TotalPaidAmount += line.PaidAmount
		b.header.TotalAllowedAmount += line.AllowedAmount
	}
	return &b.header
}

// ParseClaims decodes every claim window in content into claim headers with
// their owned service lines.
func ParseClaims(content string, d Delimiters) []models.ClaimHeader {
	tok := NewTokenizer(d)

	var claims []models.ClaimHeader
	for _, window := range tok.ClaimWindows(content) {
		b := newClaimBuilder()
		for _, seg := range window {
			b.apply(seg, tok)
		}
		if rec := b.finalize(); rec != nil {
			claims = append(claims, *rec)
		}
	}
	return claims
}

func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
