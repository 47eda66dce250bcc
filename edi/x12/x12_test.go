package x12

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDelimiters(t *testing.T) {
	isa := "ISA*00*          *00*          *ZZ*SUBMITTER      *ZZ*RECEIVER       *241201*1045*^*00501*000000001*0*P*:~"
	assert.Len(t, isa, isaLength)

	tests := []struct {
		name    string
		content string
		expect  Delimiters
	}{
		{"full ISA", isa + "GS*HS~", Delimiters{Segment: '~', Element: '*', SubElement: ':'}},
		{"no ISA prefix", "ST*270*0001~", DefaultDelimiters()},
		{"truncated ISA", "ISA*00*short~", DefaultDelimiters()},
		{"alternate separators", strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(isa, "*", "|"), ":", ">"), "~", "!"),
			Delimiters{Segment: '!', Element: '|', SubElement: '>'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			assert.Equal(sub, tt.expect, ResolveDelimiters(tt.content))
		})
	}
}

func TestSegmentElement(t *testing.T) {
	seg := Segment{"NM1", "IL", "1", "DOE"}
	assert.Equal(t, "NM1", seg.ID())
	assert.Equal(t, "IL", seg.Element(1))
	assert.Equal(t, "", seg.Element(9))
	assert.Equal(t, "", seg.Element(-1))
	assert.Equal(t, "", Segment{}.ID())
}

func TestTransactions(t *testing.T) {
	tok := NewTokenizer(DefaultDelimiters())

	content := "ISA*00~GS*HS~" +
		"ST*270*0001~BHT*0022*13*REF1*20241201*1045~NM1*IL*1*DOE*JOHN****MI*M00001~SE*4*0001~" +
		"ST*278*0002~BHT*0007*13*AUTH1~SE*3*0002~" +
		"ST*270*0003~NM1*IL*1*ROE*JANE****MI*M00002~"

	txns := tok.Transactions(content, "270")
	assert.Len(t, txns, 1, "the 278 set and the unterminated 270 should both be excluded")
	assert.Equal(t, "ST", txns[0].Segments[0].ID())
	assert.Equal(t, "SE", txns[0].Segments[len(txns[0].Segments)-1].ID())
	assert.Contains(t, txns[0].Raw, "NM1*IL*1*DOE*JOHN****MI*M00001~")

	both := tok.Transactions(content, "270", "278")
	assert.Len(t, both, 2)
}

func TestTransactionsWhitespaceBetweenSegments(t *testing.T) {
	tok := NewTokenizer(DefaultDelimiters())
	content := "ST*270*0001~\nBHT*0022*13~\n  NM1*IL*1~\nSE*4*0001~\n"

	txns := tok.Transactions(content, "270")
	assert.Len(t, txns, 1)
	assert.Len(t, txns[0].Segments, 4)
	assert.Equal(t, "BHT", txns[0].Segments[1].ID())
}

func TestClaimWindows(t *testing.T) {
	tok := NewTokenizer(DefaultDelimiters())

	tests := []struct {
		name    string
		content string
		windows int
	}{
		{"two claims one envelope",
			"ST*837*0001~BHT*0019~CLM*C1*100~SV2*0300:*HC:80053*100*UN*1~CLM*C2*200~SV1*HC:99213*200*UN*1~SE*7*0001~", 2},
		{"unterminated window dropped",
			"ST*837*0001~CLM*C1*100~SV1*HC:99213*100*UN*1~", 0},
		{"no claims", "ST*837*0001~BHT*0019~SE*3*0001~", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			windows := tok.ClaimWindows(tt.content)
			assert.Len(sub, windows, tt.windows)
			for _, w := range windows {
				assert.Equal(sub, "CLM", w[0].ID())
			}
		})
	}
}

func TestSub(t *testing.T) {
	tok := NewTokenizer(DefaultDelimiters())
	assert.Equal(t, "99213", tok.Sub("HC:99213:25", 1))
	assert.Equal(t, "25", tok.Sub("HC:99213:25", 2))
	assert.Equal(t, "", tok.Sub("HC:99213", 2))
	assert.Equal(t, "", tok.Sub("HC", 1))
	assert.True(t, tok.IsComposite("HC:99213"))
	assert.False(t, tok.IsComposite("250"))
}
