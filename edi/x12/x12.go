package x12

import (
	"strings"
)

// Delimiters are the three separators used by an X12 interchange. Real X12
// declares them in the ISA control segment; ResolveDelimiters reads them from
// there when a full-length ISA segment is present and falls back to the
// conventional defaults otherwise.
type Delimiters struct {
	Segment    byte
	Element    byte
	SubElement byte
}

func DefaultDelimiters() Delimiters {
	return Delimiters{Segment: '~', Element: '*', SubElement: ':'}
}

// isaLength is the fixed width of an ISA segment: "ISA" plus sixteen elements
// at fixed offsets. The element separator sits right after "ISA", the
// sub-element separator at offset 104 and the segment terminator at 105.
const isaLength = 106

func ResolveDelimiters(content string) Delimiters {
	d := DefaultDelimiters()
	if !strings.HasPrefix(content, "ISA") || len(content) < isaLength {
		return d
	}
	d.Element = content[3]
	d.SubElement = content[104]
	d.Segment = content[105]
	return d
}

// A Segment is one delimited unit of a transaction: the segment identifier
// followed by its ordered elements. Index 0 is always the identifier, so
// "element 1" of the X12 spec is array index 1.
type Segment []string

func (s Segment) ID() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Element returns the element at index i, or "" when the segment is too
// short. Extractor rules treat a missing element as unset, never an error.
func (s Segment) Element(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// A Transaction is one ST..SE window of segments. Raw keeps the source text
// (whitespace-normalized) as an audit reference for the resulting record.
type Transaction struct {
	Segments []Segment
	Raw      string
}

// A Tokenizer splits interchange text using one file's delimiters. It has no
// semantic knowledge of the segments it produces.
type Tokenizer struct {
	d Delimiters
}

func NewTokenizer(d Delimiters) Tokenizer {
	return Tokenizer{d: d}
}

func (t Tokenizer) rawSegments(content string) []string {
	parts := strings.Split(content, string(t.d.Segment))
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (t Tokenizer) split(raw string) Segment {
	return Segment(strings.Split(raw, string(t.d.Element)))
}

// Segments splits one transaction's text into parsed segments, discarding
// empties produced by a trailing terminator.
func (t Tokenizer) Segments(text string) []Segment {
	raws := t.rawSegments(text)
	segs := make([]Segment, 0, len(raws))
	for _, raw := range raws {
		segs = append(segs, t.split(raw))
	}
	return segs
}

// Transactions scans content left to right and returns every non-overlapping
// window opened by an ST segment whose set code matches one of setCodes and
// closed by the next SE segment. A window still open at end of input is
// discarded.
func (t Tokenizer) Transactions(content string, setCodes ...string) []Transaction {
	var (
		txns     []Transaction
		segs     []Segment
		rawParts []string
		open     bool
	)

	for _, raw := range t.rawSegments(content) {
		seg := t.split(raw)
		if !open {
			if seg.ID() != "ST" || !matchesSetCode(seg.Element(1), setCodes) {
				continue
			}
			open = true
		}

		segs = append(segs, seg)
		rawParts = append(rawParts, raw)

		if seg.ID() == "SE" {
			txns = append(txns, Transaction{
				Segments: segs,
				Raw:      strings.Join(rawParts, string(t.d.Segment)) + string(t.d.Segment),
			})
			segs, rawParts, open = nil, nil, false
		}
	}

	return txns
}

// ClaimWindows returns one segment window per CLM occurrence: each window
// runs from its CLM segment up to (not including) the next CLM or the closing
// SE of the interchange. Claims are deliberately not bounded by their own
// ST/SE pair; downstream behavior depends on one header per CLM.
func (t Tokenizer) ClaimWindows(content string) [][]Segment {
	var (
		windows [][]Segment
		window  []Segment
		open    bool
	)

	for _, seg := range t.Segments(content) {
		switch seg.ID() {
		case "CLM":
			if open {
				windows = append(windows, window)
			}
			window = []Segment{seg}
			open = true
		case "SE":
			if open {
				windows = append(windows, window)
				window, open = nil, false
			}
		default:
			if open {
				window = append(window, seg)
			}
		}
	}

	return windows
}

// Sub returns sub-part j of a composite element value, or "" when the value
// has no such sub-part. In the code-carrying composites of these transaction
// families the business code sits at sub-part 1 (qualifier:code pattern).
func (t Tokenizer) Sub(value string, j int) string {
	parts := strings.Split(value, string(t.d.SubElement))
	if j < 0 || j >= len(parts) {
		return ""
	}
	return parts[j]
}

// IsComposite reports whether an element value packs sub-parts. Extractors
// only call this on elements designated composite by segment and position.
func (t Tokenizer) IsComposite(value string) bool {
	return strings.Contains(value, string(t.d.SubElement))
}

func matchesSetCode(code string, setCodes []string) bool {
	for _, c := range setCodes {
		if code == c {
			return true
		}
	}
	return false
}
