package loader

import (
	"fmt"
	"regexp"
	"time"
)

// EDIFileMetadata is the information derived from one dropped EDI file before
// its content is read: the transaction set family from the filename and the
// delivery time from the file itself.
type EDIFileMetadata struct {
	Name           string
	TransactionSet string
	FilePath       string
	Imported       bool
	DeliveryDate   time.Time
	FileID         uint
}

func (m EDIFileMetadata) String() string {
	if m.FilePath != "" {
		return m.FilePath
	}
	return m.Name
}

// Gateway drops are named by transaction set family, e.g.
// 270-eligibility-requests.edi or 837I-institutional-claims.edi. The
// institutional/professional suffix on 837 files is informational only; the
// set code decides the decoder.
var filenameRegexp = regexp.MustCompile(`^(270|271|278|837)(?:I|P)?-[A-Za-z0-9-]+\.edi$`)

func ParseMetadata(filename string) (EDIFileMetadata, error) {
	var metadata EDIFileMetadata

	matches := filenameRegexp.FindStringSubmatch(filename)
	if len(matches) < 2 {
		return metadata, fmt.Errorf("invalid filename for file: %s", filename)
	}

	metadata.Name = matches[0]
	metadata.TransactionSet = matches[1]

	return metadata, nil
}
