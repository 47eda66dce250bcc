package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		transactionSet string
		expectErr      bool
	}{
		{"eligibility request", "270-eligibility-requests.edi", "270", false},
		{"eligibility response", "271-eligibility-responses.edi", "271", false},
		{"prior auth", "278-prior-auth-requests.edi", "278", false},
		{"institutional claims", "837I-institutional-claims.edi", "837", false},
		{"professional claims", "837P-professional-claims.edi", "837", false},
		{"plain claims", "837-claims.edi", "837", false},
		{"unknown set code", "999-unknown.edi", "", true},
		{"missing slug", "270.edi", "", true},
		{"wrong extension", "270-eligibility-requests.txt", "", true},
		{"not an EDI drop", "members.json", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(sub *testing.T) {
			metadata, err := ParseMetadata(tt.filename)
			if tt.expectErr {
				assert.EqualError(sub, err, "invalid filename for file: "+tt.filename)
				return
			}
			assert.NoError(sub, err)
			assert.Equal(sub, tt.filename, metadata.Name)
			assert.Equal(sub, tt.transactionSet, metadata.TransactionSet)
		})
	}
}

func TestMetadataString(t *testing.T) {
	m := EDIFileMetadata{Name: "270-eligibility-requests.edi"}
	assert.Equal(t, "270-eligibility-requests.edi", m.String())
	m.FilePath = "/drops/270-eligibility-requests.edi"
	assert.Equal(t, "/drops/270-eligibility-requests.edi", m.String())
}
