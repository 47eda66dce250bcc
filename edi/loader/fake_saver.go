package loader

import (
	"context"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

type FakeSaver struct {
	Files               []models.EDIFile
	EligibilityRecords  []models.EligibilityInquiry
	PriorAuthorizations []models.PriorAuthorization
	Claims              []models.ClaimHeader
}

func (m *FakeSaver) SaveFile(ctx context.Context, ediFile models.EDIFile) (fileID uint, err error) {
	fileID = uint(len(m.Files))
	m.Files = append(m.Files, ediFile)
	return fileID, nil
}

func (m *FakeSaver) UpdateImportStatus(ctx context.Context, metadata EDIFileMetadata, status string) error {
	m.Files[metadata.FileID].ImportStatus = status
	return nil
}

func (m *FakeSaver) SaveEligibilityInquiry(ctx context.Context, inquiry models.EligibilityInquiry) error {
	m.EligibilityRecords = append(m.EligibilityRecords, inquiry)
	return nil
}

func (m *FakeSaver) SavePriorAuthorization(ctx context.Context, auth models.PriorAuthorization) error {
	m.PriorAuthorizations = append(m.PriorAuthorizations, auth)
	return nil
}

func (m *FakeSaver) SaveClaim(ctx context.Context, header models.ClaimHeader) error {
	m.Claims = append(m.Claims, header)
	return nil
}
