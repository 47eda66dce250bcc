package loader

import (
	"context"

	"github.com/clinicalforecast/edi-loader/edi/models"
	"github.com/clinicalforecast/edi-loader/edi/models/postgres"
)

// PostgresSaver persists import records through the Postgres repository.
type PostgresSaver struct {
	Repository *postgres.Repository
}

func (s *PostgresSaver) SaveFile(ctx context.Context, ediFile models.EDIFile) (uint, error) {
	return s.Repository.CreateEDIFile(ctx, ediFile)
}

func (s *PostgresSaver) UpdateImportStatus(ctx context.Context, metadata EDIFileMetadata, status string) error {
	return s.Repository.UpdateEDIFileImportStatus(ctx, metadata.FileID, status)
}

func (s *PostgresSaver) SaveEligibilityInquiry(ctx context.Context, inquiry models.EligibilityInquiry) error {
	return s.Repository.UpsertEligibilityInquiry(ctx, inquiry)
}

func (s *PostgresSaver) SavePriorAuthorization(ctx context.Context, auth models.PriorAuthorization) error {
	return s.Repository.UpsertPriorAuthorization(ctx, auth)
}

// SaveClaim writes the header first, then replaces the claim's service lines
// wholesale so re-imports stay idempotent.
func (s *PostgresSaver) SaveClaim(ctx context.Context, header models.ClaimHeader) error {
	if err := s.Repository.UpsertClaimHeader(ctx, header); err != nil {
		return err
	}
	return s.Repository.ReplaceClaimLines(ctx, header.ClaimID, header.Lines)
}

func (s *PostgresSaver) SaveMember(ctx context.Context, member models.Member) error {
	return s.Repository.UpsertMember(ctx, member)
}

func (s *PostgresSaver) SaveRxBenefitInquiry(ctx context.Context, inquiry models.RxBenefitInquiry) error {
	return s.Repository.UpsertRxBenefitInquiry(ctx, inquiry)
}
