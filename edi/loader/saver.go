package loader

import (
	"context"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

// A Saver persists the records an import run produces. The importer only
// talks to this interface so decoding can be exercised without a database.
type Saver interface {
	SaveFile(ctx context.Context, ediFile models.EDIFile) (fileID uint, err error)
	UpdateImportStatus(ctx context.Context, metadata EDIFileMetadata, status string) error
	SaveEligibilityInquiry(ctx context.Context, inquiry models.EligibilityInquiry) error
	SavePriorAuthorization(ctx context.Context, auth models.PriorAuthorization) error
	SaveClaim(ctx context.Context, header models.ClaimHeader) error
}
