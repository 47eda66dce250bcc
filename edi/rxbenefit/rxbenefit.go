package rxbenefit

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

type Saver interface {
	SaveRxBenefitInquiry(ctx context.Context, inquiry models.RxBenefitInquiry) error
}

// Importer loads pharmacy benefit checks from the gateway's JSON feed. The
// prototype feed wraps the records in an "inquiries" array; production would
// decode NCPDP D.0 instead.
type Importer struct {
	Logger logrus.FieldLogger
	Saver  Saver
}

func (importer *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	importer.Logger.Infof("Importing Rx benefit file %s...", path)

	inquiries, err := ReadFile(path)
	if err != nil {
		importer.Logger.Error(err)
		return 0, err
	}

	imported := 0
	for _, inquiry := range inquiries {
		if err := importer.Saver.SaveRxBenefitInquiry(ctx, inquiry); err != nil {
			err = errors.Wrapf(err, "could not create Rx benefit record %s from file: %s", inquiry.InquiryID, path)
			importer.Logger.Error(err)
			return imported, err
		}
		imported++
	}

	importer.Logger.Infof("Successfully imported %d Rx benefit inquiries from file %s.", imported, path)
	return imported, nil
}

// ReadFile decodes one Rx benefit feed file.
func ReadFile(path string) ([]models.RxBenefitInquiry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read Rx benefit file %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read Rx benefit file %s", path)
	}

	var feed struct {
		Inquiries []models.RxBenefitInquiry `json:"inquiries"`
	}
	if err := json.Unmarshal(b, &feed); err != nil {
		return nil, errors.Wrapf(err, "could not decode Rx benefit file %s", path)
	}

	return feed.Inquiries, nil
}
