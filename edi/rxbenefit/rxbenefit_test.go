package rxbenefit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

const rxFeed = `{
  "inquiries": [
    {
      "inquiry_id": "RX0001",
      "member_id": "M00001",
      "inquiry_date": "2024-12-03",
      "ndc_code": "00002-1433-80",
      "drug_name": "Celecoxib 200mg",
      "drug_class": "NSAID",
      "prescriber_npi": "1234567890",
      "pharmacy_npi": "9876543210",
      "days_supply": 30,
      "quantity": 60,
      "coverage_status": "covered",
      "copay_amount": 10.5,
      "indication": "osteoarthritis"
    },
    {
      "inquiry_id": "RX0002",
      "member_id": "M00002",
      "inquiry_date": "2024-12-04",
      "ndc_code": "00069-0058-30",
      "coverage_status": "prior_auth_required"
    }
  ]
}`

type fakeSaver struct {
	inquiries []models.RxBenefitInquiry
	err       error
}

func (f *fakeSaver) SaveRxBenefitInquiry(ctx context.Context, inquiry models.RxBenefitInquiry) error {
	if f.err != nil {
		return f.err
	}
	f.inquiries = append(f.inquiries, inquiry)
	return nil
}

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rx-benefit-inquiries.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadFile(t *testing.T) {
	inquiries, err := ReadFile(writeFeed(t, rxFeed))
	assert.NoError(t, err)
	assert.Len(t, inquiries, 2)

	first := inquiries[0]
	assert.Equal(t, "RX0001", first.InquiryID)
	assert.Equal(t, "M00001", first.MemberID)
	assert.Equal(t, 30, first.DaysSupply)
	assert.Equal(t, 60.0, first.Quantity)
	assert.Equal(t, 10.5, first.CopayAmount)
	assert.Equal(t, "prior_auth_required", inquiries[1].CoverageStatus)
}

func TestReadFileEmptyFeed(t *testing.T) {
	inquiries, err := ReadFile(writeFeed(t, `{"inquiries": []}`))
	assert.NoError(t, err)
	assert.Empty(t, inquiries)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadFile(writeFeed(t, "not json"))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	saver := &fakeSaver{}
	importer := Importer{Logger: logrus.New(), Saver: saver}

	n, err := importer.ImportFile(context.Background(), writeFeed(t, rxFeed))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, saver.inquiries, 2)
}

func TestImportFileSaverError(t *testing.T) {
	saver := &fakeSaver{err: assert.AnError}
	importer := Importer{Logger: logrus.New(), Saver: saver}

	n, err := importer.ImportFile(context.Background(), writeFeed(t, rxFeed))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}
