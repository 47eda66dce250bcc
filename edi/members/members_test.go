package members

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

const memberExport = `[
  {
    "member_id": "M00001",
    "first_name": "John",
    "last_name": "Doe",
    "date_of_birth": "1958-03-14",
    "gender": "M",
    "address": {"street": "12 Oak St", "city": "Springfield", "state": "IL", "zip_code": "62704"},
    "phone": "555-0101",
    "email": "john.doe@example.com",
    "plan_type": "HMO",
    "network": "in_network",
    "geographic_region": "midwest",
    "enrollment_date": "2020-01-01",
    "enrollment_status": "active",
    "primary_care_provider": {"npi": "1234567890", "name": "Dr. Anne Smith", "specialty": "Internal Medicine"},
    "risk_score": 1.42,
    "hcc_score": 0.87,
    "chronic_conditions": [
      {"icd10_code": "M17.11", "description": "Unilateral primary osteoarthritis, right knee", "diagnosis_date": "2023-05-01"}
    ]
  },
  {
    "member_id": "M00002",
    "first_name": "Jane",
    "last_name": "Roe",
    "date_of_birth": "1971-09-30",
    "gender": "F",
    "plan_type": "PPO",
    "network": "in_network",
    "geographic_region": "midwest",
    "enrollment_date": "2022-06-15",
    "enrollment_status": "active"
  }
]`

type fakeSaver struct {
	members []models.Member
	err     error
}

func (f *fakeSaver) SaveMember(ctx context.Context, member models.Member) error {
	if f.err != nil {
		return f.err
	}
	f.members = append(f.members, member)
	return nil
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "members.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadFile(t *testing.T) {
	memberList, err := ReadFile(writeExport(t, memberExport))
	assert.NoError(t, err)
	assert.Len(t, memberList, 2)

	first := memberList[0]
	assert.Equal(t, "M00001", first.MemberID)
	assert.Equal(t, "Springfield", first.Address.City)
	assert.Equal(t, "1234567890", first.PrimaryCare.NPI)
	assert.Equal(t, 1.42, first.RiskScore)
	assert.Len(t, first.ChronicConditions, 1)
	assert.Equal(t, "M17.11", first.ChronicConditions[0].ICD10Code)

	// Optional blocks simply stay zero-valued.
	second := memberList[1]
	assert.Equal(t, "M00002", second.MemberID)
	assert.Empty(t, second.Address.Street)
	assert.Empty(t, second.ChronicConditions)
}

func TestReadFileBOM(t *testing.T) {
	memberList, err := ReadFile(writeExport(t, "\xEF\xBB\xBF"+memberExport))
	assert.NoError(t, err)
	assert.Len(t, memberList, 2)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadFile(writeExport(t, "{not json"))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	saver := &fakeSaver{}
	importer := Importer{Logger: logrus.New(), Saver: saver}

	n, err := importer.ImportFile(context.Background(), writeExport(t, memberExport))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, saver.members, 2)
}

func TestImportFileSaverError(t *testing.T) {
	saver := &fakeSaver{err: assert.AnError}
	importer := Importer{Logger: logrus.New(), Saver: saver}

	n, err := importer.ImportFile(context.Background(), writeExport(t, memberExport))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}
