package members

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

// A Saver persists member demographics. The loader defines the interface it
// needs; storage supplies the implementation.
type Saver interface {
	SaveMember(ctx context.Context, member models.Member) error
}

// Importer loads the enrollment system's member export: a JSON array of
// member objects with nested address, PCP and chronic-condition data.
type Importer struct {
	Logger logrus.FieldLogger
	Saver  Saver
}

// ImportFile reads one members.json export and upserts every member in it.
// Members import before any EDI family so decoded transactions can reference
// them.
func (importer *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	importer.Logger.Infof("Importing member file %s...", path)

	memberList, err := ReadFile(path)
	if err != nil {
		importer.Logger.Error(err)
		return 0, err
	}

	imported := 0
	for _, member := range memberList {
		if err := importer.Saver.SaveMember(ctx, member); err != nil {
			err = errors.Wrapf(err, "could not create member record %s from file: %s", member.MemberID, path)
			importer.Logger.Error(err)
			return imported, err
		}
		imported++
	}

	importer.Logger.Infof("Successfully imported %d members from file %s.", imported, path)
	return imported, nil
}

// ReadFile decodes one member export file into member records.
func ReadFile(path string) ([]models.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read member file %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read member file %s", path)
	}

	var memberList []models.Member
	if err := json.Unmarshal(b, &memberList); err != nil {
		return nil, errors.Wrapf(err, "could not decode member file %s", path)
	}

	return memberList, nil
}
