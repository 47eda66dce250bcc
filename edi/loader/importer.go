package loader

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/clinicalforecast/edi-loader/edi/constants"
	"github.com/clinicalforecast/edi-loader/edi/models"
	"github.com/clinicalforecast/edi-loader/edi/x12"
)

// EDIImporter runs one import pass over a drop location: discover files,
// decode each transaction set family, persist the records, then clean up.
type EDIImporter struct {
	Logger               logrus.FieldLogger
	FileHandler          EDIFileHandler
	Saver                Saver
	ImportStatusInterval int
}

// Families import in referential-integrity order: eligibility activity before
// prior auths, prior auths before claims.
var familyOrder = map[string]int{
	constants.SetEligibilityInquiry:  0,
	constants.SetEligibilityResponse: 0,
	constants.SetPriorAuth:           1,
	constants.SetClaim:               2,
}

// ImportDirectory imports every recognizable EDI file under path. A file that
// fails decoding or persistence counts as a failure but does not stop the
// rest of the run.
func (importer *EDIImporter) ImportDirectory(ctx context.Context, path string) (success, failure, skipped int, err error) {
	files, skipped, err := importer.FileHandler.LoadEDIFiles(ctx, path)
	if err != nil {
		return 0, 0, 0, err
	}

	if len(files) == 0 {
		importer.Logger.Info("Failed to find any EDI files in directory")
		return 0, 0, skipped, nil
	}

	sort.SliceStable(files, func(i, j int) bool {
		return familyOrder[files[i].TransactionSet] < familyOrder[files[j].TransactionSet]
	})

	for _, metadata := range files {
		if err = importer.importFile(ctx, metadata); err != nil {
			importer.Logger.Errorf("Failed to import EDI file: %s: %s", metadata, err)
			failure++
		} else {
			metadata.Imported = true
			success++
		}
	}

	if err = importer.FileHandler.CleanupEDIFiles(ctx, files); err != nil {
		importer.Logger.Error(err)
	}

	if failure > 0 {
		err = errors.New("one or more EDI files failed to import correctly")
		importer.Logger.Error(err)
	} else {
		err = nil
	}
	return success, failure, skipped, err
}

func (importer *EDIImporter) importFile(ctx context.Context, metadata *EDIFileMetadata) error {
	importer.Logger.Infof("Importing EDI file %s...", metadata)

	fileID, err := importer.Saver.SaveFile(ctx, models.EDIFile{
		Name:           metadata.Name,
		TransactionSet: metadata.TransactionSet,
		Timestamp:      time.Now(),
		ImportStatus:   constants.ImportInprog,
	})
	if err != nil {
		err = errors.Wrapf(err, "could not create EDI file record for file: %s", metadata)
		importer.Logger.Error(err)
		return err
	}
	metadata.FileID = fileID

	imported, err := importer.importRecords(ctx, metadata)
	if err != nil {
		if statusErr := importer.Saver.UpdateImportStatus(ctx, *metadata, constants.ImportFail); statusErr != nil {
			importer.Logger.Error(errors.Wrapf(statusErr, "could not update EDI file record for file: %s", metadata))
		}
		return err
	}

	if err := importer.Saver.UpdateImportStatus(ctx, *metadata, constants.ImportComplete); err != nil {
		err = errors.Wrapf(err, "could not update EDI file record for file: %s", metadata)
		importer.Logger.Error(err)
		return err
	}

	importer.Logger.Infof("Successfully imported %d records from EDI file %s.", imported, metadata)
	return nil
}

func (importer *EDIImporter) importRecords(ctx context.Context, metadata *EDIFileMetadata) (int, error) {
	content, err := importer.FileHandler.ReadFile(ctx, metadata)
	if err != nil {
		return 0, err
	}

	// Delimiters are a per-file property declared by the interchange itself.
	d := x12.ResolveDelimiters(content)

	imported := 0
	report := func() {
		if importer.ImportStatusInterval > 0 && imported%importer.ImportStatusInterval == 0 {
			importer.Logger.Infof("EDI records imported: %d", imported)
		}
	}

	switch metadata.TransactionSet {
	case constants.SetEligibilityInquiry, constants.SetEligibilityResponse:
		for _, inquiry := range x12.ParseEligibility(content, d) {
			inquiry.FileID = metadata.FileID
			if err := importer.Saver.SaveEligibilityInquiry(ctx, inquiry); err != nil {
				return imported, errors.Wrapf(err, "could not create eligibility record from file: %s", metadata)
			}
			imported++
			report()
		}
	case constants.SetPriorAuth:
		for _, auth := range x12.ParsePriorAuth(content, d) {
			auth.FileID = metadata.FileID
			if err := importer.Saver.SavePriorAuthorization(ctx, auth); err != nil {
				return imported, errors.Wrapf(err, "could not create prior auth record from file: %s", metadata)
			}
			imported++
			report()
		}
	case constants.SetClaim:
		for _, claim := range x12.ParseClaims(content, d) {
			claim.FileID = metadata.FileID
			if err := importer.Saver.SaveClaim(ctx, claim); err != nil {
				return imported, errors.Wrapf(err, "could not create claim from file: %s", metadata)
			}
			imported++
			report()
		}
	default:
		return 0, errors.Errorf("unsupported transaction set %s for file: %s", metadata.TransactionSet, metadata)
	}

	return imported, nil
}
