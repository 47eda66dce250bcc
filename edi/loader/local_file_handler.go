package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LocalFileHandler manages files from local directories.
// This handler should only be used for local dev/testing now.
type LocalFileHandler struct {
	Logger                 logrus.FieldLogger
	PendingDeletionDir     string
	FileArchiveThresholdHr uint
}

func (handler *LocalFileHandler) LoadEDIFiles(ctx context.Context, path string) (files []*EDIFileMetadata, skipped int, err error) {
	err = filepath.Walk(path, handler.getEDIFileMetadata(&files, &skipped))
	return files, skipped, err
}

func (handler *LocalFileHandler) getEDIFileMetadata(files *[]*EDIFileMetadata, skipped *int) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			var fileName = "nil"
			if info != nil {
				fileName = info.Name()
			}
			err = errors.Wrapf(err, "error in checking EDI file: %s", fileName)
			handler.Logger.Error(err)
			return err
		}
		// Directories are not EDI files
		if info.IsDir() {
			return nil
		}

		metadata, err := ParseMetadata(info.Name())
		metadata.FilePath = path
		metadata.DeliveryDate = info.ModTime()
		if err != nil {
			// skipping files with a bad name. An unknown file in this dir isn't a blocker
			handler.Logger.Errorf("Unknown file found: %s", metadata)
			*skipped = *skipped + 1

			deleteThreshold := time.Hour * time.Duration(handler.FileArchiveThresholdHr)
			if metadata.DeliveryDate.Add(deleteThreshold).Before(time.Now()) {
				newpath := fmt.Sprintf("%s/%s", handler.PendingDeletionDir, info.Name())
				err = os.Rename(metadata.FilePath, newpath)
				if err != nil {
					err = errors.Wrapf(err, "error moving unknown file %s to pending deletion dir", metadata)
					handler.Logger.Error(err)
					return err
				}
			}
			return nil
		}

		*files = append(*files, &metadata)
		return nil
	}
}

func (handler *LocalFileHandler) ReadFile(ctx context.Context, metadata *EDIFileMetadata) (string, error) {
	f, err := os.Open(metadata.FilePath)
	if err != nil {
		err = errors.Wrapf(err, "could not read file %s", metadata)
		handler.Logger.Error(err)
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			handler.Logger.Error(err)
		}
	}()

	// Gateway exports occasionally arrive with a BOM.
	b, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		err = errors.Wrapf(err, "could not read file %s", metadata)
		handler.Logger.Error(err)
		return "", err
	}

	return string(b), nil
}

func (handler *LocalFileHandler) CleanupEDIFiles(ctx context.Context, files []*EDIFileMetadata) error {
	errCount := 0
	for _, ediFile := range files {
		handler.Logger.Infof("Cleaning up file %s", ediFile)
		newpath := fmt.Sprintf("%s/%s", handler.PendingDeletionDir, ediFile.Name)
		if !ediFile.Imported {
			// check the timestamp on the failed files
			elapsed := time.Since(ediFile.DeliveryDate).Hours()

			if int(elapsed) > int(handler.FileArchiveThresholdHr) {
				err := os.Rename(ediFile.FilePath, newpath)
				if err != nil {
					errCount++
					handler.Logger.Errorf("File %s failed to clean up properly: %v", ediFile, err)
				} else {
					handler.Logger.Infof("File %s never ingested, moved to the pending deletion dir", ediFile)
				}
			}
		} else {
			// move the successful files to the deletion dir
			err := os.Rename(ediFile.FilePath, newpath)
			if err != nil {
				errCount++
				handler.Logger.Errorf("File %s failed to clean up properly: %v", ediFile, err)
			} else {
				handler.Logger.Infof("File %s successfully ingested, moved to the pending deletion dir", ediFile)
			}
		}
	}
	if errCount > 0 {
		return fmt.Errorf("%d files could not be cleaned up", errCount)
	}
	return nil
}
