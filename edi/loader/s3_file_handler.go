package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/dimchansky/utfbom"
	"github.com/sirupsen/logrus"
)

type S3FileHandler struct {
	Logger        logrus.FieldLogger
	Endpoint      string
	AssumeRoleArn string
}

func (handler *S3FileHandler) LoadEDIFiles(ctx context.Context, path string) (files []*EDIFileMetadata, skipped int, err error) {
	bucket, prefix, err := parseS3Uri(path)
	if err != nil {
		handler.Logger.Errorf("Failed to parse S3 path: %s", err)
		return files, skipped, err
	}

	sess, err := handler.createSession()
	if err != nil {
		handler.Logger.Errorf("Failed to create S3 session: %s", err)
		return files, skipped, err
	}

	svc := s3.New(sess)

	handler.Logger.Infof("Listing objects in bucket %s, prefix %s", bucket, prefix)

	resp, err := svc.ListObjectsWithContext(ctx, &s3.ListObjectsInput{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	if err != nil {
		handler.Logger.Errorf("Failed to list objects in S3 bucket %s, prefix %s: %s", bucket, prefix, err)
		return files, skipped, err
	}

	for _, obj := range resp.Contents {
		metadata, err := ParseMetadata(baseName(*obj.Key))
		metadata.FilePath = fmt.Sprintf("s3://%s/%s", bucket, *obj.Key)
		metadata.DeliveryDate = *obj.LastModified

		if err != nil {
			// Skip objects with a bad key. An unknown object in the bucket isn't a blocker
			handler.Logger.Warningf("Unknown file found: %s. Skipping.", metadata)
			skipped = skipped + 1
			continue
		}

		files = append(files, &metadata)
	}

	return files, skipped, err
}

func (handler *S3FileHandler) ReadFile(ctx context.Context, metadata *EDIFileMetadata) (string, error) {
	handler.Logger.Infof("Opening file %s", metadata.FilePath)
	bucket, key, err := parseS3Uri(metadata.FilePath)
	if err != nil {
		return "", err
	}

	sess, err := handler.createSession()
	if err != nil {
		return "", err
	}

	downloader := s3manager.NewDownloader(sess)
	buff := &aws.WriteAtBuffer{}
	numBytes, err := downloader.DownloadWithContext(ctx, buff, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		handler.Logger.Errorf("Failed to download bucket %s, key %s", bucket, key)
		return "", err
	}

	handler.Logger.Infof("file downloaded: size=%d", numBytes)

	b, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(buff.Bytes())))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (handler *S3FileHandler) CleanupEDIFiles(ctx context.Context, files []*EDIFileMetadata) error {
	sess, err := handler.createSession()
	if err != nil {
		return err
	}

	errCount := 0
	for _, ediFile := range files {
		if !ediFile.Imported {
			// Don't do anything. The S3 bucket should have a retention policy that
			// automatically cleans up files after a specified period of time.
			handler.Logger.Warningf("File %s was not imported successfully. Skipping cleanup.", ediFile)
			continue
		}

		handler.Logger.Infof("Cleaning up file %s", ediFile)

		bucket, key, err := parseS3Uri(ediFile.FilePath)
		if err != nil {
			return err
		}

		svc := s3.New(sess)
		_, err = svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})

		if err != nil {
			handler.Logger.Errorf("File %s failed to clean up properly, error occurred while deleting object: %v", ediFile, err)
			errCount++
			continue
		}

		err = svc.WaitUntilObjectNotExistsWithContext(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})

		if err != nil {
			handler.Logger.Errorf("File %s failed to clean up properly, error occurred while waiting for object to be deleted: %v", ediFile, err)
			errCount++
			continue
		}

		handler.Logger.Infof("File %s successfully ingested and deleted from S3.", ediFile)
	}

	if errCount > 0 {
		return fmt.Errorf("%d files could not be cleaned up", errCount)
	}
	return nil
}

func (handler *S3FileHandler) createSession() (*session.Session, error) {
	sess := session.Must(session.NewSession())

	config := aws.Config{
		Region: aws.String("us-east-1"),
	}

	if handler.Endpoint != "" {
		config.S3ForcePathStyle = aws.Bool(true)
		config.Endpoint = &handler.Endpoint
	}

	if handler.AssumeRoleArn != "" {
		config.Credentials = stscreds.NewCredentials(
			sess,
			handler.AssumeRoleArn,
		)
	}

	return session.NewSessionWithOptions(session.Options{
		Config: config,
	})
}
