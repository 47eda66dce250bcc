package edicli

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/clinicalforecast/edi-loader/conf"
	"github.com/clinicalforecast/edi-loader/edi/constants"
	"github.com/clinicalforecast/edi-loader/edi/database"
	"github.com/clinicalforecast/edi-loader/edi/loader"
	"github.com/clinicalforecast/edi-loader/edi/members"
	"github.com/clinicalforecast/edi-loader/edi/models/postgres"
	"github.com/clinicalforecast/edi-loader/edi/rxbenefit"
	"github.com/clinicalforecast/edi-loader/edi/utils"
	"github.com/clinicalforecast/edi-loader/log"
)

// App Name and usage.  Edit them here to prevent breaking tests
const Name = "edi-loader"
const Usage = "Clinical Forecast Engine EDI transaction loader CLI"

func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = Name
	app.Usage = Usage
	app.Version = constants.Version
	var dirPath, filePath, rxPath string
	app.Commands = []cli.Command{
		{
			Name:     "import-edi-directory",
			Category: "Data import",
			Usage:    "Import all EDI transaction files from the specified directory",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "directory",
					Usage:       "Directory where EDI files are located",
					Destination: &dirPath,
				},
			},
			Action: func(c *cli.Context) error {
				importer := newImporter()
				s, f, sk, err := importer.ImportDirectory(context.Background(), dirPath)
				fmt.Fprintf(app.Writer, "Completed EDI import.\nFiles imported: %v\nFiles failed: %v\nFiles skipped: %v\n", s, f, sk)
				return err
			},
		},
		{
			Name:     "import-members",
			Category: "Data import",
			Usage:    "Import member demographics from an enrollment JSON export",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Path of the members.json export",
					Destination: &filePath,
				},
			},
			Action: func(c *cli.Context) error {
				importer := members.Importer{Logger: log.Loader, Saver: newSaver()}
				n, err := importer.ImportFile(context.Background(), filePath)
				fmt.Fprintf(app.Writer, "Completed member import. Members imported: %v\n", n)
				return err
			},
		},
		{
			Name:     "import-rx-benefit",
			Category: "Data import",
			Usage:    "Import pharmacy benefit checks from the gateway JSON feed",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Path of the Rx benefit inquiry feed",
					Destination: &filePath,
				},
			},
			Action: func(c *cli.Context) error {
				importer := rxbenefit.Importer{Logger: log.Loader, Saver: newSaver()}
				n, err := importer.ImportFile(context.Background(), filePath)
				fmt.Fprintf(app.Writer, "Completed Rx benefit import. Inquiries imported: %v\n", n)
				return err
			},
		},
		{
			Name:     "import-all",
			Category: "Data import",
			Usage:    "Run a full import: members, then every EDI family, then Rx benefit checks",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "directory",
					Usage:       "Directory where EDI files are located",
					Destination: &dirPath,
				},
				cli.StringFlag{
					Name:        "members-file",
					Usage:       "Path of the members.json export",
					Destination: &filePath,
				},
				cli.StringFlag{
					Name:        "rx-file",
					Usage:       "Path of the Rx benefit inquiry feed",
					Destination: &rxPath,
				},
			},
			Action: func(c *cli.Context) error {
				ctx := context.Background()
				saver := newSaver()

				// Members first so decoded transactions can reference them.
				if filePath != "" {
					memberImporter := members.Importer{Logger: log.Loader, Saver: saver}
					n, err := memberImporter.ImportFile(ctx, filePath)
					if err != nil {
						return err
					}
					fmt.Fprintf(app.Writer, "Members imported: %v\n", n)
				}

				importer := newImporter()
				s, f, sk, err := importer.ImportDirectory(ctx, dirPath)
				fmt.Fprintf(app.Writer, "Completed EDI import.\nFiles imported: %v\nFiles failed: %v\nFiles skipped: %v\n", s, f, sk)
				if err != nil {
					return err
				}

				if rxPath != "" {
					rxImporter := rxbenefit.Importer{Logger: log.Loader, Saver: saver}
					n, err := rxImporter.ImportFile(ctx, rxPath)
					if err != nil {
						return err
					}
					fmt.Fprintf(app.Writer, "Rx benefit inquiries imported: %v\n", n)
				}

				return nil
			},
		},
	}
	return app
}

func newSaver() *loader.PostgresSaver {
	db := database.GetDbConnection()
	return &loader.PostgresSaver{Repository: postgres.NewRepository(db)}
}

func newImporter() *loader.EDIImporter {
	return &loader.EDIImporter{
		Logger:               log.Loader,
		Saver:                newSaver(),
		FileHandler:          newFileHandler(),
		ImportStatusInterval: utils.GetEnvInt("EDI_IMPORT_STATUS_RECORDS_INTERVAL", 1000),
	}
}

// The drop location decides the handler: an s3:// path reads from the bucket,
// anything else walks the local filesystem.
func newFileHandler() loader.EDIFileHandler {
	if conf.GetEnv("EDI_IMPORT_SOURCE") == "s3" {
		return &loader.S3FileHandler{
			Logger:        log.Loader,
			Endpoint:      conf.GetEnv("EDI_S3_ENDPOINT"),
			AssumeRoleArn: conf.GetEnv("EDI_S3_ASSUME_ROLE_ARN"),
		}
	}

	return &loader.LocalFileHandler{
		Logger:                 log.Loader,
		PendingDeletionDir:     conf.GetEnv("PENDING_DELETION_DIR"),
		FileArchiveThresholdHr: uint(utils.GetEnvInt("EDI_FILE_ARCHIVE_THRESHOLD_HR", 72)),
	}
}
