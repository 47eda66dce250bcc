package log

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/clinicalforecast/edi-loader/conf"
)

var (
	Loader  logrus.FieldLogger
	Storage logrus.FieldLogger
)

func init() {
	Loader = Logger(logrus.New(), conf.GetEnv("EDI_LOADER_LOG"),
		"loader", conf.GetEnv("ENVIRONMENT"))
	Storage = Logger(logrus.New(), conf.GetEnv("EDI_STORAGE_LOG"),
		"storage", conf.GetEnv("ENVIRONMENT"))
}

func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment})
}
