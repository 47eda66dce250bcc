package conf

/*
   This package wraps viper for the edi-loader app. Configuration is read from
   a local.env file when one is present; any key missing from the file falls
   back to the process environment. The configuration file, once loaded, stays
   immutable during the uptime of the application (exception is test).
*/

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// An instance of the viper struct containing the conf information. Only made
// accessible through the public functions GetEnv, SetEnv, etc.
var envVars *viper.Viper

var configLoaded bool

func setup(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("local")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		configLoaded = false
	}
	return v
}

func init() {
	// Possible config file locations: local dev and deployed respectively.
	locations := []string{
		"/go/src/github.com/clinicalforecast/edi-loader/shared_files/decrypted",
		"/etc/edi-loader",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc + "/local.env"); err == nil {
			configLoaded = true
			envVars = setup(loc)
			return
		}
	}
}

// GetEnv retrieves the value stored in conf. If it does not exist in the
// config file, the process environment is consulted; failing both, "" is
// returned.
func GetEnv(key string) string {
	if configLoaded {
		if value := envVars.GetString(key); value != "" {
			return value
		}
	}
	return os.Getenv(key)
}

// LookupEnv augments os.LookupEnv to look in the viper struct first.
func LookupEnv(key string) (string, bool) {
	if configLoaded {
		if value := envVars.GetString(key); value != "" {
			return value, true
		}
	}
	return os.LookupEnv(key)
}

// SetEnv adds a key value into conf. This function should only be used either
// in this package itself or in testing. The protect parameter is of type
// *testing.T to ensure developers knowingly use it in the appropriate scope.
func SetEnv(protect *testing.T, key string, value string) error {
	if configLoaded {
		envVars.Set(key, value)
		return nil
	}
	return os.Setenv(key, value)
}

// UnsetEnv "unsets" a variable. Like SetEnv, this should only be used either
// in this package itself or in testing.
func UnsetEnv(protect *testing.T, key string) error {
	if configLoaded {
		envVars.Set(key, "")
	}
	return os.Unsetenv(key)
}
