package cli

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/enumily/internal/logging"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "ENUMILY"

	cfgKeyFile      = "file"
	cfgKeyLogFormat = "log_format"
)

// config holds the settings read from config.yaml.
type config struct {
	File      string `yaml:"file,omitempty"`
	LogFormat string `yaml:"log_format"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing config
// directory or file is not an error; defaults apply. ENUMILY_LOG_FORMAT
// overrides the log format.
func loadConfig(configDir string) (config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyFile, "")
	v.SetDefault(cfgKeyLogFormat, logging.FormatConsole)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cfgKeyLogFormat); err != nil {
		return config{}, errors.Wrap(err, "bind env")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return config{}, errors.Wrapf(err, "read config %s", filepath.Join(configDir, configFileExt))
		}
	}

	return config{
		File:      v.GetString(cfgKeyFile),
		LogFormat: v.GetString(cfgKeyLogFormat),
	}, nil
}
