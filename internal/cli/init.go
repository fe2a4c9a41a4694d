package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/internal/paths"
)

// sampleCatalog is written by init when no catalog exists.
const sampleCatalog = `# enumily catalog
enums:
  Direction:
    values:
      Up: 1
      Down: 2
      Left: 3
      Right: 4
  Diagonal:
    extends: Direction
    values:
      LeftTop: 5
      LeftDown: 6
  Status:
    inverted: true
    values:
      Success: 1
      Error: 0
      Other: '1'
    labels:
      - {value: 1, label: Succeeded}
      - {value: 0, label: Failed}
`

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create config.yaml and a sample catalog",
		Long: "Create the configuration directory with a default config.yaml, and a\n" +
			"sample enums.yaml at the resolved catalog path. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(errors.Wrap(err, "create config directory"))
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	wrote, err := writeConfigIfMissing(configPath, a.cfg)
	if err != nil {
		return sysError(errors.Wrap(err, "write config"))
	}
	report(cmd, configPath, wrote)

	catalogPath, err := paths.ResolveCatalogFile(a.flags.file, a.cfg.File, a.configDir)
	if err != nil {
		return sysError(errors.Wrap(err, "resolve catalog file"))
	}
	wrote, err = writeIfMissing(catalogPath, []byte(sampleCatalog))
	if err != nil {
		return sysError(errors.Wrap(err, "write catalog"))
	}
	report(cmd, catalogPath, wrote)
	return nil
}

func report(cmd *cobra.Command, path string, wrote bool) {
	logging.Logger.Debugw("init", logging.FieldFile, path, "created", wrote)
	if wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exists  %s\n", path)
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg config) (bool, error) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, errors.Wrap(err, "marshal config")
	}
	return writeIfMissing(path, data)
}

func writeIfMissing(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
