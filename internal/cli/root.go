// Package cli implements the enumily command-line interface: global flags,
// configuration loading, exit codes and one subcommand per enum operation.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/enumily/internal/catalog"
	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	file      string
	jsonMode  bool
	verbose   bool
	noColor   bool
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	cfg       config
	cat       *catalog.Catalog
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "enumily" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "enumily",
		Short: "Inspect enums declared in a catalog file",
		Long: "enumily loads enum definitions from a YAML or JSON catalog and exposes\n" +
			"key/value lookups, inversion, extension and labeled option lists.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVarP(&a.flags.file, "file", "f", "", "enum catalog file (default: ./enums.yaml)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newNamesCmd(a),
		newShowCmd(a),
		newKeysCmd(a),
		newValuesCmd(a),
		newGetKeyCmd(a),
		newGetValueCmd(a),
		newLookupCmd(a),
		newInvertedCmd(a),
		newListCmd(a),
		newLabelsCmd(a),
		newValidateCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(stderr, "Hint:", hint)
		}
	}
	return exitCode(err)
}

// setup resolves the config directory, loads config.yaml and initializes
// logging. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.noColor {
		pterm.DisableStyling()
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(errors.Wrap(err, "resolve config dir"))
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.cfg = cfg

	if err := logging.InitializeWriter(cmd.ErrOrStderr(), cfg.LogFormat, a.flags.verbose); err != nil {
		return userError(err)
	}
	logging.Logger.Debugw("command started",
		logging.FieldCommand, cmd.CommandPath(),
		"config_dir", configDir)
	return nil
}

// catalog loads the catalog on first use.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cat != nil {
		return a.cat, nil
	}
	path, err := paths.ResolveCatalogFile(a.flags.file, a.cfg.File, a.configDir)
	if err != nil {
		return nil, sysError(errors.Wrap(err, "resolve catalog file"))
	}

	cat, err := catalog.Load(path)
	if err != nil {
		logging.Logger.Debugw("catalog load failed", logging.FieldFile, path, logging.FieldError, err)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sysError(errors.WithHint(err, "create one with 'enumily init' or pass --file"))
		}
		return nil, userError(err)
	}
	a.cat = cat
	return cat, nil
}
