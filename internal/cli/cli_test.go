package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/internal/paths"
)

const testCatalog = `
enums:
  Direction:
    values:
      Up: 1
      Down: 2
      Left: 3
      Right: 4
    labels:
      - {value: 1, label: 上}
      - {value: 2, label: 下}
      - {value: 3, label: 左}
      - {value: 4, label: 右}
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
    fields: {key: id, label: text}
`

// testEnv is an isolated config directory and catalog file.
type testEnv struct {
	t         *testing.T
	dir       string
	configDir string
	file      string
}

// cmdResult holds the outcome of one command line.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func newTestEnv(t *testing.T, catalog string) *testEnv {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvCatalogFile, "")
	t.Setenv("ENUMILY_LOG_FORMAT", "")
	t.Cleanup(func() { logging.Logger = zap.NewNop().Sugar() })

	dir := t.TempDir()
	env := &testEnv{
		t:         t,
		dir:       dir,
		configDir: filepath.Join(dir, "config"),
		file:      filepath.Join(dir, "enums.yaml"),
	}
	if catalog != "" {
		require.NoError(t, os.WriteFile(env.file, []byte(catalog), 0o644))
	}
	return env
}

// run executes enumily against the environment's config dir and catalog.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	all := append([]string{"--config-dir", e.configDir, "--file", e.file, "--no-color"}, args...)
	return e.runRaw(all...)
}

// runRaw executes enumily with args unchanged.
func (e *testEnv) runRaw(args ...string) cmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	if res.ExitCode != exitSuccess {
		e.t.Fatalf("enumily %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(s), &out), "output: %s", s)
	return out
}

func TestNames(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("names")
	assert.Equal(t, "Direction\nDiagonal\nStatus\n", res.Stdout)

	res = env.mustRun("names", "--json")
	assert.Equal(t, []string{"Direction", "Diagonal", "Status"}, parseJSON[[]string](t, res.Stdout))
}

func TestKeysAndValues(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("keys", "Diagonal")
	assert.Equal(t, "Up\nDown\nLeft\nRight\nLeftTop\nLeftDown\n", res.Stdout)

	res = env.mustRun("values", "Status")
	assert.Equal(t, "1\n0\n\"1\"\n", res.Stdout)

	res = env.mustRun("values", "Status", "--json")
	assert.Equal(t, []any{float64(1), float64(0), "1"}, parseJSON[[]any](t, res.Stdout))
}

func TestGetValue(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("get-value", "Direction", "Left")
	assert.Equal(t, "3\n", res.Stdout)

	res = env.mustRun("get-value", "Status", "Other")
	assert.Equal(t, "\"1\"\n", res.Stdout)

	res = env.run("get-value", "Direction", "Nope")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "not found")
	assert.Empty(t, res.Stdout)
}

func TestGetKey_StrictIdentity(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("get-key", "Status", "1")
	assert.Equal(t, "Success\n", res.Stdout)

	res = env.mustRun("get-key", "Status", "'1'")
	assert.Equal(t, "Other\n", res.Stdout)

	res = env.mustRun("get-key", "Direction", "3.0")
	assert.Equal(t, "Left\n", res.Stdout)

	res = env.run("get-key", "Direction", "'1'")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, `value "1"`)
}

func TestLookup(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("lookup", "Direction", "Up")
	assert.Equal(t, "1\n", res.Stdout)

	// Inverted entries win over keys.
	res = env.mustRun("lookup", "Status", "1", "--json")
	assert.Equal(t, "\"Success\"\n", res.Stdout)

	res = env.run("lookup", "Direction", "1")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestInverted(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("inverted", "Status", "--json")
	assert.Equal(t, "{\n  \"1\": \"Success\",\n  \"0\": \"Error\"\n}\n", res.Stdout)

	res = env.run("inverted", "Direction")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "not inverted")
	assert.Contains(t, res.Stderr, "Hint:")
}

func TestShow(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("show", "Diagonal", "--json")
	out := parseJSON[map[string]any](t, res.Stdout)
	assert.Equal(t, "Diagonal", out["name"])
	assert.Equal(t, "Direction", out["extends"])
	assert.EqualValues(t, 6, out["length"])

	entries := out["entries"].([]any)
	require.Len(t, entries, 6)
	assert.Equal(t, true, entries[0].(map[string]any)["inherited"])
	assert.Equal(t, false, entries[5].(map[string]any)["inherited"])

	res = env.mustRun("show", "Status")
	assert.Contains(t, res.Stdout, "Inverted:  true")
	assert.Contains(t, res.Stdout, "Other")

	res = env.run("show", "Nope")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "declared enums")
}

func TestList(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("list", "Status", "--json", "--pick", "1", "--pick", "'1'")
	assert.JSONEq(t, `[
		{"id": "Success", "value": 1, "text": "Success"},
		{"id": "Other", "value": "1", "text": "Other"}
	]`, res.Stdout)

	res = env.mustRun("list", "Direction", "--json", "--omit", "1,2")
	items := parseJSON[[]map[string]any](t, res.Stdout)
	require.Len(t, items, 2)
	assert.Equal(t, "左", items[0]["label"])
	assert.Equal(t, "Left", items[0]["key"])

	res = env.mustRun("list", "Direction")
	assert.Contains(t, res.Stdout, "label")
	assert.Contains(t, res.Stdout, "右")
}

func TestLabels(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("labels", "Direction", "3", "1", "--json")
	assert.Equal(t, "{\n  \"1\": \"上\",\n  \"3\": \"左\"\n}\n", res.Stdout)

	res = env.mustRun("labels", "Direction", "--json")
	assert.Len(t, parseJSON[map[string]string](t, res.Stdout), 4)
}

func TestLabels_MixedValuesShareMember(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	// 1 and '1' spell the same member; the later label wins in place.
	res := env.mustRun("labels", "Status", "--json")
	assert.Equal(t, "{\n  \"1\": \"Other\",\n  \"0\": \"Error\"\n}\n", res.Stdout)
}

func TestList_EmptyFilters(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("list", "Direction", "--json", "--pick=")
	assert.Empty(t, parseJSON[[]map[string]any](t, res.Stdout))

	res = env.mustRun("list", "Direction", "--json", "--omit=")
	assert.Len(t, parseJSON[[]map[string]any](t, res.Stdout), 4)
}

func TestValidate(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	res := env.mustRun("validate")
	assert.Contains(t, res.Stdout, "3 enums")

	res = env.mustRun("validate", "--json")
	out := parseJSON[validateOutput](t, res.Stdout)
	assert.True(t, out.Valid)
	assert.Equal(t, env.file, out.File)
}

func TestValidate_Invalid(t *testing.T) {
	env := newTestEnv(t, "enums:\n  A:\n    values: {X: 1, Y: 1}\n")

	res := env.run("validate")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "enum values must be unique")
	assert.Contains(t, res.Stderr, "Hint:")
}

func TestMissingCatalog(t *testing.T) {
	env := newTestEnv(t, "")

	res := env.run("names")
	assert.Equal(t, exitSysError, res.ExitCode)
	assert.Contains(t, res.Stderr, "enumily init")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t, "")

	res := env.mustRun("init")
	assert.Equal(t, 2, strings.Count(res.Stdout, "created"))
	assert.FileExists(t, filepath.Join(env.configDir, "config.yaml"))
	assert.FileExists(t, env.file)

	res = env.mustRun("init")
	assert.Equal(t, 2, strings.Count(res.Stdout, "exists"))

	res = env.mustRun("names")
	assert.Equal(t, "Direction\nDiagonal\nStatus\n", res.Stdout)
}

func TestConfig_FileRelativeToConfigDir(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"),
		[]byte("file: team.yaml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "team.yaml"),
		[]byte(testCatalog), 0o644))

	res := env.runRaw("--config-dir", env.configDir, "names")
	require.Equal(t, exitSuccess, res.ExitCode, res.Stderr)
	assert.Equal(t, "Direction\nDiagonal\nStatus\n", res.Stdout)

	// The flag wins over config.yaml.
	other := filepath.Join(env.dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("enums:\n  Solo:\n    values: {A: 1}\n"), 0o644))
	res = env.runRaw("--config-dir", env.configDir, "--file", other, "names")
	assert.Equal(t, "Solo\n", res.Stdout)
}

func TestConfig_LogFormat(t *testing.T) {
	env := newTestEnv(t, testCatalog)

	t.Setenv("ENUMILY_LOG_FORMAT", "json")
	res := env.mustRun("names", "--verbose")
	assert.Contains(t, res.Stderr, `"msg":"catalog loaded"`)

	t.Setenv("ENUMILY_LOG_FORMAT", "xml")
	res = env.run("names")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "unknown log format")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "")

	res := env.mustRun("version")
	assert.Equal(t, "enumily dev\nmodule: "+modulePath+"\n", res.Stdout)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitSysError, exitCode(sysError(os.ErrNotExist)))
	assert.Equal(t, exitUserError, exitCode(userError(os.ErrNotExist)))
	assert.Equal(t, exitUserError, exitCode(os.ErrInvalid))
}
