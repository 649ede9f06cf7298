package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/rdb-retention/internal/cli"
	"github.com/raoulx24/rdb-retention/internal/version"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetArgs(args)
	_, err := cmd.ExecuteC()
	return out.String(), err
}

// rows returns the non-header table rows as fields.
func rows(out string) [][]string {
	var res [][]string
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, l := range lines[1 : len(lines)-1] {
		res = append(res, strings.Fields(l))
	}
	return res
}

// mkSnapshot creates a complete snapshot directory holding a dump.
func mkSnapshot(t *testing.T, root, name string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dump.rdb"), []byte("REDIS"), 0o644))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
}

func TestClassifyArgs(t *testing.T) {
	out, err := run(t, "classify", "--timezone", "UTC", "--keep-last", "1", "--keep-daily", "1",
		"2024-01-01T07:00:00Z",
		"2024-01-02T10:00:00Z",
		"2024-01-01 23:00:00",
	)
	require.NoError(t, err)

	r := rows(out)
	require.Len(t, r, 3)
	assert.Equal(t, []string{"2024-01-02T10:00:00Z", "keep", "keep-last", "1", "-"}, r[0])
	assert.Equal(t, []string{"2024-01-01T23:00:00Z", "keep", "keep-daily", "1", "-"}, r[1])
	assert.Equal(t, []string{"2024-01-01T07:00:00Z", "remove", "-", "-", "-"}, r[2])
	assert.Contains(t, out, "kept 2, removed 1")
}

func TestClassifyWithoutPolicyKeepsAll(t *testing.T) {
	out, err := run(t, "classify", "--timezone", "UTC", "2024-01-01T00:00:00Z", "2023-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "kept 2, removed 0, keep-all 2")
}

func TestClassifyFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.txt")
	require.NoError(t, os.WriteFile(path, []byte(`# nightly dumps
2024-03-01T03:00:00Z

2024-03-02T03:00:00Z
2024-03-09T03:00:00Z
`), 0o644))

	out, err := run(t, "classify", "--timezone", "UTC", "--keep-weekly", "1", "--from-file", path, "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Backups []struct {
			Mark string `json:"mark"`
			Rule string `json:"rule"`
		} `json:"backups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Backups, 3)
	assert.Equal(t, "keep-weekly", doc.Backups[0].Rule)
	assert.Equal(t, "remove", doc.Backups[1].Mark)
	assert.Equal(t, "remove", doc.Backups[2].Mark)
}

func TestClassifyDir(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"2024-01-02T10-00-00", "2024-01-01T10-00-00", ".tmp-2024-01-03T00-00-00", "README"} {
		mkSnapshot(t, dir, n)
	}

	out, err := run(t, "classify", "--timezone", "UTC", "--keep-last", "1", "--dir", dir)
	require.NoError(t, err)

	r := rows(out)
	require.Len(t, r, 2)
	assert.Equal(t, filepath.Join(dir, "2024-01-02T10-00-00"), r[0][4])
	assert.Equal(t, "remove", r[1][1])
}

func TestClassifyDirKeepsNewestPartialSnapshot(t *testing.T) {
	dir := t.TempDir()
	// copy of the newest snapshot never wrote a file
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2024-01-03T10-00-00"), 0o755))
	mkSnapshot(t, dir, "2024-01-02T10-00-00")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2024-01-01T10-00-00"), 0o755))

	out, err := run(t, "classify", "--timezone", "UTC", "--keep-last", "1", "--dir", dir)
	require.NoError(t, err)

	r := rows(out)
	require.Len(t, r, 3)
	assert.Equal(t, []string{"keep", "keep-partial", "-"}, r[0][1:4])
	assert.Equal(t, []string{"keep", "keep-last", "1"}, r[1][1:4])
	assert.Equal(t, "remove", r[2][1])
	assert.Contains(t, out, "kept 2, removed 1, keep-last 1, keep-partial 1")
}

func TestClassifyWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	mkSnapshot(t, dir, "2024-01-02T10-00-00")
	mkSnapshot(t, dir, "2024-01-01T10-00-00")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
archive:
  path: `+dir+`
  timezone: UTC
retention:
  keepDaily: 1
output:
  format: yaml
`), 0o644))

	out, err := run(t, "classify", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "rule: keep-daily")
	assert.Contains(t, out, "mark: remove")
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative count", []string{"classify", "--keep-daily", "-1", "2024-01-01T00:00:00Z"}, "--keep-daily must be >= 0, got -1"},
		{"bad timestamp", []string{"classify", "yesterday"}, `invalid timestamp "yesterday"`},
		{"no input", []string{"classify"}, "no backups given"},
		{"duplicate", []string{"classify", "--timezone", "UTC", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"}, "classifying 2 backups"},
		{"bad output", []string{"classify", "-o", "xml", "2024-01-01T00:00:00Z"}, "validating config"},
		{"bad timezone", []string{"classify", "--timezone", "Mars/Olympus", "2024-01-01T00:00:00Z"}, "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSimulateSchedule(t *testing.T) {
	// 2024-01-05 is a Friday
	out, err := run(t, "simulate", "--timezone", "UTC",
		"--schedule", "8..17:00/30", "--weekdays", "mon..fri", "--weeks", "1",
		"--now", "2024-01-05T12:10:00Z", "--keep-daily", "5")
	require.NoError(t, err)

	r := rows(out)
	// Fri 08:00..12:00 gives 9 slots, Mon..Thu give 20 each
	require.Len(t, r, 9+4*20)
	assert.Equal(t, []string{"2024-01-05T12:00:00Z", "keep", "keep-daily", "1", "-"}, r[0])
	assert.Contains(t, out, "kept 5, removed 84")
}

func TestSimulateAcrossDaylightSavingChange(t *testing.T) {
	if _, err := time.LoadLocation("Europe/Berlin"); err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	// 02:30 does not exist on 2024-03-31 in Berlin
	out, err := run(t, "simulate", "--timezone", "Europe/Berlin",
		"--schedule", "2,3:30", "--weeks", "1",
		"--now", "2024-03-31T12:00:00+02:00", "--keep-daily", "7")
	require.NoError(t, err)
	assert.Len(t, rows(out), 13)
	assert.Contains(t, out, "kept 7, removed 6")
}

func TestSimulateCron(t *testing.T) {
	out, err := run(t, "simulate", "--timezone", "UTC", "--cron", "0 3 * * *", "--weeks", "1",
		"--now", "2024-01-07T12:00:00Z", "--keep-last", "2", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			Kept    int `json:"kept"`
			Removed int `json:"removed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Summary.Kept)
	assert.Equal(t, 5, doc.Summary.Removed)
}

func TestSimulateErrors(t *testing.T) {
	_, err := run(t, "simulate", "--schedule", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")

	_, err = run(t, "simulate", "--schedule", "0:0", "--cron", "0 3 * * *")
	require.Error(t, err)

	_, err = run(t, "simulate", "--weekdays", "funday")
	require.Error(t, err)

	_, err = run(t, "simulate", "--weeks", "-2")
	require.Error(t, err)
}

func TestTimespecCommand(t *testing.T) {
	out, err := run(t, "timespec", "8..17/3:0/15")
	require.NoError(t, err)
	assert.Equal(t, "hours:   8,11,14,17\nminutes: 0,15,30,45\n", out)

	_, err = run(t, "timespec", "25:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number '25' is not in range '0..23'")
}

func TestWatchRequiresArchive(t *testing.T) {
	_, err := run(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archive to watch")
}

func TestWatchClassifiesOnStartup(t *testing.T) {
	dir := t.TempDir()
	mkSnapshot(t, dir, "2024-01-02T10-00-00")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
archive:
  timezone: UTC
  watch:
    mode: poll
    pollInterval: 10ms
`), 0o644))

	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetArgs([]string{"watch", "--config", cfgPath, "--dir", dir, "--keep-last", "1"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "kept 1, removed 0, keep-last 1")
}
