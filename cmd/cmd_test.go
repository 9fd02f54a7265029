package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/logger"
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/store"
)

type cliEnv struct {
	dir    string
	db     string
	config string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	for _, k := range []string{"SCOREBOOK_DB", "SCOREBOOK_LOG", "SCOREBOOK_CONFIG", "SCOREBOOK_SUBJECTS", "SCOREBOOK_EXPORT_DIR"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	env := cliEnv{
		dir:    dir,
		db:     filepath.Join(dir, "scorebook.db"),
		config: filepath.Join(dir, "config.yaml"),
	}
	cfg := "log_path: " + filepath.Join(dir, "scorebook.log") + "\n" +
		"log_level: debug\n" +
		"default_subjects: [Math, English]\n" +
		"export_dir: " + filepath.Join(dir, "charts") + "\n" +
		"charts:\n  width: 320\n  height: 200\n"
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	return env
}

// run executes the root command with stdin and returns combined output.
func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--db", e.db, "--config", e.config))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err, out)
	return out
}

func (e cliEnv) state(t *testing.T) store.PersistedState {
	t.Helper()
	st, err := store.Open(e.db)
	require.NoError(t, err)
	defer st.Close()
	p, err := st.StateRepo(logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	return p
}

// resetFlags puts every flag back to its default so commands can run
// more than once per process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "version")
	assert.Contains(t, out, "scorebook (devel)")
}

func TestSubjects_ListDefaults(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "subjects", "list")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "English")
}

func TestSubjects_AddAndDuplicate(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "subjects", "add", "Art", "History")
	assert.Contains(t, out, "Added Art.")
	assert.Equal(t, []string{"Math", "English", "Art", "History"}, env.state(t).Subjects)

	_, err := env.run(t, "", "subjects", "add", "Art")
	require.Error(t, err)
	assert.ErrorIs(t, err, scores.ErrDuplicateSubject)
	assert.Len(t, env.state(t).Subjects, 4)
}

func TestSubjects_RemoveAsks(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "subjects", "add", "Art")

	out, err := env.run(t, "n\n", "subjects", "rm", "Math")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, []string{"Math", "English", "Art"}, env.state(t).Subjects)

	out, err = env.run(t, "y\n", "subjects", "rm", "Math")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Math.")
	assert.Equal(t, []string{"English", "Art"}, env.state(t).Subjects)

	_, err = env.run(t, "", "subjects", "rm", "Physics", "--yes")
	assert.ErrorIs(t, err, scores.ErrUnknownSubject)
}

func TestTests_AddListEditRemove(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "tests", "add", "--name", "Midterm", "--date", "2026-05-12", "-s", "Math=82", "-s", "English=74")
	assert.Contains(t, out, "Added Midterm.")

	p := env.state(t)
	require.Len(t, p.TestData, 1)
	rec := p.TestData[0]
	assert.Equal(t, 156, rec.Total)
	assert.Equal(t, map[string]int{"Math": 82, "English": 74}, rec.Scores)
	id := strconv.FormatInt(rec.ID, 10)

	out = env.mustRun(t, "tests", "list")
	for _, want := range []string{id, "Midterm", "2026-05-12", "156", "Math:82, English:74"} {
		assert.Contains(t, out, want)
	}

	env.mustRun(t, "tests", "edit", id, "-s", "Math=90")
	rec = env.state(t).TestData[0]
	assert.Equal(t, "Midterm", rec.Name)
	assert.Equal(t, 164, rec.Total)
	assert.Equal(t, 74, rec.Scores["English"])

	env.mustRun(t, "tests", "edit", id, "--name", "Final")
	assert.Equal(t, "Final", env.state(t).TestData[0].Name)

	out = env.mustRun(t, "tests", "rm", id, "--yes")
	assert.Contains(t, out, "Deleted Final.")
	assert.Empty(t, env.state(t).TestData)
}

func TestOutputStripsControlSequences(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "subjects", "add", "Art\x1b]0;pwned\x07")
	assert.Contains(t, out, "Added Art.")
	assert.NotContains(t, out, "\x1b]0")
	assert.NotContains(t, out, "\x07")

	out = env.mustRun(t, "tests", "add", "--name", "Mid\x1b[2Jterm", "-s", "Math=70")
	assert.Contains(t, out, "Added Midterm.")
	assert.NotContains(t, out, "\x1b[2J")

	for _, args := range [][]string{{"tests", "list"}, {"subjects", "list"}, {"stats"}} {
		out = env.mustRun(t, args...)
		assert.NotContains(t, out, "\x1b[2J", args)
		assert.NotContains(t, out, "\x1b]0", args)
	}
	out = env.mustRun(t, "tests", "list")
	assert.Contains(t, out, "Midterm")
	assert.Contains(t, out, "Art:0")
	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Latest: Midterm, total 70")

	// Stored names are kept as entered.
	p := env.state(t)
	assert.Equal(t, "Mid\x1b[2Jterm", p.TestData[0].Name)
	assert.Contains(t, p.Subjects, "Art\x1b]0;pwned\x07")
}

func TestTests_AddMissingScoresAreZero(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "tests", "add", "-n", "Quiz", "-s", "Math=abc")
	rec := env.state(t).TestData[0]
	assert.Equal(t, map[string]int{"Math": 0, "English": 0}, rec.Scores)
	assert.Equal(t, 0, rec.Total)
}

func TestTests_AddRejected(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "", "tests", "add", "-s", "Math=50")
	assert.True(t, scores.IsValidation(err), "got %v", err)

	_, err = env.run(t, "", "tests", "add", "-n", "Quiz", "-s", "Physics=50")
	assert.ErrorIs(t, err, scores.ErrUnknownSubject)

	_, err = env.run(t, "", "tests", "add", "-n", "Quiz", "-s", "Math")
	assert.Error(t, err)

	assert.Empty(t, env.state(t).TestData)
}

func TestTests_EditUnknown(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "tests", "edit", "42", "-n", "x")
	assert.ErrorIs(t, err, scores.ErrUnknownAttempt)

	_, err = env.run(t, "", "tests", "rm", "abc")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "stats")
	assert.Contains(t, out, "No tests recorded yet.")

	env.mustRun(t, "tests", "add", "-n", "T1", "-s", "Math=80", "-s", "English=40")
	env.mustRun(t, "tests", "add", "-n", "T2", "-s", "Math=60", "-s", "English=50")
	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Subjects (lowest average first)")
	assert.Contains(t, out, "Score distribution (4 scores)")
	assert.Contains(t, out, "Latest: T2, total 110")
	assert.Less(t, strings.Index(out, "English"), strings.Index(out, "Math"))
}

func TestExport(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "tests", "add", "-n", "T1", "-s", "Math=80", "-s", "English=40")
	id := strconv.FormatInt(env.state(t).TestData[0].ID, 10)

	out := env.mustRun(t, "export", "--format", "svg")
	assert.Contains(t, out, "Wrote 7 charts")

	dir := filepath.Join(env.dir, "charts")
	for _, name := range []string{
		"line-Math.svg", "line-English.svg",
		"overview-combined.svg", "overview-totals.svg",
		"pie-" + id + ".svg",
		"insights-averages.svg", "insights-spread.svg",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if assert.NoError(t, err, name) {
			assert.Contains(t, string(data), "<svg", name)
		}
	}
}

func TestExport_SubjectNamesStayInDir(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "subjects", "add", "Art/Design")
	env.mustRun(t, "subjects", "add", "../../escaped")
	env.mustRun(t, "tests", "add", "-n", "T1", "-s", "Math=80", "-s", "Art/Design=60")

	out := env.mustRun(t, "export", "--format", "svg")
	assert.Contains(t, out, "Wrote 9 charts")

	dir := filepath.Join(env.dir, "charts")
	for _, name := range []string{"line-Art%2FDesign.svg", "line-..%2F..%2Fescaped.svg"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 9)
	for _, e := range entries {
		assert.False(t, e.IsDir(), e.Name())
	}
	for _, p := range []string{filepath.Join(dir, "escaped.svg"), filepath.Join(dir, "line-Art"), filepath.Join(env.dir, "escaped.svg")} {
		_, err = os.Stat(p)
		assert.True(t, os.IsNotExist(err), p)
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		surface string
		format  charts.Format
		want    string
	}{
		{"line-Math", charts.FormatPNG, "line-Math.png"},
		{"line-Art/Design", charts.FormatSVG, "line-Art%2FDesign.svg"},
		{"line-../../x", charts.FormatPNG, "line-..%2F..%2Fx.png"},
		{`line-a\b`, charts.FormatPNG, "line-a%5Cb.png"},
		{"pie-3", charts.FormatSVG, "pie-3.svg"},
	}
	for _, tt := range tests {
		got := exportFileName(tt.surface, tt.format)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, filepath.Base(got))
	}
}

func TestExport_SkipsEmptyAndRejectsFormat(t *testing.T) {
	env := newCLIEnv(t)
	dir := filepath.Join(env.dir, "out")
	out := env.mustRun(t, "export", "--dir", dir)
	assert.Contains(t, out, "Wrote 0 charts")
	assert.Contains(t, out, "4 empty skipped")

	_, err := env.run(t, "", "export", "--format", "gif")
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "subjects", "add", "Art")
	env.mustRun(t, "tests", "add", "-n", "T1")

	env.mustRun(t, "reset", "--yes")
	p := env.state(t)
	assert.Equal(t, []string{"Math", "English"}, p.Subjects)
	assert.Empty(t, p.TestData)

	env.mustRun(t, "reset", "--purge", "--yes")
	p = env.state(t)
	assert.Nil(t, p.Subjects)
}

func TestParseScoreFlags(t *testing.T) {
	subjects := []string{"Math", "Social Studies"}
	tests := []struct {
		name    string
		raw     []string
		want    map[string]string
		wantErr bool
	}{
		{"empty", nil, map[string]string{}, false},
		{"pairs", []string{"Math=90", "Social Studies= 7"}, map[string]string{"Math": "90", "Social Studies": " 7"}, false},
		{"value kept as typed", []string{"Math=9x"}, map[string]string{"Math": "9x"}, false},
		{"missing equals", []string{"Math"}, nil, true},
		{"empty subject", []string{"=4"}, nil, true},
		{"unknown subject", []string{"Art=4"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScoreFlags(tt.raw, subjects)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
