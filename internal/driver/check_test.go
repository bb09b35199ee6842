package driver_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theoremc/internal/diag"
	"theoremc/internal/driver"
	"theoremc/internal/observ"
	"theoremc/internal/validate"
)

const theorem = `Theorem: Deposit
About: deposits grow the balance
Witness:
  - cover: amount > 0
    because: reachable
Do:
  - must:
      action: account.deposit
      args: {amount: 5}
Prove:
  - assert: balance > 0
    because: deposit adds
Evidence:
  kani:
    unwind: 4
    expect: SUCCESS
`

func named(name string) string {
	return strings.Replace(theorem, "Theorem: Deposit", "Theorem: "+name, 1)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(text), 0o600))
	}
	return dir
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(filepath.ToSlash(dir), p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestDiscover(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.theorem":         "",
		"a.theorem":         "",
		"sub/c.theorem":     "",
		".hidden/d.theorem": "",
		"notes.txt":         "",
		"specs/e.thm.yaml":  "",
		"specs/f.yaml":      "",
	})
	root := filepath.ToSlash(dir)

	files, err := driver.Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.theorem", "b.theorem", "sub/c.theorem"}, rel(t, root, files))

	// explicit files are kept whatever their extension, and duplicates collapse
	files, err = driver.Discover([]string{filepath.Join(dir, "notes.txt"), dir, filepath.Join(dir, "a.theorem")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.theorem", "b.theorem", "notes.txt", "sub/c.theorem"}, rel(t, root, files))

	files, err = driver.Discover([]string{filepath.Join(dir, "specs")}, []string{"yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"specs/e.thm.yaml", "specs/f.yaml"}, rel(t, root, files))

	_, err = driver.Discover([]string{filepath.Join(dir, "missing")}, nil)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

type recorder struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recorder) OnEvent(evt driver.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) statuses(stage driver.Stage) map[string]driver.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]driver.Status)
	for _, e := range r.events {
		if e.Stage == stage && e.Status != driver.StatusQueued && e.Status != driver.StatusWorking {
			out[filepath.Base(e.File)] = e.Status
		}
	}
	return out
}

func TestCheckValidFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.theorem":     named("Deposit"),
		"sub/b.theorem": named("Withdraw") + "---\n" + named("Transfer"),
	})
	rec := &recorder{}
	timer := observ.NewTimer()

	res, err := driver.Check(context.Background(), []string{dir}, driver.Options{Jobs: 2, Progress: rec, Timer: timer})
	require.NoError(t, err)
	require.True(t, res.OK(), diag.FormatLines(res.Diagnostics.Items(), true))

	require.Len(t, res.Files, 2)
	assert.Len(t, res.Documents(), 3)
	require.NotNil(t, res.Symbols)
	assert.Len(t, res.Symbols.Harnesses, 3)
	assert.Len(t, res.Symbols.Modules, 2)
	require.Len(t, res.Symbols.Actions, 1)
	assert.Equal(t, "account.deposit", res.Symbols.Actions[0].Name)

	assert.Equal(t, map[string]driver.Status{"a.theorem": driver.StatusDone, "b.theorem": driver.StatusDone}, rec.statuses(driver.StageLoad))
	assert.Equal(t, map[string]driver.Status{"a.theorem": driver.StatusDone, "b.theorem": driver.StatusDone}, rec.statuses(driver.StageValidate))
	assert.Equal(t, map[string]driver.Status{".": driver.StatusDone}, rec.statuses(driver.StageMangle))

	var phases []string
	for _, p := range timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	assert.Equal(t, []string{"discover", "load", "validate", "mangle"}, phases)
}

func TestCheckModes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.theorem": named("Good"),
		"b.theorem": strings.Replace(named("Bad"), "About: deposits grow the balance", "About: '  '", 1),
		"c.theorem": "Theorem: [unclosed\n",
		"d.theorem": strings.Replace(named("Worse"), "unwind: 4", "unwind: 0", 1),
	})

	for _, jobs := range []int{1, 4} {
		res, err := driver.Check(context.Background(), []string{dir}, driver.Options{Jobs: jobs})
		require.NoError(t, err)
		require.False(t, res.OK())
		items := res.Diagnostics.Items()
		require.Len(t, items, 1)
		assert.Equal(t, diag.SchemaValidationFailure, items[0].Code)
		assert.Equal(t, "b.theorem", filepath.Base(items[0].Location.Source))
		assert.Nil(t, res.Symbols)
	}

	rec := &recorder{}
	res, err := driver.Check(context.Background(), []string{dir}, driver.Options{Mode: validate.CollectAll, Progress: rec})
	require.NoError(t, err)
	items := res.Diagnostics.Items()
	require.Len(t, items, 3)
	var got []string
	for _, d := range items {
		got = append(got, filepath.Base(d.Location.Source)+" "+d.Code.ID())
	}
	assert.Equal(t, []string{
		"b.theorem schema.validation_failure",
		"c.theorem schema.parse_failure",
		"d.theorem schema.validation_failure",
	}, got)
	assert.Nil(t, res.Symbols)
	assert.Equal(t, driver.StatusError, rec.statuses(driver.StageLoad)["c.theorem"])
	assert.Equal(t, map[string]driver.Status{
		"a.theorem": driver.StatusDone,
		"b.theorem": driver.StatusError,
		"d.theorem": driver.StatusError,
	}, rec.statuses(driver.StageValidate))
}

func TestCheckFailFastLoadErrorFirst(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.theorem": "Theorem: Broken\nUnknown: 1\n",
		"b.theorem": strings.Replace(named("Bad"), "About: deposits grow the balance", "About: ''", 1),
	})
	res, err := driver.Check(context.Background(), []string{dir}, driver.Options{})
	require.NoError(t, err)
	items := res.Diagnostics.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a.theorem", filepath.Base(items[0].Location.Source))
	assert.NotEqual(t, diag.SchemaValidationFailure, items[0].Code)
}

func TestCheckMangleCollision(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.theorem": named("Twice") + "---\n" + named("Twice"),
	})
	res, err := driver.Check(context.Background(), []string{dir}, driver.Options{})
	require.NoError(t, err)
	items := res.Diagnostics.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.MangleCollision, items[0].Code)
	assert.Contains(t, items[0].Message, "is defined 2 times")
	assert.Nil(t, res.Symbols)
}

func TestCheckEmptyAndCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"readme.md": "# nothing here"})
	res, err := driver.Check(context.Background(), []string{dir}, driver.Options{})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Files)
	require.NotNil(t, res.Symbols)
	assert.Empty(t, res.Symbols.Harnesses)

	dir = writeFiles(t, map[string]string{"a.theorem": named("Deposit")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = driver.Check(ctx, []string{dir}, driver.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestChannelSink(t *testing.T) {
	ch := make(chan driver.Event, 1)
	driver.ChannelSink{Ch: ch}.OnEvent(driver.Event{Stage: driver.StageMangle, Status: driver.StatusDone})
	evt := <-ch
	assert.Equal(t, driver.StageMangle, evt.Stage)

	// a nil channel drops events
	driver.ChannelSink{}.OnEvent(driver.Event{})
}
