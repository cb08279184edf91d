package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/patternkit/internal/document"
	"github.com/dshills/patternkit/internal/history"
)

func newTestSession(t *testing.T) (*Session, *document.Document, *history.Manager, *bytes.Buffer) {
	t.Helper()
	doc := document.New("")
	mgr := history.NewManager()
	var out bytes.Buffer
	s := NewSession(doc, mgr, WithOutput(&out))
	t.Cleanup(s.Close)
	return s, doc, mgr, &out
}

func TestSessionUndoRedoExample(t *testing.T) {
	s, doc, _, out := newTestSession(t)

	err := s.Run(context.Background(), "example", `
		for _, v in ipairs({"A", "B", "C"}) do
			history.save()
			doc.set(v)
		end
		assert(history.undo())
		print(doc.text())
		assert(history.undo())
		print(doc.text())
		assert(history.redo())
		print(doc.text())
	`)
	require.NoError(t, err)
	assert.Equal(t, "B\nA\nB\n", out.String())
	assert.Equal(t, "B", doc.Text())
}

func TestSessionCheckpoints(t *testing.T) {
	s, doc, mgr, out := newTestSession(t)

	err := s.Run(context.Background(), "checkpoints", `
		doc.set("draft")
		history.checkpoint("v1")
		history.checkpoint("v0")
		doc.append(" edited")
		print(history.restore("missing"))
		print(history.restore("v1"))
		print(table.concat(history.checkpoints(), ","))
		print(history.delete("v0"), history.delete("v0"))
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\nv0,v1\ntrue\tfalse\n", out.String())
	assert.Equal(t, "draft", doc.Text())
	assert.Equal(t, []string{"v1"}, mgr.ListCheckpoints())
}

func TestSessionDocFunctions(t *testing.T) {
	s, doc, _, out := newTestSession(t)

	err := s.Run(context.Background(), "doc", `
		doc.set("hello")
		doc.insert(0, ">")
		doc.append("!")
		doc.delete(1, 2)
		print(doc.text(), doc.len())
		doc.format("bold", true)
		doc.format("size", 16)
	`)
	require.NoError(t, err)
	assert.Equal(t, ">ello!\t6\n", out.String())
	assert.True(t, doc.Format().Bold)
	assert.Equal(t, 16, doc.Format().FontSize)
}

func TestSessionPositionsAreCharacters(t *testing.T) {
	s, doc, _, out := newTestSession(t)

	err := s.Run(context.Background(), "unicode", `
		doc.set("日本")
		doc.insert(doc.len(), "!")
		doc.insert(1, "の")
		doc.delete(0, 1)
		print(doc.text(), doc.len())
	`)
	require.NoError(t, err)
	assert.Equal(t, "の本!\t3\n", out.String())
	assert.Equal(t, "の本!", doc.Text())
}

func TestSessionFormatError(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	err := s.Run(context.Background(), "bad-format", `doc.format("blink", true)`)
	var serr *ScriptError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "bad-format", serr.Path)
	assert.Contains(t, err.Error(), "unknown format attribute")
}

func TestSessionDump(t *testing.T) {
	s, doc, _, out := newTestSession(t)
	doc.SetText("dumped")

	require.NoError(t, s.Run(context.Background(), "dump", `print(history.dump())`))

	snap, err := document.ParseSnapshot(bytes.TrimSpace(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "dumped", snap.Text())
}

func TestSessionSandbox(t *testing.T) {
	s, _, _, out := newTestSession(t)

	require.NoError(t, s.Run(context.Background(), "sandbox", `
		print(io == nil, os == nil, dofile == nil, load == nil, require == nil)
	`))
	assert.Equal(t, "true\ttrue\ttrue\ttrue\ttrue\n", out.String())
}

func TestSessionSyntaxError(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	err := s.Run(context.Background(), "broken", `history.save(`)
	var serr *ScriptError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "broken", serr.Path)
}

func TestSessionRuntimeErrorKeepsState(t *testing.T) {
	s, doc, mgr, _ := newTestSession(t)

	err := s.Run(context.Background(), "partial", `
		history.save()
		doc.set("before error")
		error("stop")
	`)
	require.Error(t, err)
	assert.Equal(t, "before error", doc.Text())
	assert.Equal(t, 1, mgr.UndoCount())

	// The session stays usable.
	require.NoError(t, s.Run(context.Background(), "after", `assert(history.undo())`))
	assert.Equal(t, "", doc.Text())
}

func TestSessionContextCancel(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, "loop", `while true do end`)
	require.Error(t, err)
}

func TestSessionRunFile(t *testing.T) {
	s, doc, _, _ := newTestSession(t)

	path := filepath.Join(t.TempDir(), "session.lua")
	require.NoError(t, os.WriteFile(path, []byte(`doc.set("from file")`), 0o600))

	require.NoError(t, s.RunFile(context.Background(), path))
	assert.Equal(t, "from file", doc.Text())

	err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSessionClosed(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	s.Close()
	s.Close()

	err := s.Run(context.Background(), "late", `print("x")`)
	assert.True(t, errors.Is(err, ErrSessionClosed))
}
