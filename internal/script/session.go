package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/patternkit/internal/document"
	"github.com/dshills/patternkit/internal/history"
	"github.com/dshills/patternkit/internal/logging"
)

// Session is a sandboxed Lua state bound to one document and history manager.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes Run calls.
type Session struct {
	mu sync.Mutex
	L  *lua.LState

	doc     *document.Document
	history *history.Manager

	out    io.Writer
	logger *slog.Logger
	closed bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOutput sets where Lua print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session for doc and mgr.
func NewSession(doc *document.Document, mgr *history.Manager, opts ...SessionOption) *Session {
	s := &Session{
		doc:     doc,
		history: mgr,
		out:     os.Stdout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	s.L = L

	openSafeLibraries(L)
	installSandbox(L)
	L.SetGlobal("print", L.NewFunction(s.print))

	registerDocModule(L, s)
	registerHistoryModule(L, s)

	return s
}

// openSafeLibraries opens only the Lua standard libraries without host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes base functions that load code from outside the script.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Run executes Lua code. name identifies the chunk in errors.
func (s *Session) Run(ctx context.Context, name, code string) error {
	return s.exec(ctx, name, func() error {
		fn, err := s.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

// RunFile executes the Lua file at path.
func (s *Session) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return s.Run(ctx, path, string(code))
}

func (s *Session) exec(ctx context.Context, name string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Path: name, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	s.logger.Debug("running script", "name", name)
	if err := fn(); err != nil {
		s.L.SetTop(0)
		return &ScriptError{Path: name, Err: err}
	}
	s.L.SetTop(0)
	return nil
}

// Close releases the Lua state. Safe to call multiple times.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// print writes its arguments separated by tabs, like Lua's print.
func (s *Session) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}
