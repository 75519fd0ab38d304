package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexstorm/internal/engine"
	"github.com/dshills/hexstorm/internal/logging"
)

// Default limits for a script run.
const (
	DefaultCallLimit = 1_000_000
	DefaultTimeout   = 30 * time.Second
)

// Runner executes Lua scripts against one engine.
//
// gopher-lua's LState is not goroutine-safe. Runs on the same Runner are
// serialized by a mutex; globals set by one run are visible to the next.
type Runner struct {
	mu sync.Mutex

	L   *lua.LState
	eng *engine.Engine

	callLimit int
	timeout   time.Duration
	logger    *slog.Logger
	out       io.Writer

	calls    int
	limitHit bool
	closed   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithCallLimit caps the number of buf and hex calls per run. Zero means
// unlimited.
func WithCallLimit(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.callLimit = n
		}
	}
}

// WithTimeout bounds the duration of each run. Zero means no timeout
// beyond the context passed to Run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger for run summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput sets where the Lua print function writes. By default output
// is discarded.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// NewRunner creates a sandboxed Lua state bound to eng.
func NewRunner(eng *engine.Engine, opts ...Option) *Runner {
	r := &Runner{
		eng:       eng,
		callLimit: DefaultCallLimit,
		timeout:   DefaultTimeout,
		logger:    logging.Discard(),
		out:       io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.installModules()
	return r
}

// openSafeLibraries opens only the Lua standard libraries that cannot
// reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (r *Runner) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
}

// print writes its arguments separated by tabs to the runner's output.
func (r *Runner) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

// counted wraps a module function so that it counts towards the call
// limit.
func (r *Runner) counted(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		r.calls++
		if r.callLimit > 0 && r.calls > r.callLimit {
			r.limitHit = true
			L.RaiseError("%v", ErrCallLimit)
			return 0
		}
		return fn(L)
	}
}

func (r *Runner) installModules() {
	for name, funcs := range map[string]map[string]lua.LGFunction{
		"buf": bufFuncs(r.eng),
		"hex": hexFuncs(),
	} {
		mod := r.L.NewTable()
		for fname, fn := range funcs {
			r.L.SetField(mod, fname, r.L.NewFunction(r.counted(fn)))
		}
		r.L.SetGlobal(name, mod)
	}
}

// Run executes code. name identifies the chunk in error messages.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	return r.run(ctx, name, strings.NewReader(code))
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return r.run(ctx, path, f)
}

func (r *Runner) run(ctx context.Context, name string, src io.Reader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	fn, err := r.L.Load(src, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.calls, r.limitHit = 0, false
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	start := time.Now()
	err = r.call(fn)
	switch {
	case r.limitHit:
		err = fmt.Errorf("%s: %w", name, ErrCallLimit)
	case err != nil && ctx.Err() != nil:
		err = fmt.Errorf("%s: %w", name, ctx.Err())
	case err != nil:
		err = fmt.Errorf("%s: %w", name, err)
	}

	r.logger.Debug("script finished",
		"script", name,
		"calls", r.calls,
		"elapsed", time.Since(start),
		"error", err,
	)
	return err
}

// call runs fn with panic recovery and discards its results.
func (r *Runner) call(fn *lua.LFunction) (err error) {
	top := r.L.GetTop()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
		r.L.SetTop(top)
	}()

	r.L.Push(fn)
	return r.L.PCall(0, lua.MultRet, nil)
}

// Calls returns the number of module calls made by the last run.
func (r *Runner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Global returns a global variable as a Go value: string, float64, bool
// or nil. Other Lua types are returned as their string form.
func (r *Runner) Global(name string) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	switch v := r.L.GetGlobal(name).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	case *lua.LNilType:
		return nil
	default:
		return v.String()
	}
}

// Close releases the Lua state. Further runs return ErrRunnerClosed.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
