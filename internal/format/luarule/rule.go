package luarule

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Errors returned by rule loading and execution.
var (
	ErrNoFormatFunc = errors.New("script does not define a format function")
	ErrBadReturn    = errors.New("format function did not return a string")
	ErrClosed       = errors.New("rule is closed")
)

// entryPoint is the global function the script must define.
const entryPoint = "format"

// Rule is a Lua-scripted per-line formatting rule. It satisfies
// format.Rule.
//
// The underlying Lua state is not goroutine-safe; a mutex serializes
// calls so a Rule may be shared across engines.
type Rule struct {
	mu     sync.Mutex
	state  *lua.LState
	fn     *lua.LFunction
	source string
	closed bool
}

// Load reads a script file and prepares it as a rule.
func Load(path string) (*Rule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule script %s: %w", path, err)
	}
	return LoadString(string(src), path)
}

// LoadString prepares a script held in memory. The name is used in
// error messages only.
func LoadString(src, name string) (*Rule, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	sandbox(L)

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading rule %s: %w", name, err)
	}

	fn, ok := L.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("rule %s: %w", name, ErrNoFormatFunc)
	}

	return &Rule{state: L, fn: fn, source: name}, nil
}

// Source returns the script name the rule was loaded from.
func (r *Rule) Source() string { return r.source }

// Apply runs the script on one line of text.
func (r *Rule) Apply(text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return text, ErrClosed
	}

	if err := r.state.CallByParam(lua.P{
		Fn:      r.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(text)); err != nil {
		return text, fmt.Errorf("rule %s: %w", r.source, err)
	}

	ret := r.state.Get(-1)
	r.state.Pop(1)

	out, ok := ret.(lua.LString)
	if !ok {
		return text, fmt.Errorf("rule %s: %w", r.source, ErrBadReturn)
	}
	return string(out), nil
}

// Close releases the Lua state. Apply returns ErrClosed afterwards.
func (r *Rule) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.state.Close()
}

// openSafeLibraries opens only the libraries a text rule needs.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenString(L)
	lua.OpenTable(L)
}

// sandbox removes globals that could load code or reach the host.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}
