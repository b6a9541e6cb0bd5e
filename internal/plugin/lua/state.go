// Package lua provides the sandboxed Lua runtime for the plugin system.
package lua

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// State wraps gopher-lua with sandboxing for plugin execution.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// access from Go code. Lua execution itself is single-threaded.
type State struct {
	L *lua.LState

	mu sync.Mutex

	closed bool
}

// NewState creates a new sandboxed Lua state with only the safe base
// libraries opened.
func NewState() *State {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	openSafeLibraries(L)
	installSandbox(L)

	return &State{L: L}
}

// openSafeLibraries opens the Lua libraries plugins may use.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes globals that would let plugin code escape the
// sandbox (arbitrary code or file loading).
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile runs a Lua script file in the state.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.L.DoFile(path)
}

// DoString runs Lua source in the state.
func (s *State) DoString(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.L.DoString(source)
}

// Call invokes a Lua function with the given arguments and returns up to
// nret results.
func (s *State) Call(fn *lua.LFunction, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(arg)
	}
	if err := s.L.PCall(len(args), nret, nil); err != nil {
		return nil, err
	}

	results := make([]lua.LValue, 0, nret)
	for i := nret; i >= 1; i-- {
		results = append(results, s.L.Get(-i))
	}
	s.L.Pop(nret)
	return results, nil
}

// Close releases the Lua state. The state is unusable afterwards.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
