package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable restaurant formulas.
// Single-goroutine access only (simulation loop). Every formula falls back to
// the Builtin version when its Lua function is missing or fails.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback Builtin
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)

	for _, sub := range []string{"core", "kitchen", "guests"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource creates an engine from inline Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CookTime calls the Lua cook_time function:
//
//	cook_time({party_size = n, prep_time = s}) -> seconds
func (e *Engine) CookTime(partySize int, prepTime float64) float64 {
	t := e.vm.NewTable()
	t.RawSetString("party_size", lua.LNumber(partySize))
	t.RawSetString("prep_time", lua.LNumber(prepTime))

	v, ok := e.callNumber("cook_time", t)
	if !ok || v < 0 {
		return e.fallback.CookTime(partySize, prepTime)
	}
	return v
}

// RateVisit calls the Lua rate_visit function:
//
//	rate_visit({happiness = h, party_size = n, cold_plate = b}) -> stars
func (e *Engine) RateVisit(happiness float64, partySize int, coldPlate bool) float64 {
	t := e.vm.NewTable()
	t.RawSetString("happiness", lua.LNumber(happiness))
	t.RawSetString("party_size", lua.LNumber(partySize))
	t.RawSetString("cold_plate", lua.LBool(coldPlate))

	v, ok := e.callNumber("rate_visit", t)
	if !ok {
		return e.fallback.RateVisit(happiness, partySize, coldPlate)
	}
	return clampStars(v)
}

// callNumber calls a global Lua function with one argument and reads a numeric result.
func (e *Engine) callNumber(name string, arg lua.LValue) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number",
			zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.log.Error("lua function returned non-finite number", zap.String("func", name))
		return 0, false
	}
	return f, true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
