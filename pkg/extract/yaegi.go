package extract

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// program is an evaluated artifact. One interpreter per artifact; the
// interpreter is not safe for concurrent Eval, so calls serialize on
// the mutex.
type program struct {
	mu      sync.Mutex
	interp  *interp.Interpreter
	pkgName string
}

// loadProgram evaluates artifact source in a fresh interpreter with
// stdlib symbols available. A source that does not evaluate fails the
// whole artifact.
func loadProgram(pkgName, src string) (*program, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "failed to load stdlib symbols")
	}
	if _, err := i.Eval(src); err != nil {
		return nil, errors.Wrap(err, "artifact evaluation failed")
	}
	return &program{interp: i, pkgName: pkgName}, nil
}

// call invokes a top-level function of the artifact with named
// arguments matched to parameters by position. A trailing error
// result is unwrapped; a panic inside the interpreted code surfaces
// as an error.
func (p *program) call(funcName string, params []Param, args map[string]any) (result any, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("callable %s panicked: %v", funcName, r)
		}
	}()

	v, evalErr := p.interp.Eval(p.pkgName + "." + funcName)
	if evalErr != nil {
		return nil, errors.Wrapf(evalErr, "callable %s not found", funcName)
	}
	fn := v
	fnType := fn.Type()
	if fnType.Kind() != reflect.Func {
		return nil, errors.Errorf("%s is not callable", funcName)
	}
	if fnType.IsVariadic() {
		return nil, errors.Errorf("callable %s is variadic", funcName)
	}

	in := make([]reflect.Value, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		var value any
		if i < len(params) {
			value = args[params[i].Name]
		}
		in[i] = convertArg(value, fnType.In(i))
	}

	out := fn.Call(in)
	if n := len(out); n > 0 && out[n-1].Type().Implements(errorType) {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return "", nil
	}
	return out[0].Interface(), nil
}

// convertArg coerces a decoded JSON argument to the parameter type.
// JSON numbers arrive as float64 and convert to any numeric kind;
// anything else coerces to a string parameter via its textual form.
// Unconvertible values degrade to the zero value rather than failing
// the call.
func convertArg(value any, target reflect.Type) reflect.Value {
	if value == nil {
		return reflect.Zero(target)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(target) {
		return v
	}

	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(fmt.Sprintf("%v", value)).Convert(target)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if isNumericKind(v.Kind()) && v.CanConvert(target) {
			return v.Convert(target)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			return reflect.ValueOf(b)
		}
	default:
		if v.CanConvert(target) {
			return v.Convert(target)
		}
	}

	return reflect.Zero(target)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
