package di

import (
	"reflect"
	"sync/atomic"
)

var dependencySetType = reflect.TypeOf(DependencySet{})

// DynamicFunction wraps a function of any arity.
//
// When dependencies are declared, fn must take a DependencySet as its last
// parameter. Invoke then treats the first arity-1 arguments as positional and an
// optional extra trailing argument as the Overrides bag. Without dependencies
// every argument is positional and no override bag is accepted.
type DynamicFunction struct {
	meta      Metadata
	deps      []string
	fn        reflect.Value
	withSet   bool
	container atomic.Pointer[Container]
}

// NewDynamicFunction declares a dynamic function item. It panics if fn is not a
// non-variadic func, or if deps are declared and fn does not end with a
// DependencySet parameter.
func NewDynamicFunction(name string, deps []string, fn any) *DynamicFunction {
	return newDynamic(KindFunction, name, deps, fn)
}

// NewDynamicHook is NewDynamicFunction tagged as a hook.
func NewDynamicHook(name string, deps []string, fn any) *DynamicFunction {
	return newDynamic(KindHook, name, deps, fn)
}

// RegisterDynamicFunction declares a dynamic function item and registers it on c.
func RegisterDynamicFunction(c *Container, name string, deps []string, fn any) *DynamicFunction {
	d := NewDynamicFunction(name, deps, fn)
	mustRegister(c, d)
	return d
}

// RegisterDynamicHook declares a dynamic hook item and registers it on c.
func RegisterDynamicHook(c *Container, name string, deps []string, fn any) *DynamicFunction {
	d := NewDynamicHook(name, deps, fn)
	mustRegister(c, d)
	return d
}

func newDynamic(kind Kind, name string, deps []string, fn any) *DynamicFunction {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic("di: " + name + " is not a function")
	}
	t := v.Type()
	if t.IsVariadic() {
		panic("di: " + name + " must not be variadic")
	}
	withSet := t.NumIn() > 0 && t.In(t.NumIn()-1) == dependencySetType
	if len(deps) > 0 && !withSet {
		panic("di: " + name + " declares dependencies but does not accept a di.DependencySet")
	}
	return &DynamicFunction{
		meta:    Metadata{Kind: kind, Name: name},
		deps:    append([]string(nil), deps...),
		fn:      v,
		withSet: withSet,
	}
}

// Metadata implements Item.
func (d *DynamicFunction) Metadata() Metadata { return d.meta }

// Dependencies returns a copy of the declared dependency list.
func (d *DynamicFunction) Dependencies() []string { return append([]string(nil), d.deps...) }

// Arity returns the number of positional arguments Invoke expects.
func (d *DynamicFunction) Arity() int {
	n := d.fn.Type().NumIn()
	if d.withSet {
		n--
	}
	return n
}

// Invoke calls the wrapped function and returns its results.
func (d *DynamicFunction) Invoke(args ...any) ([]any, error) {
	arity := d.Arity()

	var overrides Overrides
	switch {
	case len(args) == arity:
	case len(args) == arity+1 && len(d.deps) > 0:
		ov, err := d.overrides(args[arity])
		if err != nil {
			return nil, err
		}
		overrides = ov
		args = args[:arity]
	default:
		return nil, ArityError{Name: d.meta.Name, Want: arity, Got: len(args)}
	}

	t := d.fn.Type()
	in := make([]reflect.Value, 0, t.NumIn())
	for i, a := range args {
		pt := t.In(i)
		if a == nil {
			if !nillable(pt) {
				return nil, ArgumentTypeError{Name: d.meta.Name, Index: i, Want: pt.String(), Got: "nil"}
			}
			in = append(in, reflect.Zero(pt))
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, ArgumentTypeError{Name: d.meta.Name, Index: i, Want: pt.String(), Got: av.Type().String()}
		}
		in = append(in, av)
	}
	if d.withSet {
		set := d.container.Load().resolve(d.meta.Name, d.deps, overrides)
		in = append(in, reflect.ValueOf(set))
	}

	out := d.fn.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// Extract implements Extractor. The returned func resolves without overrides.
func (d *DynamicFunction) Extract() any {
	return func(args ...any) ([]any, error) { return d.Invoke(args...) }
}

func (d *DynamicFunction) bind(c *Container) { d.container.Store(c) }

func (d *DynamicFunction) overrides(v any) (Overrides, error) {
	switch ov := v.(type) {
	case nil:
		return nil, nil
	case Overrides:
		return ov, nil
	case map[string]any:
		return Overrides(ov), nil
	}
	return nil, OverridesTypeError{Name: d.meta.Name, Got: reflect.TypeOf(v).String()}
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return true
	}
	return false
}
