package di

// The factories below are the curried form of the Register* functions:
//
//	fn := RegisterFunctionFactory[string, string](c)("decorateMessage", "CONFIG")(impl)
//
// They hold no state besides the container they close over.

// RegisterConfigFactory returns a config registrar bound to c.
func RegisterConfigFactory[T any](c *Container) func(name string) func(value T) *Config[T] {
	return func(name string) func(value T) *Config[T] {
		return func(value T) *Config[T] {
			return RegisterConfig(c, name, value)
		}
	}
}

// RegisterComponentFactory returns a component registrar bound to c.
func RegisterComponentFactory[P any](c *Container) func(name string, deps ...string) func(impl ComponentImpl[P]) *Component[P] {
	return func(name string, deps ...string) func(impl ComponentImpl[P]) *Component[P] {
		return func(impl ComponentImpl[P]) *Component[P] {
			return RegisterComponent(c, name, deps, impl)
		}
	}
}

// RegisterFunctionFactory returns a function registrar bound to c.
func RegisterFunctionFactory[A, R any](c *Container) func(name string, deps ...string) func(fn FunctionImpl[A, R]) *Function[A, R] {
	return functionFactory[A, R](c, KindFunction)
}

// RegisterHookFactory is RegisterFunctionFactory pre-bound to the hook kind.
func RegisterHookFactory[A, R any](c *Container) func(name string, deps ...string) func(fn FunctionImpl[A, R]) *Function[A, R] {
	return functionFactory[A, R](c, KindHook)
}

func functionFactory[A, R any](c *Container, kind Kind) func(name string, deps ...string) func(fn FunctionImpl[A, R]) *Function[A, R] {
	return func(name string, deps ...string) func(fn FunctionImpl[A, R]) *Function[A, R] {
		return func(fn FunctionImpl[A, R]) *Function[A, R] {
			f := newFunction(kind, name, deps, fn)
			mustRegister(c, f)
			return f
		}
	}
}
