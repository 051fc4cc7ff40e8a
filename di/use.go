package di

import "reflect"

// Use returns the dependency stored under key typed as T.
//
// Items are matched both as-is and through their extracted form, so a
// registered *Function[string, string] satisfies Use[func(string) string].
// ok is false if the key is missing or neither form is a T.
func Use[T any](deps DependencySet, key string) (T, bool) {
	var zero T
	raw, ok := deps.Get(key)
	if !ok {
		return zero, false
	}
	return as[T](raw)
}

// TryUse returns the dependency typed as T.
//
// It returns:
//   - MissingDependencyError if the key is not present
//   - WrongTypeDependencyError if the key exists but is not a T
func TryUse[T any](deps DependencySet, key string) (T, error) {
	var zero T
	raw, ok := deps.Get(key)
	if !ok {
		return zero, MissingDependencyError{Key: key}
	}
	v, ok := as[T](raw)
	if !ok {
		return zero, WrongTypeDependencyError{
			Key:      key,
			GotType:  reflect.TypeOf(raw).String(),
			WantType: reflect.TypeOf((*T)(nil)).Elem().String(),
		}
	}
	return v, nil
}

// MustUse returns the dependency typed as T or panics with the TryUse error.
func MustUse[T any](deps DependencySet, key string) T {
	v, err := TryUse[T](deps, key)
	if err != nil {
		panic(err)
	}
	return v
}

func as[T any](raw any) (T, bool) {
	if v, ok := raw.(T); ok {
		return v, true
	}
	if ex, ok := raw.(Extractor); ok {
		if v, ok := ex.Extract().(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
