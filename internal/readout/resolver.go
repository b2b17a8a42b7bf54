package readout

// Adapter is one attempt at producing a field from one OS mechanism.
// Fetch must not block for long and must not panic; failures are returned
// as errors and classified with Wrap.
type Adapter[T any] struct {
	Name  string
	Fetch func() (T, error)
}

// Source builds an Adapter.
func Source[T any](name string, fetch func() (T, error)) Adapter[T] {
	return Adapter[T]{Name: name, Fetch: fetch}
}

// Chain is the ordered list of adapters backing one field on one platform,
// most authoritative first. A nil Chain means the platform does not support
// the field.
type Chain[T any] []Adapter[T]

// Observer is notified about each adapter attempt. err is nil on success.
type Observer func(field Field, adapter string, err *Error)

// Resolve runs chain in order and returns the first success.
func Resolve[T any](field Field, chain Chain[T]) (T, error) {
	return ResolveWith(field, chain, nil)
}

// ResolveWith is Resolve with an attempt observer.
//
// An empty chain yields KindNotImplemented. When every adapter fails the
// result is KindMetricNotAvailable listing each attempted adapter once, in
// order, with the individual failures in Causes.
func ResolveWith[T any](field Field, chain Chain[T], observe Observer) (T, error) {
	v, _, err := resolve(field, chain, observe)
	return v, err
}

// resolve also returns the index of the adapter that succeeded.
func resolve[T any](field Field, chain Chain[T], observe Observer) (T, int, error) {
	var zero T

	if len(chain) == 0 {
		return zero, -1, NotImplemented(field)
	}

	attempted := make([]string, 0, len(chain))
	causes := make([]*Error, 0, len(chain))

	for i, a := range chain {
		attempted = append(attempted, a.Name)

		if a.Fetch == nil {
			cause := &Error{Kind: KindNotImplemented, Field: field, Adapter: a.Name}
			causes = append(causes, cause)
			if observe != nil {
				observe(field, a.Name, cause)
			}
			continue
		}

		v, err := a.Fetch()
		if err == nil {
			if observe != nil {
				observe(field, a.Name, nil)
			}
			return v, i, nil
		}

		cause := Wrap(err)
		cause.Field = field
		cause.Adapter = a.Name
		causes = append(causes, cause)

		if observe != nil {
			observe(field, a.Name, cause)
		}
	}

	return zero, -1, &Error{
		Kind:      KindMetricNotAvailable,
		Field:     field,
		Attempted: attempted,
		Causes:    causes,
	}
}

// Fixed returns an adapter that always yields v.
func Fixed[T any](name string, v T) Adapter[T] {
	return Adapter[T]{Name: name, Fetch: func() (T, error) { return v, nil }}
}

// Map converts the value of an adapter, keeping its identity.
func Map[T, U any](a Adapter[T], fn func(T) (U, error)) Adapter[U] {
	if a.Fetch == nil {
		return Adapter[U]{Name: a.Name}
	}

	return Adapter[U]{
		Name: a.Name,
		Fetch: func() (U, error) {
			v, err := a.Fetch()
			if err != nil {
				var zero U
				return zero, err
			}
			return fn(v)
		},
	}
}

// NonEmpty wraps a string adapter so that an empty result counts as
// MetricNotAvailable instead of a value.
func NonEmpty(a Adapter[string]) Adapter[string] {
	return Map(a, func(s string) (string, error) {
		if s == "" {
			return "", Unavailable("empty value")
		}
		return s, nil
	})
}
