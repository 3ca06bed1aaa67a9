package models

// Nullable is a patch field for a nullable column. The zero value leaves the
// column untouched, Null clears it and SetTo assigns a value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a Nullable assigning v.
func SetTo[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable clearing the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Apply writes the patch onto dst when it is set. The stored pointer never
// aliases the patch.
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}
