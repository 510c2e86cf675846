// Package msgtype provides runtime descriptors for message payload types.
//
// A Descriptor identifies the structural type of a broadcast payload and
// supports an "is-a" relation used by the router's compatibility gate: a
// broadcast payload satisfies a listener when the broadcast type is the
// same as, or a subtype of, the type the listener declared. The zero
// Descriptor is the wildcard: it accepts any payload type and is produced
// only by adapter-originated registrations.
package msgtype

import "reflect"

// Descriptor identifies a payload type. The zero value is the wildcard.
type Descriptor struct {
	t reflect.Type
}

// Of returns the descriptor for the dynamic type of v.
// Of(nil) returns the wildcard descriptor.
func Of(v any) Descriptor {
	if v == nil {
		return Descriptor{}
	}
	return Descriptor{t: reflect.TypeOf(v)}
}

// For returns the descriptor for the static type T.
func For[T any]() Descriptor {
	return Descriptor{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// IsWildcard reports whether the descriptor accepts any payload type.
func (d Descriptor) IsWildcard() bool {
	return d.t == nil
}

// Equal reports whether two descriptors identify the same type.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.t == other.t
}

// Type returns the underlying reflect.Type, or nil for the wildcard.
func (d Descriptor) Type() reflect.Type {
	return d.t
}

// String returns a human-readable type name for diagnostics.
func (d Descriptor) String() string {
	if d.t == nil {
		return "<any>"
	}
	return d.t.String()
}

// IsChildOf reports whether this descriptor's type is the same as, or a
// subtype of, parent. A type is a subtype of parent when it implements
// parent's interface, or when its struct type embeds parent's struct type
// (directly or through nested anonymous fields). Every type is a child of
// the wildcard; the wildcard is a child of nothing but itself.
func (d Descriptor) IsChildOf(parent Descriptor) bool {
	if parent.t == nil {
		return true
	}
	if d.t == nil {
		return false
	}
	if d.t == parent.t {
		return true
	}
	pt := parent.t
	if pt.Kind() == reflect.Interface {
		if d.t.Implements(pt) {
			return true
		}
		return reflect.PointerTo(d.t).Implements(pt)
	}
	if pt.Kind() == reflect.Pointer {
		pt = pt.Elem()
	}
	return embedsType(d.t, pt)
}

// embedsType reports whether struct type t embeds parent as an anonymous
// field, searching nested embedded structs as well.
func embedsType(t, parent reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == parent {
			return true
		}
		if embedsType(ft, parent) {
			return true
		}
	}
	return false
}

// Embedded extracts the embedded value of type T from a payload whose type
// is a subtype of T by embedding. Returns the zero T and false when the
// payload carries no embedded T. Typed listener callbacks use this after a
// direct assertion fails, so a listener declared for a base struct can
// still receive a derived broadcast.
func Embedded[T any](payload any) (T, bool) {
	var zero T
	want := reflect.TypeOf((*T)(nil)).Elem()
	v := reflect.ValueOf(payload)
	if !v.IsValid() {
		return zero, false
	}
	ev, ok := embeddedValue(v, want)
	if !ok {
		return zero, false
	}
	out, ok := ev.Interface().(T)
	if !ok {
		return zero, false
	}
	return out, true
}

func embeddedValue(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		fv := v.Field(i)
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == want {
			if f.Type.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return reflect.Value{}, false
				}
				fv = fv.Elem()
			}
			return fv, true
		}
		if ev, ok := embeddedValue(fv, want); ok {
			return ev, true
		}
	}
	return reflect.Value{}, false
}
