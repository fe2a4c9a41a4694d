package enum

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// valueKind classifies an enum value by its dynamic type.
type valueKind int

const (
	kindInvalid valueKind = iota
	kindNumber
	kindString
)

func classify(v any) valueKind {
	if v == nil {
		return kindInvalid
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindNumber
	case reflect.Float32, reflect.Float64:
		// NaN never equals itself, so it cannot be looked up.
		if math.IsNaN(rv.Float()) {
			return kindInvalid
		}
		return kindNumber
	case reflect.String:
		return kindString
	default:
		return kindInvalid
	}
}

// PropertyName renders a numeric value the way it reads as an object
// property: integers in base 10, floats in their shortest form. It is the
// name Lookup accepts for the value on an inverted enum. Non-numeric values
// yield "".
func PropertyName(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	default:
		return ""
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	// Exponent without zero padding: 1e+21, 1e-7.
	s := strconv.FormatFloat(f, 'e', -1, bits)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// valueID is the identity of an enum value. Numbers compare by magnitude
// whatever their Go type, so int(1), int64(1) and 1.0 are one value; a
// number never equals a string.
type valueID struct {
	kind valueKind
	text string
}

// identify returns the identity of v, or false when v is not a valid value.
func identify(v any) (valueID, bool) {
	switch k := classify(v); k {
	case kindNumber:
		return valueID{kind: k, text: PropertyName(v)}, true
	case kindString:
		return valueID{kind: k, text: reflect.ValueOf(v).String()}, true
	default:
		return valueID{}, false
	}
}

// sameValue reports whether a and b are the same valid value.
func sameValue(a, b any) bool {
	ida, ok := identify(a)
	if !ok {
		return false
	}
	idb, ok := identify(b)
	return ok && ida == idb
}
