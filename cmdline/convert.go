package cmdline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Converter turns a single command-line token into a typed value.
type Converter[T any] func(token string) (T, error)

// ErrNameNotRecognized is returned by named-value conversions for unknown names.
var ErrNameNotRecognized = errors.New("name not recognized")

// ConversionError reports a token that could not be converted.
// Err is strconv.ErrSyntax, strconv.ErrRange or ErrNameNotRecognized.
type ConversionError struct {
	Token string
	Type  string // "integer", "float", "size", "bool", "name"
	Err   error
}

func (e *ConversionError) Error() string {
	switch {
	case errors.Is(e.Err, strconv.ErrRange):
		return fmt.Sprintf("%s value out of range: %q", e.Type, e.Token)
	case errors.Is(e.Err, ErrNameNotRecognized):
		return fmt.Sprintf("name not recognized: %q", e.Token)
	default:
		return fmt.Sprintf("invalid %s value: %q", e.Type, e.Token)
	}
}

// Unwrap returns the underlying cause
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func syntaxError(typ, token string) error {
	return &ConversionError{Token: token, Type: typ, Err: strconv.ErrSyntax}
}

func rangeError(typ, token string) error {
	return &ConversionError{Token: token, Type: typ, Err: strconv.ErrRange}
}

// splitNumeral strips the sign and base prefix of a C-style integer literal.
// "0x1F" is hex, "017" is octal, anything else decimal.
func splitNumeral(s string) (negative bool, digits string, base int, ok bool) {
	if s == "" {
		return false, "", 0, false
	}
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	switch {
	case s == "":
		return false, "", 0, false
	case len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		digits, base = s[2:], 16
	case len(s) > 1 && s[0] == '0':
		digits, base = s[1:], 8
	default:
		digits, base = s, 10
	}
	return negative, digits, base, digits != ""
}

// magnitude parses the unsigned digits of a numeral. strconv with an
// explicit base rejects signs, prefixes and underscores, which keeps the
// accepted syntax to plain digits.
func magnitude(typ, token, digits string, base int) (uint64, error) {
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, rangeError(typ, token)
		}
		return 0, syntaxError(typ, token)
	}
	return u, nil
}

// ParseInt converts a C-style integer literal that must fit in bitSize bits.
// A bitSize of 0 means the platform int size.
func ParseInt(s string, bitSize int) (int64, error) {
	if bitSize == 0 {
		bitSize = strconv.IntSize
	}
	negative, digits, base, ok := splitNumeral(s)
	if !ok {
		return 0, syntaxError("integer", s)
	}
	u, err := magnitude("integer", s, digits, base)
	if err != nil {
		return 0, err
	}

	limit := uint64(1) << uint(bitSize-1)
	if negative {
		if u > limit {
			return 0, rangeError("integer", s)
		}
		return -int64(u), nil
	}
	if u > limit-1 {
		return 0, rangeError("integer", s)
	}
	return int64(u), nil
}

// ParseUint converts a C-style unsigned integer literal that must fit in
// bitSize bits. Negative literals are rejected.
func ParseUint(s string, bitSize int) (uint64, error) {
	if bitSize == 0 {
		bitSize = strconv.IntSize
	}
	negative, digits, base, ok := splitNumeral(s)
	if !ok || negative {
		return 0, syntaxError("integer", s)
	}
	u, err := magnitude("integer", s, digits, base)
	if err != nil {
		return 0, err
	}
	if bitSize < 64 && u > uint64(1)<<uint(bitSize)-1 {
		return 0, rangeError("integer", s)
	}
	return u, nil
}

// Smallest normal magnitudes. Non-zero results below them are subnormal.
const (
	minNormalFloat32 = 0x1p-126
	minNormalFloat64 = 0x1p-1022
)

// ParseFloat converts a floating point literal for a bitSize-bit target.
// NAN, INF, +INF and -INF are accepted in any case. A finite literal that
// overflows to infinity, or a non-zero literal that underflows to zero or
// to a subnormal value, is a range error.
func ParseFloat(s string, bitSize int) (float64, error) {
	if s == "" {
		return 0, syntaxError("float", s)
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, rangeError("float", s)
		}
		return 0, syntaxError("float", s)
	}
	if f == 0 && nonZeroMantissa(s) {
		return 0, rangeError("float", s)
	}
	minNormal := minNormalFloat64
	if bitSize == 32 {
		minNormal = minNormalFloat32
	}
	if f != 0 && math.Abs(f) < minNormal {
		return 0, rangeError("float", s)
	}
	return f, nil
}

// nonZeroMantissa reports whether a well-formed float literal has any
// non-zero digit before its exponent.
func nonZeroMantissa(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	hex := len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
	if hex {
		s = s[2:]
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if hex && (c == 'p' || c == 'P') || !hex && (c == 'e' || c == 'E') {
			return false
		}
		if c >= '1' && c <= '9' {
			return true
		}
		if hex && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return true
		}
	}
	return false
}

// Size multipliers accepted by ParseSize.
const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
)

// ParseSize converts a byte count with an optional k/K, M or G suffix.
func ParseSize(s string) (uint64, error) {
	mult := uint64(1)
	number := s
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'k', 'K':
			mult = KiB
		case 'M':
			mult = MiB
		case 'G':
			mult = GiB
		}
		if mult != 1 {
			number = s[:n-1]
		}
	}

	negative, digits, base, ok := splitNumeral(number)
	if !ok || negative {
		return 0, syntaxError("size", s)
	}
	u, err := magnitude("size", s, digits, base)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint64/mult {
		return 0, rangeError("size", s)
	}
	return u * mult, nil
}

// ParseBool accepts the spellings understood by strconv.ParseBool.
func ParseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, syntaxError("bool", s)
	}
	return b, nil
}

func parseString(s string) (string, error) { return s, nil }

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bitSize int) Converter[T] {
	return func(s string) (T, error) {
		v, err := ParseInt(s, bitSize)
		if err != nil {
			return 0, err
		}
		return T(v), nil
	}
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bitSize int) Converter[T] {
	return func(s string) (T, error) {
		v, err := ParseUint(s, bitSize)
		if err != nil {
			return 0, err
		}
		return T(v), nil
	}
}

func float[T ~float32 | ~float64](bitSize int) Converter[T] {
	return func(s string) (T, error) {
		v, err := ParseFloat(s, bitSize)
		if err != nil {
			return 0, err
		}
		return T(v), nil
	}
}

// ConverterFor returns the built-in converter for T, or nil when T has none.
// Built-in types are string, bool, every integer width, float32 and float64.
func ConverterFor[T any]() Converter[T] {
	var zero T
	var conv any
	switch any(zero).(type) {
	case string:
		conv = Converter[string](parseString)
	case bool:
		conv = Converter[bool](ParseBool)
	case int:
		conv = signed[int](strconv.IntSize)
	case int8:
		conv = signed[int8](8)
	case int16:
		conv = signed[int16](16)
	case int32:
		conv = signed[int32](32)
	case int64:
		conv = signed[int64](64)
	case uint:
		conv = unsigned[uint](strconv.IntSize)
	case uint8:
		conv = unsigned[uint8](8)
	case uint16:
		conv = unsigned[uint16](16)
	case uint32:
		conv = unsigned[uint32](32)
	case uint64:
		conv = unsigned[uint64](64)
	case float32:
		conv = float[float32](32)
	case float64:
		conv = float[float64](64)
	}
	c, _ := conv.(Converter[T])
	return c
}

// NamedValues is an ordered table mapping names to values.
type NamedValues[T any] struct {
	names  []string
	values []T
}

// Add appends a name/value pair. A repeated name replaces the earlier value.
func (n *NamedValues[T]) Add(name string, value T) {
	for i, existing := range n.names {
		if existing == name {
			n.values[i] = value
			return
		}
	}
	n.names = append(n.names, name)
	n.values = append(n.values, value)
}

// Lookup returns the value registered for name
func (n *NamedValues[T]) Lookup(name string) (T, bool) {
	for i, existing := range n.names {
		if existing == name {
			return n.values[i], true
		}
	}
	var zero T
	return zero, false
}

// Names returns the registered names in insertion order
func (n *NamedValues[T]) Names() []string {
	return append([]string(nil), n.names...)
}

// Len returns the number of entries
func (n *NamedValues[T]) Len() int { return len(n.names) }

// Convert looks token up in the table.
func (n *NamedValues[T]) Convert(token string) (T, error) {
	if v, ok := n.Lookup(token); ok {
		return v, nil
	}
	var zero T
	return zero, &ConversionError{Token: token, Type: "name", Err: ErrNameNotRecognized}
}
