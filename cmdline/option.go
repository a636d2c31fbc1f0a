package cmdline

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Option is a named, non-positional switch. The set of implementations is
// closed: Flag, Toggle, Counter, Opt, OptList and OptNamed.
type Option interface {
	// Names returns the aliases as declared, short and long mixed.
	Names() []string
	Description() string
	// ValueName is the placeholder shown in usage for value-taking options.
	ValueName() string
	// ConsumesValue reports whether a match must be followed by a value.
	ConsumesValue() bool
	// SetFromToken records one occurrence. No-value options ignore token.
	SetFromToken(token string) error
	Reset()
	Changed() bool
	// DefaultString renders the default for usage, "" when not worth showing.
	DefaultString() string

	optionBase() *optBase
}

// optBase carries the parts every option variant shares.
type optBase struct {
	names     []string
	valueName string
	descr     string
	changed   bool
	noConv    bool
	owner     *CmdLine
	group     *Group
}

func newOptBase(names, valueName, descr string) optBase {
	return optBase{names: splitNames(names), valueName: valueName, descr: descr}
}

// splitNames splits a comma-separated alias list, trimming blanks around
// each element. Validation happens at registration time.
func splitNames(names string) []string {
	if strings.TrimSpace(names) == "" {
		return nil
	}
	parts := strings.Split(names, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// isShortAlias reports whether alias is matched with single-dash syntax.
func isShortAlias(alias string) bool {
	return len([]rune(alias)) == 1
}

func (b *optBase) optionBase() *optBase { return b }

// Names returns the declared aliases
func (b *optBase) Names() []string { return append([]string(nil), b.names...) }

// Description returns the one-line description
func (b *optBase) Description() string { return b.descr }

// ValueName returns the usage placeholder for the option value
func (b *optBase) ValueName() string { return b.valueName }

// Changed reports whether the last parse supplied this option
func (b *optBase) Changed() bool { return b.changed }

// Flag is a boolean option without value. Every occurrence sets it to the
// opposite of its default.
type Flag struct {
	optBase
	value bool
	def   bool
}

// NewFlag creates a flag option. names is a comma-separated alias list such as "v,verbose".
func NewFlag(names, descr string, def bool) *Flag {
	return &Flag{optBase: newOptBase(names, "", descr), value: def, def: def}
}

// ConsumesValue reports false: a flag never takes a value
func (f *Flag) ConsumesValue() bool { return false }

// SetFromToken sets the flag to the opposite of its default
func (f *Flag) SetFromToken(string) error {
	f.value = !f.def
	f.changed = true
	return nil
}

// Reset restores the default and clears Changed
func (f *Flag) Reset() {
	f.value = f.def
	f.changed = false
}

// DefaultString returns "": flag defaults are not shown in usage
func (f *Flag) DefaultString() string { return "" }

// Value returns the current value
func (f *Flag) Value() bool { return f.value }

// Default returns the default value
func (f *Flag) Default() bool { return f.def }

// Toggle is a boolean option without value that flips on every occurrence.
type Toggle struct {
	optBase
	value bool
	def   bool
}

// NewToggle creates a toggle option
func NewToggle(names, descr string, def bool) *Toggle {
	return &Toggle{optBase: newOptBase(names, "", descr), value: def, def: def}
}

// ConsumesValue reports false: a toggle never takes a value
func (t *Toggle) ConsumesValue() bool { return false }

// SetFromToken flips the current value
func (t *Toggle) SetFromToken(string) error {
	t.value = !t.value
	t.changed = true
	return nil
}

// Reset restores the default and clears Changed
func (t *Toggle) Reset() {
	t.value = t.def
	t.changed = false
}

// DefaultString returns "": toggle defaults are not shown in usage
func (t *Toggle) DefaultString() string { return "" }

// Value returns the current value
func (t *Toggle) Value() bool { return t.value }

// Default returns the default value
func (t *Toggle) Default() bool { return t.def }

// Counter is an integer option without value, incremented on every occurrence.
type Counter struct {
	optBase
	value int
	def   int
}

// NewCounter creates a counter option starting at def
func NewCounter(names, descr string, def int) *Counter {
	return &Counter{optBase: newOptBase(names, "", descr), value: def, def: def}
}

// ConsumesValue reports false: a counter never takes a value
func (c *Counter) ConsumesValue() bool { return false }

// SetFromToken increments the count
func (c *Counter) SetFromToken(string) error {
	c.value++
	c.changed = true
	return nil
}

// Reset restores the starting count and clears Changed
func (c *Counter) Reset() {
	c.value = c.def
	c.changed = false
}

// DefaultString returns the starting count, or "" when it is zero
func (c *Counter) DefaultString() string {
	if c.def == 0 {
		return ""
	}
	return strconv.Itoa(c.def)
}

// Value returns the current count
func (c *Counter) Value() int { return c.value }

// Default returns the starting count
func (c *Counter) Default() int { return c.def }

// Opt is an option taking exactly one value; the last occurrence wins.
type Opt[T any] struct {
	optBase
	value T
	def   T
	conv  Converter[T]
}

// NewOpt creates a single-value option using the built-in converter for T.
// Registration fails if T has no built-in converter; use NewOptFunc then.
func NewOpt[T any](names, valueName, descr string, def T) *Opt[T] {
	return NewOptFunc(names, valueName, descr, def, ConverterFor[T]())
}

// NewOptFunc creates a single-value option with a custom converter
func NewOptFunc[T any](names, valueName, descr string, def T, conv Converter[T]) *Opt[T] {
	o := &Opt[T]{optBase: newOptBase(names, valueName, descr), value: def, def: def, conv: conv}
	o.noConv = conv == nil
	return o
}

// NewSize creates an option holding a byte count with k, M or G suffixes.
func NewSize(names, valueName, descr string, def uint64) *Opt[uint64] {
	return NewOptFunc(names, valueName, descr, def, ParseSize)
}

// ConsumesValue reports true
func (o *Opt[T]) ConsumesValue() bool { return true }

// SetFromToken converts token and replaces the value. On failure the value is kept
func (o *Opt[T]) SetFromToken(token string) error {
	v, err := o.conv(token)
	if err != nil {
		return err
	}
	o.value = v
	o.changed = true
	return nil
}

// Reset restores the default and clears Changed
func (o *Opt[T]) Reset() {
	o.value = o.def
	o.changed = false
}

// DefaultString renders the default, or "" for the zero value.
func (o *Opt[T]) DefaultString() string { return formatDefault(o.def) }

func formatDefault[T any](v T) string {
	if reflect.ValueOf(&v).Elem().IsZero() {
		return ""
	}
	return fmt.Sprint(v)
}

// Value returns the current value
func (o *Opt[T]) Value() T { return o.value }

// Default returns the default value
func (o *Opt[T]) Default() T { return o.def }

// OptList is an option collecting values. Every occurrence appends, and a
// single token may carry several comma-separated values.
type OptList[T any] struct {
	optBase
	values []T
	conv   Converter[T]
}

// NewOptList creates a list option using the built-in converter for T
func NewOptList[T any](names, valueName, descr string) *OptList[T] {
	return NewOptListFunc(names, valueName, descr, ConverterFor[T]())
}

// NewOptListFunc creates a list option with a custom converter
func NewOptListFunc[T any](names, valueName, descr string, conv Converter[T]) *OptList[T] {
	o := &OptList[T]{optBase: newOptBase(names, valueName, descr), conv: conv}
	o.noConv = conv == nil
	return o
}

// ConsumesValue reports true
func (o *OptList[T]) ConsumesValue() bool { return true }

// SetFromToken converts every comma-separated item of token and appends
// them in order. Items converted before a failing one stay appended.
func (o *OptList[T]) SetFromToken(token string) error {
	for _, item := range strings.Split(token, ",") {
		v, err := o.conv(item)
		if err != nil {
			return err
		}
		o.values = append(o.values, v)
	}
	o.changed = true
	return nil
}

// Reset empties the list and clears Changed
func (o *OptList[T]) Reset() {
	o.values = o.values[:0]
	o.changed = false
}

// DefaultString returns "": lists start empty
func (o *OptList[T]) DefaultString() string { return "" }

// Values returns a copy of the collected values
func (o *OptList[T]) Values() []T { return append([]T(nil), o.values...) }

// Len returns the number of collected values
func (o *OptList[T]) Len() int { return len(o.values) }

// OptNamed is a single-value option whose value is chosen by name from a
// table filled with Add before parsing.
type OptNamed[T comparable] struct {
	optBase
	value T
	def   T
	table NamedValues[T]
}

// NewOptNamed creates a named-value option
func NewOptNamed[T comparable](names, valueName, descr string, def T) *OptNamed[T] {
	return &OptNamed[T]{optBase: newOptBase(names, valueName, descr), value: def, def: def}
}

// Add registers one accepted name and its value.
func (o *OptNamed[T]) Add(name string, value T) *OptNamed[T] {
	o.table.Add(name, value)
	return o
}

// Choices returns the accepted names in the order they were added
func (o *OptNamed[T]) Choices() []string { return o.table.Names() }

// ConsumesValue reports true
func (o *OptNamed[T]) ConsumesValue() bool { return true }

// SetFromToken looks token up in the name table
func (o *OptNamed[T]) SetFromToken(token string) error {
	v, err := o.table.Convert(token)
	if err != nil {
		return err
	}
	o.value = v
	o.changed = true
	return nil
}

// Reset restores the default and clears Changed
func (o *OptNamed[T]) Reset() {
	o.value = o.def
	o.changed = false
}

// DefaultString returns the name mapped to the default value, if any.
func (o *OptNamed[T]) DefaultString() string {
	for i, v := range o.table.values {
		if v == o.def {
			return o.table.names[i]
		}
	}
	return ""
}

// Value returns the current value
func (o *OptNamed[T]) Value() T { return o.value }

// Default returns the default value
func (o *OptNamed[T]) Default() T { return o.def }
