package cmdline

// Argument is a positional parameter. Implementations are Arg and ArgList.
type Argument interface {
	Name() string
	Description() string
	// Required reports whether parsing fails when no token fills it.
	Required() bool
	// IsList reports whether the argument absorbs all remaining tokens.
	IsList() bool
	SetFromToken(token string) error
	Reset()
	Changed() bool
	DefaultString() string

	argumentBase() *argBase
}

type argBase struct {
	name    string
	descr   string
	changed bool
	noConv  bool
	owner   *CmdLine
}

func (b *argBase) argumentBase() *argBase { return b }

// Name returns the argument name used in usage and errors
func (b *argBase) Name() string { return b.name }

// Description returns the one-line description
func (b *argBase) Description() string { return b.descr }

// Changed reports whether the last parse supplied this argument
func (b *argBase) Changed() bool { return b.changed }

// Arg is a single positional slot.
type Arg[T any] struct {
	argBase
	value  T
	def    T
	hasDef bool
	conv   Converter[T]
}

// NewArg creates a required positional argument
func NewArg[T any](name, descr string) *Arg[T] {
	return newArg(name, descr, *new(T), false, ConverterFor[T]())
}

// NewArgDefault creates an optional positional argument with a default value
func NewArgDefault[T any](name, descr string, def T) *Arg[T] {
	return newArg(name, descr, def, true, ConverterFor[T]())
}

// NewArgFunc creates a positional argument with a custom converter. The
// argument is optional when hasDefault is true.
func NewArgFunc[T any](name, descr string, def T, hasDefault bool, conv Converter[T]) *Arg[T] {
	return newArg(name, descr, def, hasDefault, conv)
}

func newArg[T any](name, descr string, def T, hasDef bool, conv Converter[T]) *Arg[T] {
	a := &Arg[T]{argBase: argBase{name: name, descr: descr}, value: def, def: def, hasDef: hasDef, conv: conv}
	a.noConv = conv == nil
	return a
}

// Required reports whether the argument has no default
func (a *Arg[T]) Required() bool { return !a.hasDef }

// IsList reports false
func (a *Arg[T]) IsList() bool { return false }

// SetFromToken converts token and stores it
func (a *Arg[T]) SetFromToken(token string) error {
	v, err := a.conv(token)
	if err != nil {
		return err
	}
	a.value = v
	a.changed = true
	return nil
}

// Reset restores the default and clears Changed
func (a *Arg[T]) Reset() {
	a.value = a.def
	a.changed = false
}

// DefaultString renders the default of an optional argument, or ""
func (a *Arg[T]) DefaultString() string {
	if !a.hasDef {
		return ""
	}
	return formatDefault(a.def)
}

// Value returns the current value
func (a *Arg[T]) Value() T { return a.value }

// Default returns the default value
func (a *Arg[T]) Default() T { return a.def }

// HasDefault reports whether the argument is optional
func (a *Arg[T]) HasDefault() bool { return a.hasDef }

// ArgList absorbs every positional token left after the scalar arguments.
// It must be the last argument of a command line.
type ArgList[T any] struct {
	argBase
	values []T
	conv   Converter[T]
}

// NewArgList creates a list argument using the built-in converter for T
func NewArgList[T any](name, descr string) *ArgList[T] {
	return NewArgListFunc(name, descr, ConverterFor[T]())
}

// NewArgListFunc creates a list argument with a custom converter
func NewArgListFunc[T any](name, descr string, conv Converter[T]) *ArgList[T] {
	a := &ArgList[T]{argBase: argBase{name: name, descr: descr}, conv: conv}
	a.noConv = conv == nil
	return a
}

// Required reports false: a list argument may be empty
func (a *ArgList[T]) Required() bool { return false }

// IsList reports true
func (a *ArgList[T]) IsList() bool { return true }

// SetFromToken converts token and appends it
func (a *ArgList[T]) SetFromToken(token string) error {
	v, err := a.conv(token)
	if err != nil {
		return err
	}
	a.values = append(a.values, v)
	a.changed = true
	return nil
}

// Reset empties the list and clears Changed
func (a *ArgList[T]) Reset() {
	a.values = a.values[:0]
	a.changed = false
}

// DefaultString returns ""
func (a *ArgList[T]) DefaultString() string { return "" }

// Values returns a copy of the collected values
func (a *ArgList[T]) Values() []T { return append([]T(nil), a.values...) }

// Len returns the number of collected values
func (a *ArgList[T]) Len() int { return len(a.values) }
