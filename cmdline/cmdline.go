// Package cmdline declares typed options and positional arguments for a
// command and parses argv-style token lists into them.
//
// A CmdLine owns nothing but the alias tables: options and arguments are
// created by the caller, registered explicitly, reset at the start of every
// Parse call and updated in place while tokens are matched.
package cmdline

import (
	"slices"
	"strings"
	"unicode"

	cmdio "github.com/dzonerzy/go-cmdline/io"
)

// Built-in help aliases. They are always registered and cannot be reused.
const (
	HelpShort    = "h"
	HelpShortAlt = "?"
	HelpLong     = "help"
)

func isHelpAlias(alias string) bool {
	return alias == HelpShort || alias == HelpShortAlt || alias == HelpLong
}

// CmdLine is the registry of options and arguments for one command.
// It is not safe for concurrent use.
type CmdLine struct {
	command     string
	description string

	args    []Argument
	options []Option
	short   map[string]Option
	long    map[string]Option
	groups  []*Group

	helpWanted bool

	io          *cmdio.IOManager
	logger      *cmdio.Logger
	suggestions bool
	exitCodes   *ExitCodeManager
}

// Setting configures a CmdLine at construction time.
type Setting func(*CmdLine)

// WithDescription sets the text printed under the usage line
func WithDescription(descr string) Setting {
	return func(c *CmdLine) { c.description = descr }
}

// WithIO routes usage and error output through m
func WithIO(m *cmdio.IOManager) Setting {
	return func(c *CmdLine) { c.io = m }
}

// WithSuggestions enables "did you mean" hints for unknown long options
func WithSuggestions(enabled bool) Setting {
	return func(c *CmdLine) { c.suggestions = enabled }
}

// WithExitCodes replaces the exit code mapping used by Main
func WithExitCodes(m *ExitCodeManager) Setting {
	return func(c *CmdLine) { c.exitCodes = m }
}

// New creates an empty command line for the named command.
func New(command string, settings ...Setting) *CmdLine {
	c := &CmdLine{
		command: command,
		short:   make(map[string]Option),
		long:    make(map[string]Option),
	}
	for _, s := range settings {
		s(c)
	}
	if c.io == nil {
		c.io = cmdio.New()
	}
	if c.exitCodes == nil {
		c.exitCodes = NewExitCodeManager()
	}
	c.logger = cmdio.NewLogger(c.io).WithFormat(cmdio.LogFormatPlain)
	return c
}

// Command returns the command name
func (c *CmdLine) Command() string { return c.command }

// Description returns the command description
func (c *CmdLine) Description() string { return c.description }

// HelpWanted reports whether the last Parse saw -h, -? or --help.
func (c *CmdLine) HelpWanted() bool { return c.helpWanted }

// IO returns the IO manager used for usage and error output
func (c *CmdLine) IO() *cmdio.IOManager { return c.io }

// Logger returns the logger used by Main
func (c *CmdLine) Logger() *cmdio.Logger { return c.logger }

// ExitCodes returns the exit code mapping used by Main
func (c *CmdLine) ExitCodes() *ExitCodeManager { return c.exitCodes }

// Options returns the registered options in registration order
func (c *CmdLine) Options() []Option { return slices.Clone(c.options) }

// Arguments returns the registered arguments in declaration order
func (c *CmdLine) Arguments() []Argument { return slices.Clone(c.args) }

// Groups returns the attached option groups
func (c *CmdLine) Groups() []*Group { return slices.Clone(c.groups) }

// AddOption registers opt. It fails without side effects if opt is already
// registered, declares no or malformed aliases, or reuses an alias.
func (c *CmdLine) AddOption(opt Option) error {
	return c.addOption(opt, nil)
}

func (c *CmdLine) addOption(opt Option, group *Group) error {
	b := opt.optionBase()
	if b.owner != nil {
		return newDefinitionError(DefinitionAlreadyRegistered, strings.Join(b.names, ","),
			"option %q is already registered", strings.Join(b.names, ","))
	}
	if len(b.names) == 0 {
		return newDefinitionError(DefinitionInvalidAlias, "", "option has no names")
	}
	if b.noConv {
		return newDefinitionError(DefinitionNoConverter, b.names[0],
			"option %q has no converter for its value type", b.names[0])
	}

	seen := make(map[string]bool, len(b.names))
	for _, alias := range b.names {
		if err := validateAlias(alias); err != nil {
			return err
		}
		if isShortAlias(alias) {
			if _, taken := c.short[alias]; taken || seen[alias] || isHelpAlias(alias) {
				return newDefinitionError(DefinitionDuplicateShort, alias, "short option -%s is already defined", alias)
			}
		} else {
			if _, taken := c.long[alias]; taken || seen[alias] || isHelpAlias(alias) {
				return newDefinitionError(DefinitionDuplicateLong, alias, "long option --%s is already defined", alias)
			}
		}
		seen[alias] = true
	}

	for _, alias := range b.names {
		if isShortAlias(alias) {
			c.short[alias] = opt
		} else {
			c.long[alias] = opt
		}
	}
	c.options = append(c.options, opt)
	b.owner = c
	b.group = group
	if group != nil {
		group.options = append(group.options, opt)
	}
	return nil
}

func validateAlias(alias string) error {
	switch {
	case alias == "":
		return newDefinitionError(DefinitionInvalidAlias, alias, "empty option name")
	case strings.HasPrefix(alias, "-"):
		return newDefinitionError(DefinitionInvalidAlias, alias, "option name %q must not start with '-'", alias)
	case strings.ContainsRune(alias, '='):
		return newDefinitionError(DefinitionInvalidAlias, alias, "option name %q must not contain '='", alias)
	case strings.IndexFunc(alias, unicode.IsSpace) >= 0:
		return newDefinitionError(DefinitionInvalidAlias, alias, "option name %q must not contain spaces", alias)
	}
	return nil
}

// RemoveOption detaches opt so that it can be dropped or registered again.
// It reports whether opt was registered here.
func (c *CmdLine) RemoveOption(opt Option) bool {
	b := opt.optionBase()
	if b.owner != c {
		return false
	}
	for _, alias := range b.names {
		if isShortAlias(alias) {
			delete(c.short, alias)
		} else {
			delete(c.long, alias)
		}
	}
	c.options = slices.DeleteFunc(c.options, func(o Option) bool { return o == opt })
	if b.group != nil {
		b.group.options = slices.DeleteFunc(b.group.options, func(o Option) bool { return o == opt })
	}
	b.owner = nil
	b.group = nil
	return true
}

// AddArgument appends arg to the positional arguments. A required argument
// may not follow an optional one, and a list argument must come last.
func (c *CmdLine) AddArgument(arg Argument) error {
	b := arg.argumentBase()
	if b.owner != nil {
		return newDefinitionError(DefinitionAlreadyRegistered, b.name, "argument %q is already registered", b.name)
	}
	if b.noConv {
		return newDefinitionError(DefinitionNoConverter, b.name, "argument %q has no converter for its value type", b.name)
	}
	if n := len(c.args); n > 0 && c.args[n-1].IsList() {
		return newDefinitionError(DefinitionListNotLast, b.name,
			"argument %q follows list argument %q; a list argument must be last", b.name, c.args[n-1].Name())
	}
	if arg.Required() && !arg.IsList() {
		for _, prev := range c.args {
			if !prev.Required() {
				return newDefinitionError(DefinitionArgumentOrder, b.name,
					"required argument %q follows optional argument %q", b.name, prev.Name())
			}
		}
	}

	c.args = append(c.args, arg)
	b.owner = c
	return nil
}

// RemoveArgument detaches arg. It reports whether arg was registered here.
func (c *CmdLine) RemoveArgument(arg Argument) bool {
	b := arg.argumentBase()
	if b.owner != c {
		return false
	}
	c.args = slices.DeleteFunc(c.args, func(a Argument) bool { return a == arg })
	b.owner = nil
	return true
}

// AddGroup attaches g and registers the options added to g before this
// call. If any of them fails, none is registered and g stays detached
// with its options pending, so AddGroup can be retried.
func (c *CmdLine) AddGroup(g *Group) error {
	if g.owner != nil {
		return newDefinitionError(DefinitionAlreadyRegistered, g.name, "group %q is already attached", g.name)
	}

	for i, opt := range g.pending {
		if err := c.addOption(opt, g); err != nil {
			for _, added := range g.pending[:i] {
				c.RemoveOption(added)
			}
			return err
		}
	}

	g.owner = c
	g.pending = nil
	c.groups = append(c.groups, g)
	return nil
}

// longNames returns every registered long alias plus help, for suggestions.
func (c *CmdLine) longNames() []string {
	names := make([]string, 0, len(c.long)+1)
	names = append(names, HelpLong)
	for name := range c.long {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// reset restores every option and argument to its default.
func (c *CmdLine) reset() {
	c.helpWanted = false
	for _, opt := range c.options {
		opt.Reset()
	}
	for _, arg := range c.args {
		arg.Reset()
	}
}
