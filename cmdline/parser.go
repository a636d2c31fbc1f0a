package cmdline

import (
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-cmdline/internal/fuzzy"
	"github.com/dzonerzy/go-cmdline/internal/pool"
)

// suggestionDistance is the maximum edit distance for unknown option hints.
const suggestionDistance = 2

// parseState represents the current state of the parser state machine
type parseState int

const (
	stateOptions    parseState = iota // options and positionals interleaved
	statePositional                   // after "--": everything is positional
)

// parser holds the state of a single Parse call.
type parser struct {
	cl       *CmdLine
	args     []string
	position int
	state    parseState
	nextArg  int      // index of the next argument to fill
	surplus  []string // positionals no argument could take
}

// Parse resets every registered option and argument to its default and
// then matches args (without the program name) against them.
//
// Matching is eager: when Parse fails, options and arguments seen before
// the failing token keep their new values. Callers should not rely on
// that state after an error.
func (c *CmdLine) Parse(args []string) error {
	c.reset()
	p := parsers.Get()
	defer func() {
		p.cl, p.args = nil, nil
		parsers.Put(p)
	}()
	p.cl, p.args = c, args
	return p.run()
}

var parsers = pool.NewPoolWithReset(
	func() *parser { return &parser{} },
	func(p *parser) {
		clear(p.surplus)
		*p = parser{surplus: p.surplus[:0]}
	},
)

func (p *parser) run() error {
	// Main parsing loop - single pass, left to right
	for p.position < len(p.args) {
		if err := p.parseToken(p.args[p.position]); err != nil {
			return err
		}
		p.position++
	}
	return p.finalize()
}

func (p *parser) parseToken(token string) error {
	if p.state == statePositional {
		return p.parsePositional(token)
	}

	switch {
	case token == "--":
		p.state = statePositional
		return nil
	case strings.HasPrefix(token, "--"):
		return p.parseLong(token[2:])
	case len(token) > 1 && token[0] == '-':
		return p.parseShort(token)
	default:
		// includes "-" alone, commonly meaning stdin
		return p.parsePositional(token)
	}
}

// parseLong handles --name and --name=value.
func (p *parser) parseLong(body string) error {
	name, value, hasValue := strings.Cut(body, "=")

	if name == HelpLong {
		if hasValue {
			return newUnexpectedValueError("--"+name, value)
		}
		p.cl.helpWanted = true
		return nil
	}

	opt := p.cl.long[name]
	if opt == nil {
		return newUnknownLongError(name, fuzzy.Closest(name, p.cl.longNames(), suggestionDistance))
	}

	written := "--" + name
	if !opt.ConsumesValue() {
		if hasValue {
			return newUnexpectedValueError(written, value)
		}
		return p.apply(opt, written, "")
	}
	if !hasValue {
		next, ok := p.nextToken()
		if !ok {
			return newMissingValueError(written)
		}
		value = next
	}
	return p.apply(opt, written, value)
}

// parseShort handles a cluster such as -v, -vvt, -ofile or -o file.
// No-value options keep the scan going; the first value-taking option
// consumes the rest of the token or, if nothing is left, the next token.
func (p *parser) parseShort(token string) error {
	position := 1
	for i := 1; i < len(token); position++ {
		r, size := utf8.DecodeRuneInString(token[i:])
		name := token[i : i+size]
		i += size

		if name == HelpShort || name == HelpShortAlt {
			p.cl.helpWanted = true
			continue
		}

		opt := p.cl.short[name]
		if opt == nil {
			return newUnknownShortError(r, token, position)
		}

		written := "-" + name
		if !opt.ConsumesValue() {
			if err := p.apply(opt, written, ""); err != nil {
				return err
			}
			continue
		}

		if rest := token[i:]; rest != "" {
			return p.apply(opt, written, rest)
		}
		next, ok := p.nextToken()
		if !ok {
			return newMissingValueError(written)
		}
		return p.apply(opt, written, next)
	}
	return nil
}

// nextToken consumes the token following the current one.
func (p *parser) nextToken() (string, bool) {
	if p.position+1 >= len(p.args) {
		return "", false
	}
	p.position++
	return p.args[p.position], true
}

func (p *parser) apply(opt Option, written, value string) error {
	if err := opt.SetFromToken(value); err != nil {
		return newOptionValueError(written, value, err)
	}
	return nil
}

// parsePositional gives token to the next unfilled argument, or to the
// trailing list argument once the scalars are filled.
func (p *parser) parsePositional(token string) error {
	if p.nextArg >= len(p.cl.args) {
		p.surplus = append(p.surplus, token)
		return nil
	}

	arg := p.cl.args[p.nextArg]
	if err := arg.SetFromToken(token); err != nil {
		return newArgumentValueError(arg.Name(), token, err)
	}
	if !arg.IsList() {
		p.nextArg++
	}
	return nil
}

// finalize checks argument counts. Help requests skip the checks.
func (p *parser) finalize() error {
	if p.cl.helpWanted {
		return nil
	}

	for _, arg := range p.cl.args[p.nextArg:] {
		if arg.Required() {
			return &ParseError{
				Type:     ErrorTypeTooFewArguments,
				Message:  "too few arguments: missing required argument '" + arg.Name() + "'",
				Argument: arg.Name(),
			}
		}
	}

	if len(p.surplus) > 0 {
		return &ParseError{
			Type:    ErrorTypeTooManyArguments,
			Message: "too many arguments: unexpected '" + p.surplus[0] + "'",
			Token:   p.surplus[0],
		}
	}
	return nil
}
