package cmdline

import (
	"errors"
	"fmt"
	"os"
)

// ExitError requests a specific exit code from application code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	HelpShown       int // default: 0
	DefinitionError int // default: 70 (EX_SOFTWARE)
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, HelpShown: 0, DefinitionError: 70}
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByParse map[ErrorType]int
	codesByError []errorCode
	defaults     ExitCodeDefaults
}

type errorCode struct {
	target error
	code   int
}

// NewExitCodeManager returns a manager where every parse error maps to the
// misusage code.
func NewExitCodeManager() *ExitCodeManager {
	return &ExitCodeManager{
		codesByParse: make(map[ErrorType]int),
		defaults:     defaultExitDefaults(),
	}
}

// DefineType overrides the exit code used for one parse error category
func (e *ExitCodeManager) DefineType(typ ErrorType, code int) *ExitCodeManager {
	e.codesByParse[typ] = code
	return e
}

// DefineError maps an error value to an exit code. Errors passed to Resolve
// are matched with errors.Is, in definition order.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByError = append(e.codesByError, errorCode{target: err, code: code})
	return e
}

// Default replaces the manager's default codes.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager { e.defaults = d; return e }

// Defaults returns the current default codes
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ExitError (requested code)
//  2. ParseError category mapping (DefineType), else MisusageError
//  3. DefinitionError
//  4. Error value mapping (DefineError)
//  5. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if code, ok := e.codesByParse[parseErr.Type]; ok {
			return code
		}
		return e.defaults.MisusageError
	}

	var defErr *DefinitionError
	if errors.As(err, &defErr) {
		return e.defaults.DefinitionError
	}

	for _, ec := range e.codesByError {
		if errors.Is(err, ec.target) {
			return ec.code
		}
	}

	return e.defaults.GeneralError
}

// Main parses args and handles the outcomes a program does not want to
// deal with itself. It returns proceed == true only after a successful
// parse without a help request. Otherwise the caller should exit with code:
// help has been written to stdout, or the error, a hint and the synopsis
// have been written to stderr. If writing the help or the synopsis fails,
// code is GeneralError.
func (c *CmdLine) Main(args []string) (code int, proceed bool) {
	err := c.Parse(args)
	if err != nil {
		if werr := c.reportError(err); werr != nil {
			return c.exitCodes.defaults.GeneralError, false
		}
		return c.exitCodes.Resolve(err), false
	}
	if c.helpWanted {
		if err := c.Usage(c.io.Out()); err != nil {
			return c.exitCodes.defaults.GeneralError, false
		}
		return c.exitCodes.defaults.HelpShown, false
	}
	return c.exitCodes.defaults.Success, true
}

// ParseOrExit calls Main and terminates the process unless parsing
// succeeded without a help request.
func (c *CmdLine) ParseOrExit(args []string) {
	if code, proceed := c.Main(args); !proceed {
		os.Exit(code)
	}
}

func (c *CmdLine) reportError(err error) error {
	c.logger.Error("%s: %v", c.command, err)

	var parseErr *ParseError
	if c.suggestions && errors.As(err, &parseErr) && parseErr.Suggestion != "" {
		c.logger.Warning("Did you mean '--%s'?", parseErr.Suggestion)
	}

	errOut := c.io.Err()
	if err := c.ShortUsage(errOut); err != nil {
		return err
	}
	_, err = fmt.Fprintf(errOut, "Try '%s --%s' for more information.\n", c.command, HelpLong)
	return err
}
