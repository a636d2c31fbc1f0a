package cmdline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func definitionKind(t *testing.T, err error) DefinitionKind {
	t.Helper()
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DefinitionError, got %v", err)
	}
	return de.Kind
}

func TestAddOption_Duplicates(t *testing.T) {
	tests := []struct {
		name  string
		third string
		kind  DefinitionKind
	}{
		{"short", "1,string3", DefinitionDuplicateShort},
		{"long", "3,string1", DefinitionDuplicateLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("command")
			mustAdd(t, c,
				NewOpt("1,string1", "astring", "some string", ""),
				NewOpt("2,string2", "astring", "some string", ""))

			third := NewOpt(tt.third, "astring", "some string", "")
			if kind := definitionKind(t, c.AddOption(third)); kind != tt.kind {
				t.Fatalf("kind = %v, want %v", kind, tt.kind)
			}
			// nothing of the failed option is registered
			if len(c.Options()) != 2 {
				t.Errorf("registered %d options, want 2", len(c.Options()))
			}
			if _, ok := c.short["3"]; ok {
				t.Error("short alias of failed option leaked into the table")
			}
			if _, ok := c.long["string3"]; ok {
				t.Error("long alias of failed option leaked into the table")
			}
		})
	}
}

func TestAddOption_Validation(t *testing.T) {
	tests := []struct {
		names string
		kind  DefinitionKind
	}{
		{"h,help", DefinitionDuplicateShort},
		{"?", DefinitionDuplicateShort},
		{"x,help", DefinitionDuplicateLong},
		{"", DefinitionInvalidAlias},
		{"a,,b", DefinitionInvalidAlias},
		{"-a", DefinitionInvalidAlias},
		{"out=file", DefinitionInvalidAlias},
		{"dry run", DefinitionInvalidAlias},
		{"v,v", DefinitionDuplicateShort},
		{"verbose,verbose", DefinitionDuplicateLong},
	}
	for _, tt := range tests {
		t.Run(tt.names, func(t *testing.T) {
			c := New("command")
			err := c.AddOption(NewCounter(tt.names, "gimme help", 0))
			if kind := definitionKind(t, err); kind != tt.kind {
				t.Fatalf("kind = %v, want %v", kind, tt.kind)
			}
			if len(c.Options()) != 0 {
				t.Error("failed option was registered")
			}
		})
	}
}

func TestAddOption_TrimsNames(t *testing.T) {
	c := New("command")
	opt := NewFlag(" v , verbose ", "noise", false)
	mustAdd(t, c, opt)
	if diff := cmp.Diff([]string{"v", "verbose"}, opt.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	mustParse(t, c, "--verbose")
	if !opt.Value() {
		t.Error("--verbose did not match")
	}
}

func TestAddOption_AlreadyRegistered(t *testing.T) {
	a, b := New("a"), New("b")
	opt := NewFlag("v", "noise", false)
	mustAdd(t, a, opt)

	if kind := definitionKind(t, a.AddOption(opt)); kind != DefinitionAlreadyRegistered {
		t.Errorf("same command line: kind = %v", kind)
	}
	if kind := definitionKind(t, b.AddOption(opt)); kind != DefinitionAlreadyRegistered {
		t.Errorf("other command line: kind = %v", kind)
	}
}

func TestAddOption_NoConverter(t *testing.T) {
	type point struct{ x, y int }
	c := New("command")
	if kind := definitionKind(t, c.AddOption(NewOpt("p", "point", "a point", point{}))); kind != DefinitionNoConverter {
		t.Errorf("kind = %v", kind)
	}
	if kind := definitionKind(t, c.AddArgument(NewArg[point]("p", "a point"))); kind != DefinitionNoConverter {
		t.Errorf("kind = %v", kind)
	}
}

func TestRemoveOption(t *testing.T) {
	c := New("command")
	opt := NewFlag("v,verbose", "noise", false)
	mustAdd(t, c, opt)

	if !c.RemoveOption(opt) {
		t.Fatal("RemoveOption reported not registered")
	}
	if c.RemoveOption(opt) {
		t.Fatal("second RemoveOption should report false")
	}
	if pe := parseErr(t, c, "-v"); pe.Type != ErrorTypeUnknownOption {
		t.Errorf("got %v", pe.Type)
	}

	// aliases are free again, and the option can move elsewhere
	mustAdd(t, c, NewCounter("v,verbose", "noise", 0))
	mustAdd(t, New("other"), opt)
}

func TestAddArgument_Order(t *testing.T) {
	c := New("command")
	mustAdd(t, c, NewArgDefault("name", "specifies the name", ""))
	if kind := definitionKind(t, c.AddArgument(NewArg[int]("number", "specifies the number"))); kind != DefinitionArgumentOrder {
		t.Errorf("kind = %v", kind)
	}
	if len(c.Arguments()) != 1 {
		t.Errorf("failed argument was registered")
	}
	// optional after optional and a trailing list are fine
	mustAdd(t, c, NewArgDefault("number", "specifies the number", 0), NewArgList[string]("rest", "rest"))
}

func TestAddArgument_ListMustBeLast(t *testing.T) {
	c := New("command")
	mustAdd(t, c, NewArgList[string]("files", "files"))

	if kind := definitionKind(t, c.AddArgument(NewArgDefault("mode", "mode", "r"))); kind != DefinitionListNotLast {
		t.Errorf("scalar after list: kind = %v", kind)
	}
	if kind := definitionKind(t, c.AddArgument(NewArgList[int]("more", "more"))); kind != DefinitionListNotLast {
		t.Errorf("second list: kind = %v", kind)
	}
}

func TestAddArgument_AlreadyRegistered(t *testing.T) {
	c := New("command")
	arg := NewArg[string]("name", "name")
	mustAdd(t, c, arg)
	if kind := definitionKind(t, New("other").AddArgument(arg)); kind != DefinitionAlreadyRegistered {
		t.Errorf("kind = %v", kind)
	}

	if !c.RemoveArgument(arg) {
		t.Fatal("RemoveArgument reported not registered")
	}
	if len(c.Arguments()) != 0 {
		t.Fatal("argument still listed")
	}
	mustParse(t, c)
}

func TestGroups(t *testing.T) {
	c := New("command")
	attached := NewGroup("Input options")
	mustAdd(t, c, attached)
	if kind := definitionKind(t, New("other").AddGroup(attached)); kind != DefinitionAlreadyRegistered {
		t.Errorf("kind = %v", kind)
	}

	x := NewOpt("x", "n", "x", 0)
	if err := attached.AddOption(x); err != nil {
		t.Fatal(err)
	}
	if err := attached.AddOption(NewOpt("x", "n", "x again", 0)); err == nil {
		t.Fatal("duplicate through a group should fail")
	}

	detached := NewGroup("Output options")
	y := NewOpt("y", "n", "y", 0)
	z := NewOpt("x", "n", "clash", 0)
	if err := detached.AddOption(y); err != nil {
		t.Fatal(err)
	}
	if err := detached.AddOption(z); err != nil {
		t.Fatal("detached groups defer validation")
	}
	if kind := definitionKind(t, c.AddGroup(detached)); kind != DefinitionDuplicateShort {
		t.Errorf("kind = %v", kind)
	}

	// the failed attach registers nothing
	if got := len(attached.Options()); got != 1 {
		t.Errorf("attached group has %d options", got)
	}
	if got := len(detached.Options()); got != 0 {
		t.Errorf("detached group has %d options after a failed attach", got)
	}
	if got := len(c.Groups()); got != 1 {
		t.Errorf("command line has %d groups", got)
	}
	if _, ok := c.short["y"]; ok {
		t.Error("y registered by a failed attach")
	}

	c.RemoveOption(x)
	if len(attached.Options()) != 0 {
		t.Error("removed option still listed in its group")
	}

	// once the clash is gone the same group attaches with all its options
	if err := c.AddGroup(detached); err != nil {
		t.Fatal(err)
	}
	if got := len(detached.Options()); got != 2 {
		t.Errorf("detached group has %d options, want 2", got)
	}
	if err := c.Parse([]string{"-y", "1", "-x", "2"}); err != nil {
		t.Fatal(err)
	}
	if y.Value() != 1 || z.Value() != 2 {
		t.Errorf("y=%d x=%d", y.Value(), z.Value())
	}
	if got := len(c.Groups()); got != 2 {
		t.Errorf("command line has %d groups", got)
	}
}

func TestNew_Settings(t *testing.T) {
	codes := NewExitCodeManager()
	c := New("copy", WithDescription("copies things"), WithSuggestions(true), WithExitCodes(codes))
	if c.Command() != "copy" || c.Description() != "copies things" {
		t.Errorf("got %q %q", c.Command(), c.Description())
	}
	if c.ExitCodes() != codes || !c.suggestions {
		t.Error("settings not applied")
	}
	if c.IO() == nil || c.Logger() == nil {
		t.Error("defaults missing")
	}
}
