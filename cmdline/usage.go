package cmdline

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-cmdline/internal/pool"
)

const helpDescription = "show this help and exit"

// minDescrWidth is the narrowest description column usage wraps to.
const minDescrWidth = 20

// choiceLister is implemented by options whose values are picked by name.
type choiceLister interface {
	Choices() []string
}

// usageRow is one aligned line of a usage section.
type usageRow struct {
	label string
	descr string
}

// ShortUsage writes the one-line synopsis, e.g.
//
//	Usage: copy [options] <src> [dst] [more ...]
func (c *CmdLine) ShortUsage(w io.Writer) error {
	_, err := io.WriteString(w, c.synopsis()+"\n")
	return err
}

// Usage writes the synopsis followed by the description, the positional
// arguments, the ungrouped options and one section per group.
// Descriptions are wrapped to the IO manager's width and section titles
// are bold when it supports color.
func (c *CmdLine) Usage(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(c.synopsis())
	bw.WriteString("\n")
	if c.description != "" {
		bw.WriteString("\n" + c.description + "\n")
	}

	if len(c.args) > 0 {
		rows := make([]usageRow, 0, len(c.args))
		for _, arg := range c.args {
			rows = append(rows, usageRow{label: arg.Name(), descr: withDefault(arg.Description(), arg.DefaultString())})
		}
		c.writeSection(bw, "Arguments", rows)
	}

	rows := []usageRow{{label: "-" + HelpShort + ", -" + HelpShortAlt + ", --" + HelpLong, descr: helpDescription}}
	for _, opt := range c.options {
		if opt.optionBase().group == nil {
			rows = append(rows, optionRow(opt))
		}
	}
	c.writeSection(bw, "Options", rows)

	for _, g := range c.groups {
		if len(g.options) == 0 {
			continue
		}
		rows := make([]usageRow, 0, len(g.options))
		for _, opt := range g.options {
			rows = append(rows, optionRow(opt))
		}
		c.writeSection(bw, g.name, rows)
	}

	return bw.Flush()
}

func (c *CmdLine) synopsis() string {
	var sb strings.Builder
	sb.WriteString("Usage: ")
	sb.WriteString(c.command)
	sb.WriteString(" [options]")
	for _, arg := range c.args {
		sb.WriteByte(' ')
		switch {
		case arg.IsList():
			sb.WriteString("[" + arg.Name() + " ...]")
		case arg.Required():
			sb.WriteString("<" + arg.Name() + ">")
		default:
			sb.WriteString("[" + arg.Name() + "]")
		}
	}
	return sb.String()
}

// optionLabel renders the aliases short first, e.g. "-o, --output file".
func optionLabel(opt Option) string {
	parts := pool.GetStringSlice()
	defer pool.PutStringSlice(parts)
	for _, alias := range opt.Names() {
		if isShortAlias(alias) {
			*parts = append(*parts, "-"+alias)
		}
	}
	for _, alias := range opt.Names() {
		if !isShortAlias(alias) {
			*parts = append(*parts, "--"+alias)
		}
	}
	label := strings.Join(*parts, ", ")
	if opt.ConsumesValue() {
		name := opt.ValueName()
		if name == "" {
			name = "value"
		}
		label += " " + name
	}
	return label
}

func optionRow(opt Option) usageRow {
	descr := opt.Description()
	if cl, ok := opt.(choiceLister); ok {
		if choices := cl.Choices(); len(choices) > 0 {
			descr = strings.TrimSpace(descr + " (one of: " + strings.Join(choices, ", ") + ")")
		}
	}
	return usageRow{label: optionLabel(opt), descr: withDefault(descr, opt.DefaultString())}
}

func withDefault(descr, def string) string {
	if def == "" {
		return descr
	}
	return strings.TrimSpace(descr + " (default: " + def + ")")
}

func (c *CmdLine) writeSection(w *bufio.Writer, title string, rows []usageRow) {
	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r.label))
	}
	column := width + 4
	indent := strings.Repeat(" ", column)

	w.WriteString("\n" + c.io.Bold(title+":") + "\n")
	for _, r := range rows {
		w.WriteString("  ")
		w.WriteString(r.label)
		if r.descr != "" {
			w.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(r.label)+2))
			for i, line := range wrapWords(r.descr, max(c.io.Width()-column, minDescrWidth)) {
				if i > 0 {
					w.WriteString("\n" + indent)
				}
				w.WriteString(line)
			}
		}
		w.WriteString("\n")
	}
}

// wrapWords splits s into lines of at most width runes at spaces. A word
// longer than width gets a line of its own.
func wrapWords(s string, width int) []string {
	var lines []string
	var line strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		wn := utf8.RuneCountInString(word)
		if n > 0 && n+1+wn > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += wn
	}
	if n > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
