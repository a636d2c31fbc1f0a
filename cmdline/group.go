package cmdline

import "slices"

// Group is a named set of options used to organize usage output. It has no
// parsing state of its own: registrations are forwarded to the CmdLine it
// is attached to.
type Group struct {
	name    string
	owner   *CmdLine
	options []Option
	pending []Option
}

// NewGroup creates a detached group
func NewGroup(name string) *Group {
	return &Group{name: name}
}

// Name returns the group title
func (g *Group) Name() string { return g.name }

// Options returns the options registered through this group
func (g *Group) Options() []Option { return slices.Clone(g.options) }

// AddOption registers opt on the owning CmdLine and lists it under this
// group. On a detached group the registration is deferred to AddGroup.
func (g *Group) AddOption(opt Option) error {
	if g.owner == nil {
		g.pending = append(g.pending, opt)
		return nil
	}
	return g.owner.addOption(opt, g)
}
