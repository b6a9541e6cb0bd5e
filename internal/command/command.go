// Package command provides the textual command representation and the
// parser that turns a command line such as "print --preview" into an
// Action for dispatch.
package command

import "strings"

// Action is a parsed command invocation.
type Action struct {
	// Name is the command name (first token).
	Name string

	// Flags holds long-form flags. A bare "--flag" maps to an empty
	// value; "--flag=value" maps to the value. Flag validation is the
	// handler's responsibility; the dispatcher passes them through and
	// handlers ignore flags they do not recognize.
	Flags map[string]string

	// Args are the remaining positional arguments.
	Args []string
}

// HasFlag returns true if the flag is present.
func (a Action) HasFlag(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// Flag returns the flag value and whether it is present.
func (a Action) Flag(name string) (string, bool) {
	v, ok := a.Flags[name]
	return v, ok
}

// IsEmpty returns true if the action has no command name.
func (a Action) IsEmpty() bool {
	return a.Name == ""
}

// Parse tokenizes a command line into an Action.
// Tokens are split on whitespace; tokens starting with "--" become flags,
// everything after the name that is not a flag becomes a positional
// argument. An empty or blank line yields an empty Action.
func Parse(line string) Action {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Action{}
	}

	act := Action{
		Name:  fields[0],
		Flags: make(map[string]string),
	}

	for _, tok := range fields[1:] {
		if strings.HasPrefix(tok, "--") && len(tok) > 2 {
			key, value, _ := strings.Cut(tok[2:], "=")
			act.Flags[key] = value
			continue
		}
		act.Args = append(act.Args, tok)
	}

	return act
}

// String reassembles the action into a canonical command line.
func (a Action) String() string {
	if a.IsEmpty() {
		return ""
	}

	parts := []string{a.Name}
	for key, value := range a.Flags {
		if value == "" {
			parts = append(parts, "--"+key)
		} else {
			parts = append(parts, "--"+key+"="+value)
		}
	}
	parts = append(parts, a.Args...)
	return strings.Join(parts, " ")
}
