package host

import "fmt"

// MissKind classifies silent misses.
type MissKind int

// Kinds of silent misses.
const (
	NoClass          MissKind = iota // class name did not resolve in any namespace
	NoField                          // no such public field
	NoMethod                         // no overload matching name and argument types
	InvokeFailed                     // the host method returned an error or panicked
	BadNamespace                     // malformed namespace prefix
	UndeclaredAssign                 // assignment to a variable which does not exist
)

var missNames = [...]string{"no class", "no field", "no method", "invoke failed",
	"bad namespace", "undeclared assignment"}

func (k MissKind) String() string {
	if int(k) < len(missNames) {
		return missNames[k]
	}
	return fmt.Sprintf("miss(%d)", int(k))
}

// Miss describes a silent miss: something a script asked for was not there.
// Misses are never propagated as failures. Miss implements error only to
// carry a readable message.
type Miss struct {
	Kind  MissKind
	Name  string // the name which was not found
	Cause error  // underlying cause, if any
}

func (m *Miss) Error() string {
	if m.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", m.Kind, m.Name, m.Cause)
	}
	return fmt.Sprintf("%s: %s", m.Kind, m.Name)
}

// Unwrap returns the cause of a miss.
func (m *Miss) Unwrap() error {
	return m.Cause
}
