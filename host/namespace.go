package host

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Namespaces is an ordered registry of namespace prefixes. Prefixes are
// consulted in registration order when resolving short class names. The
// registry is never pruned during a script run.
type Namespaces struct {
	prefixes *arraylist.List // of string
}

// NewNamespaces creates an empty namespace registry.
func NewNamespaces() *Namespaces {
	return &Namespaces{prefixes: arraylist.New()}
}

// Register appends a prefix. Prefixes are dot-separated identifiers; a
// malformed prefix is not registered and reported as a BadNamespace miss.
// Registering a prefix twice is allowed and does not change resolution.
func (ns *Namespaces) Register(prefix string) *Miss {
	if !wellformed(prefix) {
		return &Miss{Kind: BadNamespace, Name: prefix}
	}
	ns.prefixes.Add(prefix)
	return nil
}

func wellformed(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, seg := range strings.Split(prefix, ".") {
		if seg == "" || strings.ContainsAny(seg, " \t\n:()") {
			return false
		}
	}
	return true
}

// Size returns the number of registered prefixes.
func (ns *Namespaces) Size() int {
	return ns.prefixes.Size()
}

// Prefixes returns all prefixes in registration order.
func (ns *Namespaces) Prefixes() []string {
	p := make([]string, 0, ns.prefixes.Size())
	ns.prefixes.Each(func(_ int, v interface{}) {
		p = append(p, v.(string))
	})
	return p
}

// Qualify returns the candidate qualified names for a short name, one per
// registered prefix, in registration order.
func (ns *Namespaces) Qualify(short string) []string {
	q := make([]string, 0, ns.prefixes.Size())
	ns.prefixes.Each(func(_ int, v interface{}) {
		q = append(q, v.(string)+"."+short)
	})
	return q
}
