package host

import (
	"github.com/cnf/structhash"
)

// fingerprintVersion is the structhash version of the signature layout.
const fingerprintVersion = 1

type classSignature struct {
	Name    string
	Fields  []string
	Links   map[string]string // field name -> class name, for fields holding classes
	Methods []string
}

// signatures returns a description of every capability in the table: classes,
// fields and method signatures, all sorted.
func (t *Table) signatures() []classSignature {
	sigs := make([]classSignature, 0, t.Size())
	for _, name := range t.Classes() {
		c, _ := t.Lookup(name)
		sig := classSignature{
			Name:   name,
			Fields: c.Fields(),
			Links:  make(map[string]string),
		}
		for _, f := range sig.Fields {
			if v, _ := c.FieldValue(f); v != nil {
				if target, ok := v.(*Class); ok {
					sig.Links[f] = target.Name()
				}
			}
		}
		for _, m := range c.Methods() {
			sig.Methods = append(sig.Methods, m.Signature())
		}
		sigs = append(sigs, sig)
	}
	return sigs
}

// Fingerprint returns a stable hash over all capabilities of the table. Hosts
// may use it to detect whether the set of capabilities available to scripts
// has changed, e.g. between releases. Field values and method implementations
// do not contribute to the fingerprint.
func (t *Table) Fingerprint() string {
	h, err := structhash.Hash(t.signatures(), fingerprintVersion)
	if err != nil { // cannot happen for the signature layout
		tracer().Errorf("cannot fingerprint capability table: %v", err)
		return ""
	}
	return h
}
