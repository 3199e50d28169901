// Package natives models the native function catalog published by the
// gta5-nativedb-data project and parses it without losing document order.
package natives

// Function describes a single native as listed in the catalog.
type Function struct {
	Name       string  `json:"name"`
	Hash       string  `json:"jhash"`
	Comment    string  `json:"comment"`
	Params     []Param `json:"params"`
	ReturnType string  `json:"return_type"`
	Build      string  `json:"build,omitempty"`
}

// Param is one positional parameter of a native.
type Param struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Entry pairs a function with the key it was listed under (the native hash
// in the upstream catalog).
type Entry struct {
	Key      string
	Function Function
}

// Namespace groups the natives declared under one top-level catalog key.
type Namespace struct {
	Name      string
	Functions []Entry
}

// Catalog is the parsed document. Namespaces and their functions keep the
// order in which they appear in the source text.
type Catalog struct {
	Namespaces []Namespace
}

// Len returns the total number of functions across all namespaces.
func (c *Catalog) Len() int {
	n := 0
	for _, ns := range c.Namespaces {
		n += len(ns.Functions)
	}
	return n
}

// Namespace returns the namespace with the given name.
func (c *Catalog) Namespace(name string) (*Namespace, bool) {
	for i := range c.Namespaces {
		if c.Namespaces[i].Name == name {
			return &c.Namespaces[i], true
		}
	}
	return nil, false
}

// Filter returns a catalog holding only the namespaces keep accepts, in the
// original order. The receiver is not modified.
func (c *Catalog) Filter(keep func(namespace string) bool) *Catalog {
	out := &Catalog{Namespaces: make([]Namespace, 0, len(c.Namespaces))}
	for _, ns := range c.Namespaces {
		if keep(ns.Name) {
			out.Namespaces = append(out.Namespaces, ns)
		}
	}
	return out
}
