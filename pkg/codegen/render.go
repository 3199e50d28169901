// Package codegen renders native catalog entries as C# wrapper methods that
// forward to the RAGE native dispatcher.
package codegen

import (
	"strings"

	"github.com/holon-run/nativegen/pkg/natives"
)

// DefaultDispatcher is the receiver every generated body calls into.
const DefaultDispatcher = "NativeFunction.Natives"

// NamespaceStats summarises what was emitted for one namespace.
type NamespaceStats struct {
	Name         string
	Functions    int
	Placeholders int // Any/Any* parameters hidden from declarations
	OutParams    int
}

// Stats summarises a whole render.
type Stats struct {
	Namespaces []NamespaceStats
}

// Functions returns the number of emitted functions.
func (s Stats) Functions() int {
	n := 0
	for _, ns := range s.Namespaces {
		n += ns.Functions
	}
	return n
}

// Renderer turns a catalog into the body text of the generated file.
type Renderer struct {
	// Dispatcher is the expression the bodies call natives on.
	Dispatcher string
	// OnNamespace, if set, is called before each namespace is rendered.
	OnNamespace func(name string, functions int)
}

// NewRenderer returns a Renderer calling DefaultDispatcher.
func NewRenderer() *Renderer {
	return &Renderer{Dispatcher: DefaultDispatcher}
}

// Render emits every namespace and function in catalog order.
func (r *Renderer) Render(catalog *natives.Catalog) (string, Stats) {
	var sb strings.Builder
	stats := Stats{Namespaces: make([]NamespaceStats, 0, len(catalog.Namespaces))}

	for _, ns := range catalog.Namespaces {
		if r.OnNamespace != nil {
			r.OnNamespace(ns.Name, len(ns.Functions))
		}
		stats.Namespaces = append(stats.Namespaces, r.renderNamespace(&sb, ns))
	}
	return sb.String(), stats
}

func (r *Renderer) renderNamespace(sb *strings.Builder, ns natives.Namespace) NamespaceStats {
	stats := NamespaceStats{Name: ns.Name}

	sb.WriteString("\t/*\n\t\t")
	sb.WriteString(ns.Name)
	sb.WriteString("\n\t*/\n")

	for _, entry := range ns.Functions {
		sig := buildSignature(entry.Function.Params)
		stats.Functions++
		stats.Placeholders += sig.placeholders
		stats.OutParams += sig.outParams

		writeDocComment(sb, entry.Function.Comment)
		r.writeFunction(sb, entry.Function, sig)
	}
	return stats
}

// RenderFunction renders a single function, doc comment included.
func (r *Renderer) RenderFunction(fn natives.Function) string {
	var sb strings.Builder
	writeDocComment(&sb, fn.Comment)
	r.writeFunction(&sb, fn, buildSignature(fn.Params))
	return sb.String()
}

func writeDocComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	sb.WriteString("\t/// <summary>\n")
	sb.WriteString("\t/// \t")
	sb.WriteString(strings.ReplaceAll(EscapeXML(comment), "\n", "<br/>\n\t/// \t"))
	sb.WriteString("\n")
	sb.WriteString("\t/// </summary>\n")
}

func (r *Renderer) writeFunction(sb *strings.Builder, fn natives.Function, sig signature) {
	returnType := RemapType(fn.ReturnType)

	sb.WriteString("\tpublic static ")
	sb.WriteString(ReturnType(fn.ReturnType))
	sb.WriteByte(' ')
	sb.WriteString(fn.Name)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(sig.decl, ", "))
	sb.WriteString(")\n\t{\n\t\t")
	if returnType != "void" {
		sb.WriteString("return ")
	}
	sb.WriteString(r.Dispatcher)
	sb.WriteByte('.')
	sb.WriteString(RemapIdentifier(fn.Name))
	sb.WriteByte('(')
	sb.WriteString(strings.Join(sig.call, ", "))
	sb.WriteString(");\n\t}\n")
}

// signature holds the declaration and forwarding-call halves of a parameter
// list. call always has one element per catalog parameter.
type signature struct {
	decl         []string
	call         []string
	placeholders int
	outParams    int
}

func buildSignature(params []natives.Param) signature {
	sig := signature{
		decl: make([]string, 0, len(params)),
		call: make([]string, 0, len(params)),
	}
	for _, p := range params {
		typ := RemapType(p.Type)
		name := RemapIdentifier(p.Name)

		switch {
		case isPlaceholder(typ):
			// the dispatcher still expects an argument in this slot
			sig.call = append(sig.call, "0")
			sig.placeholders++
		case strings.Contains(typ, "*"):
			sig.decl = append(sig.decl, "out "+strings.ReplaceAll(typ, "*", "")+" "+name)
			sig.call = append(sig.call, "out "+name)
			sig.outParams++
		default:
			sig.decl = append(sig.decl, typ+" "+name)
			sig.call = append(sig.call, name)
		}
	}
	return sig
}
