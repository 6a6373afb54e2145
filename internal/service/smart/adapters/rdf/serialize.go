package rdf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// Format selects the serialization of the statement set.
type Format string

const (
	FormatXML      Format = "xml"
	FormatTurtle   Format = "turtle"
	FormatN3       Format = "n3"
	FormatNTriples Format = "nt"
)

// DefaultFormat is used when the caller does not name one.
const DefaultFormat = FormatXML

// ErrUnsupportedFormat reports a serialization format outside the supported
// set. No partial output is produced.
var ErrUnsupportedFormat = errors.New("rdf: unsupported serialization format")

// Formats lists the supported serialization formats.
func Formats() []Format {
	return []Format{FormatXML, FormatTurtle, FormatN3, FormatNTriples}
}

// ContentType returns the media type of a format's output.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/rdf+xml"
	case FormatTurtle:
		return "text/turtle"
	case FormatN3:
		return "text/n3"
	case FormatNTriples:
		return "application/n-triples"
	}
	return "text/plain"
}

// Serialize renders the accumulated statement set. It never mutates the
// graph, so repeated calls yield identical output.
func (g *PatientGraph) Serialize(f Format) (string, error) {
	switch f {
	case FormatXML, "":
		return writeRDFXML(g.quads)
	case FormatTurtle, FormatN3:
		return writeTurtle(g.quads)
	case FormatNTriples:
		return writeNTriples(g.quads)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// bySubject groups statements by subject, keeping first-appearance order of
// subjects and insertion order of statements, so output is deterministic.
func bySubject(quads []quad.Quad) ([]quad.Value, map[quad.Value][]quad.Quad) {
	var order []quad.Value
	groups := make(map[quad.Value][]quad.Quad)
	for _, q := range quads {
		if _, ok := groups[q.Subject]; !ok {
			order = append(order, q.Subject)
		}
		groups[q.Subject] = append(groups[q.Subject], q)
	}
	return order, groups
}

// qname compacts a predicate IRI into prefix:local against the fixed bindings.
func qname(pred quad.Value) (string, error) {
	iri, ok := pred.(quad.IRI)
	if !ok {
		return "", fmt.Errorf("rdf: predicate %s is not an IRI", pred)
	}
	s := string(iri)
	for _, p := range vocab.Prefixes() {
		ns := string(p.NS)
		if strings.HasPrefix(s, ns) && len(s) > len(ns) {
			return p.Name + ":" + s[len(ns):], nil
		}
	}
	return "", fmt.Errorf("rdf: no prefix bound for %s", s)
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func writeRDFXML(quads []quad.Quad) (string, error) {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<rdf:RDF")
	for _, p := range vocab.Prefixes() {
		fmt.Fprintf(&b, "\n  xmlns:%s=\"%s\"", p.Name, p.NS)
	}
	b.WriteString(">\n")

	order, groups := bySubject(quads)
	for _, subj := range order {
		switch s := subj.(type) {
		case quad.IRI:
			fmt.Fprintf(&b, "  <rdf:Description rdf:about=\"%s\">\n", xmlEscape(string(s)))
		case quad.BNode:
			fmt.Fprintf(&b, "  <rdf:Description rdf:nodeID=\"%s\">\n", xmlEscape(string(s)))
		default:
			return "", fmt.Errorf("rdf: subject %s is not a node", subj)
		}

		for _, q := range groups[subj] {
			pred, err := qname(q.Predicate)
			if err != nil {
				return "", err
			}
			switch o := q.Object.(type) {
			case quad.IRI:
				fmt.Fprintf(&b, "    <%s rdf:resource=\"%s\"/>\n", pred, xmlEscape(string(o)))
			case quad.BNode:
				fmt.Fprintf(&b, "    <%s rdf:nodeID=\"%s\"/>\n", pred, xmlEscape(string(o)))
			case quad.String:
				fmt.Fprintf(&b, "    <%s>%s</%s>\n", pred, xmlEscape(string(o)), pred)
			default:
				fmt.Fprintf(&b, "    <%s>%s</%s>\n", pred, xmlEscape(o.String()), pred)
			}
		}
		b.WriteString("  </rdf:Description>\n")
	}
	b.WriteString("</rdf:RDF>\n")
	return b.String(), nil
}

var turtleEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

// turtleLocalSafe reports whether a compacted local part needs no escaping.
func turtleLocalSafe(local string) bool {
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return local != ""
}

func turtleTerm(v quad.Value) string {
	switch t := v.(type) {
	case quad.IRI:
		s := string(t)
		for _, p := range vocab.Prefixes() {
			ns := string(p.NS)
			if strings.HasPrefix(s, ns) && turtleLocalSafe(s[len(ns):]) {
				return p.Name + ":" + s[len(ns):]
			}
		}
		return "<" + s + ">"
	case quad.BNode:
		return "_:" + string(t)
	case quad.String:
		return "\"" + turtleEscaper.Replace(string(t)) + "\""
	}
	return v.String()
}

func writeTurtle(quads []quad.Quad) (string, error) {
	var b strings.Builder
	for _, p := range vocab.Prefixes() {
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", p.Name, p.NS)
	}
	b.WriteString("\n")

	order, groups := bySubject(quads)
	for _, subj := range order {
		b.WriteString(turtleTerm(subj))
		for i, q := range groups[subj] {
			if i > 0 {
				b.WriteString(" ;\n\t")
			} else {
				b.WriteString(" ")
			}
			if q.Predicate == vocab.Type {
				b.WriteString("a ")
			} else {
				b.WriteString(turtleTerm(q.Predicate) + " ")
			}
			b.WriteString(turtleTerm(q.Object))
		}
		b.WriteString(" .\n")
	}
	return b.String(), nil
}

func writeNTriples(quads []quad.Quad) (string, error) {
	var b bytes.Buffer
	w := nquads.NewWriter(&b)
	for _, q := range quads {
		if err := w.WriteQuad(q); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}
