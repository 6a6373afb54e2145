// Package rdf builds the RDF statement set for one patient's medical record
// and serializes it to the standard exchange formats. One PatientGraph owns
// one append-only statement set for its whole construction-then-serialize
// lifetime; it is not safe for concurrent use.
package rdf

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// FieldSource exposes flat record fields addressed by <prefix>_<suffix>
// names, as supplied by the data layer.
type FieldSource interface {
	Field(name string) string
}

// PatientGraph accumulates statements about one medical record. The patient
// anchor node is minted at construction and every top-level entity links
// back to it with sp:belongsTo.
type PatientGraph struct {
	quads   []quad.Quad
	patient quad.BNode
	nextID  int
}

// New creates an empty graph holding only the typed patient anchor.
func New() *PatientGraph {
	g := &PatientGraph{}
	g.patient = g.newBNode()
	g.add(g.patient, vocab.Type, vocab.SP.IRI("MedicalRecord"))
	return g
}

// Len reports the number of statements in the graph.
func (g *PatientGraph) Len() int { return len(g.quads) }

// Quads returns the accumulated statements in insertion order.
func (g *PatientGraph) Quads() []quad.Quad { return g.quads }

// AddStatement links a top-level entity root node into the patient's record.
// This is the only place the patient anchor is referenced after construction.
func (g *PatientGraph) AddStatement(node quad.Value) {
	g.add(node, vocab.SP.IRI("belongsTo"), g.patient)
}

func (g *PatientGraph) add(s quad.Value, p quad.IRI, o quad.Value) {
	g.quads = append(g.quads, quad.Quad{Subject: s, Predicate: p, Object: o})
}

// newBNode mints a graph-local anonymous node. Minting never appends
// statements, so fragment builders stay side-effect free on the graph.
func (g *PatientGraph) newBNode() quad.BNode {
	n := quad.BNode(fmt.Sprintf("n%d", g.nextID))
	g.nextID++
	return n
}

// attach appends a fragment's statements and the edge pointing at its root.
// A nil fragment attaches nothing; callers rely on this as the "nothing to
// attach" sentinel for every composite builder.
func (g *PatientGraph) attach(subject quad.Value, pred quad.IRI, f *Fragment) {
	if f == nil {
		return
	}
	g.quads = append(g.quads, f.quads...)
	g.add(subject, pred, f.Root)
}
