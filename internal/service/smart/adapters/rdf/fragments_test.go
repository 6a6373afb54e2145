package rdf

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// =========== Test Helpers ===========

func hasQuad(qs []quad.Quad, s quad.Value, p quad.IRI, o quad.Value) bool {
	for _, q := range qs {
		if q.Subject == s && q.Predicate == quad.Value(p) && q.Object == o {
			return true
		}
	}
	return false
}

func objectsOf(qs []quad.Quad, s quad.Value, p quad.IRI) []quad.Value {
	var out []quad.Value
	for _, q := range qs {
		if q.Subject == s && q.Predicate == quad.Value(p) {
			out = append(out, q.Object)
		}
	}
	return out
}

func countType(qs []quad.Quad, class quad.IRI) int {
	n := 0
	for _, q := range qs {
		if q.Predicate == quad.Value(vocab.Type) && q.Object == quad.Value(class) {
			n++
		}
	}
	return n
}

// fillWith builds a fill whose Field view carries exactly the given flat
// fields.
type fieldMap map[string]string

func (m fieldMap) Field(name string) string { return m[name] }

// =========== Fragment Builders ===========

func TestNewGraphHoldsOnlyTypedAnchor(t *testing.T) {
	g := New()

	require.Equal(t, 1, g.Len())
	assert.True(t, hasQuad(g.Quads(), quad.BNode("n0"), vocab.Type, vocab.SP.IRI("MedicalRecord")))
}

func TestCodedValueAllEmptyIsNil(t *testing.T) {
	g := New()

	f := g.codedValue("", "", "", "", "")

	assert.Nil(t, f)
	assert.Equal(t, 1, g.Len(), "builders must not touch the graph")
}

func TestCodedValueSingleFieldBuilds(t *testing.T) {
	g := New()
	before := g.Len()

	f := g.codedValue("", "", "", "", "12345")
	require.NotNil(t, f)
	assert.Equal(t, before, g.Len(), "builders must not touch the graph")

	g.attach(g.patient, vocab.SP.IRI("drugName"), f)

	codes := objectsOf(g.Quads(), f.Root, vocab.SP.IRI("code"))
	require.Len(t, codes, 1)
	_, isBNode := codes[0].(quad.BNode)
	assert.True(t, isBNode, "empty uri yields an anonymous code node")

	code := codes[0]
	assert.True(t, hasQuad(g.Quads(), code, vocab.DCTerms.IRI("identifier"), quad.String("12345")))
	assert.False(t, hasQuad(g.Quads(), code, vocab.SP.IRI("system"), quad.String("")),
		"empty system must not be attached")
	assert.Empty(t, objectsOf(g.Quads(), f.Root, vocab.DCTerms.IRI("title")),
		"empty title must not be attached")
}

func TestCodedValueFull(t *testing.T) {
	g := New()

	f := g.codedValue(vocab.SPCode.IRI("LOINC"),
		"http://purl.bioontology.org/ontology/LNC/2951-2",
		"Serum sodium",
		"http://purl.bioontology.org/ontology/LNC/",
		"2951-2")
	require.NotNil(t, f)
	g.attach(g.patient, vocab.SP.IRI("labName"), f)

	code := quad.IRI("http://purl.bioontology.org/ontology/LNC/2951-2")
	qs := g.Quads()
	assert.True(t, hasQuad(qs, f.Root, vocab.Type, vocab.SP.IRI("CodedValue")))
	assert.True(t, hasQuad(qs, f.Root, vocab.DCTerms.IRI("title"), quad.String("Serum sodium")))
	assert.True(t, hasQuad(qs, f.Root, vocab.SP.IRI("code"), code))
	assert.True(t, hasQuad(qs, code, vocab.Type, vocab.SPCode.IRI("LOINC")))
	assert.True(t, hasQuad(qs, code, vocab.Type, vocab.SP.IRI("Code")))
	assert.True(t, hasQuad(qs, code, vocab.SP.IRI("system"), quad.String("http://purl.bioontology.org/ontology/LNC/")))
	assert.True(t, hasQuad(qs, code, vocab.DCTerms.IRI("identifier"), quad.String("2951-2")))
}

func TestValueAndUnitBothEmptyIsNil(t *testing.T) {
	g := New()

	assert.Nil(t, g.valueAndUnit("", ""))
}

func TestValueAndUnitAttachesBothEvenWhenOneEmpty(t *testing.T) {
	g := New()

	f := g.valueAndUnit("140", "")
	require.NotNil(t, f)
	g.attach(g.patient, vocab.SP.IRI("valueAndUnit"), f)

	qs := g.Quads()
	assert.True(t, hasQuad(qs, f.Root, vocab.SP.IRI("value"), quad.String("140")))
	assert.True(t, hasQuad(qs, f.Root, vocab.SP.IRI("unit"), quad.String("")),
		"the empty unit literal is still attached")
}

func TestFieldGroupAllEmptyIsNil(t *testing.T) {
	src := fieldMap{}

	assert.Nil(t, fieldGroup(src, "pharmacy", []string{"ncpdpid", "org"}))
}

func TestAttachNilFragmentIsNoop(t *testing.T) {
	g := New()
	before := g.Len()

	g.attach(g.patient, vocab.SP.IRI("pharmacy"), nil)

	assert.Equal(t, before, g.Len())
}

func TestTelephoneTypeClasses(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"h", "Home"},
		{"home", "Home"},
		{"w", "Work"},
		{"WORK", "Work"},
		{"c", "Cell"},
		{"m", "Cell"},
		{"mobile", "Cell"},
		{"fax", "Fax"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, telClass(c.in), "type %q", c.in)
	}
}

func TestTelephonePreferred(t *testing.T) {
	g := New()

	f := g.telephone(fieldMap{
		"tel_1_type":        "w",
		"tel_1_number":      "1-235-947-3452",
		"tel_1_preferred_p": "true",
	}, "tel_1")
	require.NotNil(t, f)
	g.attach(g.patient, vocab.VCard.IRI("tel"), f)

	qs := g.Quads()
	assert.True(t, hasQuad(qs, f.Root, vocab.Type, vocab.VCard.IRI("Tel")))
	assert.True(t, hasQuad(qs, f.Root, vocab.Type, vocab.VCard.IRI("Work")))
	assert.True(t, hasQuad(qs, f.Root, vocab.Type, vocab.VCard.IRI("Pref")))
	assert.True(t, hasQuad(qs, f.Root, vocab.VCard.IRI("value"), quad.String("1-235-947-3452")))
}

func TestPharmacyWithNestedAddress(t *testing.T) {
	g := New()
	f := &common.Fill{
		PharmacyNCPDPID:   "5235235",
		PharmacyOrg:       "CVS #588",
		PharmacyAdrStreet: "111 Lake Drive",
		PharmacyAdrCity:   "WonderCity",
	}

	frag := g.pharmacy(f, "pharmacy")
	require.NotNil(t, frag)
	g.attach(g.patient, vocab.SP.IRI("pharmacy"), frag)

	qs := g.Quads()
	assert.True(t, hasQuad(qs, frag.Root, vocab.Type, vocab.SP.IRI("Pharmacy")))
	assert.True(t, hasQuad(qs, frag.Root, vocab.SP.IRI("ncpdpId"), quad.String("5235235")))
	assert.True(t, hasQuad(qs, frag.Root, vocab.VCard.IRI("organization-name"), quad.String("CVS #588")))

	addrs := objectsOf(qs, frag.Root, vocab.VCard.IRI("adr"))
	require.Len(t, addrs, 1)
	assert.True(t, hasQuad(qs, addrs[0], vocab.VCard.IRI("street-address"), quad.String("111 Lake Drive")))
	assert.True(t, hasQuad(qs, addrs[0], vocab.VCard.IRI("locality"), quad.String("WonderCity")))
}

func TestProviderAllFieldsEmptyIsNil(t *testing.T) {
	g := New()

	assert.Nil(t, g.provider(&common.Fill{}, "provider"))
}

func TestProviderNameAndPhones(t *testing.T) {
	g := New()
	f := &common.Fill{
		ProviderDEANumber:  "325555555",
		ProviderNameGiven:  "Josuha",
		ProviderNameFamily: "Mandel",
		ProviderTel1Type:   "w",
		ProviderTel1Number: "1-235-947-3452",
	}

	frag := g.provider(f, "provider")
	require.NotNil(t, frag)
	g.attach(g.patient, vocab.SP.IRI("provider"), frag)

	qs := g.Quads()
	assert.True(t, hasQuad(qs, frag.Root, vocab.Type, vocab.SP.IRI("Provider")))
	assert.True(t, hasQuad(qs, frag.Root, vocab.SP.IRI("deaNumber"), quad.String("325555555")))

	names := objectsOf(qs, frag.Root, vocab.VCard.IRI("n"))
	require.Len(t, names, 1)
	assert.True(t, hasQuad(qs, names[0], vocab.VCard.IRI("given-name"), quad.String("Josuha")))
	assert.True(t, hasQuad(qs, names[0], vocab.VCard.IRI("family-name"), quad.String("Mandel")))

	tels := objectsOf(qs, frag.Root, vocab.VCard.IRI("tel"))
	require.Len(t, tels, 1, "tel_2 is empty and must not produce a node")
	assert.True(t, hasQuad(qs, tels[0], vocab.Type, vocab.VCard.IRI("Work")))
}
