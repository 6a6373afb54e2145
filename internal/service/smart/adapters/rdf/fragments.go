package rdf

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// Fragment is a self-contained set of statements rooted at Root. Fragment
// builders are pure with respect to the graph: they return the statements
// for the caller to attach (or nil when there is nothing to attach) and
// never append to the graph themselves.
type Fragment struct {
	Root  quad.Value
	quads []quad.Quad
}

func (f *Fragment) add(s quad.Value, p quad.IRI, o quad.Value) {
	f.quads = append(f.quads, quad.Quad{Subject: s, Predicate: p, Object: o})
}

// attach merges a sub-fragment and the edge to it; no-op when sub is nil.
func (f *Fragment) attach(subject quad.Value, pred quad.IRI, sub *Fragment) {
	if sub == nil {
		return
	}
	f.quads = append(f.quads, sub.quads...)
	f.add(subject, pred, sub.Root)
}

// codedValue builds a sp:CodedValue wrapper around a code node. Nil when all
// five inputs are empty. The code node carries both the general sp:Code type
// and the specific codeClass, plus whichever of title/system/identifier are
// present. When uri is empty the code node is anonymous.
func (g *PatientGraph) codedValue(codeClass quad.IRI, uri, title, system, identifier string) *Fragment {
	if codeClass == "" && uri == "" && title == "" && system == "" && identifier == "" {
		return nil
	}

	cv := g.newBNode()
	f := &Fragment{Root: cv}
	f.add(cv, vocab.Type, vocab.SP.IRI("CodedValue"))
	if title != "" {
		f.add(cv, vocab.DCTerms.IRI("title"), quad.String(title))
	}

	var code quad.Value = quad.IRI(uri)
	if uri == "" {
		code = g.newBNode()
	}
	f.add(cv, vocab.SP.IRI("code"), code)

	// Two types: the general Code and the specific class, e.g. spcode:LOINC.
	if codeClass != "" {
		f.add(code, vocab.Type, codeClass)
	}
	f.add(code, vocab.Type, vocab.SP.IRI("Code"))

	if title != "" {
		f.add(code, vocab.DCTerms.IRI("title"), quad.String(title))
	}
	if system != "" {
		f.add(code, vocab.SP.IRI("system"), quad.String(system))
	}
	if identifier != "" {
		f.add(code, vocab.DCTerms.IRI("identifier"), quad.String(identifier))
	}
	return f
}

// valueAndUnit pairs a value with its unit. Nil when both are empty;
// otherwise both literals are attached even when one of them is empty.
func (g *PatientGraph) valueAndUnit(value, units string) *Fragment {
	if value == "" && units == "" {
		return nil
	}

	v := g.newBNode()
	f := &Fragment{Root: v}
	f.add(v, vocab.Type, vocab.SP.IRI("ValueAndUnit"))
	f.add(v, vocab.SP.IRI("value"), quad.String(value))
	f.add(v, vocab.SP.IRI("unit"), quad.String(units))
	return f
}

// fieldGroup reads <prefix>_<suffix> for each suffix and returns the
// suffix→value mapping, or nil when every value is empty.
func fieldGroup(src FieldSource, prefix string, suffixes []string) map[string]string {
	fields := make(map[string]string, len(suffixes))
	any := false
	for _, s := range suffixes {
		v := src.Field(prefix + "_" + s)
		fields[s] = v
		if v != "" {
			any = true
		}
	}
	if !any {
		return nil
	}
	return fields
}

func (g *PatientGraph) address(src FieldSource, prefix string) *Fragment {
	fields := fieldGroup(src, prefix, []string{"country", "city", "postalcode", "region", "street"})
	if fields == nil {
		return nil
	}

	a := g.newBNode()
	f := &Fragment{Root: a}
	f.add(a, vocab.Type, vocab.VCard.IRI("Address"))

	if v := fields["street"]; v != "" {
		f.add(a, vocab.VCard.IRI("street-address"), quad.String(v))
	}
	if v := fields["city"]; v != "" {
		f.add(a, vocab.VCard.IRI("locality"), quad.String(v))
	}
	if v := fields["region"]; v != "" {
		f.add(a, vocab.VCard.IRI("region"), quad.String(v))
	}
	if v := fields["postalcode"]; v != "" {
		f.add(a, vocab.VCard.IRI("postal-code"), quad.String(v))
	}
	if v := fields["country"]; v != "" {
		f.add(a, vocab.VCard.IRI("country"), quad.String(v))
	}
	return f
}

func (g *PatientGraph) telephone(src FieldSource, prefix string) *Fragment {
	fields := fieldGroup(src, prefix, []string{"type", "number", "preferred_p"})
	if fields == nil {
		return nil
	}

	t := g.newBNode()
	f := &Fragment{Root: t}
	f.add(t, vocab.Type, vocab.VCard.IRI("Tel"))

	if v := fields["type"]; v != "" {
		f.add(t, vocab.Type, vocab.VCard.IRI(telClass(v)))
	}
	if fields["preferred_p"] != "" {
		f.add(t, vocab.Type, vocab.VCard.IRI("Pref"))
	}
	if v := fields["number"]; v != "" {
		f.add(t, vocab.VCard.IRI("value"), quad.String(v))
	}
	return f
}

// telClass maps a record's phone-type token onto the vcard type class.
func telClass(t string) string {
	switch strings.ToLower(t) {
	case "h", "home":
		return "Home"
	case "w", "work":
		return "Work"
	case "c", "m", "cell", "mobile":
		return "Cell"
	}
	return strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
}

func (g *PatientGraph) name(src FieldSource, prefix string) *Fragment {
	fields := fieldGroup(src, prefix, []string{"family", "given", "prefix", "suffix"})
	if fields == nil {
		return nil
	}

	n := g.newBNode()
	f := &Fragment{Root: n}
	f.add(n, vocab.Type, vocab.VCard.IRI("Name"))

	if v := fields["family"]; v != "" {
		f.add(n, vocab.VCard.IRI("family-name"), quad.String(v))
	}
	if v := fields["given"]; v != "" {
		f.add(n, vocab.VCard.IRI("given-name"), quad.String(v))
	}
	if v := fields["prefix"]; v != "" {
		f.add(n, vocab.VCard.IRI("honorific-prefix"), quad.String(v))
	}
	if v := fields["suffix"]; v != "" {
		f.add(n, vocab.VCard.IRI("honorific-suffix"), quad.String(v))
	}
	return f
}

func (g *PatientGraph) pharmacy(src FieldSource, prefix string) *Fragment {
	fields := fieldGroup(src, prefix, []string{
		"ncpdpid", "org",
		"adr_country", "adr_city", "adr_postalcode", "adr_region", "adr_street",
	})
	if fields == nil {
		return nil
	}

	p := g.newBNode()
	f := &Fragment{Root: p}
	f.add(p, vocab.Type, vocab.SP.IRI("Pharmacy"))

	if v := fields["ncpdpid"]; v != "" {
		f.add(p, vocab.SP.IRI("ncpdpId"), quad.String(v))
	}
	if v := fields["org"]; v != "" {
		f.add(p, vocab.VCard.IRI("organization-name"), quad.String(v))
	}
	f.attach(p, vocab.VCard.IRI("adr"), g.address(src, prefix+"_adr"))
	return f
}

func (g *PatientGraph) provider(src FieldSource, prefix string) *Fragment {
	fields := fieldGroup(src, prefix, []string{
		"dea_number", "ethnicity", "npi_number", "preferred_language",
		"race", "bday", "email", "gender",
	})
	if fields == nil {
		return nil
	}

	p := g.newBNode()
	f := &Fragment{Root: p}
	f.add(p, vocab.Type, vocab.SP.IRI("Provider"))

	f.attach(p, vocab.VCard.IRI("n"), g.name(src, prefix+"_name"))

	if v := fields["dea_number"]; v != "" {
		f.add(p, vocab.SP.IRI("deaNumber"), quad.String(v))
	}
	if v := fields["ethnicity"]; v != "" {
		f.add(p, vocab.SP.IRI("ethnicity"), quad.String(v))
	}
	if v := fields["npi_number"]; v != "" {
		f.add(p, vocab.SP.IRI("npiNumber"), quad.String(v))
	}
	if v := fields["preferred_language"]; v != "" {
		f.add(p, vocab.SP.IRI("preferredLanguage"), quad.String(v))
	}
	if v := fields["race"]; v != "" {
		f.add(p, vocab.SP.IRI("race"), quad.String(v))
	}
	if v := fields["bday"]; v != "" {
		f.add(p, vocab.VCard.IRI("bday"), quad.String(v))
	}
	if v := fields["email"]; v != "" {
		f.add(p, vocab.VCard.IRI("email"), quad.String(v))
	}
	if v := fields["gender"]; v != "" {
		f.add(p, vocab.FOAF.IRI("gender"), quad.String(v))
	}

	f.attach(p, vocab.VCard.IRI("adr"), g.address(src, prefix+"_adr"))
	f.attach(p, vocab.VCard.IRI("tel"), g.telephone(src, prefix+"_tel_1"))
	f.attach(p, vocab.VCard.IRI("tel"), g.telephone(src, prefix+"_tel_2"))
	return f
}
