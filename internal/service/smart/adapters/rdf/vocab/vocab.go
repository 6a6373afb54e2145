// Package vocab holds the fixed RDF vocabulary used by patient record
// graphs: the SMART Platforms terms plus the standard rdf/rdfs/dc/dcterms/
// foaf/vcard namespaces, and the URI templates of the external coding
// systems referenced by clinical records.
package vocab

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Namespace is a base IRI that terms are minted under.
type Namespace string

// IRI returns the full IRI of a term in the namespace.
func (ns Namespace) IRI(local string) quad.IRI {
	return quad.IRI(string(ns) + local)
}

const (
	SP      Namespace = "http://smartplatforms.org/terms#"
	SPCode  Namespace = "http://smartplatforms.org/terms/codes/"
	DC      Namespace = "http://purl.org/dc/elements/1.1/"
	DCTerms Namespace = "http://purl.org/dc/terms/"
	FOAF    Namespace = "http://xmlns.com/foaf/0.1/"
	RDF     Namespace = Namespace(rdf.NS)
	RDFS    Namespace = Namespace(rdfs.NS)
	VCard   Namespace = "http://www.w3.org/2006/vcard/ns#"
)

// Type is the expanded rdf:type predicate.
var Type = quad.IRI(rdf.Type).Full()

// URI templates for external coding systems. Each takes the code identifier
// as its single %s argument; formatting with "" yields the system base.
const (
	RxNormURI  = "http://purl.bioontology.org/ontology/RXNORM/%s"
	NDFRTURI   = "http://purl.bioontology.org/ontology/NDFRT/%s"
	UNIIURI    = "http://fda.gov/UNII/%s"
	SNOMEDURI  = "http://purl.bioontology.org/ontology/SNOMEDCT/%s"
	LOINCURI   = "http://purl.bioontology.org/ontology/LNC/%s"
	MedProvURI = "http://smartplatforms.org/terms/codes/MedicationProvenance#%s"
)

// Prefix is one namespace binding as rendered by the serializers.
type Prefix struct {
	Name string
	NS   Namespace
}

// Prefixes returns the fixed bindings in serialization order.
func Prefixes() []Prefix {
	return []Prefix{
		{"rdf", Namespace(rdf.NS)},
		{"rdfs", RDFS},
		{"sp", SP},
		{"spcode", SPCode},
		{"dc", DC},
		{"dcterms", DCTerms},
		{"foaf", FOAF},
		{"v", VCard},
	}
}

func init() {
	voc.RegisterPrefix("sp:", string(SP))
	voc.RegisterPrefix("spcode:", string(SPCode))
	voc.RegisterPrefix("dc:", string(DC))
	voc.RegisterPrefix("dcterms:", string(DCTerms))
	voc.RegisterPrefix("foaf:", string(FOAF))
	voc.RegisterPrefix("v:", string(VCard))
}
