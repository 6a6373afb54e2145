package rdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// ErrMalformedCode reports a composite code identifier missing its
// system#identifier separator.
var ErrMalformedCode = errors.New("rdf: malformed code identifier")

// splitCode splits a system#identifier composite on its last separator.
func splitCode(s string) (system, id string, err error) {
	i := strings.LastIndex(s, "#")
	if i < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedCode, s)
	}
	return s[:i], s[i+1:], nil
}

// AddDemographics adds the patient's demographics to the graph.
func (g *PatientGraph) AddDemographics(d *common.Demographics) {
	if d == nil {
		return
	}

	p := g.newBNode()
	g.AddStatement(p)
	g.add(p, vocab.Type, vocab.SP.IRI("Demographics"))

	n := g.newBNode()
	g.add(p, vocab.VCard.IRI("n"), n)
	g.add(n, vocab.Type, vocab.VCard.IRI("Name"))
	if d.GivenName != "" {
		g.add(n, vocab.VCard.IRI("given-name"), quad.String(d.GivenName))
	}
	if d.AdditionalName != "" {
		g.add(n, vocab.VCard.IRI("additional-name"), quad.String(d.AdditionalName))
	}
	if d.FamilyName != "" {
		g.add(n, vocab.VCard.IRI("family-name"), quad.String(d.FamilyName))
	}

	a := g.newBNode()
	g.add(p, vocab.VCard.IRI("adr"), a)
	g.add(a, vocab.Type, vocab.VCard.IRI("Address"))
	g.add(a, vocab.Type, vocab.VCard.IRI("Home"))
	g.add(a, vocab.Type, vocab.VCard.IRI("Pref"))
	if d.Street != "" {
		g.add(a, vocab.VCard.IRI("street-address"), quad.String(d.Street))
	}
	if d.Apartment != "" {
		g.add(a, vocab.VCard.IRI("extended-address"), quad.String(d.Apartment))
	}
	if d.City != "" {
		g.add(a, vocab.VCard.IRI("locality"), quad.String(d.City))
	}
	if d.Region != "" {
		g.add(a, vocab.VCard.IRI("region"), quad.String(d.Region))
	}
	if d.PostalCode != "" {
		g.add(a, vocab.VCard.IRI("postal-code"), quad.String(d.PostalCode))
	}
	if d.Country != "" {
		g.add(a, vocab.VCard.IRI("country"), quad.String(d.Country))
	}

	if d.HomePhone != "" {
		t := g.newBNode()
		g.add(p, vocab.VCard.IRI("tel"), t)
		g.add(t, vocab.Type, vocab.VCard.IRI("Tel"))
		g.add(t, vocab.Type, vocab.VCard.IRI("Home"))
		g.add(t, vocab.Type, vocab.VCard.IRI("Pref"))
		g.add(t, vocab.RDF.IRI("value"), quad.String(d.HomePhone))
	}
	if d.CellPhone != "" {
		t := g.newBNode()
		g.add(p, vocab.VCard.IRI("tel"), t)
		g.add(t, vocab.Type, vocab.VCard.IRI("Tel"))
		g.add(t, vocab.Type, vocab.VCard.IRI("Cell"))
		if d.HomePhone == "" {
			g.add(t, vocab.Type, vocab.VCard.IRI("Pref"))
		}
		g.add(t, vocab.RDF.IRI("value"), quad.String(d.CellPhone))
	}

	if d.Gender != "" {
		g.add(p, vocab.FOAF.IRI("gender"), quad.String(d.Gender))
	}
	if d.BirthDate != "" {
		g.add(p, vocab.VCard.IRI("bday"), quad.String(d.BirthDate))
	}
	if d.Email != "" {
		g.add(p, vocab.VCard.IRI("email"), quad.String(d.Email))
	}

	if d.MedicalRecordNumber != "" {
		rec := g.newBNode()
		g.add(p, vocab.SP.IRI("medicalRecordNumber"), rec)
		g.add(rec, vocab.Type, vocab.SP.IRI("Code"))
		title := d.MedicalRecordTitle
		if title == "" {
			title = "Medical record " + d.MedicalRecordNumber
		}
		g.add(rec, vocab.DCTerms.IRI("title"), quad.String(title))
		g.add(rec, vocab.DCTerms.IRI("identifier"), quad.String(d.MedicalRecordNumber))
		g.add(rec, vocab.SP.IRI("system"), quad.String(d.MedicalRecordSystem))
	}
}

// medication builds the Medication node without linking it to the patient
// and without touching fulfillments. Callers link and reuse the node.
func (g *PatientGraph) medication(m *common.Medication) quad.Value {
	if m == nil {
		return nil
	}

	node := quad.IRI(m.URI())
	g.add(node, vocab.Type, vocab.SP.IRI("Medication"))
	g.attach(node, vocab.SP.IRI("drugName"), g.codedValue(
		vocab.SPCode.IRI("RxNorm_Semantic"),
		fmt.Sprintf(vocab.RxNormURI, m.DrugNameIdentifier),
		m.DrugNameTitle,
		fmt.Sprintf(vocab.RxNormURI, ""),
		m.DrugNameIdentifier))
	g.add(node, vocab.SP.IRI("startDate"), quad.String(m.StartDate))
	g.add(node, vocab.SP.IRI("instructions"), quad.String(m.Instructions))
	if m.QuantityValue != "" && m.QuantityUnit != "" {
		g.attach(node, vocab.SP.IRI("quantity"), g.valueAndUnit(m.QuantityValue, m.QuantityUnit))
	}
	if m.FrequencyValue != "" && m.FrequencyUnit != "" {
		g.attach(node, vocab.SP.IRI("frequency"), g.valueAndUnit(m.FrequencyValue, m.FrequencyUnit))
	}
	if m.EndDate != "" {
		g.add(node, vocab.SP.IRI("endDate"), quad.String(m.EndDate))
	}
	if m.ProvenanceIdentifier != "" && m.ProvenanceTitle != "" && m.ProvenanceSystem != "" {
		g.attach(node, vocab.SP.IRI("provenance"), g.codedValue(
			vocab.SPCode.IRI("MedicationProvenance"),
			fmt.Sprintf(vocab.MedProvURI, m.ProvenanceIdentifier),
			m.ProvenanceTitle,
			fmt.Sprintf(vocab.MedProvURI, ""),
			m.ProvenanceIdentifier))
	}
	return node
}

// AddMedication adds one medication and links it to the patient. The
// returned node can be handed to AddFill to wire fulfillment edges.
func (g *PatientGraph) AddMedication(m *common.Medication) quad.Value {
	node := g.medication(m)
	if node == nil {
		return nil
	}
	g.AddStatement(node)
	return node
}

// AddMedList adds a medication list with each medication's fulfillments.
func (g *PatientGraph) AddMedList(meds []*common.Medication) {
	for _, m := range meds {
		node := g.AddMedication(m)
		if node == nil {
			continue
		}
		for _, fill := range m.Fulfillments {
			g.AddFill(fill, node, true)
		}
	}
}

// AddFill adds one fulfillment and links it to the patient. When medNode is
// non-nil a reverse sp:fulfillment edge is added from the medication. The
// fill's own sp:medication edge points at the medication's URI when
// medURIOnly is set, otherwise at the shared medNode.
func (g *PatientGraph) AddFill(f *common.Fill, medNode quad.Value, medURIOnly bool) {
	if f == nil {
		return
	}

	node := quad.IRI(f.URI())
	g.add(node, vocab.Type, vocab.SP.IRI("Fulfillment"))
	g.add(node, vocab.DCTerms.IRI("date"), quad.String(f.Date))
	g.add(node, vocab.SP.IRI("dispenseDaysSupply"), quad.String(f.DaysSupply()))
	if f.PBM != "" {
		g.add(node, vocab.SP.IRI("pbm"), quad.String(f.PBM))
	}

	g.attach(node, vocab.SP.IRI("pharmacy"), g.pharmacy(f, "pharmacy"))
	g.attach(node, vocab.SP.IRI("provider"), g.provider(f, "provider"))

	if f.QuantityDispensedValue != "" && f.QuantityDispensedUnit != "" {
		g.attach(node, vocab.SP.IRI("quantityDispensed"),
			g.valueAndUnit(f.QuantityDispensedValue, f.QuantityDispensedUnit))
	}

	if medNode != nil {
		g.add(medNode, vocab.SP.IRI("fulfillment"), node)
	}

	switch {
	case f.Medication != nil && medURIOnly:
		g.add(node, vocab.SP.IRI("medication"), quad.IRI(f.Medication.URI()))
	case f.Medication != nil && medNode != nil:
		g.add(node, vocab.SP.IRI("medication"), medNode)
	}

	g.AddStatement(node)
}

// AddFillList adds a fulfillment list. Medications referenced by more than
// one fill are added once and shared, keyed by the medication's identity.
func (g *PatientGraph) AddFillList(fills []*common.Fill) {
	added := make(map[string]quad.Value)
	for _, f := range fills {
		if f == nil {
			continue
		}
		var medNode quad.Value
		if f.Medication != nil {
			medNode = added[f.Medication.ID]
			if medNode == nil {
				medNode = g.AddMedication(f.Medication)
				added[f.Medication.ID] = medNode
			}
		}
		g.AddFill(f, medNode, false)
	}
}

// AddProblemList adds problems to the patient's graph.
func (g *PatientGraph) AddProblemList(problems []*common.Problem) {
	for _, prob := range problems {
		if prob == nil {
			continue
		}
		node := quad.IRI(prob.URI())
		g.add(node, vocab.Type, vocab.SP.IRI("Problem"))
		g.add(node, vocab.SP.IRI("startDate"), quad.String(prob.StartDate))
		if prob.EndDate != "" {
			g.add(node, vocab.SP.IRI("endDate"), quad.String(prob.EndDate))
		}
		if prob.Notes != "" {
			g.add(node, vocab.SP.IRI("notes"), quad.String(prob.Notes))
		}
		g.attach(node, vocab.SP.IRI("problemName"), g.codedValue(
			vocab.SPCode.IRI("SNOMED"),
			fmt.Sprintf(vocab.SNOMEDURI, prob.NameIdentifier),
			prob.NameTitle,
			fmt.Sprintf(vocab.SNOMEDURI, ""),
			prob.NameIdentifier))
		g.AddStatement(node)
	}
}

// vitalType describes one known vital sign: the record field it reads, the
// sp predicate it attaches under, and its LOINC coding.
type vitalType struct {
	field     string
	predicate string
	title     string
	code      string
	unit      string
}

var vitalTypes = []vitalType{
	{"height", "height", "Body height", "8302-2", "m"},
	{"weight", "weight", "Body weight", "3141-9", "kg"},
	{"bmi", "bodyMassIndex", "Body mass index", "39156-5", "kg/m2"},
	{"heart_rate", "heartRate", "Heart rate", "8867-4", "{beats}/min"},
	{"respiratory_rate", "respiratoryRate", "Respiration rate", "9279-1", "{breaths}/min"},
	{"temperature", "temperature", "Body temperature", "8310-5", "Cel"},
	{"oxygen_saturation", "oxygenSaturation", "Oxygen saturation", "2710-2", "%"},
}

var (
	vitalSystolic  = vitalType{"systolic", "systolic", "Intravascular systolic", "8480-6", "mm[Hg]"}
	vitalDiastolic = vitalType{"diastolic", "diastolic", "Intravascular diastolic", "8462-4", "mm[Hg]"}
)

// attachVital adds one vital-sign sub-node under parent when the reading
// carries a value for it.
func (g *PatientGraph) attachVital(v *common.VitalSigns, vt vitalType, parent quad.Value) {
	val := v.Field(vt.field)
	if val == "" {
		return
	}
	n := g.newBNode()
	g.add(n, vocab.Type, vocab.SP.IRI("VitalSign"))
	g.add(n, vocab.SP.IRI("value"), quad.String(val))
	g.add(n, vocab.SP.IRI("unit"), quad.String(vt.unit))
	g.attach(n, vocab.SP.IRI("vitalName"), g.codedValue(
		vocab.SPCode.IRI("VitalSign"),
		fmt.Sprintf(vocab.LOINCURI, vt.code),
		vt.title,
		fmt.Sprintf(vocab.LOINCURI, ""),
		vt.code))
	g.add(parent, vocab.SP.IRI(vt.predicate), n)
}

// AddVitalSigns adds vital-sign readings to the patient's graph.
func (g *PatientGraph) AddVitalSigns(readings []*common.VitalSigns) {
	for _, v := range readings {
		if v == nil {
			continue
		}
		node := g.newBNode()
		g.AddStatement(node)
		g.add(node, vocab.Type, vocab.SP.IRI("VitalSigns"))
		g.add(node, vocab.DCTerms.IRI("date"), quad.String(v.Timestamp))

		enc := g.newBNode()
		g.add(enc, vocab.Type, vocab.SP.IRI("Encounter"))
		g.add(node, vocab.SP.IRI("encounter"), enc)
		g.add(enc, vocab.SP.IRI("startDate"), quad.String(v.EncounterStartDate))
		g.add(enc, vocab.SP.IRI("endDate"), quad.String(v.EncounterEndDate))
		if v.EncounterType == "ambulatory" {
			g.attach(enc, vocab.SP.IRI("encounterType"), g.codedValue(
				vocab.SPCode.IRI("EncounterType"),
				string(vocab.SPCode)+"EncounterType#ambulatory",
				"Ambulatory encounter",
				string(vocab.SPCode)+"EncounterType#",
				"ambulatory"))
		}

		for _, vt := range vitalTypes {
			g.attachVital(v, vt, node)
		}

		if v.Systolic != "" {
			bp := g.newBNode()
			g.add(node, vocab.SP.IRI("bloodPressure"), bp)
			g.attachVital(v, vitalSystolic, bp)
			g.attachVital(v, vitalDiastolic, bp)
		}
	}
}

// codedComposite builds a coded value from a system#identifier composite.
func (g *PatientGraph) codedComposite(codeClass quad.IRI, composite, title string) (*Fragment, error) {
	system, id, err := splitCode(composite)
	if err != nil {
		return nil, err
	}
	return g.codedValue(codeClass, composite, title, system+"#", id), nil
}

// AddImmunizations adds immunization events to the patient's graph. A code
// composite missing its '#' separator fails with ErrMalformedCode.
func (g *PatientGraph) AddImmunizations(ims []*common.Immunization) error {
	for _, im := range ims {
		if im == nil {
			continue
		}
		node := g.newBNode()
		g.AddStatement(node)
		g.add(node, vocab.Type, vocab.SP.IRI("Immunization"))
		g.add(node, vocab.DCTerms.IRI("date"), quad.String(im.Date))

		status, err := g.codedComposite(
			vocab.SPCode.IRI("ImmunizationAdministrationStatus"),
			im.AdministrationStatus, im.AdministrationStatusTitle)
		if err != nil {
			return err
		}
		g.attach(node, vocab.SP.IRI("administrationStatus"), status)

		if im.RefusalReason != "" {
			reason, err := g.codedComposite(
				vocab.SPCode.IRI("ImmunizationRefusalReason"),
				im.RefusalReason, im.RefusalReasonTitle)
			if err != nil {
				return err
			}
			g.attach(node, vocab.SP.IRI("refusalReason"), reason)
		}

		product, err := g.codedComposite(
			vocab.SPCode.IRI("ImmunizationProduct"), im.CVX, im.CVXTitle)
		if err != nil {
			return err
		}
		g.attach(node, vocab.SP.IRI("productName"), product)

		if im.VG != "" {
			class, err := g.codedComposite(
				vocab.SPCode.IRI("ImmunizationClass"), im.VG, im.VGTitle)
			if err != nil {
				return err
			}
			g.attach(node, vocab.SP.IRI("productClass"), class)
		}
		if im.VG2 != "" {
			class, err := g.codedComposite(
				vocab.SPCode.IRI("ImmunizationClass"), im.VG2, im.VG2Title)
			if err != nil {
				return err
			}
			g.attach(node, vocab.SP.IRI("productClass"), class)
		}
	}
	return nil
}

// AddLabResults adds lab results to the patient's graph. A "Qn" scale yields
// a quantitative result with its normal range, "Ord" a narrative result; any
// other scale yields neither.
func (g *PatientGraph) AddLabResults(labs []*common.LabResult) {
	for _, lab := range labs {
		if lab == nil {
			continue
		}
		node := g.newBNode()
		g.add(node, vocab.Type, vocab.SP.IRI("LabResult"))
		g.attach(node, vocab.SP.IRI("labName"), g.codedValue(
			vocab.SPCode.IRI("LOINC"),
			fmt.Sprintf(vocab.LOINCURI, lab.Code),
			lab.Name,
			fmt.Sprintf(vocab.LOINCURI, ""),
			lab.Code))

		switch lab.Scale {
		case "Qn":
			q := g.newBNode()
			g.add(q, vocab.Type, vocab.SP.IRI("QuantitativeResult"))
			g.attach(q, vocab.SP.IRI("valueAndUnit"), g.valueAndUnit(lab.Value, lab.Units))

			r := g.newBNode()
			g.add(r, vocab.Type, vocab.SP.IRI("ValueRange"))
			g.attach(r, vocab.SP.IRI("minimum"), g.valueAndUnit(lab.Low, lab.Units))
			g.attach(r, vocab.SP.IRI("maximum"), g.valueAndUnit(lab.High, lab.Units))
			g.add(q, vocab.SP.IRI("normalRange"), r)
			g.add(node, vocab.SP.IRI("quantitativeResult"), q)
		case "Ord":
			n := g.newBNode()
			g.add(n, vocab.Type, vocab.SP.IRI("NarrativeResult"))
			g.add(n, vocab.SP.IRI("value"), quad.String(lab.Value))
			g.add(node, vocab.SP.IRI("narrativeResult"), n)
		}

		attr := g.newBNode()
		g.add(attr, vocab.Type, vocab.SP.IRI("Attribution"))
		g.add(attr, vocab.SP.IRI("startDate"), quad.String(lab.CollectedAt))
		g.add(node, vocab.SP.IRI("specimenCollected"), attr)

		g.add(node, vocab.SP.IRI("externalID"), quad.String(lab.AccessionNumber))
		g.AddStatement(node)
	}
}

// AddAllergies adds allergy records to the patient's graph. Exclusion
// records produce an sp:AllergyExclusion node; the rest produce sp:Allergy
// nodes with a drug-class or food allergen.
func (g *PatientGraph) AddAllergies(allergies []*common.Allergy) {
	for _, a := range allergies {
		if a == nil {
			continue
		}
		node := g.newBNode()

		if a.Exclusion {
			g.add(node, vocab.Type, vocab.SP.IRI("AllergyExclusion"))
			g.attach(node, vocab.SP.IRI("allergyExclusionName"), g.codedValue(
				vocab.SPCode.IRI("AllergyExclusion"),
				fmt.Sprintf(vocab.SNOMEDURI, a.ExclusionIdentifier),
				a.ExclusionTitle,
				fmt.Sprintf(vocab.SNOMEDURI, ""),
				a.ExclusionIdentifier))
			g.AddStatement(node)
			continue
		}

		g.add(node, vocab.Type, vocab.SP.IRI("Allergy"))
		g.attach(node, vocab.SP.IRI("severity"), g.codedValue(
			vocab.SPCode.IRI("AllergySeverity"),
			fmt.Sprintf(vocab.SNOMEDURI, a.SeverityIdentifier),
			a.SeverityTitle,
			fmt.Sprintf(vocab.SNOMEDURI, ""),
			a.SeverityIdentifier))
		g.attach(node, vocab.SP.IRI("allergicReaction"), g.codedValue(
			vocab.SPCode.IRI("SNOMED"),
			fmt.Sprintf(vocab.SNOMEDURI, a.ReactionIdentifier),
			a.ReactionTitle,
			fmt.Sprintf(vocab.SNOMEDURI, ""),
			a.ReactionIdentifier))
		g.attach(node, vocab.SP.IRI("category"), g.codedValue(
			vocab.SPCode.IRI("AllergyCategory"),
			fmt.Sprintf(vocab.SNOMEDURI, a.CategoryIdentifier),
			a.CategoryTitle,
			fmt.Sprintf(vocab.SNOMEDURI, ""),
			a.CategoryIdentifier))

		if a.AllergenClass == "food" {
			g.attach(node, vocab.SP.IRI("foodAllergen"), g.codedValue(
				vocab.SPCode.IRI("UNII"),
				fmt.Sprintf(vocab.UNIIURI, a.AllergenIdentifier),
				a.AllergenTitle,
				fmt.Sprintf(vocab.UNIIURI, ""),
				a.AllergenIdentifier))
		} else {
			g.attach(node, vocab.SP.IRI("drugClassAllergen"), g.codedValue(
				vocab.SPCode.IRI("NDFRT"),
				fmt.Sprintf(vocab.NDFRTURI, a.AllergenIdentifier),
				a.AllergenTitle,
				fmt.Sprintf(vocab.NDFRTURI, ""),
				a.AllergenIdentifier))
		}
		g.AddStatement(node)
	}
}
