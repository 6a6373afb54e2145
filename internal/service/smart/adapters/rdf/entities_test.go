package rdf

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf/vocab"
)

// =========== Test Data Helpers ===========

func testMedication(id string) *common.Medication {
	return &common.Medication{
		RecordID:           "rec1",
		ID:                 id,
		DrugNameTitle:      "Aspirin",
		DrugNameIdentifier: "12345",
		StartDate:          "2010-01-01",
		Instructions:       "1 daily",
	}
}

func testFill(id string, med *common.Medication) *common.Fill {
	return &common.Fill{
		RecordID:               "rec1",
		ID:                     id,
		Date:                   "2010-02-01T04:00:00Z",
		DispenseDaysSupply:     30,
		QuantityDispensedValue: "30",
		QuantityDispensedUnit:  "{tablet}",
		Medication:             med,
	}
}

func belongsTo(qs []quad.Quad) []quad.Value {
	var out []quad.Value
	for _, q := range qs {
		if q.Predicate == quad.Value(vocab.SP.IRI("belongsTo")) {
			out = append(out, q.Subject)
		}
	}
	return out
}

// =========== Entities ===========

func TestAddMedicationLinksPatient(t *testing.T) {
	g := New()
	m := testMedication("261")

	node := g.AddMedication(m)

	require.NotNil(t, node)
	assert.Equal(t, quad.Value(quad.IRI("http://indivo.org/records/rec1/medications/261")), node)
	qs := g.Quads()
	assert.True(t, hasQuad(qs, node, vocab.Type, vocab.SP.IRI("Medication")))
	assert.True(t, hasQuad(qs, node, vocab.SP.IRI("startDate"), quad.String("2010-01-01")))
	assert.True(t, hasQuad(qs, node, vocab.SP.IRI("instructions"), quad.String("1 daily")))
	assert.Len(t, belongsTo(qs), 1)
	assert.Empty(t, objectsOf(qs, node, vocab.SP.IRI("endDate")), "no endDate without a value")
}

func TestAddMedicationQuantityNeedsValueAndUnit(t *testing.T) {
	g := New()
	m := testMedication("261")
	m.QuantityValue = "30"

	node := g.AddMedication(m)

	assert.Empty(t, objectsOf(g.Quads(), node, vocab.SP.IRI("quantity")),
		"quantity without a unit must not be attached")
}

func TestAddFillListSharesMedicationNode(t *testing.T) {
	g := New()
	med := testMedication("261")
	fills := []*common.Fill{
		testFill("3012", med),
		testFill("3013", testMedication("261")),
	}

	g.AddFillList(fills)

	qs := g.Quads()
	assert.Equal(t, 1, countType(qs, vocab.SP.IRI("Medication")),
		"two fills of the same medication add it once")
	assert.Equal(t, 2, countType(qs, vocab.SP.IRI("Fulfillment")))

	medNode := quad.Value(quad.IRI(med.URI()))
	assert.Len(t, objectsOf(qs, medNode, vocab.SP.IRI("fulfillment")), 2)

	// one patient link per entity: 1 medication + 2 fills
	assert.Len(t, belongsTo(qs), 3)
}

func TestAddMedListFillsReferenceMedicationByURI(t *testing.T) {
	g := New()
	med := testMedication("261")
	med.Fulfillments = []*common.Fill{testFill("3012", med)}

	g.AddMedList([]*common.Medication{med})

	qs := g.Quads()
	fill := quad.Value(quad.IRI("http://indivo.org/records/rec1/fulfillments/3012"))
	meds := objectsOf(qs, fill, vocab.SP.IRI("medication"))
	require.Len(t, meds, 1)
	assert.Equal(t, quad.Value(quad.IRI(med.URI())), meds[0])
}

func TestAddProblemList(t *testing.T) {
	g := New()
	p := &common.Problem{
		RecordID:       "rec1",
		ID:             "961",
		StartDate:      "2009-05-16T12:00:00Z",
		NameTitle:      "Backache (finding)",
		NameIdentifier: "161891005",
	}

	g.AddProblemList([]*common.Problem{p})

	qs := g.Quads()
	node := quad.Value(quad.IRI("http://indivo.org/records/rec1/problems/961"))
	assert.True(t, hasQuad(qs, node, vocab.Type, vocab.SP.IRI("Problem")))
	assert.True(t, hasQuad(qs, node, vocab.SP.IRI("startDate"), quad.String("2009-05-16T12:00:00Z")))
	assert.Empty(t, objectsOf(qs, node, vocab.SP.IRI("endDate")))
	require.Len(t, objectsOf(qs, node, vocab.SP.IRI("problemName")), 1)
	assert.Len(t, belongsTo(qs), 1)
}

func TestAddVitalSignsBloodPressureGrouping(t *testing.T) {
	g := New()
	v := &common.VitalSigns{
		Timestamp:     "2010-05-12T04:00:00Z",
		EncounterType: "ambulatory",
		Height:        "1.80",
		Systolic:      "132",
		Diastolic:     "85",
	}

	g.AddVitalSigns([]*common.VitalSigns{v})

	qs := g.Quads()
	roots := belongsTo(qs)
	require.Len(t, roots, 1)
	root := roots[0]

	heights := objectsOf(qs, root, vocab.SP.IRI("height"))
	require.Len(t, heights, 1)
	assert.True(t, hasQuad(qs, heights[0], vocab.SP.IRI("unit"), quad.String("m")))

	bps := objectsOf(qs, root, vocab.SP.IRI("bloodPressure"))
	require.Len(t, bps, 1)
	assert.Len(t, objectsOf(qs, bps[0], vocab.SP.IRI("systolic")), 1)
	assert.Len(t, objectsOf(qs, bps[0], vocab.SP.IRI("diastolic")), 1)

	encs := objectsOf(qs, root, vocab.SP.IRI("encounter"))
	require.Len(t, encs, 1)
	assert.Len(t, objectsOf(qs, encs[0], vocab.SP.IRI("encounterType")), 1)
}

func TestAddVitalSignsSkipsMissingMeasurements(t *testing.T) {
	g := New()
	v := &common.VitalSigns{Timestamp: "2010-05-12T04:00:00Z", Weight: "95.0"}

	g.AddVitalSigns([]*common.VitalSigns{v})

	qs := g.Quads()
	root := belongsTo(qs)[0]
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("height")))
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("bloodPressure")))
	assert.Len(t, objectsOf(qs, root, vocab.SP.IRI("weight")), 1)
}

func TestAddImmunizationsMalformedCode(t *testing.T) {
	g := New()
	im := &common.Immunization{
		Date:                 "2010-09-30T00:00:00Z",
		AdministrationStatus: "doseGiven", // missing system# part
		CVX:                  "http://www2a.cdc.gov/nip/IIS/IISStandards/vaccines.asp?rpt=cvx#111",
	}

	err := g.AddImmunizations([]*common.Immunization{im})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCode)
}

func TestAddImmunizations(t *testing.T) {
	g := New()
	im := &common.Immunization{
		Date:                      "2010-09-30T00:00:00Z",
		AdministrationStatus:      "http://smartplatforms.org/terms/codes/ImmunizationAdministrationStatus#doseGiven",
		AdministrationStatusTitle: "Dose Given",
		CVX:                       "http://www2a.cdc.gov/nip/IIS/IISStandards/vaccines.asp?rpt=cvx#111",
		CVXTitle:                  "influenza vaccine",
		VG:                        "http://www2a.cdc.gov/nip/IIS/IISStandards/vaccines.asp?rpt=vg#FLU",
		VGTitle:                   "FLU",
	}

	require.NoError(t, g.AddImmunizations([]*common.Immunization{im}))

	qs := g.Quads()
	root := belongsTo(qs)[0]
	assert.True(t, hasQuad(qs, root, vocab.Type, vocab.SP.IRI("Immunization")))
	assert.Len(t, objectsOf(qs, root, vocab.SP.IRI("administrationStatus")), 1)
	assert.Len(t, objectsOf(qs, root, vocab.SP.IRI("productName")), 1)
	assert.Len(t, objectsOf(qs, root, vocab.SP.IRI("productClass")), 1)
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("refusalReason")))

	// the composite splits on its last '#'
	status := objectsOf(qs, root, vocab.SP.IRI("administrationStatus"))[0]
	codes := objectsOf(qs, status, vocab.SP.IRI("code"))
	require.Len(t, codes, 1)
	assert.True(t, hasQuad(qs, codes[0], vocab.DCTerms.IRI("identifier"), quad.String("doseGiven")))
}

func TestAddLabResultsQuantitative(t *testing.T) {
	g := New()
	lab := &common.LabResult{
		Code: "2951-2", Name: "Serum sodium", Scale: "Qn",
		Value: "140", Units: "mEq/L", Low: "135", High: "145",
		CollectedAt: "2010-12-27T17:00:00Z", AccessionNumber: "AC09205823577",
	}

	g.AddLabResults([]*common.LabResult{lab})

	qs := g.Quads()
	root := belongsTo(qs)[0]
	quants := objectsOf(qs, root, vocab.SP.IRI("quantitativeResult"))
	require.Len(t, quants, 1)
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("narrativeResult")))

	ranges := objectsOf(qs, quants[0], vocab.SP.IRI("normalRange"))
	require.Len(t, ranges, 1)
	assert.Len(t, objectsOf(qs, ranges[0], vocab.SP.IRI("minimum")), 1)
	assert.Len(t, objectsOf(qs, ranges[0], vocab.SP.IRI("maximum")), 1)

	attrs := objectsOf(qs, root, vocab.SP.IRI("specimenCollected"))
	require.Len(t, attrs, 1)
	assert.True(t, hasQuad(qs, attrs[0], vocab.SP.IRI("startDate"), quad.String("2010-12-27T17:00:00Z")))
	assert.True(t, hasQuad(qs, root, vocab.SP.IRI("externalID"), quad.String("AC09205823577")))
}

func TestAddLabResultsOrdinal(t *testing.T) {
	g := New()
	lab := &common.LabResult{Code: "5778-6", Name: "Urine color", Scale: "Ord", Value: "YELLOW"}

	g.AddLabResults([]*common.LabResult{lab})

	qs := g.Quads()
	root := belongsTo(qs)[0]
	narrs := objectsOf(qs, root, vocab.SP.IRI("narrativeResult"))
	require.Len(t, narrs, 1)
	assert.True(t, hasQuad(qs, narrs[0], vocab.SP.IRI("value"), quad.String("YELLOW")))
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("quantitativeResult")))
}

func TestAddLabResultsUnknownScaleHasNoResult(t *testing.T) {
	g := New()
	lab := &common.LabResult{Code: "5778-6", Name: "Urine color", Scale: "Nom", Value: "YELLOW"}

	g.AddLabResults([]*common.LabResult{lab})

	qs := g.Quads()
	root := belongsTo(qs)[0]
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("quantitativeResult")))
	assert.Empty(t, objectsOf(qs, root, vocab.SP.IRI("narrativeResult")))
}

func TestAddAllergiesExclusion(t *testing.T) {
	g := New()
	a := &common.Allergy{
		Exclusion:           true,
		ExclusionTitle:      "No known allergies",
		ExclusionIdentifier: "160244002",
	}

	g.AddAllergies([]*common.Allergy{a})

	qs := g.Quads()
	assert.Equal(t, 1, countType(qs, vocab.SP.IRI("AllergyExclusion")))
	assert.Zero(t, countType(qs, vocab.SP.IRI("Allergy")))
	root := belongsTo(qs)[0]
	assert.Len(t, objectsOf(qs, root, vocab.SP.IRI("allergyExclusionName")), 1)
}

func TestAddAllergiesFoodVsDrugAllergen(t *testing.T) {
	g := New()
	allergies := []*common.Allergy{
		{
			SeverityIdentifier: "255604002", SeverityTitle: "Mild",
			AllergenClass: "drug", AllergenTitle: "Sulfonamide Antibacterial", AllergenIdentifier: "N0000175503",
		},
		{
			SeverityIdentifier: "24484000", SeverityTitle: "Severe",
			AllergenClass: "food", AllergenTitle: "Peanut", AllergenIdentifier: "QE1QX6B99R",
		},
	}

	g.AddAllergies(allergies)

	qs := g.Quads()
	roots := belongsTo(qs)
	require.Len(t, roots, 2)
	assert.Len(t, objectsOf(qs, roots[0], vocab.SP.IRI("drugClassAllergen")), 1)
	assert.Empty(t, objectsOf(qs, roots[0], vocab.SP.IRI("foodAllergen")))
	assert.Len(t, objectsOf(qs, roots[1], vocab.SP.IRI("foodAllergen")), 1)
	assert.Empty(t, objectsOf(qs, roots[1], vocab.SP.IRI("drugClassAllergen")))
}

func TestAddDemographicsPhonePreference(t *testing.T) {
	g := New()
	d := &common.Demographics{
		GivenName: "Bruce", FamilyName: "Wayne",
		CellPhone: "555-5556",
		Gender:    "male",
	}

	g.AddDemographics(d)

	qs := g.Quads()
	roots := belongsTo(qs)
	require.Len(t, roots, 1)
	tels := objectsOf(qs, roots[0], vocab.VCard.IRI("tel"))
	require.Len(t, tels, 1)
	assert.True(t, hasQuad(qs, tels[0], vocab.Type, vocab.VCard.IRI("Cell")))
	assert.True(t, hasQuad(qs, tels[0], vocab.Type, vocab.VCard.IRI("Pref")),
		"cell is preferred when there is no home phone")
	assert.True(t, hasQuad(qs, roots[0], vocab.FOAF.IRI("gender"), quad.String("male")))
}

func TestAddDemographicsNilIsNoop(t *testing.T) {
	g := New()

	g.AddDemographics(nil)

	assert.Equal(t, 1, g.Len())
}
