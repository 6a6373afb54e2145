// Package common holds the domain records shared by the adapters and the
// application layer. Records arrive from an external data layer already
// validated; fields that feed composite sub-nodes of the patient graph keep
// the flat <prefix>_<suffix> addressing of that layer and are exposed
// through the Field accessor.
package common

import "strconv"

// DefaultBaseURI is the identity base used when a record carries no
// explicit base. Record URIs are <base><recordID>/<collection>/<id>.
const DefaultBaseURI = "http://indivo.org/records/"

func recordURI(base, recordID, collection, id string) string {
	if base == "" {
		base = DefaultBaseURI
	}
	return base + recordID + "/" + collection + "/" + id
}

// Bundle groups one patient's records for a single export.
type Bundle struct {
	RecordID      string
	Demographics  *Demographics
	Medications   []*Medication
	Fills         []*Fill
	Problems      []*Problem
	Vitals        []*VitalSigns
	Immunizations []*Immunization
	LabResults    []*LabResult
	Allergies     []*Allergy
}

type Demographics struct {
	GivenName      string
	AdditionalName string
	FamilyName     string

	Street     string
	Apartment  string
	City       string
	Region     string
	PostalCode string
	Country    string

	HomePhone string
	CellPhone string

	Gender    string
	BirthDate string
	Email     string

	MedicalRecordNumber string
	MedicalRecordTitle  string
	MedicalRecordSystem string
}

type Medication struct {
	BaseURI  string
	RecordID string
	ID       string

	DrugNameTitle      string
	DrugNameIdentifier string

	StartDate    string
	EndDate      string
	Instructions string

	QuantityValue  string
	QuantityUnit   string
	FrequencyValue string
	FrequencyUnit  string

	ProvenanceTitle      string
	ProvenanceIdentifier string
	ProvenanceSystem     string

	Fulfillments []*Fill
}

// URI returns the stable dereferenceable identity of the medication.
func (m *Medication) URI() string {
	return recordURI(m.BaseURI, m.RecordID, "medications", m.ID)
}

type Fill struct {
	BaseURI  string
	RecordID string
	ID       string

	Date               string
	DispenseDaysSupply int
	PBM                string

	QuantityDispensedValue string
	QuantityDispensedUnit  string

	// Medication references the fulfilled medication record, when known.
	Medication *Medication

	PharmacyNCPDPID       string
	PharmacyOrg           string
	PharmacyAdrCountry    string
	PharmacyAdrCity       string
	PharmacyAdrPostalCode string
	PharmacyAdrRegion     string
	PharmacyAdrStreet     string

	ProviderDEANumber         string
	ProviderEthnicity         string
	ProviderNPINumber         string
	ProviderPreferredLanguage string
	ProviderRace              string
	ProviderBirthDate         string
	ProviderEmail             string
	ProviderGender            string

	ProviderNameFamily string
	ProviderNameGiven  string
	ProviderNamePrefix string
	ProviderNameSuffix string

	ProviderAdrCountry    string
	ProviderAdrCity       string
	ProviderAdrPostalCode string
	ProviderAdrRegion     string
	ProviderAdrStreet     string

	ProviderTel1Type      string
	ProviderTel1Number    string
	ProviderTel1Preferred bool
	ProviderTel2Type      string
	ProviderTel2Number    string
	ProviderTel2Preferred bool
}

// URI returns the stable dereferenceable identity of the fulfillment.
func (f *Fill) URI() string {
	return recordURI(f.BaseURI, f.RecordID, "fulfillments", f.ID)
}

// Field exposes the flat <prefix>_<suffix> view of the fill's pharmacy and
// provider fields. Unknown names read as empty.
func (f *Fill) Field(name string) string {
	switch name {
	case "pharmacy_ncpdpid":
		return f.PharmacyNCPDPID
	case "pharmacy_org":
		return f.PharmacyOrg
	case "pharmacy_adr_country":
		return f.PharmacyAdrCountry
	case "pharmacy_adr_city":
		return f.PharmacyAdrCity
	case "pharmacy_adr_postalcode":
		return f.PharmacyAdrPostalCode
	case "pharmacy_adr_region":
		return f.PharmacyAdrRegion
	case "pharmacy_adr_street":
		return f.PharmacyAdrStreet
	case "provider_dea_number":
		return f.ProviderDEANumber
	case "provider_ethnicity":
		return f.ProviderEthnicity
	case "provider_npi_number":
		return f.ProviderNPINumber
	case "provider_preferred_language":
		return f.ProviderPreferredLanguage
	case "provider_race":
		return f.ProviderRace
	case "provider_bday":
		return f.ProviderBirthDate
	case "provider_email":
		return f.ProviderEmail
	case "provider_gender":
		return f.ProviderGender
	case "provider_name_family":
		return f.ProviderNameFamily
	case "provider_name_given":
		return f.ProviderNameGiven
	case "provider_name_prefix":
		return f.ProviderNamePrefix
	case "provider_name_suffix":
		return f.ProviderNameSuffix
	case "provider_adr_country":
		return f.ProviderAdrCountry
	case "provider_adr_city":
		return f.ProviderAdrCity
	case "provider_adr_postalcode":
		return f.ProviderAdrPostalCode
	case "provider_adr_region":
		return f.ProviderAdrRegion
	case "provider_adr_street":
		return f.ProviderAdrStreet
	case "provider_tel_1_type":
		return f.ProviderTel1Type
	case "provider_tel_1_number":
		return f.ProviderTel1Number
	case "provider_tel_1_preferred_p":
		return boolField(f.ProviderTel1Preferred)
	case "provider_tel_2_type":
		return f.ProviderTel2Type
	case "provider_tel_2_number":
		return f.ProviderTel2Number
	case "provider_tel_2_preferred_p":
		return boolField(f.ProviderTel2Preferred)
	}
	return ""
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return ""
}

type Problem struct {
	BaseURI  string
	RecordID string
	ID       string

	StartDate string
	EndDate   string
	Notes     string

	NameTitle      string
	NameIdentifier string
}

// URI returns the stable dereferenceable identity of the problem.
func (p *Problem) URI() string {
	return recordURI(p.BaseURI, p.RecordID, "problems", p.ID)
}

// VitalSigns is one reading; measurement fields hold the value in the
// canonical unit for the sign, empty when not measured.
type VitalSigns struct {
	Timestamp string

	EncounterStartDate string
	EncounterEndDate   string
	EncounterType      string

	Height           string
	Weight           string
	BMI              string
	HeartRate        string
	RespiratoryRate  string
	Temperature      string
	OxygenSaturation string
	Systolic         string
	Diastolic        string
}

// Field exposes measurements by their flat record names.
func (v *VitalSigns) Field(name string) string {
	switch name {
	case "height":
		return v.Height
	case "weight":
		return v.Weight
	case "bmi":
		return v.BMI
	case "heart_rate":
		return v.HeartRate
	case "respiratory_rate":
		return v.RespiratoryRate
	case "temperature":
		return v.Temperature
	case "oxygen_saturation":
		return v.OxygenSaturation
	case "systolic":
		return v.Systolic
	case "diastolic":
		return v.Diastolic
	}
	return ""
}

// Immunization codes are system#identifier composites as supplied by the
// coding layer, with the display title carried alongside.
type Immunization struct {
	Date string

	AdministrationStatus      string
	AdministrationStatusTitle string

	RefusalReason      string
	RefusalReasonTitle string

	CVX      string
	CVXTitle string

	VG       string
	VGTitle  string
	VG2      string
	VG2Title string
}

type LabResult struct {
	Code string
	Name string

	// Scale is "Qn" for quantitative results and "Ord" for ordinal ones.
	Scale string

	Value string
	Units string
	Low   string
	High  string

	CollectedAt     string
	AccessionNumber string
}

type Allergy struct {
	// Exclusion marks a "no known allergies" style record; the exclusion
	// name is attached instead of the allergy detail.
	Exclusion           bool
	ExclusionTitle      string
	ExclusionIdentifier string

	SeverityTitle      string
	SeverityIdentifier string

	ReactionTitle      string
	ReactionIdentifier string

	CategoryTitle      string
	CategoryIdentifier string

	// AllergenClass is "drug" (NDF-RT coded allergen class) or "food"
	// (UNII coded substance).
	AllergenClass      string
	AllergenTitle      string
	AllergenIdentifier string
}

// DaysSupply renders the dispense days supply as a literal value.
func (f *Fill) DaysSupply() string {
	return strconv.Itoa(f.DispenseDaysSupply)
}
