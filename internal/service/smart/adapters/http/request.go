package http

import (
	"github.com/oapi-codegen/runtime/types"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
)

const dateLayout = "2006-01-02"

// ExportRequest is the JSON body of an export call: one patient's records
// as handed over by the data layer.
type ExportRequest struct {
	Demographics  *DemographicsRequest  `json:"demographics,omitempty"`
	Medications   []MedicationRequest   `json:"medications,omitempty"`
	Fulfillments  []FillRequest         `json:"fulfillments,omitempty"`
	Problems      []ProblemRequest      `json:"problems,omitempty"`
	VitalSigns    []VitalSignsRequest   `json:"vitalSigns,omitempty"`
	Immunizations []ImmunizationRequest `json:"immunizations,omitempty"`
	LabResults    []LabResultRequest    `json:"labResults,omitempty"`
	Allergies     []AllergyRequest      `json:"allergies,omitempty"`
}

type CodedRequest struct {
	Title      string `json:"title,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

type CompositeCodeRequest struct {
	// Code is a system#identifier composite.
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

type QuantityRequest struct {
	Value string `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

type NameRequest struct {
	Family string `json:"family,omitempty"`
	Given  string `json:"given,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

type AddressRequest struct {
	Street     string `json:"street,omitempty"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type TelephoneRequest struct {
	Type      string `json:"type,omitempty"`
	Number    string `json:"number,omitempty"`
	Preferred bool   `json:"preferred,omitempty"`
}

type DemographicsRequest struct {
	GivenName      string          `json:"givenName,omitempty"`
	AdditionalName string          `json:"additionalName,omitempty"`
	FamilyName     string          `json:"familyName,omitempty"`
	Address        *AddressRequest `json:"address,omitempty"`
	HomePhone      string          `json:"homePhone,omitempty"`
	CellPhone      string          `json:"cellPhone,omitempty"`
	Gender         string          `json:"gender,omitempty"`
	DateOfBirth    *types.Date     `json:"dateOfBirth,omitempty"`
	Email          string          `json:"email,omitempty"`

	MedicalRecordNumber string `json:"medicalRecordNumber,omitempty"`
	MedicalRecordTitle  string `json:"medicalRecordTitle,omitempty"`
	MedicalRecordSystem string `json:"medicalRecordSystem,omitempty"`
}

type MedicationRequest struct {
	ID           string           `json:"id"`
	DrugName     CodedRequest     `json:"drugName"`
	StartDate    types.Date       `json:"startDate"`
	EndDate      *types.Date      `json:"endDate,omitempty"`
	Instructions string           `json:"instructions,omitempty"`
	Quantity     *QuantityRequest `json:"quantity,omitempty"`
	Frequency    *QuantityRequest `json:"frequency,omitempty"`
	Provenance   *CodedRequest    `json:"provenance,omitempty"`
	// ProvenanceSystem qualifies the provenance code; defaults to the
	// local MedicationProvenance scheme base when omitted.
	ProvenanceSystem string        `json:"provenanceSystem,omitempty"`
	Fulfillments     []FillRequest `json:"fulfillments,omitempty"`
}

type FillRequest struct {
	ID                 string             `json:"id"`
	Date               string             `json:"date"`
	DispenseDaysSupply int                `json:"dispenseDaysSupply"`
	PBM                string             `json:"pbm,omitempty"`
	QuantityDispensed  *QuantityRequest   `json:"quantityDispensed,omitempty"`
	Pharmacy           *PharmacyRequest   `json:"pharmacy,omitempty"`
	Provider           *ProviderRequest   `json:"provider,omitempty"`
	Medication         *MedicationRequest `json:"medication,omitempty"`
}

type PharmacyRequest struct {
	NCPDPID string          `json:"ncpdpId,omitempty"`
	Org     string          `json:"org,omitempty"`
	Address *AddressRequest `json:"address,omitempty"`
}

type ProviderRequest struct {
	Name              *NameRequest      `json:"name,omitempty"`
	DEANumber         string            `json:"deaNumber,omitempty"`
	Ethnicity         string            `json:"ethnicity,omitempty"`
	NPINumber         string            `json:"npiNumber,omitempty"`
	PreferredLanguage string            `json:"preferredLanguage,omitempty"`
	Race              string            `json:"race,omitempty"`
	DateOfBirth       *types.Date       `json:"dateOfBirth,omitempty"`
	Email             string            `json:"email,omitempty"`
	Gender            string            `json:"gender,omitempty"`
	Address           *AddressRequest   `json:"address,omitempty"`
	Tel1              *TelephoneRequest `json:"tel1,omitempty"`
	Tel2              *TelephoneRequest `json:"tel2,omitempty"`
}

type ProblemRequest struct {
	ID        string       `json:"id"`
	Name      CodedRequest `json:"name"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

type VitalSignsRequest struct {
	Timestamp string            `json:"timestamp"`
	Encounter *EncounterRequest `json:"encounter,omitempty"`

	Height           string `json:"height,omitempty"`
	Weight           string `json:"weight,omitempty"`
	BMI              string `json:"bmi,omitempty"`
	HeartRate        string `json:"heartRate,omitempty"`
	RespiratoryRate  string `json:"respiratoryRate,omitempty"`
	Temperature      string `json:"temperature,omitempty"`
	OxygenSaturation string `json:"oxygenSaturation,omitempty"`
	Systolic         string `json:"systolic,omitempty"`
	Diastolic        string `json:"diastolic,omitempty"`
}

type EncounterRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Type      string `json:"type,omitempty"`
}

type ImmunizationRequest struct {
	Date                 string                 `json:"date"`
	AdministrationStatus CompositeCodeRequest   `json:"administrationStatus"`
	RefusalReason        *CompositeCodeRequest  `json:"refusalReason,omitempty"`
	Product              CompositeCodeRequest   `json:"product"`
	ProductClasses       []CompositeCodeRequest `json:"productClasses,omitempty"`
}

type LabResultRequest struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Scale           string `json:"scale"`
	Value           string `json:"value,omitempty"`
	Units           string `json:"units,omitempty"`
	Low             string `json:"low,omitempty"`
	High            string `json:"high,omitempty"`
	CollectedAt     string `json:"collectedAt,omitempty"`
	AccessionNumber string `json:"accessionNumber,omitempty"`
}

type AllergyRequest struct {
	Exclusion     bool          `json:"exclusion,omitempty"`
	ExclusionName *CodedRequest `json:"exclusionName,omitempty"`
	Severity      *CodedRequest `json:"severity,omitempty"`
	Reaction      *CodedRequest `json:"reaction,omitempty"`
	Category      *CodedRequest `json:"category,omitempty"`
	AllergenClass string        `json:"allergenClass,omitempty"`
	Allergen      *CodedRequest `json:"allergen,omitempty"`
}

// Bundle maps the transport request onto the domain records consumed by the
// application layer.
func (r *ExportRequest) Bundle() *common.Bundle {
	b := &common.Bundle{}
	if r == nil {
		return b
	}

	if r.Demographics != nil {
		b.Demographics = r.Demographics.record()
	}
	for i := range r.Medications {
		b.Medications = append(b.Medications, r.Medications[i].record())
	}
	for i := range r.Fulfillments {
		b.Fills = append(b.Fills, r.Fulfillments[i].record())
	}
	for i := range r.Problems {
		b.Problems = append(b.Problems, r.Problems[i].record())
	}
	for i := range r.VitalSigns {
		b.Vitals = append(b.Vitals, r.VitalSigns[i].record())
	}
	for i := range r.Immunizations {
		b.Immunizations = append(b.Immunizations, r.Immunizations[i].record())
	}
	for i := range r.LabResults {
		b.LabResults = append(b.LabResults, r.LabResults[i].record())
	}
	for i := range r.Allergies {
		b.Allergies = append(b.Allergies, r.Allergies[i].record())
	}
	return b
}

func dateString(d *types.Date) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

func (d *DemographicsRequest) record() *common.Demographics {
	rec := &common.Demographics{
		GivenName:           d.GivenName,
		AdditionalName:      d.AdditionalName,
		FamilyName:          d.FamilyName,
		HomePhone:           d.HomePhone,
		CellPhone:           d.CellPhone,
		Gender:              d.Gender,
		BirthDate:           dateString(d.DateOfBirth),
		Email:               d.Email,
		MedicalRecordNumber: d.MedicalRecordNumber,
		MedicalRecordTitle:  d.MedicalRecordTitle,
		MedicalRecordSystem: d.MedicalRecordSystem,
	}
	if d.Address != nil {
		rec.Street = d.Address.Street
		rec.Apartment = d.Address.Apartment
		rec.City = d.Address.City
		rec.Region = d.Address.Region
		rec.PostalCode = d.Address.PostalCode
		rec.Country = d.Address.Country
	}
	return rec
}

func (m *MedicationRequest) record() *common.Medication {
	rec := &common.Medication{
		ID:                 m.ID,
		DrugNameTitle:      m.DrugName.Title,
		DrugNameIdentifier: m.DrugName.Identifier,
		StartDate:          m.StartDate.Format(dateLayout),
		EndDate:            dateString(m.EndDate),
		Instructions:       m.Instructions,
		ProvenanceSystem:   m.ProvenanceSystem,
	}
	if m.Quantity != nil {
		rec.QuantityValue = m.Quantity.Value
		rec.QuantityUnit = m.Quantity.Unit
	}
	if m.Frequency != nil {
		rec.FrequencyValue = m.Frequency.Value
		rec.FrequencyUnit = m.Frequency.Unit
	}
	if m.Provenance != nil {
		rec.ProvenanceTitle = m.Provenance.Title
		rec.ProvenanceIdentifier = m.Provenance.Identifier
		if rec.ProvenanceSystem == "" && rec.ProvenanceIdentifier != "" {
			rec.ProvenanceSystem = "http://smartplatforms.org/terms/codes/MedicationProvenance#"
		}
	}
	for i := range m.Fulfillments {
		fill := m.Fulfillments[i].record()
		fill.Medication = rec
		rec.Fulfillments = append(rec.Fulfillments, fill)
	}
	return rec
}

func (f *FillRequest) record() *common.Fill {
	rec := &common.Fill{
		ID:                 f.ID,
		Date:               f.Date,
		DispenseDaysSupply: f.DispenseDaysSupply,
		PBM:                f.PBM,
	}
	if f.QuantityDispensed != nil {
		rec.QuantityDispensedValue = f.QuantityDispensed.Value
		rec.QuantityDispensedUnit = f.QuantityDispensed.Unit
	}
	if f.Pharmacy != nil {
		rec.PharmacyNCPDPID = f.Pharmacy.NCPDPID
		rec.PharmacyOrg = f.Pharmacy.Org
		if a := f.Pharmacy.Address; a != nil {
			rec.PharmacyAdrStreet = a.Street
			rec.PharmacyAdrCity = a.City
			rec.PharmacyAdrRegion = a.Region
			rec.PharmacyAdrPostalCode = a.PostalCode
			rec.PharmacyAdrCountry = a.Country
		}
	}
	if p := f.Provider; p != nil {
		rec.ProviderDEANumber = p.DEANumber
		rec.ProviderEthnicity = p.Ethnicity
		rec.ProviderNPINumber = p.NPINumber
		rec.ProviderPreferredLanguage = p.PreferredLanguage
		rec.ProviderRace = p.Race
		rec.ProviderBirthDate = dateString(p.DateOfBirth)
		rec.ProviderEmail = p.Email
		rec.ProviderGender = p.Gender
		if n := p.Name; n != nil {
			rec.ProviderNameFamily = n.Family
			rec.ProviderNameGiven = n.Given
			rec.ProviderNamePrefix = n.Prefix
			rec.ProviderNameSuffix = n.Suffix
		}
		if a := p.Address; a != nil {
			rec.ProviderAdrStreet = a.Street
			rec.ProviderAdrCity = a.City
			rec.ProviderAdrRegion = a.Region
			rec.ProviderAdrPostalCode = a.PostalCode
			rec.ProviderAdrCountry = a.Country
		}
		if t := p.Tel1; t != nil {
			rec.ProviderTel1Type = t.Type
			rec.ProviderTel1Number = t.Number
			rec.ProviderTel1Preferred = t.Preferred
		}
		if t := p.Tel2; t != nil {
			rec.ProviderTel2Type = t.Type
			rec.ProviderTel2Number = t.Number
			rec.ProviderTel2Preferred = t.Preferred
		}
	}
	if f.Medication != nil {
		rec.Medication = f.Medication.record()
	}
	return rec
}

func (p *ProblemRequest) record() *common.Problem {
	return &common.Problem{
		ID:             p.ID,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Notes:          p.Notes,
		NameTitle:      p.Name.Title,
		NameIdentifier: p.Name.Identifier,
	}
}

func (v *VitalSignsRequest) record() *common.VitalSigns {
	rec := &common.VitalSigns{
		Timestamp:        v.Timestamp,
		Height:           v.Height,
		Weight:           v.Weight,
		BMI:              v.BMI,
		HeartRate:        v.HeartRate,
		RespiratoryRate:  v.RespiratoryRate,
		Temperature:      v.Temperature,
		OxygenSaturation: v.OxygenSaturation,
		Systolic:         v.Systolic,
		Diastolic:        v.Diastolic,
	}
	if v.Encounter != nil {
		rec.EncounterStartDate = v.Encounter.StartDate
		rec.EncounterEndDate = v.Encounter.EndDate
		rec.EncounterType = v.Encounter.Type
	}
	return rec
}

func (i *ImmunizationRequest) record() *common.Immunization {
	rec := &common.Immunization{
		Date:                      i.Date,
		AdministrationStatus:      i.AdministrationStatus.Code,
		AdministrationStatusTitle: i.AdministrationStatus.Title,
		CVX:                       i.Product.Code,
		CVXTitle:                  i.Product.Title,
	}
	if i.RefusalReason != nil {
		rec.RefusalReason = i.RefusalReason.Code
		rec.RefusalReasonTitle = i.RefusalReason.Title
	}
	if len(i.ProductClasses) > 0 {
		rec.VG = i.ProductClasses[0].Code
		rec.VGTitle = i.ProductClasses[0].Title
	}
	if len(i.ProductClasses) > 1 {
		rec.VG2 = i.ProductClasses[1].Code
		rec.VG2Title = i.ProductClasses[1].Title
	}
	return rec
}

func (l *LabResultRequest) record() *common.LabResult {
	return &common.LabResult{
		Code:            l.Code,
		Name:            l.Name,
		Scale:           l.Scale,
		Value:           l.Value,
		Units:           l.Units,
		Low:             l.Low,
		High:            l.High,
		CollectedAt:     l.CollectedAt,
		AccessionNumber: l.AccessionNumber,
	}
}

func (a *AllergyRequest) record() *common.Allergy {
	rec := &common.Allergy{
		Exclusion:     a.Exclusion,
		AllergenClass: a.AllergenClass,
	}
	if a.ExclusionName != nil {
		rec.ExclusionTitle = a.ExclusionName.Title
		rec.ExclusionIdentifier = a.ExclusionName.Identifier
	}
	if a.Severity != nil {
		rec.SeverityTitle = a.Severity.Title
		rec.SeverityIdentifier = a.Severity.Identifier
	}
	if a.Reaction != nil {
		rec.ReactionTitle = a.Reaction.Title
		rec.ReactionIdentifier = a.Reaction.Identifier
	}
	if a.Category != nil {
		rec.CategoryTitle = a.Category.Title
		rec.CategoryIdentifier = a.Category.Identifier
	}
	if a.Allergen != nil {
		rec.AllergenTitle = a.Allergen.Title
		rec.AllergenIdentifier = a.Allergen.Identifier
	}
	return rec
}
