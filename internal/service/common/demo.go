package common

import "strconv"

// DemoBundle seeds a complete sample record for a synthetic patient. The
// allergy section follows the legacy population rule: patients whose numeric
// id ends below 85 carry a "no known allergies" exclusion, the rest carry a
// sulfonamide drug allergy, and odd ids add a peanut food allergy on top.
func DemoBundle(pid string) *Bundle {
	med := &Medication{
		ID:                 "261",
		DrugNameTitle:      "AMITRIPTYLINE HCL 50 MG TAB",
		DrugNameIdentifier: "856845",
		StartDate:          "2007-03-14",
		EndDate:            "2007-08-14",
		Instructions:       "1 qhs",
		QuantityValue:      "30",
		QuantityUnit:       "{tablet}",
		FrequencyValue:     "1",
		FrequencyUnit:      "/d",
	}

	fill := &Fill{
		ID:                     "3012",
		Date:                   "2007-03-14T04:00:00Z",
		DispenseDaysSupply:     30,
		PBM:                    "T00000000001011",
		QuantityDispensedValue: "30",
		QuantityDispensedUnit:  "{tablet}",
		Medication:             med,

		PharmacyNCPDPID:       "5235235",
		PharmacyOrg:           "CVS #588",
		PharmacyAdrStreet:     "111 Lake Drive",
		PharmacyAdrCity:       "WonderCity",
		PharmacyAdrRegion:     "MA",
		PharmacyAdrPostalCode: "5555",
		PharmacyAdrCountry:    "Australia",

		ProviderDEANumber:  "325555555",
		ProviderNPINumber:  "5235235",
		ProviderEmail:      "joshua.mandel@childrens.harvard.edu",
		ProviderNameGiven:  "Josuha",
		ProviderNameFamily: "Mandel",
		ProviderTel1Type:   "w",
		ProviderTel1Number: "1-235-947-3452",
	}
	med.Fulfillments = []*Fill{fill}

	b := &Bundle{
		Demographics: &Demographics{
			GivenName:           "Bruce",
			FamilyName:          "Wayne",
			Street:              "1007 Mountain Drive",
			City:                "Gotham",
			Region:              "NJ",
			PostalCode:          "07001",
			Country:             "USA",
			HomePhone:           "555-5555",
			Gender:              "male",
			BirthDate:           "1939-05-01",
			Email:               "bruce.wayne@example.org",
			MedicalRecordNumber: pid,
			MedicalRecordSystem: "Demo EHR",
		},
		Medications: []*Medication{med},
		Problems: []*Problem{{
			ID:             "961",
			StartDate:      "2009-05-16T12:00:00Z",
			NameTitle:      "Backache (finding)",
			NameIdentifier: "161891005",
		}},
		Vitals: []*VitalSigns{{
			Timestamp:          "2010-05-12T04:00:00Z",
			EncounterStartDate: "2010-05-12T04:00:00Z",
			EncounterEndDate:   "2010-05-12T04:20:00Z",
			EncounterType:      "ambulatory",
			Height:             "1.80",
			Weight:             "95.0",
			BMI:                "29.3",
			HeartRate:          "70",
			RespiratoryRate:    "16",
			Systolic:           "132",
			Diastolic:          "85",
		}},
		Immunizations: []*Immunization{{
			Date:                      "2010-09-30T00:00:00Z",
			AdministrationStatus:      "http://smartplatforms.org/terms/codes/ImmunizationAdministrationStatus#doseGiven",
			AdministrationStatusTitle: "Dose Given",
			CVX:                       "http://www2a.cdc.gov/nip/IIS/IISStandards/vaccines.asp?rpt=cvx#111",
			CVXTitle:                  "influenza virus vaccine, live, attenuated, for intranasal use",
			VG:                        "http://www2a.cdc.gov/nip/IIS/IISStandards/vaccines.asp?rpt=vg#FLU",
			VGTitle:                   "FLU",
		}},
		LabResults: []*LabResult{{
			Code:            "2951-2",
			Name:            "Serum sodium",
			Scale:           "Qn",
			Value:           "140",
			Units:           "mEq/L",
			Low:             "135",
			High:            "145",
			CollectedAt:     "2010-12-27T17:00:00Z",
			AccessionNumber: "AC09205823577",
		}},
		Allergies: demoAllergies(pid),
	}
	return b
}

// demoAllergies applies the legacy pid rule.
func demoAllergies(pid string) []*Allergy {
	n := pidNumber(pid)
	if n%100 < 85 {
		return []*Allergy{{
			Exclusion:           true,
			ExclusionTitle:      "No known allergies",
			ExclusionIdentifier: "160244002",
		}}
	}

	allergies := []*Allergy{{
		SeverityTitle:      "Mild",
		SeverityIdentifier: "255604002",
		ReactionTitle:      "Skin rash",
		ReactionIdentifier: "271807003",
		CategoryTitle:      "Drug allergy",
		CategoryIdentifier: "416098002",
		AllergenClass:      "drug",
		AllergenTitle:      "Sulfonamide Antibacterial",
		AllergenIdentifier: "N0000175503",
	}}
	if n%2 == 1 {
		allergies = append(allergies, &Allergy{
			SeverityTitle:      "Severe",
			SeverityIdentifier: "24484000",
			ReactionTitle:      "Anaphylaxis",
			ReactionIdentifier: "39579001",
			CategoryTitle:      "Food allergy",
			CategoryIdentifier: "414285001",
			AllergenClass:      "food",
			AllergenTitle:      "Peanut",
			AllergenIdentifier: "QE1QX6B99R",
		})
	}
	return allergies
}

// pidNumber reads the digits of a patient id, tolerating separators.
func pidNumber(pid string) int {
	digits := make([]rune, 0, len(pid))
	for _, r := range pid {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return n
}
