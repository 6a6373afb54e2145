package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordURIs(t *testing.T) {
	m := &Medication{RecordID: "rec1", ID: "261"}
	assert.Equal(t, "http://indivo.org/records/rec1/medications/261", m.URI())

	f := &Fill{BaseURI: "https://ehr.example.org/records/", RecordID: "rec1", ID: "3012"}
	assert.Equal(t, "https://ehr.example.org/records/rec1/fulfillments/3012", f.URI())

	p := &Problem{RecordID: "rec1", ID: "961"}
	assert.Equal(t, "http://indivo.org/records/rec1/problems/961", p.URI())
}

func TestFillFieldView(t *testing.T) {
	f := &Fill{
		PharmacyNCPDPID:       "5235235",
		PharmacyAdrPostalCode: "5555",
		ProviderNameGiven:     "Josuha",
		ProviderTel1Preferred: true,
	}

	assert.Equal(t, "5235235", f.Field("pharmacy_ncpdpid"))
	assert.Equal(t, "5555", f.Field("pharmacy_adr_postalcode"))
	assert.Equal(t, "Josuha", f.Field("provider_name_given"))
	assert.Equal(t, "true", f.Field("provider_tel_1_preferred_p"))
	assert.Equal(t, "", f.Field("provider_tel_2_preferred_p"))
	assert.Equal(t, "", f.Field("no_such_field"))
}

func TestDaysSupply(t *testing.T) {
	f := &Fill{DispenseDaysSupply: 30}
	assert.Equal(t, "30", f.DaysSupply())

	assert.Equal(t, "0", (&Fill{}).DaysSupply())
}

func TestVitalSignsFieldView(t *testing.T) {
	v := &VitalSigns{HeartRate: "70", OxygenSaturation: "98"}

	assert.Equal(t, "70", v.Field("heart_rate"))
	assert.Equal(t, "98", v.Field("oxygen_saturation"))
	assert.Equal(t, "", v.Field("temperature"))
	assert.Equal(t, "", v.Field("no_such_field"))
}
