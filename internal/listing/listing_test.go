package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soraHeightsJSON = `{"propertyName":"Sora Heights","price":"¥45,000,000","location":"Osaka","access":"","layout":"2LDK","size":"65m2","builtYear":"2015","managementFee":"¥10,000","repairFund":"¥5,000","coverageRatio":"60%","floorAreaRatio":"200%","facilities":"Auto-lock","floor":"5F","restrictions":"","features":["South-facing","Balcony"],"description":"A bright family home."}`

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"zh-Hant", LanguageChinese, false},
		{"chinese", LanguageChinese, false},
		{"Traditional Chinese", LanguageChinese, false},
		{"en", LanguageEnglish, false},
		{"English", LanguageEnglish, false},
		{"fi", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestParseRecordVerbatim(t *testing.T) {
	rec, err := ParseRecord([]byte(soraHeightsJSON))
	require.NoError(t, err)

	assert.Equal(t, "Sora Heights", rec.PropertyName)
	assert.Equal(t, "¥45,000,000", rec.Price)
	assert.Equal(t, "Osaka", rec.Location)
	assert.Equal(t, "", rec.Access)
	assert.Equal(t, "2LDK", rec.Layout)
	assert.Equal(t, "65m2", rec.Size)
	assert.Equal(t, "2015", rec.BuiltYear)
	assert.Equal(t, "5F", rec.Floor)
	assert.Equal(t, "¥10,000", rec.ManagementFee)
	assert.Equal(t, "¥5,000", rec.RepairFund)
	assert.Equal(t, "60%", rec.CoverageRatio)
	assert.Equal(t, "200%", rec.FloorAreaRatio)
	assert.Equal(t, "", rec.Restrictions)
	assert.Equal(t, "Auto-lock", rec.Facilities)
	assert.Equal(t, "A bright family home.", rec.Description)
	assert.Equal(t, []string{"South-facing", "Balcony"}, rec.Features)
}

func TestParseRecordMinimalFields(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"propertyName":"A","price":"B","location":"C"}`))
	require.NoError(t, err)

	// Every field is present after parsing, empty where the payload was
	// silent, and the feature slice is never nil.
	assert.Equal(t, "A", rec.PropertyName)
	assert.Equal(t, "", rec.Access)
	assert.Equal(t, "", rec.Restrictions)
	assert.NotNil(t, rec.Features)
	assert.Empty(t, rec.Features)
}

func TestParseRecordRejectsMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing propertyName", `{"price":"¥1","location":"Osaka"}`},
		{"missing price", `{"propertyName":"A","location":"Osaka"}`},
		{"missing location", `{"propertyName":"A","price":"¥1"}`},
		{"wrong type", `{"propertyName":"A","price":1,"location":"Osaka"}`},
		{"features not array", `{"propertyName":"A","price":"¥1","location":"Osaka","features":"balcony"}`},
		{"not an object", `["a","b"]`},
		{"not json", `the property is nice`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}
