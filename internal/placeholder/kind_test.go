package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"%year", KindYear},
		{"%month", KindMonth},
		{"%day", KindDay},
		{"%created_year", KindCreatedYear},
		{"%modified_day", KindModifiedDay},
		{"%width", KindWidth},
		{"%height", KindHeight},
		{"%camera_model", KindCameraModel},
		{"%camera_brand", KindCameraBrand},
		{"%country", KindCountry},
		{"%state", KindState},
		{"%county", KindCounty},
		{"%municipality", KindMunicipality},
		{"%city", KindCity},
		{"%original_filename", KindOriginalFilename},
		{"%original_folder", KindOriginalFolder},
		{"%YEAR", KindUnknown},
		{"%typo", KindUnknown},
		{"%", KindUnknown},
		{"No Place", KindLiteral},
		{"", KindLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, name := range Names() {
		k := Classify(name)
		assert.NotEqual(t, KindUnknown, k, name)
		assert.Equal(t, "%"+k.String(), name)
		assert.NotEmpty(t, k.Label())
	}
}

func TestRequirementPredicates(t *testing.T) {
	alts := []string{"%city", "%year", "fallback"}
	assert.True(t, NeedsLocation(alts))
	assert.True(t, NeedsMetadata(alts))
	assert.False(t, NeedsFilesystemTime(alts))

	assert.True(t, NeedsFilesystemTime([]string{"%modified_month"}))
	assert.False(t, NeedsMetadata([]string{"%original_filename", "%typo", "x"}))
}

func TestTemplateNeeds(t *testing.T) {
	tests := []struct {
		template string
		want     Requirements
	}{
		{"%original_folder/%original_filename", Requirements{}},
		{"%year/%month", Requirements{Metadata: true}},
		{"{%created_year|none}", Requirements{Filesystem: true}},
		{"{%city|%country}/%camera_brand", Requirements{Metadata: true, Location: true}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.template).Needs())
		})
	}
}
