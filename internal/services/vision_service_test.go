package services

import (
	"testing"
)

func TestParseIdentificationFencedJSON(t *testing.T) {
	content := "```json\n" + `{
		"common_name": "Turk's Cap",
		"latin_name": "Malvaviscus arboreus",
		"hardiness_zone": "7-11",
		"sun_preference": "partial shade",
		"drought_tolerance": "moderate",
		"texas_native": true,
		"indoor_outdoor": "outdoor",
		"plant_classification": "perennial",
		"description": "A shade-tolerant native with red turban-shaped blooms."
	}` + "\n```"

	result, err := parseIdentification(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.CommonName == nil || *result.CommonName != "Turk's Cap" {
		t.Fatalf("common name = %v", result.CommonName)
	}
	if result.TexasNative == nil || !*result.TexasNative {
		t.Fatalf("texas_native = %v", result.TexasNative)
	}
	if result.PlantClassification == nil || *result.PlantClassification != "perennial" {
		t.Fatalf("classification = %v", result.PlantClassification)
	}
}

func TestParseIdentificationUnknownSentinels(t *testing.T) {
	content := `{
		"common_name": "unknown",
		"latin_name": "Unknown",
		"hardiness_zone": "unknown",
		"sun_preference": "",
		"drought_tolerance": "unknown",
		"texas_native": "unknown",
		"indoor_outdoor": "unknown",
		"plant_classification": "unknown",
		"description": "Several species of cacti and agaves in a rock garden."
	}`

	result, err := parseIdentification(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.CommonName != nil || result.LatinName != nil || result.HardinessZone != nil ||
		result.SunPreference != nil || result.DroughtTolerance != nil || result.TexasNative != nil ||
		result.IndoorOutdoor != nil || result.PlantClassification != nil {
		t.Fatalf("sentinel fields should map to nil: %+v", result)
	}
	if result.Description == "" {
		t.Fatal("description must survive sentinel mapping")
	}
}

func TestParseIdentificationRejectsProse(t *testing.T) {
	if _, err := parseIdentification("This looks like some kind of agave to me."); err != ErrVisionParse {
		t.Fatalf("expected ErrVisionParse, got %v", err)
	}
}

func TestParseIdentificationRequiresMandatoryFields(t *testing.T) {
	cases := map[string]string{
		"missing common_name": `{"latin_name": "Agave americana", "description": "A large succulent."}`,
		"missing description": `{"common_name": "Century Plant", "latin_name": "Agave americana"}`,
	}
	for name, content := range cases {
		if _, err := parseIdentification(content); err != ErrVisionParse {
			t.Errorf("%s: expected ErrVisionParse, got %v", name, err)
		}
	}
}

func TestParseIdentificationUnlistedClassification(t *testing.T) {
	content := `{
		"common_name": "Bur Oak",
		"latin_name": "Quercus macrocarpa",
		"plant_classification": "deciduous hardwood",
		"description": "A massive shade tree with huge acorns."
	}`

	result, err := parseIdentification(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.PlantClassification != nil {
		t.Fatalf("out-of-set classification should be dropped, got %v", result.PlantClassification)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"{}", "{}"},
		{"  {}\n", "{}"},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
