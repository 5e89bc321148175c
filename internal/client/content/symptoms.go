package content

import (
	"fmt"
	"strings"
)

// CommonSymptoms are offered as one-tap additions to a diary entry draft.
var CommonSymptoms = []string{
	"Pain",
	"Tiredness",
	"Dizziness",
	"Shortness of breath",
	"Nausea",
	"Swelling",
	"Headache",
	"Fever",
	"Loss of appetite",
}

// AppendSymptom adds symptom to a diary entry draft, separated by a single
// space unless the draft already ends with one.
func AppendSymptom(draft, symptom string) string {
	switch {
	case draft == "":
		return symptom
	case strings.HasSuffix(draft, " "):
		return draft + symptom
	default:
		return draft + " " + symptom
	}
}

type Measurement struct {
	Kind  string
	Label string
	Unit  string
}

var Measurements = []Measurement{
	{Kind: "weight", Label: "Weight", Unit: "kg"},
	{Kind: "pressure", Label: "Blood pressure", Unit: "mmHg"},
	{Kind: "oxygen", Label: "Oxygen & pulse", Unit: "% SpO2 / bpm"},
	{Kind: "temperature", Label: "Body temperature", Unit: "°C"},
	{Kind: "sugar", Label: "Sugar level", Unit: "mmol/L"},
}

// MeasurementText formats a measurement as diary text, e.g.
// "Weight: 72.5 kg".
func MeasurementText(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty value for %s", kind)
	}
	for _, m := range Measurements {
		if m.Kind == strings.ToLower(strings.TrimSpace(kind)) {
			return fmt.Sprintf("%s: %s %s", m.Label, value, m.Unit), nil
		}
	}
	return "", fmt.Errorf("unknown measurement %q", kind)
}
