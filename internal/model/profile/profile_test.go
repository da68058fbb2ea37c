package profile

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUnmarshalListAsArray(t *testing.T) {
	var p Profile
	data := []byte(`{"idgeneral":"abc","primernombre":"Ana","antecedentesfamiliares":["diabetes","hipertensión"]}`)
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if len(p.AntecedentesFamiliares) != 2 || p.AntecedentesFamiliares[0] != "diabetes" {
		t.Fatalf("unexpected list: %v", p.AntecedentesFamiliares)
	}
}

func TestUnmarshalListAsEncodedString(t *testing.T) {
	var p Profile
	data := []byte(`{"primernombre":"Ana","encuestasalud":"[\"dolor de cabeza\",\"fatiga\"]"}`)
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if len(p.EncuestaSalud) != 2 || p.EncuestaSalud[1] != "fatiga" {
		t.Fatalf("unexpected list: %v", p.EncuestaSalud)
	}
}

func TestUnmarshalListDegradesOnBadJSON(t *testing.T) {
	cases := []string{
		`{"primernombre":"Ana","encuestasalud":"not json"}`,
		`{"primernombre":"Ana","encuestasalud":""}`,
		`{"primernombre":"Ana","encuestasalud":42}`,
		`{"primernombre":"Ana","encuestasalud":null}`,
	}
	for _, tc := range cases {
		var p Profile
		if err := json.Unmarshal([]byte(tc), &p); err != nil {
			t.Fatalf("decode should never fail, got %v for %s", err, tc)
		}
		if len(p.EncuestaSalud) != 0 {
			t.Fatalf("expected empty list for %s, got %v", tc, p.EncuestaSalud)
		}
	}
}

func TestBuildContextListsItemsVerbatim(t *testing.T) {
	p := Profile{
		PrimerNombre:           "Ana",
		ProfesionUOficio:       "enfermera",
		AntecedentesFamiliares: StringList{"diabetes", "hipertensión"},
		EncuestaSalud:          StringList{"dolor de cabeza"},
	}

	got, err := BuildContext(p)
	if err != nil {
		t.Fatalf("BuildContext err: %v", err)
	}

	for _, want := range []string{
		"se llama Ana",
		"Su profesión u oficio es: enfermera.",
		"antecedentes familiares de: diabetes, hipertensión.",
		"En la encuesta de salud mencionó: dolor de cabeza.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildContextGenericClauses(t *testing.T) {
	got, err := BuildContext(Profile{PrimerNombre: "Luis"})
	if err != nil {
		t.Fatalf("BuildContext err: %v", err)
	}

	if !strings.Contains(got, "enfermedades hereditarias como diabetes, hipertensión o infartos") {
		t.Fatalf("missing generic family-history clause:\n%s", got)
	}
	if !strings.Contains(got, "enfermedades crónicas, cirugías previas o síntomas recientes") {
		t.Fatalf("missing generic survey clause:\n%s", got)
	}
	if strings.Contains(got, "Su profesión u oficio") {
		t.Fatalf("occupation clause should be absent:\n%s", got)
	}
}

func TestBuildContextMissingName(t *testing.T) {
	if _, err := BuildContext(Profile{PrimerNombre: "  "}); err != ErrMissingName {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	p := Profile{PrimerNombre: "Ana", EncuestaSalud: StringList{"tos"}}
	a, _ := BuildContext(p)
	b, _ := BuildContext(p)
	if a != b {
		t.Fatal("expected identical output for identical input")
	}
}
