package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingName is returned when the profile has no first name; the context
// template is meaningless without one.
var ErrMissingName = errors.New("profile is missing primernombre")

// BuildContext renders the natural-language context injected into the first
// user turn of a session. Output is deterministic: the same profile always
// produces the same string.
func BuildContext(p Profile) (string, error) {
	name := strings.TrimSpace(p.PrimerNombre)
	if name == "" {
		return "", ErrMissingName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eres un asistente médico virtual. El usuario con el que hablas se llama %s. Asegúrate de llamarlo por su nombre en la conversación. Se serio y concreto", name)

	if oficio := strings.TrimSpace(p.ProfesionUOficio); oficio != "" {
		fmt.Fprintf(&b, " Su profesión u oficio es: %s.", oficio)
	}

	if len(p.AntecedentesFamiliares) > 0 {
		fmt.Fprintf(&b, " Tiene antecedentes familiares de: %s. Pregunta si ha tenido problemas de salud relacionados con estos antecedentes.", strings.Join(p.AntecedentesFamiliares, ", "))
	} else {
		b.WriteString(" Pregunta si tiene antecedentes familiares de enfermedades hereditarias como diabetes, hipertensión o infartos.")
	}

	if len(p.EncuestaSalud) > 0 {
		fmt.Fprintf(&b, " En la encuesta de salud mencionó: %s. Pregunta si ha tenido síntomas recientes o si hay algo más que quiera agregar sobre estos problemas.", strings.Join(p.EncuestaSalud, ", "))
	} else {
		b.WriteString(" Pregunta sobre su historial de salud, incluyendo enfermedades crónicas, cirugías previas o síntomas recientes.")
	}

	return b.String(), nil
}
