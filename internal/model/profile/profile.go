package profile

import (
	"encoding/json"
	"strings"
)

// Profile is one patient row from the usuarios table. The two list fields
// arrive either as real JSON arrays or as JSON-encoded strings depending on
// how the row was written; StringList normalizes both at decode time so the
// rest of the code never duck-types.
type Profile struct {
	IDGeneral              string     `json:"idgeneral"`
	PrimerNombre           string     `json:"primernombre"`
	ProfesionUOficio       string     `json:"profesionuoficio,omitempty"`
	AntecedentesFamiliares StringList `json:"antecedentesfamiliares"`
	EncuestaSalud          StringList `json:"encuestasalud"`
}

// StringList decodes from either a JSON array of strings or a string holding
// encoded JSON. A malformed field degrades to an empty list rather than
// failing the whole profile decode.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}

	*l = ParseList(raw)
	return nil
}

// ParseList decodes a JSON-encoded string column into a StringList. Empty
// or malformed input yields an empty list.
func ParseList(raw string) StringList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
