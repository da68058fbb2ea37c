package consult

import "github.com/consultavoz/backend/internal/model/event"

// ToolName is the function the agent invokes to open a consultation summary.
const ToolName = "start_medical_consultation"

// Summary is the structured output of a completed consultation tool call.
// It only exists to render the summary panel and is discarded on reset.
type Summary struct {
	PatientName string `json:"patient_name"`
	Symptoms    string `json:"symptoms"`
	Urgency     string `json:"urgency"`
}

// ConsultationTool returns the tool definition registered with the agent via
// session.update.
func ConsultationTool() event.Tool {
	return event.Tool{
		Type:        "function",
		Name:        ToolName,
		Description: "Call this function when a user asks for a medical consultation.",
		Parameters: map[string]any{
			"type":   "object",
			"strict": true,
			"properties": map[string]any{
				"patient_name": map[string]any{
					"type":        "string",
					"description": "Name of the patient.",
				},
				"symptoms": map[string]any{
					"type":        "string",
					"description": "Description of the symptoms.",
				},
				"urgency": map[string]any{
					"type":        "string",
					"description": "Level of urgency (e.g., low, medium, high).",
				},
			},
			"required": []string{"patient_name", "symptoms", "urgency"},
		},
	}
}
