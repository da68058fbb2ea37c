package event

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseKeepsRawPayload(t *testing.T) {
	data := []byte(`{"type":"session.created","event_id":"ev_1","session":{"id":"sess_1"}}`)
	env, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}
	if env.Type != TypeSessionCreated || env.EventID != "ev_1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if string(env.Raw) != string(data) {
		t.Fatalf("raw payload altered: %s", env.Raw)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if _, err := Parse([]byte(`{"event_id":"ev_1"}`)); err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestResponseOutput(t *testing.T) {
	data := []byte(`{"type":"response.done","response":{"output":[` +
		`{"type":"message"},` +
		`{"type":"function_call","name":"start_medical_consultation","call_id":"call_1","arguments":"{\"patient_name\":\"Ana\"}"}]}}`)
	env, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}

	output, err := env.ResponseOutput()
	if err != nil {
		t.Fatalf("ResponseOutput err: %v", err)
	}
	if len(output) != 2 {
		t.Fatalf("expected 2 output items, got %d", len(output))
	}
	if output[1].Name != "start_medical_consultation" || output[1].Arguments == "" {
		t.Fatalf("unexpected function call item: %+v", output[1])
	}
}

func TestResponseOutputWrongType(t *testing.T) {
	env := Envelope{Type: TypeSessionCreated}
	if _, err := env.ResponseOutput(); err == nil {
		t.Fatal("expected error for non response.done envelope")
	}
}

func TestNewUserMessageOrdersContent(t *testing.T) {
	ev := NewUserMessage("contexto", "Hola Ana")
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"type":"conversation.item.create"`) {
		t.Fatalf("unexpected type: %s", s)
	}
	if strings.Index(s, "contexto") > strings.Index(s, "Hola Ana") {
		t.Fatalf("context part must precede message part: %s", s)
	}
}

func TestNewSessionUpdateAutoToolChoice(t *testing.T) {
	ev := NewSessionUpdate(Tool{Type: "function", Name: "demo"})
	if ev.Session == nil || ev.Session.ToolChoice != "auto" {
		t.Fatalf("unexpected session payload: %+v", ev.Session)
	}
}

func TestNewResponseCreateOmitsEmptyInstructions(t *testing.T) {
	if ev := NewResponseCreate(""); ev.Response != nil {
		t.Fatalf("expected nil response payload, got %+v", ev.Response)
	}
	ev := NewResponseCreate("La consulta médica ha finalizado.")
	if ev.Response == nil || ev.Response.Instructions == "" {
		t.Fatalf("instructions missing: %+v", ev)
	}
}
