package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest_WithPayload(t *testing.T) {
	data := []byte(`{"command":"SET_WINDOW_STATE","payload":{"handle":42,"state":"floating"}}`)

	req, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Command != CommandSetWindowState {
		t.Fatalf("expected SET_WINDOW_STATE, got %s", req.Command)
	}

	var payload SetWindowStatePayload
	if err := unmarshalPayload(req.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Handle != 42 || payload.State != "floating" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParseRequest_Malformed(t *testing.T) {
	if _, err := ParseRequest([]byte(`{"command":`)); err == nil {
		t.Fatalf("expected error for malformed request")
	}
}

func TestUnmarshalPayload_MissingPayloadFails(t *testing.T) {
	var payload FocusWindowPayload
	if err := unmarshalPayload(nil, &payload); err == nil {
		t.Fatalf("expected error for missing payload")
	}
}

func TestNewOKResponse_RoundTripsData(t *testing.T) {
	resp, err := NewOKResponse(StatusData{MonitorCount: 2, WindowCount: 5, DaemonRunning: true})
	if err != nil {
		t.Fatalf("new response: %v", err)
	}

	raw, err := resp.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status != "OK" {
		t.Fatalf("expected OK status, got %s", decoded.Status)
	}

	var status StatusData
	if err := json.Unmarshal(decoded.Data, &status); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if status.MonitorCount != 2 || status.WindowCount != 5 || !status.DaemonRunning {
		t.Fatalf("unexpected status data %+v", status)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("no such window")
	if resp.Status != "ERROR" || resp.Error != "no such window" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
