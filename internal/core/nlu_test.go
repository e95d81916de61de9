package core_test

import (
	"errors"
	"testing"

	"finaxis-assistant/internal/core"
)

func TestDecodeNLUResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
		wantErr  bool
	}{
		{
			name:     "tool_calls shape",
			body:     `{"tool_calls":[{"name":"consultar_movimientos","args":{"cuenta":"Caja"}}]}`,
			wantName: "consultar_movimientos",
		},
		{
			name:     "flat shape",
			body:     `{"name":"consultar_balance","parameters":{"desde":"2025-01-01"}}`,
			wantName: "consultar_balance",
		},
		{
			name:    "top-level error is terminal",
			body:    `{"error":"model overloaded"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"tool_calls":`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "empty tool call list entry",
			body:    `{"tool_calls":[{"args":{}}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.DecodeNLUResponse([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Args == nil {
				t.Error("args must never be nil on success")
			}
		})
	}
}

func TestDecodeNLUResponse_NoToolCallSentinel(t *testing.T) {
	_, err := core.DecodeNLUResponse([]byte(`{}`))
	if !errors.Is(err, core.ErrNoToolCall) {
		t.Errorf("expected ErrNoToolCall, got %v", err)
	}
}
