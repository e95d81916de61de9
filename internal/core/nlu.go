package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoToolCall means the NLU payload decoded fine but contained no action.
var ErrNoToolCall = errors.New("nlu response contains no tool call")

// nluPayload covers both response shapes the backend has been observed to
// emit: a tool_calls array and a flat {name, parameters} object. A
// top-level error field is a terminal failure for the turn.
type nluPayload struct {
	Error     string `json:"error"`
	ToolCalls []struct {
		Name string         `json:"name"`
		Args map[string]any `json:"args"`
	} `json:"tool_calls"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// DecodeNLUResponse parses an NLU response body into a ToolCall, tolerating
// either observed shape. It never guesses: an unrecognized payload is an
// error, not an empty ToolCall.
func DecodeNLUResponse(data []byte) (*ToolCall, error) {
	var p nluPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("malformed nlu response: %w", err)
	}

	if p.Error != "" {
		return nil, fmt.Errorf("nlu error: %s", p.Error)
	}

	if len(p.ToolCalls) > 0 {
		tc := p.ToolCalls[0]
		if tc.Name == "" {
			return nil, ErrNoToolCall
		}
		args := tc.Args
		if args == nil {
			args = map[string]any{}
		}
		return &ToolCall{Name: tc.Name, Args: args}, nil
	}

	if p.Name != "" {
		args := p.Parameters
		if args == nil {
			args = map[string]any{}
		}
		return &ToolCall{Name: p.Name, Args: args}, nil
	}

	return nil, ErrNoToolCall
}
