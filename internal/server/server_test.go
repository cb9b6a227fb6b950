package server

import (
	"encoding/json"
	"testing"
)

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(false)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp == nil {
		t.Fatal("Expected a response to initialize")
	}
	if resp.Error != nil {
		t.Fatalf("initialize returned error: %+v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("initialize result is not a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
}

func TestHandleRequest_InitializedNotification(t *testing.T) {
	s := New(false)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Error("Notifications must not produce a response")
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(false)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatal("ping should succeed")
	}
	if resp.ID != 7 {
		t.Errorf("Response ID = %v, want 7", resp.ID)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := New(false)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "bogus"})
	if resp == nil || resp.Error == nil {
		t.Fatal("Expected an error response for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code = %d, want -32601", resp.Error.Code)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New(false)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatal("tools/list should succeed")
	}

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]Tool)
	if len(tools) == 0 {
		t.Fatal("Expected at least one tool definition")
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("Tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("Tool %s has no input schema", tool.Name)
		}
	}

	for _, want := range []string{
		"image_load", "image_dimensions", "image_detect_lines",
		"image_detect_regions", "image_edge_map", "image_crop",
		"image_sample_color",
	} {
		if !names[want] {
			t.Errorf("Missing tool definition: %s", want)
		}
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(false)

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`{not json`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("Expected -32602 for invalid params, got %+v", resp.Error)
	}
}

func TestExecuteTool_Unknown(t *testing.T) {
	s := New(false)

	if _, err := s.executeTool("no_such_tool", json.RawMessage(`{}`)); err == nil {
		t.Error("Expected error for unknown tool")
	}
}
