package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"tuning_get",
		"tuning_set",
		"diagnostics_get",
		"overlay_snapshot",
		"detect_image",
		"endpoints_list",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Tool %s defined twice", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	want := map[string][]string{
		"tuning_set":   {"values"},
		"detect_image": {"path"},
	}

	for _, tool := range GetToolDefinitions() {
		required, _ := tool.InputSchema["required"].([]string)
		exp := want[tool.Name]
		if len(required) != len(exp) {
			t.Errorf("%s required: got %v, want %v", tool.Name, required, exp)
			continue
		}
		for i := range exp {
			if required[i] != exp[i] {
				t.Errorf("%s required[%d]: got %s, want %s", tool.Name, i, required[i], exp[i])
			}
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	defaults := map[string]map[string]interface{}{
		"tuning_set":       {"save": false},
		"overlay_snapshot": {"scale": 1.0},
	}

	for _, tool := range GetToolDefinitions() {
		params, ok := defaults[tool.Name]
		if !ok {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for name, want := range params {
			prop, ok := props[name].(map[string]interface{})
			if !ok {
				t.Errorf("%s: missing property %s", tool.Name, name)
				continue
			}
			if prop["default"] != want {
				t.Errorf("%s.%s default: got %v, want %v", tool.Name, name, prop["default"], want)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s, _, _ := newTestServer(t, false)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
