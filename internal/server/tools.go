package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Tuning
		{
			Name:        "tuning_get",
			Description: "Return the active segmentation strategy and every tuning value it reads (color bounds and acceptance bounds).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "tuning_set",
			Description: "Set one or more tuning values. Changes apply from the next frame. Unknown keys are rejected without changing anything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"values": map[string]interface{}{
						"type":                 "object",
						"description":          "Key/value pairs, e.g. {\"HueMin\": 40, \"AreaMin\": 50}",
						"additionalProperties": map[string]interface{}{"type": "number"},
					},
					"save": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write the values to the tuning file. Default false",
						"default":     false,
					},
				},
				"required": []string{"values"},
			},
		},

		// Diagnostics
		{
			Name:        "diagnostics_get",
			Description: "Return the values the pipeline publishes for every frame (fix, target geometry, probe, throughput) plus the bad frame count and the calls not yet covered by a throughput report.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "overlay_snapshot",
			Description: "Return the most recent annotated frame as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
			},
		},
		{
			Name:        "detect_image",
			Description: "Run the current pipeline configuration on an image file and return the candidates, selected target and fix. Nothing is transmitted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-read the file even if it is cached. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Telemetry
		{
			Name:        "endpoints_list",
			Description: "List the UDP endpoints fixes are broadcast to, with send and failure counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
