package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ironsheep/target-vision/internal/dashboard"
	"github.com/ironsheep/target-vision/internal/detection"
	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/pipeline"
	"github.com/ironsheep/target-vision/internal/telemetry"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "tuning_get", "detect_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug().Err(err).Str("tool", params.Name).Msg("Tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Tuning
	case "tuning_get":
		return s.handleTuningGet()
	case "tuning_set":
		return s.handleTuningSet(args)

	// Diagnostics
	case "diagnostics_get":
		return s.handleDiagnosticsGet()
	case "overlay_snapshot":
		return s.handleOverlaySnapshot(args)
	case "detect_image":
		return s.handleDetectImage(args)

	// Telemetry
	case "endpoints_list":
		return s.handleEndpointsList()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Tuning Handlers ===

type tuningValues struct {
	Strategy string             `json:"strategy"`
	Values   map[string]float64 `json:"values"`
	Bounds   tuning.Bounds      `json:"bounds"`
}

func (s *Server) handleTuningGet() (interface{}, error) {
	store := s.pipe.Store()
	values := make(map[string]float64)
	for _, k := range store.Names() {
		values[k], _ = s.table.LookupNumber(k)
	}
	return tuningValues{
		Strategy: s.pipe.Strategy(),
		Values:   values,
		Bounds:   store.Snapshot(),
	}, nil
}

type tuningSetArgs struct {
	Values map[string]float64 `json:"values"`
	Save   bool               `json:"save"`
}

type tuningSetResult struct {
	Updated []string `json:"updated"`
	Saved   string   `json:"saved,omitempty"`
}

func (s *Server) handleTuningSet(args json.RawMessage) (interface{}, error) {
	var a tuningSetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Values) == 0 {
		return nil, errors.New("no values given")
	}

	known := make(map[string]bool)
	for _, k := range s.pipe.Store().Names() {
		known[k] = true
	}
	var unknown []string
	for k := range a.Values {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown tuning keys for %s strategy: %s", s.pipe.Strategy(), strings.Join(unknown, ", "))
	}
	if a.Save && s.tuningFile == "" {
		return nil, errors.New("no tuning file configured")
	}

	res := tuningSetResult{Updated: make([]string, 0, len(a.Values))}
	for k, v := range a.Values {
		s.table.PutNumber(k, v)
		res.Updated = append(res.Updated, k)
	}
	sort.Strings(res.Updated)
	s.logger.Info().Strs("keys", res.Updated).Msg("Tuning updated")

	if a.Save {
		if err := tuning.SaveFile(s.tuningFile, a.Values); err != nil {
			return nil, err
		}
		res.Saved = s.tuningFile
	}
	return res, nil
}

// === Diagnostics Handlers ===

// diagnosticsResult.Unreported counts frames processed since the last
// throughput report.
type diagnosticsResult struct {
	RunID      string            `json:"run_id,omitempty"`
	Strategy   string            `json:"strategy"`
	BadFrames  uint64            `json:"bad_frames"`
	Unreported int64             `json:"unreported_calls"`
	Entries    []dashboard.Entry `json:"entries"`
}

func (s *Server) handleDiagnosticsGet() (interface{}, error) {
	return diagnosticsResult{
		RunID:      s.runID,
		Strategy:   s.pipe.Strategy(),
		BadFrames:  s.pipe.BadFrames(),
		Unreported: s.pipe.Counter().Load(),
		Entries:    s.table.Snapshot(pipeline.DiagnosticsKeys...),
	}, nil
}

type overlaySnapshotArgs struct {
	Scale float64 `json:"scale"`
}

func (s *Server) handleOverlaySnapshot(args json.RawMessage) (interface{}, error) {
	var a overlaySnapshotArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	frame := s.pipe.LatestFrame()
	if frame == nil {
		return nil, errors.New("no overlay frame available yet")
	}
	return imaging.EncodePNG(frame, a.Scale)
}

type detectImageArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

type detectImageResult struct {
	Strategy   string                `json:"strategy"`
	Result     pipeline.Result       `json:"result"`
	Candidates []detection.Candidate `json:"candidate_list"`
	Space      string                `json:"color_space"`
	Probe      [3]int                `json:"probe"`
	Label      string                `json:"label,omitempty"`
	Info       string                `json:"info"`
}

func (s *Server) handleDetectImage(args json.RawMessage) (interface{}, error) {
	var a detectImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.pipe.Detect(img)
	if err != nil {
		return nil, err
	}
	seg := res.Segmentation
	return detectImageResult{
		Strategy:   s.pipe.Strategy(),
		Result:     res,
		Candidates: seg.Candidates,
		Space:      seg.Space.String(),
		Probe:      seg.Probe,
		Label:      seg.Label,
		Info:       pipeline.InfoLine(res),
	}, nil
}

// === Telemetry Handlers ===

type endpointsResult struct {
	Endpoints []string        `json:"endpoints"`
	Stats     telemetry.Stats `json:"stats"`
}

func (s *Server) handleEndpointsList() (interface{}, error) {
	res := endpointsResult{Endpoints: []string{}}
	if s.endpoints == nil {
		return res, nil
	}
	for _, addr := range s.endpoints.Endpoints() {
		res.Endpoints = append(res.Endpoints, addr.String())
	}
	res.Stats = s.endpoints.Stats()
	return res, nil
}
