package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/ironsheep/target-vision/internal/dashboard"
	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/pipeline"
	"github.com/ironsheep/target-vision/internal/telemetry"
	"github.com/rs/zerolog"
)

// Version is reported in the initialize handshake.
const Version = "0.1.0"

// EndpointSource reports where fixes are being sent. *telemetry.Broadcaster
// implements it.
type EndpointSource interface {
	Endpoints() []*net.UDPAddr
	Stats() telemetry.Stats
}

// Options wires a Server. Pipeline and Table are required.
type Options struct {
	Pipeline *pipeline.Pipeline
	Table    *dashboard.Table

	// Cache is shared with the replay source when both run. Nil creates a
	// private cache.
	Cache *imaging.ImageCache

	// Endpoints is optional; endpoints_list reports an empty set without it.
	Endpoints EndpointSource

	// TuningFile is where tuning_set writes when asked to save.
	TuningFile string

	RunID  string
	Logger zerolog.Logger
}

// Server handles MCP protocol communication
type Server struct {
	pipe       *pipeline.Pipeline
	table      *dashboard.Table
	cache      *imaging.ImageCache
	endpoints  EndpointSource
	tuningFile string
	runID      string
	logger     zerolog.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(opts Options) (*Server, error) {
	if opts.Pipeline == nil {
		return nil, errors.New("server: pipeline is required")
	}
	if opts.Table == nil {
		return nil, errors.New("server: dashboard table is required")
	}
	if opts.Cache == nil {
		opts.Cache = imaging.NewImageCache()
	}
	return &Server{
		pipe:       opts.Pipeline,
		table:      opts.Table,
		cache:      opts.Cache,
		endpoints:  opts.Endpoints,
		tuningFile: opts.TuningFile,
		runID:      opts.RunID,
		logger:     opts.Logger,
	}, nil
}

// Run reads one JSON-RPC request per line from in and writes responses to
// out until in is exhausted.
func (s *Server) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to parse request")
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error().Err(err).Msg("Failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "target-vision",
				"version": Version,
			},
		},
	}
}
