// Package mcp implements a Model Context Protocol server exposing codegauge
// metric engines as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/codegauge/pkg/alg/lru"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/halstead"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/maintain"
	"github.com/Sumatoshi-tech/codegauge/pkg/frontend"
	"github.com/Sumatoshi-tech/codegauge/pkg/observability"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "codegauge"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 5

	// resultCacheName labels the cache in metrics.
	resultCacheName = "mcp_results"
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// AnalysisMetrics optionally records cache hit/miss counts.
	AnalysisMetrics *observability.AnalysisMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer

	// CacheCapacity bounds the per-content result cache. Non-positive uses
	// the lru package default.
	CacheCapacity int

	// MaxInputSize caps tool code input in bytes. Non-positive uses
	// DefaultMaxCodeInputBytes.
	MaxInputSize int
}

// Server wraps the MCP SDK server with codegauge tool registrations.
type Server struct {
	inner *mcpsdk.Server

	parser   *frontend.Parser
	halstead *halstead.Analyzer
	maintain *maintain.Analyzer
	cache    *lru.Cache[string, any]

	maxInputSize    int
	metrics         *observability.REDMetrics
	analysisMetrics *observability.AnalysisMetrics
	tracer          trace.Tracer

	mu    sync.RWMutex
	tools []string
}

// NewServer creates a new MCP server with all codegauge tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	maxInput := deps.MaxInputSize
	if maxInput <= 0 {
		maxInput = DefaultMaxCodeInputBytes
	}

	srv := &Server{
		inner:           inner,
		parser:          frontend.NewParser(),
		halstead:        halstead.NewAnalyzer(),
		maintain:        maintain.NewAnalyzer(),
		cache:           lru.New[string, any](deps.CacheCapacity),
		maxInputSize:    maxInput,
		metrics:         deps.Metrics,
		analysisMetrics: deps.AnalysisMetrics,
		tracer:          deps.Tracer,
		tools:           make([]string, 0, toolCount),
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// CacheStats returns the result cache counters.
func (s *Server) CacheStats() lru.Stats {
	return s.cache.Stats()
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all codegauge MCP tools to the server.
func (s *Server) registerTools() {
	register(s, ToolNameComplexity, complexityToolDescription, s.handleComplexity)
	register(s, ToolNameHalstead, halsteadToolDescription, s.handleHalstead)
	register(s, ToolNameRaw, rawToolDescription, s.handleRaw)
	register(s, ToolNameMaintain, maintainToolDescription, s.handleMaintain)
	register(s, ToolNameRank, rankToolDescription, s.handleRank)
}

// register wires one tool through the metrics and tracing middleware.
func register[Input any](s *Server, name, description string, handler toolHandler[Input]) {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        name,
		Description: description,
	}, mcpsdk.ToolHandlerFor[Input, ToolOutput](withMetrics(s.metrics, name, withTracing(s.tracer, name, handler))))

	s.trackTool(name)
}

func (s *Server) recordCacheAccess(ctx context.Context, hit bool) {
	if s.analysisMetrics != nil {
		s.analysisMetrics.RecordCacheAccess(ctx, resultCacheName, hit)
	}
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey is the metadata key for trace_id in MCP tool responses.
const traceIDMetaKey = "trace_id"

// withTracing wraps an MCP tool handler to create an OTel span per invocation
// and include trace_id in the response content when sampled.
func withTracing[Input any](tracer trace.Tracer, toolName string, handler toolHandler[Input]) toolHandler[Input] {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		// Include trace_id in response when span is sampled.
		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			traceContent := &mcpsdk.TextContent{Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String())}
			result.Content = append(result.Content, traceContent)
		}

		return result, output, err
	}
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](metrics *observability.REDMetrics, toolName string, handler toolHandler[Input]) toolHandler[Input] {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, mcpSpanPrefix+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, mcpSpanPrefix+toolName, status, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	complexityToolDescription = "Compute cyclomatic complexity for every function, " +
		"method, and class in Python source. Returns per-block scores with letter ranks."

	halsteadToolDescription = "Compute Halstead size, difficulty, and effort measures " +
		"from operator and operand counts, per function and for the whole file."

	rawToolDescription = "Count physical, logical, source, comment, and blank lines " +
		"in Python source."

	maintainToolDescription = "Score Python source 0-100 on the Maintainability Index " +
		"combining volume, complexity, and line counts."

	rankToolDescription = "Rank Python source: per-block complexity letter ranks " +
		"plus the file's Maintainability Index verdict."
)
