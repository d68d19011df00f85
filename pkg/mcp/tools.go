package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/maintain"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/rawmetrics"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// Tool name constants.
const (
	ToolNameComplexity = "analyze_complexity"
	ToolNameHalstead   = "analyze_halstead"
	ToolNameRaw        = "analyze_raw"
	ToolNameMaintain   = "analyze_maintainability"
	ToolNameRank       = "rank_source"
)

// DefaultMaxCodeInputBytes is the default cap for inline code input (1 MB).
const DefaultMaxCodeInputBytes = 1 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")
)

// Input types (auto-generate JSON schemas via struct tags).

// ComplexityInput is the input schema for the analyze_complexity tool.
type ComplexityInput struct {
	Code         string `json:"code"                    jsonschema:"Python source code to analyze"`
	NoAssert     bool   `json:"no_assert,omitempty"     jsonschema:"do not count assert statements as branches"`
	ShowClosures bool   `json:"show_closures,omitempty" jsonschema:"list nested functions as separate rows"`
}

// HalsteadInput is the input schema for the analyze_halstead tool.
type HalsteadInput struct {
	Code string `json:"code" jsonschema:"Python source code to analyze"`
}

// RawInput is the input schema for the analyze_raw tool.
type RawInput struct {
	Code           string `json:"code"                      jsonschema:"Python source code to analyze"`
	SkipDocstrings bool   `json:"skip_docstrings,omitempty" jsonschema:"count standalone docstrings as code instead of comments"`
}

// MaintainInput is the input schema for the analyze_maintainability tool.
type MaintainInput struct {
	Code           string `json:"code"                      jsonschema:"Python source code to analyze"`
	SkipDocstrings bool   `json:"skip_docstrings,omitempty" jsonschema:"exclude docstrings from the comment percentage"`
}

// RankInput is the input schema for the rank_source tool.
type RankInput struct {
	Code string `json:"code" jsonschema:"Python source code to rank"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// toolHandler is the SDK handler shape shared by all codegauge tools.
type toolHandler[Input any] func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error)

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateCode checks inline code input constraints against the server cap.
func (s *Server) validateCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > s.maxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), s.maxInputSize)
	}

	return nil
}

// cacheKey fingerprints a tool invocation: tool name, option switches, and
// a digest of the source. Identical inputs always hit the same entry.
func cacheKey(tool string, code string, opts ...bool) string {
	h := sha256.New()
	h.Write([]byte(tool))
	h.Write([]byte{0})

	for _, opt := range opts {
		h.Write([]byte(strconv.FormatBool(opt)))
		h.Write([]byte{0})
	}

	h.Write([]byte(code))

	return hex.EncodeToString(h.Sum(nil))
}

// parse builds an analysis unit from inline code.
func (s *Server) parse(ctx context.Context, code string) (*syntax.Unit, error) {
	unit, err := s.parser.Parse(ctx, "input.py", []byte(code))
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	return unit, nil
}

// runCached runs compute unless an identical invocation is cached.
func (s *Server) runCached(
	ctx context.Context, key string, compute func() (any, error),
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if cached, ok := s.cache.Get(key); ok {
		s.recordCacheAccess(ctx, true)

		return jsonResult(cached)
	}

	s.recordCacheAccess(ctx, false)

	value, err := compute()
	if err != nil {
		return errorResult(err)
	}

	s.cache.Put(key, value)

	return jsonResult(value)
}

// Tool handlers.

func (s *Server) handleComplexity(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input ComplexityInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validateCode(input.Code); err != nil {
		return errorResult(err)
	}

	key := cacheKey(ToolNameComplexity, input.Code, input.NoAssert, input.ShowClosures)

	return s.runCached(ctx, key, func() (any, error) {
		unit, err := s.parse(ctx, input.Code)
		if err != nil {
			return nil, err
		}

		analyzer := complexity.NewAnalyzer()

		err = analyzer.Configure(map[string]any{
			complexity.OptionNoAssert:     input.NoAssert,
			complexity.OptionShowClosures: input.ShowClosures,
		})
		if err != nil {
			return nil, fmt.Errorf("configure complexity: %w", err)
		}

		return analyzer.Analyze(unit)
	})
}

func (s *Server) handleHalstead(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input HalsteadInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validateCode(input.Code); err != nil {
		return errorResult(err)
	}

	return s.runCached(ctx, cacheKey(ToolNameHalstead, input.Code), func() (any, error) {
		unit, err := s.parse(ctx, input.Code)
		if err != nil {
			return nil, err
		}

		return s.halstead.Analyze(unit)
	})
}

func (s *Server) handleRaw(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input RawInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validateCode(input.Code); err != nil {
		return errorResult(err)
	}

	key := cacheKey(ToolNameRaw, input.Code, input.SkipDocstrings)

	return s.runCached(ctx, key, func() (any, error) {
		unit, err := s.parse(ctx, input.Code)
		if err != nil {
			return nil, err
		}

		analyzer := rawmetrics.NewAnalyzer()

		err = analyzer.Configure(map[string]any{rawmetrics.OptionMulti: !input.SkipDocstrings})
		if err != nil {
			return nil, fmt.Errorf("configure raw: %w", err)
		}

		return analyzer.Analyze(unit)
	})
}

func (s *Server) handleMaintain(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input MaintainInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validateCode(input.Code); err != nil {
		return errorResult(err)
	}

	key := cacheKey(ToolNameMaintain, input.Code, input.SkipDocstrings)

	return s.runCached(ctx, key, func() (any, error) {
		unit, err := s.parse(ctx, input.Code)
		if err != nil {
			return nil, err
		}

		analyzer := maintain.NewAnalyzer()

		err = analyzer.Configure(map[string]any{maintain.OptionMulti: !input.SkipDocstrings})
		if err != nil {
			return nil, fmt.Errorf("configure maintainability: %w", err)
		}

		return analyzer.Analyze(unit)
	})
}

// handleRank combines the block-level complexity ranks with the file's
// Maintainability Index into one compact verdict.
func (s *Server) handleRank(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input RankInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := s.validateCode(input.Code); err != nil {
		return errorResult(err)
	}

	return s.runCached(ctx, cacheKey(ToolNameRank, input.Code), func() (any, error) {
		unit, err := s.parse(ctx, input.Code)
		if err != nil {
			return nil, err
		}

		miReport, err := s.maintain.Analyze(unit)
		if err != nil {
			return nil, err
		}

		blocks, _ := complexity.AnalyzeTree(unit.Tree, complexity.Options{})

		ranked := make([]map[string]any, 0, len(blocks))
		for _, flat := range complexity.Flatten(blocks) {
			ranked = append(ranked, map[string]any{
				"name":       flat.Block.Name,
				"start_line": flat.Block.StartLine,
				"complexity": flat.Block.Complexity,
				"rank":       complexity.Rank(flat.Block.Complexity),
			})
		}

		return analyze.Report{
			"mi":     miReport["mi"],
			"rank":   miReport["rank"],
			"blocks": ranked,
		}, nil
	})
}
