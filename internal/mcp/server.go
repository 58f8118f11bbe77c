// Package mcp provides a Model Context Protocol server for zantetsu.
//
// It exposes filename parsing, quality scoring and group-trust
// management as MCP tools over stdio, so agent frontends can rank
// releases without shelling out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zantetsu/zantetsu/internal/parser"
	"github.com/zantetsu/zantetsu/internal/scoring"
	"github.com/zantetsu/zantetsu/internal/trust"
	"github.com/zantetsu/zantetsu/internal/types"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Parser  *parser.Parser
	Trust   trust.Store
	Context scoring.ClientContext
	Version string // version string for MCP server info
}

// trustMu serializes MCP tool calls that touch the trust database.
// The mcp-go library dispatches handlers concurrently via goroutines,
// and SQLite supports only one writer at a time.
var trustMu sync.Mutex

// NewServer creates a configured MCP server with all zantetsu tools.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"zantetsu",
		ver,
		server.WithToolCapabilities(false),
	)

	p := cfg.Parser
	if p == nil {
		p = parser.NewDefault()
	}

	registerParseTool(s, p)
	registerScoreTool(s, p, cfg.Trust, cfg.Context)
	if cfg.Trust != nil {
		registerTrustGetTool(s, cfg.Trust)
		registerTrustSetTool(s, cfg.Trust)
		registerTrustFeedbackTool(s, cfg.Trust)
	}

	return s
}

// --- Tools ---

func registerParseTool(s *server.MCPServer, p *parser.Parser) {
	tool := mcp.NewTool("zantetsu_parse",
		mcp.WithDescription("Parse an anime release filename or torrent name into structured metadata: title, group, episode, season, resolution, codecs, source, year, CRC32, extension and version, plus extraction confidence."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("Filename or torrent name to parse"),
		),
		mcp.WithString("mode",
			mcp.Description("Parse mode: light (regex), full (statistical), or auto (default: configured mode)"),
			mcp.Enum("light", "full", "auto"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := req.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError("input is required"), nil
		}

		mode := p.Config().Mode
		if modeStr, err := req.RequireString("mode"); err == nil && modeStr != "" {
			mode, err = types.ParseParseMode(modeStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid mode: %v", err)), nil
			}
		}

		result, err := p.ParseMode(input, mode)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// scoreResponse is the zantetsu_score tool payload.
type scoreResponse struct {
	Result   *types.ParseResult    `json:"result"`
	Scores   scoring.QualityScores `json:"scores"`
	Adjusted scoring.QualityScores `json:"adjusted_scores"`
	Quality  float64               `json:"quality"`
}

func registerScoreTool(s *server.MCPServer, p *parser.Parser, trustStore trust.Store, clientCtx scoring.ClientContext) {
	tool := mcp.NewTool("zantetsu_score",
		mcp.WithDescription("Parse a release filename and compute its weighted quality score, adjusted for the client device, network and hardware decode support. Group trust comes from the trust store when available."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("Filename or torrent name to parse and score"),
		),
		mcp.WithString("device",
			mcp.Description("Client device type (default: desktop)"),
			mcp.Enum("desktop", "laptop", "mobile", "tv", "embedded"),
		),
		mcp.WithString("network",
			mcp.Description("Client network quality (default: unlimited)"),
			mcp.Enum("unlimited", "broadband", "limited", "offline"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := req.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError("input is required"), nil
		}

		client := clientCtx
		if deviceStr, err := req.RequireString("device"); err == nil && deviceStr != "" {
			device, err := scoring.ParseDeviceType(deviceStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid device: %v", err)), nil
			}
			client.Device = device
		}
		if networkStr, err := req.RequireString("network"); err == nil && networkStr != "" {
			network, err := scoring.ParseNetworkQuality(networkStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid network: %v", err)), nil
			}
			client.Network = network
		}

		result, err := p.Parse(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse error: %v", err)), nil
		}

		groupTrust := trust.NeutralTrust
		if trustStore != nil && result.Group != nil {
			trustMu.Lock()
			groupTrust, err = trustStore.Get(ctx, *result.Group)
			trustMu.Unlock()
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("trust lookup error: %v", err)), nil
			}
		}

		scores := scoring.ScoresFromResult(result, groupTrust)
		adjusted := client.AdjustScores(scores, result.VideoCodec)

		resp := scoreResponse{
			Result:   result,
			Scores:   scores,
			Adjusted: adjusted,
			Quality:  adjusted.Compute(scoring.DefaultProfile()),
		}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerTrustGetTool(s *server.MCPServer, st trust.Store) {
	tool := mcp.NewTool("zantetsu_trust_get",
		mcp.WithDescription("Get a release group's trust score, or list all known groups when no group is given. Unknown groups rate the neutral 0.5."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("group",
			mcp.Description("Release group name (e.g. 'SubsPlease'). Empty = list all."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trustMu.Lock()
		defer trustMu.Unlock()

		group, err := req.RequireString("group")
		if err != nil || strings.TrimSpace(group) == "" {
			groups, err := st.List(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("trust list error: %v", err)), nil
			}
			data, _ := json.MarshalIndent(groups, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		value, err := st.Get(ctx, group)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("trust lookup error: %v", err)), nil
		}
		data, _ := json.Marshal(map[string]any{"group": group, "trust": value})
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerTrustSetTool(s *server.MCPServer, st trust.Store) {
	tool := mcp.NewTool("zantetsu_trust_set",
		mcp.WithDescription("Set a release group's trust score explicitly. Trust must be in [0, 1]."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("group",
			mcp.Required(),
			mcp.Description("Release group name"),
		),
		mcp.WithNumber("trust",
			mcp.Required(),
			mcp.Description("Trust score in [0, 1]"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trustMu.Lock()
		defer trustMu.Unlock()

		group, err := req.RequireString("group")
		if err != nil {
			return mcp.NewToolResultError("group is required"), nil
		}
		value, err := req.RequireFloat("trust")
		if err != nil {
			return mcp.NewToolResultError("trust is required"), nil
		}

		if err := st.Set(ctx, group, value); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("trust set error: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("trust for %q set to %.2f", group, value)), nil
	})
}

func registerTrustFeedbackTool(s *server.MCPServer, st trust.Store) {
	tool := mcp.NewTool("zantetsu_trust_feedback",
		mcp.WithDescription("Record positive or negative feedback for a release group, nudging its trust score toward 1.0 or 0.0."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("group",
			mcp.Required(),
			mcp.Description("Release group name"),
		),
		mcp.WithBoolean("positive",
			mcp.Required(),
			mcp.Description("true for positive feedback, false for negative"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		trustMu.Lock()
		defer trustMu.Unlock()

		group, err := req.RequireString("group")
		if err != nil {
			return mcp.NewToolResultError("group is required"), nil
		}
		positive, err := req.RequireBool("positive")
		if err != nil {
			return mcp.NewToolResultError("positive is required"), nil
		}

		if err := st.RecordFeedback(ctx, group, positive); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("trust feedback error: %v", err)), nil
		}

		value, err := st.Get(ctx, group)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("trust lookup error: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("trust for %q now %.3f", group, value)), nil
	})
}
