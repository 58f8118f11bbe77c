package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zantetsu/zantetsu/internal/config"
	zmcp "github.com/zantetsu/zantetsu/internal/mcp"
	"github.com/zantetsu/zantetsu/internal/model"
	"github.com/zantetsu/zantetsu/internal/parser"
	"github.com/zantetsu/zantetsu/internal/scoring"
	"github.com/zantetsu/zantetsu/internal/trust"
)

// cliFlags holds the shared flags accepted by parse, score and mcp.
type cliFlags struct {
	configPath string
	mode       string
	trustDB    string
	device     string
	network    string
	jsonOut    bool
	args       []string
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		takesValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "--config":
			f.configPath, err = takesValue()
		case "--mode":
			f.mode, err = takesValue()
		case "--trust-db":
			f.trustDB, err = takesValue()
		case "--device":
			f.device, err = takesValue()
		case "--network":
			f.network, err = takesValue()
		case "--json":
			f.jsonOut = true
		default:
			if strings.HasPrefix(arg, "-") {
				return f, fmt.Errorf("unknown flag: %s", arg)
			}
			f.args = append(f.args, arg)
		}
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

func resolve(f cliFlags) (config.ResolvedConfig, error) {
	return config.ResolveConfig(config.ResolveOptions{
		ConfigPath: f.configPath,
		CLIMode:    f.mode,
		CLITrustDB: f.trustDB,
		CLIDevice:  f.device,
		CLINetwork: f.network,
	})
}

// buildParser assembles the unified parser, wiring in the ONNX scorer
// when the statistical engine is enabled. A missing model is fine: the
// scorer loads lazily and the parser degrades to the heuristic.
func buildParser(resolved config.ResolvedConfig) (*parser.Parser, error) {
	cfg, err := resolved.EffectiveParserConfig()
	if err != nil {
		return nil, err
	}

	var scorer model.Scorer
	if cfg.EnableStatistical {
		scorer = model.NewONNXScorer(model.ONNXConfig{
			ModelPath:     resolved.ModelPath.Value,
			TokenizerPath: resolved.TokenizerPath.Value,
			NumTags:       parser.NumTags,
		})
	}
	return parser.New(cfg, scorer), nil
}

func runParse(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.args) == 0 {
		return fmt.Errorf("usage: zantetsu parse <name>... [--mode light|full|auto] [--json]")
	}

	resolved, err := resolve(f)
	if err != nil {
		return err
	}
	p, err := buildParser(resolved)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, input := range f.args {
		result, err := p.Parse(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", input, err)
			continue
		}
		if f.jsonOut {
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			continue
		}
		fmt.Println(result)
	}
	return nil
}

// scoreOutput is one line of `zantetsu score` output.
type scoreOutput struct {
	Input      string                `json:"input"`
	Group      string                `json:"group,omitempty"`
	GroupTrust float64               `json:"group_trust"`
	Scores     scoring.QualityScores `json:"scores"`
	Adjusted   scoring.QualityScores `json:"adjusted_scores"`
	Quality    float64               `json:"quality"`
}

func runScore(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.args) == 0 {
		return fmt.Errorf("usage: zantetsu score <name>... [--device <d>] [--network <n>]")
	}

	resolved, err := resolve(f)
	if err != nil {
		return err
	}
	p, err := buildParser(resolved)
	if err != nil {
		return err
	}
	client, err := resolved.EffectiveClientContext()
	if err != nil {
		return err
	}

	st, err := trust.NewStore(trust.StoreConfig{DBPath: resolved.TrustDB.Value})
	if err != nil {
		return fmt.Errorf("opening trust store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	profile := scoring.DefaultProfile()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, input := range f.args {
		result, err := p.Parse(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", input, err)
			continue
		}

		groupTrust := trust.NeutralTrust
		group := ""
		if result.Group != nil {
			group = *result.Group
			groupTrust, err = st.Get(ctx, group)
			if err != nil {
				return fmt.Errorf("looking up trust for %q: %w", group, err)
			}
		}

		scores := scoring.ScoresFromResult(result, groupTrust)
		adjusted := client.AdjustScores(scores, result.VideoCodec)
		out := scoreOutput{
			Input:      input,
			Group:      group,
			GroupTrust: groupTrust,
			Scores:     scores,
			Adjusted:   adjusted,
			Quality:    adjusted.Compute(profile),
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	}
	return nil
}

func runTrust(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: zantetsu trust <get|set|feedback|list> [arguments]")
	}
	sub, rest := args[0], args[1:]

	f, err := parseFlags(rest)
	if err != nil {
		return err
	}
	resolved, err := resolve(f)
	if err != nil {
		return err
	}

	st, err := trust.NewStore(trust.StoreConfig{DBPath: resolved.TrustDB.Value})
	if err != nil {
		return fmt.Errorf("opening trust store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	switch sub {
	case "get":
		if len(f.args) != 1 {
			return fmt.Errorf("usage: zantetsu trust get <group>")
		}
		value, err := st.Get(ctx, f.args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.3f\n", f.args[0], value)

	case "set":
		if len(f.args) != 2 {
			return fmt.Errorf("usage: zantetsu trust set <group> <value>")
		}
		value, err := strconv.ParseFloat(f.args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid trust value %q: %w", f.args[1], err)
		}
		if err := st.Set(ctx, f.args[0], value); err != nil {
			return err
		}
		fmt.Printf("%s: %.3f\n", f.args[0], value)

	case "feedback":
		if len(f.args) != 2 || (f.args[1] != "good" && f.args[1] != "bad") {
			return fmt.Errorf("usage: zantetsu trust feedback <group> good|bad")
		}
		if err := st.RecordFeedback(ctx, f.args[0], f.args[1] == "good"); err != nil {
			return err
		}
		value, err := st.Get(ctx, f.args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.3f\n", f.args[0], value)

	case "list":
		groups, err := st.List(ctx)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Printf("%-24s %.3f  (%d samples)\n", g.Group, g.Trust, g.SampleCount)
		}

	default:
		return fmt.Errorf("unknown trust subcommand: %s", sub)
	}
	return nil
}

func runConfig(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	resolved, err := resolve(f)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resolved)
}

func runMCP(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	resolved, err := resolve(f)
	if err != nil {
		return err
	}
	p, err := buildParser(resolved)
	if err != nil {
		return err
	}
	client, err := resolved.EffectiveClientContext()
	if err != nil {
		return err
	}

	st, err := trust.NewStore(trust.StoreConfig{DBPath: resolved.TrustDB.Value})
	if err != nil {
		return fmt.Errorf("opening trust store: %w", err)
	}
	defer st.Close()

	srv := zmcp.NewServer(zmcp.ServerConfig{
		Parser:  p,
		Trust:   st,
		Context: client,
		Version: version,
	})
	return server.ServeStdio(srv)
}
