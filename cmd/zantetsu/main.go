package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "parse":
		if err := runParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "score":
		if err := runScore(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "trust":
		if err := runTrust(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "config":
		if err := runConfig(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("zantetsu %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`zantetsu %s — anime release name parser and quality scorer

Usage:
  zantetsu <command> [arguments]

Commands:
  parse <name>...     Parse release names into structured metadata
  score <name>...     Parse and compute quality scores
  trust <subcommand>  Manage release-group trust (get, set, feedback, list)
  config              Print the resolved configuration and value sources
  mcp                 Serve the MCP tool interface over stdio
  version             Print version

Parse/Score Flags:
  --mode <m>          Parse mode: light, full, auto (default: auto)
  --json              Emit results as JSON instead of display strings
  --device <d>        Client device: desktop, laptop, mobile, tv, embedded
  --network <n>       Client network: unlimited, broadband, limited, offline
  --config <path>     Config file path (default: ~/.zantetsu/config.yaml)
  --trust-db <path>   Trust database path (default: ~/.zantetsu/trust.db)

Flags:
  -h, --help          Show this help message
  -v, --version       Print version
`, version)
}
