// Package main provides the specgate CLI.
//
// specgate validates workstream specification documents and merges them
// into a single gated specification.
//
// Usage:
//
//	specgate validate [--specs a.md,b.md | --root DIR] [--registry PATH] [--allow-empty]
//	specgate merge --out PATH [--specs ... | --root DIR] [--registry PATH] [--report PATH] [--id ID] [--title TITLE]
//	specgate version
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/specgate/internal/fileutil"
	"github.com/ternarybob/specgate/pkg/spec"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "validate":
		err = cmdValidate(args)
	case "merge":
		err = cmdMerge(args)
	case "version", "-v", "--version":
		fmt.Printf("specgate version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`specgate - Specification validation and merge gate

Commands:
  validate    Validate spec documents against their schemas and the contract registry
  merge       Merge workstream documents into a single spec with a gate report
  version     Show version information
  help        Show this help

Validate flags:
  --specs a.md,b.md   Explicit document paths (overrides --root)
  --root DIR          Directory to scan for spec documents (default: .)
  --registry PATH     Contract registry (default: contracts.md under the root)
  --allow-empty       Treat an empty batch as a pass

Merge flags:
  --out PATH          Merged document output path (required)
  --report PATH       Gate report path (default: gate-report.json next to --out)
  --id ID             Merged document id (default: merged-spec)
  --title TITLE       Merged document title (default: Merged Specification)
  --specs, --root, --registry as for validate

Exit status is 0 when every gate passes and 1 otherwise; merge writes
both artifacts before exiting either way.

Examples:
  specgate validate --root ./specs
  specgate merge --root ./specs --out ./build/master-spec.md`)
}

// cmdValidate runs a validation batch and prints issues one per line.
func cmdValidate(args []string) error {
	opts := spec.ValidateOptions{Root: "."}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--specs":
			if i+1 >= len(args) {
				return fmt.Errorf("--specs requires a value")
			}
			i++
			opts.Paths = splitPaths(args[i])
		case "--root":
			if i+1 >= len(args) {
				return fmt.Errorf("--root requires a value")
			}
			i++
			opts.Root = args[i]
		case "--registry":
			if i+1 >= len(args) {
				return fmt.Errorf("--registry requires a value")
			}
			i++
			opts.RegistryPath = args[i]
		case "--allow-empty":
			opts.AllowEmpty = true
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if len(opts.Paths) == 0 && !fileutil.IsDir(opts.Root) {
		return fmt.Errorf("spec root is not a directory: %s", opts.Root)
	}

	result, err := spec.ValidateSet(opts)
	if err != nil {
		return err
	}

	if !result.Passed() {
		for _, issue := range result.Issues {
			fmt.Fprintln(os.Stderr, issue.String())
		}
		os.Exit(1)
	}

	fmt.Printf("pass: %d documents validated\n", len(result.Documents))
	return nil
}

// cmdMerge runs the merge pipeline; both artifacts are written even
// when the gate fails.
func cmdMerge(args []string) error {
	opts := spec.MergeOptions{Root: "."}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--specs":
			if i+1 >= len(args) {
				return fmt.Errorf("--specs requires a value")
			}
			i++
			opts.Paths = splitPaths(args[i])
		case "--root":
			if i+1 >= len(args) {
				return fmt.Errorf("--root requires a value")
			}
			i++
			opts.Root = args[i]
		case "--registry":
			if i+1 >= len(args) {
				return fmt.Errorf("--registry requires a value")
			}
			i++
			opts.RegistryPath = args[i]
		case "--out":
			if i+1 >= len(args) {
				return fmt.Errorf("--out requires a value")
			}
			i++
			opts.OutputPath = args[i]
		case "--report":
			if i+1 >= len(args) {
				return fmt.Errorf("--report requires a value")
			}
			i++
			opts.ReportPath = args[i]
		case "--id":
			if i+1 >= len(args) {
				return fmt.Errorf("--id requires a value")
			}
			i++
			opts.ID = args[i]
		case "--title":
			if i+1 >= len(args) {
				return fmt.Errorf("--title requires a value")
			}
			i++
			opts.Title = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if opts.OutputPath == "" {
		return fmt.Errorf("usage: specgate merge --out PATH [flags]")
	}
	if len(opts.Paths) == 0 && !fileutil.IsDir(opts.Root) {
		return fmt.Errorf("spec root is not a directory: %s", opts.Root)
	}

	result, err := spec.MergeSet(opts)
	if err != nil {
		return err
	}

	fmt.Printf("merged: %s\n", result.OutputPath)
	fmt.Printf("report: %s\n", result.ReportPath)

	if !result.Report.Passed() {
		for _, issue := range result.Report.Issues {
			fmt.Fprintln(os.Stderr, issue.String())
		}
		os.Exit(1)
	}

	fmt.Printf("pass: %d workstreams, %d contracts\n",
		result.Report.WorkstreamCount, result.Report.ContractCount)
	return nil
}

// splitPaths parses a comma-separated path list, dropping empties.
func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
