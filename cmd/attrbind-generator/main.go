// Package main provides the CLI entrypoint for attrbind-generator.
//
// attrbind-generator is a Go codegen tool that:
//   - Scans Go packages for spec structs marked with an @AttrSpec doc comment
//   - Parses their `attr` struct tags into binding descriptors
//   - Generates binder functions that populate spec structs from annotations
//
// Usage:
//
//	attrbind-generator [flags] [<package-pattern>...]
//
// Flags:
//
//	-config <path>
//	    Location of the attrbind.yaml config file (default: attrbind.yaml,
//	    built-in defaults when absent)
//	-output <dir>
//	    Write all binders into one directory instead of next to their specs
//	-verbose
//	    Dump parsed spec structs before generation
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"attrbind-generator/internal/analyze"
	"attrbind-generator/internal/binding"
	"attrbind-generator/internal/diagnostic"
	"attrbind-generator/internal/gen"
)

func main() {
	fs := flag.NewFlagSet("attrbind-generator", flag.ContinueOnError)
	configFlag := fs.String(
		"config",
		"attrbind.yaml",
		"Location of the config file",
	)
	outputFlag := fs.String(
		"output",
		"",
		"Directory to write all binders into, instead of next to their specs",
	)
	verboseFlag := fs.Bool(
		"verbose",
		false,
		"Dump parsed spec structs before generation",
	)

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if err := run(*configFlag, *outputFlag, *verboseFlag, fs.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "attrbind-generator:", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, verbose bool, patterns []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if diags := cfg.Validate(); !diags.IsValid() {
		report(diags)
		return fmt.Errorf("invalid config")
	}

	if len(patterns) == 0 {
		patterns = cfg.Patterns
	}

	pkgs, err := analyze.LoadPackages(patterns...)
	if err != nil {
		return err
	}

	decls := analyze.FindSpecDecls(pkgs, cfg.Marker)
	if len(decls) == 0 {
		fmt.Printf("no @%s spec structs found in %v\n", cfg.Marker, patterns)
		return nil
	}

	var specs []*binding.SpecStruct

	var all diagnostic.Diagnostics
	for _, decl := range decls {
		spec, diags := binding.ParseSpecStruct(decl.ParseInput(cfg))
		all.Merge(diags)

		if diags.IsValid() {
			specs = append(specs, spec)
		}
	}

	report(all)

	if !all.IsValid() {
		return fmt.Errorf("%d spec struct error(s)", len(all.Errors))
	}

	if verbose {
		fmt.Print(spew.Sdump(specs))
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		OutputDir:        outputDir,
		DebugUnformatted: verbose,
	})

	files, err := g.Generate(specs)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		fmt.Printf("wrote %s/%s\n", f.Dir, f.Filename)
	}

	return nil
}

// loadConfig loads the config file, falling back to built-in defaults when
// the default path does not exist.
func loadConfig(path string) (*binding.Config, error) {
	cfg, err := binding.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}

	if path == "attrbind.yaml" && errors.Is(err, os.ErrNotExist) {
		return binding.DefaultConfig(), nil
	}

	return nil, err
}

func report(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintln(os.Stderr, d.String())
	}

	for _, d := range diags.Errors {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
