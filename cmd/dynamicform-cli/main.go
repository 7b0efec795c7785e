// dynamicform-cli renders, inspects, and interactively fills form
// configurations from JSON/YAML files or OpenAPI documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/openapi"
	"github.com/goliatone/go-dynamicform/pkg/orchestrator"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/renderers/tui"
	"github.com/goliatone/go-dynamicform/pkg/schema"
)

func main() {
	mode := flag.String("mode", "render", "render, inspect, or fill")
	source := flag.String("source", "", "form config path (.json/.yaml) or OpenAPI document")
	operation := flag.String("operation", "", "OpenAPI operation ID (treats source as an OpenAPI document)")
	renderer := flag.String("renderer", "vanilla", "renderer to use in render mode")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *source == "" {
		log.Fatal("a -source file is required")
	}

	ctx := context.Background()

	cfg, err := loadConfig(ctx, *source, *operation)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var result []byte
	switch *mode {
	case "render":
		result, err = renderConfig(ctx, cfg, *renderer)
	case "inspect":
		result, err = inspectConfig(cfg)
	case "fill":
		result, err = fillConfig(ctx, cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("Failed to %s: %v", *mode, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(result))
	}
}

func loadConfig(ctx context.Context, source, operation string) (formconfig.FormConfig, error) {
	raw, err := os.ReadFile(source)
	if err != nil {
		return formconfig.FormConfig{}, err
	}
	if operation != "" {
		return openapi.OperationConfig(ctx, raw, operation)
	}
	return formconfig.Parse(raw, source)
}

func renderConfig(ctx context.Context, cfg formconfig.FormConfig, renderer string) ([]byte, error) {
	gen := orchestrator.New()
	return gen.Generate(ctx, orchestrator.Request{
		Config:   cfg,
		Renderer: renderer,
	})
}

// inspectConfig prints the derived validation rules and default values.
func inspectConfig(cfg formconfig.FormConfig) ([]byte, error) {
	s := schema.Build(cfg)
	return json.MarshalIndent(map[string]any{
		"title":    cfg.Title,
		"fields":   s.Fields,
		"defaults": schema.Defaults(cfg),
	}, "", "  ")
}

// fillConfig walks the form interactively and emits the collected values.
func fillConfig(ctx context.Context, cfg formconfig.FormConfig) ([]byte, error) {
	prompter, err := tui.New()
	if err != nil {
		return nil, err
	}
	return prompter.Render(ctx, cfg, render.RenderOptions{})
}
