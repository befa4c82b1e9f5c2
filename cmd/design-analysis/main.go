package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"designmentor.app/analysis-engine/common/id"
	"designmentor.app/analysis-engine/core/config"
	"designmentor.app/analysis-engine/core/logging"
	"designmentor.app/analysis-engine/internal/llm"
	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
	"designmentor.app/analysis-engine/internal/service"
	"designmentor.app/analysis-engine/internal/store"
)

func main() {
	showVersions := flag.Bool("versions", false, "print the project's version evolution after the analysis")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [design-file]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Analyzes a design document (from the file argument or stdin) and prints")
		fmt.Fprintln(flag.CommandLine.Output(), "the detected gaps, maturity score, and suggestion set as JSON.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()

	cfg := config.Load()

	shutdown, err := logging.Setup(ctx, "design-analysis")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to flush logs", "error", err)
		}
	}()

	if err := run(ctx, cfg, *showVersions, flag.Arg(0)); err != nil {
		slog.ErrorContext(ctx, "analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, showVersions bool, path string) error {
	content, err := readDesign(path)
	if err != nil {
		return fmt.Errorf("reading design document: %w", err)
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:            id.New(),
		DesignContent: content,
		Status:        model.ProjectStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mem := store.NewMemory()
	mem.PutProject(project)

	enricher := llm.NewEnricher(llm.NewGenerator(cfg.LLM), time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
	if !cfg.LLM.Configured() {
		slog.InfoContext(ctx, "llm not configured, skipping enrichment")
	}

	svc := service.NewAnalysisService(mem.Projects(), mem.Suggestions(), mem.Versions(), rules.Default(), enricher)

	result, err := svc.RunAnalysis(ctx, project.ID)
	if err != nil {
		return err
	}
	if err := printJSON(result); err != nil {
		return err
	}

	if showVersions {
		evolution, err := svc.ProjectEvolution(ctx, project.ID)
		if err != nil {
			return err
		}
		if err := printJSON(evolution); err != nil {
			return err
		}
	}
	return nil
}

func readDesign(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
