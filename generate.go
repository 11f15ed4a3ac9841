// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Generator runs the extraction and rendering pipeline.
// The zero value reads the host file system and logs nothing.
type Generator struct {
	// FS is used for source discovery and reads; defaults to OSFS.
	FS     SourceFS
	Logger *slog.Logger
}

// Result describes one generated document.
type Result struct {
	RunID      string
	OutputPath string
	Format     OutputFormat
	Document   string
	Examples   int
	Categories int
}

// Generate builds the document for settings and writes it to the output path.
func Generate(ctx context.Context, settings Settings) (Result, error) {
	var generator Generator
	return generator.Generate(ctx, settings)
}

// Generate builds the document and writes it. Nothing is written when any step fails.
func (generator *Generator) Generate(ctx context.Context, settings Settings) (Result, error) {
	result, err := generator.Build(ctx, settings)
	if err != nil {
		return Result{}, err
	}

	if err := WriteDocument(result.OutputPath, result.Document); err != nil {
		return Result{}, err
	}

	generator.logger().Info("guidebook generated",
		slog.String(KeyRunID, result.RunID),
		slog.String(KeyOutput, result.OutputPath),
		slog.String(KeyFormat, string(result.Format)),
		slog.Int(KeyExamples, result.Examples),
		slog.Int(KeyCategories, result.Categories),
	)

	return result, nil
}

// Build runs the whole pipeline in memory and returns the composed document.
func (generator *Generator) Build(ctx context.Context, settings Settings) (Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := generator.logger().With(slog.String(KeyRunID, runID))

	settings, err := settings.Normalize()
	if err != nil {
		return Result{}, err
	}

	outputPath, err := ResolveOutputPath(settings.Output, settings.Type)
	if err != nil {
		return Result{}, err
	}

	enc, err := ResolveCharset(settings.Charset)
	if err != nil {
		return Result{}, err
	}

	style, err := LoadStyle(settings.Style, enc)
	if err != nil {
		return Result{}, err
	}

	base, err := LoadBaseTemplate(settings.Template, settings.Type, enc)
	if err != nil {
		return Result{}, err
	}

	categories, err := generator.collect(ctx, settings, logger)
	if err != nil {
		return Result{}, err
	}

	renderer, err := NewRenderer(settings.Type, RenderOptions{CodeLanguage: settings.Language})
	if err != nil {
		return Result{}, err
	}

	structure, err := renderer.Render(categories)
	if err != nil {
		return Result{}, err
	}

	document := Compose(base, style, structure, settings.Type)
	logger.Debug("document composed",
		slog.String(KeyFormat, string(settings.Type)),
		slog.Int(KeyCategories, categories.Len()),
		slog.Float64(KeyDurationMS, float64(time.Since(started).Microseconds())/1000),
	)

	return Result{
		RunID:      runID,
		OutputPath: outputPath,
		Format:     settings.Type,
		Document:   document,
		Examples:   categories.ExampleCount(),
		Categories: categories.Len(),
	}, nil
}

// Collect discovers examples under settings.Source and groups them by category.
// Style and output are not required.
func (generator *Generator) Collect(ctx context.Context, settings Settings) (CategoryMap, error) {
	normalized, err := settings.normalize("source")
	if err != nil {
		return CategoryMap{}, err
	}

	return generator.collect(ctx, normalized, generator.logger())
}

// collect runs walker and aggregator for normalized settings.
func (generator *Generator) collect(ctx context.Context, settings Settings, logger *slog.Logger) (CategoryMap, error) {
	enc, err := ResolveCharset(settings.Charset)
	if err != nil {
		return CategoryMap{}, err
	}

	walker := Walker{
		FS:      generator.FS,
		Charset: enc,
		Ignore:  settings.Ignore,
		Workers: settings.Workers,
		Logger:  logger,
	}

	examples, err := walker.Walk(ctx, settings.Source)
	if err != nil {
		return CategoryMap{}, err
	}

	categories := Aggregate(examples)
	logger.Debug("examples collected",
		slog.String(KeyPath, settings.Source),
		slog.Int(KeyExamples, len(examples)),
		slog.Int(KeyCategories, categories.Len()),
	)

	return categories, nil
}

func (generator *Generator) logger() *slog.Logger {
	if generator.Logger == nil {
		return discardLogger
	}

	return generator.Logger
}
