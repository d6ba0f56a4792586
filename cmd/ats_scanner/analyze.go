package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-ats-scanner/api"
	"github.com/gcbaptista/go-ats-scanner/internal/engine"
	"github.com/gcbaptista/go-ats-scanner/internal/source"
	"github.com/gcbaptista/go-ats-scanner/model"
	"github.com/gcbaptista/go-ats-scanner/services"
)

type analyzeOptions struct {
	resume string
	jd     string
	jdText string
	json   bool
	limit  int
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description and list missing keywords",
		Example: `  ats-scanner analyze --resume resume.pdf --jd job.txt
  ats-scanner analyze --resume s3://bucket/cv.docx --jd-text "Go engineer with AWS" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "resume location: path, file:// or s3:// URI (.txt, .md, .html, .pdf, .docx)")
	cmd.Flags().StringVar(&opts.jd, "jd", "", "job description location: path, file:// or s3:// URI")
	cmd.Flags().StringVar(&opts.jdText, "jd-text", "", "job description text")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", -1, "missing keywords to show, 0 shows all (default matcher.display_limit)")

	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text")
	cmd.MarkFlagsOneRequired("jd", "jd-text")

	return cmd
}

func runAnalyze(cmd *cobra.Command, ctx *commandContext, opts *analyzeOptions) error {
	settings, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	fetcher := source.NewFetcher(settings.Storage)
	eng := engine.NewEngine(settings.Matcher, log)

	jobDescription, err := loadJobDescription(runCtx, fetcher, eng, opts)
	if err != nil {
		return err
	}

	data, filename, err := fetcher.Fetch(runCtx, opts.resume)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}

	result, err := eng.AnalyzeDocument(runCtx, services.DocumentFile{
		Filename: filename,
		Data:     data,
	}, jobDescription.Text, services.SourceCLI)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit < 0 {
		limit = settings.Matcher.DisplayLimit
	}
	response := api.NewAnalysisResponse(result, limit)

	if opts.json {
		return writeJSON(cmd, response)
	}
	out := cmd.OutOrStdout()
	_, err = fmt.Fprint(out, renderReport(response, isTerminal(out)))
	return err
}

// loadJobDescription reads the job description from --jd-text or the --jd location.
func loadJobDescription(ctx context.Context, fetcher services.Fetcher, analyzer services.Analyzer, opts *analyzeOptions) (model.Document, error) {
	doc := model.Document{
		Kind:   model.DocumentKindJobDescription,
		Text:   opts.jdText,
		Source: "inline",
	}

	if opts.jd != "" {
		data, filename, err := fetcher.Fetch(ctx, opts.jd)
		if err != nil {
			return doc, fmt.Errorf("job description: %w", err)
		}
		text, err := analyzer.ExtractText(services.DocumentFile{
			Filename: filename,
			Data:     data,
		})
		if err != nil {
			return doc, fmt.Errorf("job description: %w", err)
		}
		doc.Text = text
		doc.Source = opts.jd
	}

	if doc.IsBlank() {
		return doc, fmt.Errorf("job description is empty (source: %s)", doc.Source)
	}
	return doc, nil
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
