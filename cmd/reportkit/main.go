package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reportkit/internal/chart"
	"reportkit/internal/citation"
	"reportkit/internal/config"
	"reportkit/internal/export"
	"reportkit/internal/research"
	"reportkit/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "reportkit",
	Short:   "Structure and browse AI research reports",
	Long:    "reportkit parses research conversations into structured reports with sections, citations, sources, and chart data.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(citationsCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("reportkit", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/reportkit/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure source classification rules and the export directory.")
		return nil
	},
}

// loadConversation reads a conversation file given as the sole positional
// argument. It accepts JSON exports and raw markdown.
func loadConversation(args []string) ([]research.Message, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one conversation file")
	}
	messages, err := research.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}
	return messages, nil
}

// --- parse command ---

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a report and print its section outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		main, addendums := research.Organize(messages)
		doc, err := research.ParseReport(main)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n", doc.Title)
		if len(doc.ExecutiveSummary) > 0 {
			fmt.Printf("Executive summary: %d points\n", len(doc.ExecutiveSummary))
		}
		if len(doc.KeyFindings) > 0 {
			fmt.Printf("Key findings: %d points\n", len(doc.KeyFindings))
		}

		fmt.Println("\nSections:")
		for _, sec := range doc.Sections {
			fmt.Printf("  %s %s (%d min, %s)\n", sec.Icon, sec.Title, sec.ReadingTime, sec.Kind)
		}
		fmt.Printf("\nTotal reading time: %d min\n", doc.TotalReadingTime())

		if len(addendums) > 0 {
			fmt.Printf("Follow-up reports: %d\n", len(addendums))
		}
		return nil
	},
}

// --- citations command ---

var citationsCmd = &cobra.Command{
	Use:   "citations <file>",
	Short: "List citation markers found in the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		main, _ := research.Organize(messages)
		if main == nil {
			return research.ErrNoReport
		}

		markers := citation.Extract(main.Content)
		if len(markers) == 0 {
			fmt.Println("No citations found.")
			return nil
		}

		for _, m := range markers {
			fmt.Println(m)
		}
		fmt.Printf("\n%d citations\n", len(markers))
		return nil
	},
}

// --- sources command ---

var enrichSources bool

var sourcesCmd = &cobra.Command{
	Use:   "sources <file>",
	Short: "Extract and classify source URLs from the conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		sources := citation.ExtractSources(messages, cfg.Rules())
		if len(sources) == 0 {
			fmt.Println("No sources found.")
			return nil
		}

		if enrichSources {
			enricher := citation.NewEnricher(time.Duration(cfg.Sources.TimeoutSeconds) * time.Second)
			n := enricher.Enrich(cmd.Context(), sources)
			fmt.Printf("Enriched %d/%d source titles.\n\n", n, len(sources))
		}

		for _, src := range sources {
			fmt.Printf("  [%s] %s\n      %s (%s relevance)\n", src.Type, src.Title, src.URL, src.Relevance)
		}
		fmt.Printf("\n%d sources\n", len(sources))
		return nil
	},
}

func init() {
	sourcesCmd.Flags().BoolVar(&enrichSources, "enrich", false, "Fetch pages to resolve real titles")
}

// --- chart command ---

var chartTopN int

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Show chart data attached to the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		main, _ := research.Organize(messages)
		if main == nil || main.Metadata == nil || !main.Metadata.GraphData.HasData() {
			fmt.Println("No chart data attached.")
			return nil
		}

		series := chart.Adapt(*main.Metadata.GraphData, chartTopN)
		fmt.Printf("%s (%s)\n", series.Title, series.Type)
		for _, p := range series.Points {
			fmt.Printf("  %-30s %v\n", p.Name, p.Value)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().IntVar(&chartTopN, "top", chart.DefaultTopN, "Keep the top N categories and merge the rest")
}

// --- export command ---

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the structured report as markdown, json, or html",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		main, _ := research.Organize(messages)
		doc, err := research.ParseReport(main)
		if err != nil {
			return err
		}

		var (
			data []byte
			ext  string
		)
		switch exportFormat {
		case "markdown", "md":
			data = []byte(export.Markdown(doc))
			ext = "md"
		case "json":
			data, err = export.JSON(doc)
			ext = "json"
		case "html":
			sources := citation.ExtractSources(messages, cfg.Rules())
			data, err = export.HTML(doc, sources)
			ext = "html"
		default:
			return fmt.Errorf("unknown format %q (want markdown, json, or html)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", exportFormat, err)
		}

		if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}

		name := exportFileName(doc.Title, ext)
		target := filepath.Join(cfg.Export.Dir, name)
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}

		fmt.Printf("Exported: %s\n", target)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Export format: markdown, json, or html")
}

// exportFileName builds a filesystem-safe name from the report title.
func exportFileName(title, ext string) string {
	slug := strings.ToLower(title)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("%s-%s.%s", slug, time.Now().Format("2006-01-02"), ext)
}

// --- stats command ---

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show conversation and report statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		stats := research.Summarize(messages)
		fmt.Println("Conversation:")
		fmt.Printf("  Messages: %d\n", stats.Messages)
		fmt.Printf("  Total words: %d\n", stats.TotalWords)
		fmt.Printf("  Avg words/message: %d\n", stats.AvgWords)
		fmt.Printf("  Reading time: %d min\n", stats.ReadMinutes)

		if topics := research.Topics(messages, 5); len(topics) > 0 {
			fmt.Printf("  Topics: %s\n", strings.Join(topics, ", "))
		}

		main, _ := research.Organize(messages)
		doc, err := research.ParseReport(main)
		if err != nil {
			fmt.Println("\nNo report in conversation.")
			return nil
		}

		fmt.Println("\nReport:")
		fmt.Printf("  Sections: %d\n", len(doc.Sections))
		fmt.Printf("  Words: %d\n", doc.WordCount())
		fmt.Printf("  Reading time: %d min\n", doc.TotalReadingTime())
		fmt.Printf("  Citations: %d\n", len(citation.Extract(main.Content)))
		fmt.Printf("  Sources: %d\n", len(citation.ExtractSources(messages, cfg.Rules())))
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Start the local report viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := loadConversation(args)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(messages, cfg.Rules(), port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}
