package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renatus-madrigal/article-assistant/config"
	"github.com/renatus-madrigal/article-assistant/internal/render"
	"github.com/renatus-madrigal/article-assistant/internal/server"
	"github.com/renatus-madrigal/article-assistant/internal/telemetry"
	"github.com/renatus-madrigal/article-assistant/internal/tool"
	"github.com/renatus-madrigal/article-assistant/internal/workflow"
	"github.com/renatus-madrigal/article-assistant/provider/openai"
	"github.com/renatus-madrigal/article-assistant/tools/webfetch"
	"github.com/renatus-madrigal/article-assistant/tools/websearch"
)

func main() {
	var configPath string
	root := &cobra.Command{Use: "articler", Short: "Multi-agent article generation"}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	var topic, language, audience, output, htmlOutput string
	generate := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate one article and write it to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				topic = args[0]
			}
			if strings.TrimSpace(topic) == "" {
				return fmt.Errorf("a topic is required, pass it as an argument or with --topic")
			}

			w, err := buildWorkflow(configPath)
			if err != nil {
				return err
			}
			result, err := w.Generate(cmd.Context(), workflow.Request{
				Topic:    topic,
				Language: language,
				Audience: audience,
			})
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(result.Markdown)
			} else if err := os.WriteFile(output, []byte(result.Markdown), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if htmlOutput != "" {
				html, err := render.HTML(result.Markdown)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlOutput, []byte(html), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", htmlOutput, err)
				}
			}

			log.Printf("run %s finished: %d sections, %d words, %d tokens, $%.4f",
				result.RunID, result.Sections, result.Words, result.Tokens, result.Cost)
			return nil
		},
	}
	generate.Flags().StringVar(&topic, "topic", "", "article topic")
	generate.Flags().StringVar(&language, "language", "", "target language (default from config)")
	generate.Flags().StringVar(&audience, "audience", "", "target audience (default from config)")
	generate.Flags().StringVarP(&output, "output", "o", "", "markdown output file (default stdout)")
	generate.Flags().StringVar(&htmlOutput, "html", "", "also write rendered HTML to this file")

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			w, err := assemble(cfg)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Address
			}
			return server.Run(addr, w)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	root.AddCommand(generate, serve)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildWorkflow(configPath string) (*workflow.Workflow, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return assemble(cfg)
}

// assemble wires the configured provider, tools and telemetry into a
// workflow. The dependency graph is built once here and handed down.
func assemble(cfg *config.Config) (*workflow.Workflow, error) {
	p, err := openai.New(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	extra := tool.BaseTools()
	if cfg.Search.Enabled() {
		searcher, err := websearch.New(websearch.Provider(cfg.Search.Provider), cfg.Search.APIKey())
		if err != nil {
			return nil, err
		}
		extra = append(extra, tool.SearchTool(searcher))
	}
	extra = append(extra, tool.FetchTool(webfetch.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.MaxChars)))

	tel := telemetry.New(cfg.Telemetry)
	return workflow.New(cfg, p, tel, extra, nil), nil
}
