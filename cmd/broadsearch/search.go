// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/broadsearch/internal/judge"
	"github.com/pdiddy/broadsearch/internal/llm"
	"github.com/pdiddy/broadsearch/internal/pipeline"
	"github.com/pdiddy/broadsearch/internal/retrieve"
	"github.com/pdiddy/broadsearch/internal/secrets"
	"github.com/pdiddy/broadsearch/pkg/types"
)

const defaultModel = "claude-sonnet-4-5-20250929"

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a broad search for a research question",
	Long: `Search runs the full pipeline on a research question: the query is
analyzed and reformulated, candidates are retrieved with semantic and
keyword search, deduplicated, judged for relevance in batches, and ranked.

Works without an Anthropic API key, but analysis, reformulation, and
relevance judgment are then skipped and every paper gets a neutral
semantic score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		if query == "" {
			return fmt.Errorf("query is empty: provide a research question with --query")
		}

		maxResults, _ := cmd.Flags().GetInt("max-results")
		limit, _ := cmd.Flags().GetInt("limit-per-strategy")
		cooldown, _ := cmd.Flags().GetDuration("cooldown")
		concurrent, _ := cmd.Flags().GetBool("concurrent")
		skipAnalysis, _ := cmd.Flags().GetBool("skip-analysis")
		asJSON, _ := cmd.Flags().GetBool("json")
		output, _ := cmd.Flags().GetString("output")

		timeout := viper.GetDuration("http.timeout")
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpCfg := types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "broadsearch/" + version,
		}
		httpClient := &http.Client{Timeout: timeout}

		model := viper.GetString("judge.model")
		if model == "" {
			model = defaultModel
		}

		var llmClient llm.Client
		var oracle judge.Oracle
		if key := secrets.Get(loadedSecrets, "anthropic-api-key"); key != "" {
			claude := &llm.Claude{
				APIKey: key,
				Model:  model,
				Client: httpClient,
				System: "Respond with valid JSON only.",
			}
			llmClient = claude
			oracle = &judge.ClaudeOracle{LLM: claude}
		} else {
			fmt.Fprintln(os.Stderr, "warning: no anthropic-api-key found, running without LLM analysis and judgment")
		}

		s2 := &retrieve.S2Client{
			Client: httpClient,
			APIKey: secrets.Get(loadedSecrets, "semantic-scholar-api-key"),
			Config: httpCfg,
		}

		agent := &pipeline.Agent{
			LLM:          llmClient,
			Oracle:       oracle,
			SkipAnalysis: skipAnalysis,
			Backends: []retrieve.Backend{
				&retrieve.SemanticBackend{Client: s2},
				&retrieve.KeywordBackend{Client: s2},
			},
			Config: types.PipelineConfig{
				Retrieval: types.RetrievalConfig{
					HTTPConfig:       httpCfg,
					LimitPerStrategy: limit,
					Cooldown:         cooldown,
					Concurrent:       concurrent,
				},
				Judge: types.JudgeConfig{
					AIConfig: types.AIConfig{Model: model},
				},
				MaxResults: maxResults,
			},
		}

		result, err := agent.Run(cmd.Context(), query, os.Stderr)
		if err != nil {
			return err
		}

		if output != "" {
			if err := pipeline.WriteResultFile(output, result); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Results saved to %s\n", output)
			return nil
		}

		if asJSON {
			return pipeline.FormatJSON(result, os.Stdout)
		}
		pipeline.FormatTable(result, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "research question to search for")
	searchCmd.Flags().IntP("max-results", "n", 20, "maximum number of ranked results to return")
	searchCmd.Flags().Int("limit-per-strategy", 10, "target result count per (query, strategy) pair")
	searchCmd.Flags().Duration("cooldown", 3*time.Second, "minimum delay between external API calls")
	searchCmd.Flags().Bool("concurrent", false, "run both strategies for one query in parallel")
	searchCmd.Flags().Bool("skip-analysis", false, "skip LLM query analysis and use the raw query")
	searchCmd.Flags().Bool("json", false, "output the run result as JSON")
	searchCmd.Flags().StringP("output", "o", "", "write the run result to a file (.json or .yaml)")

	rootCmd.AddCommand(searchCmd)
}
