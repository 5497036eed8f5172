package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devrag/devrag/internal/embed"
	"github.com/devrag/devrag/internal/store"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a similarity search against the stored vectors",
	Long: `Search embeds the query text and returns the most similar chunks
from the configured collection. Useful for checking what a vectorize run
actually stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		vectors, err := store.NewChromem(cfg.Store.Location)
		if err != nil {
			return err
		}
		defer vectors.Close()

		if vectors.Count(cfg.Store.Collection) == 0 {
			return fmt.Errorf("collection %q is empty, run vectorize first", cfg.Store.Collection)
		}

		provider := embed.NewHTTPProvider(cfg.Embedding.Endpoint, cfg.Embedding.Dimensions)
		defer provider.Close()

		queryVectors, err := provider.Embed(cmd.Context(), []string{args[0]})
		if err != nil {
			return fmt.Errorf("failed to embed query: %w", err)
		}

		results, err := vectors.Search(cmd.Context(), cfg.Store.Collection, queryVectors[0], searchLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		for i, r := range results {
			p := r.Payload
			fmt.Printf("%d. [%.3f] %s %s\n", i+1, r.Score, p.Type, p.Name)
			fmt.Printf("   %s:%d\n", p.FilePath, p.Metadata.LineStart)
			if p.Signature != "" {
				fmt.Printf("   %s\n", p.Signature)
			}
			if verbose && p.Documentation != "" {
				doc := p.Documentation
				if idx := strings.IndexByte(doc, '\n'); idx >= 0 {
					doc = doc[:idx]
				}
				fmt.Printf("   %s\n", doc)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")

	rootCmd.AddCommand(searchCmd)
}
