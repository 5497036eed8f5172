package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devrag/devrag/internal/embed"
	"github.com/devrag/devrag/internal/git"
	"github.com/devrag/devrag/internal/run"
	"github.com/devrag/devrag/internal/store"
)

var (
	repoURL          string
	localPath        string
	quiet            bool
	includeTests     bool
	includeGenerated bool
)

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize [path]",
	Short: "Extract, embed and store chunks from a repository",
	Long: `Vectorize processes a local source tree (or clones a remote
repository first), extracts chunks from every supported file type, embeds
them and upserts the vectors into the configured collection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if includeTests {
			cfg.Filters.IncludeTests = true
		}
		if includeGenerated {
			cfg.Filters.IncludeGenerated = true
		}

		rootDir := localPath
		if len(args) > 0 {
			rootDir = args[0]
		}

		if repoURL != "" {
			if rootDir == "" {
				rootDir = filepath.Join(os.TempDir(), "devrag", filepath.Base(repoURL))
			}
			if err := git.NewOperations().CloneOrUpdate(repoURL, rootDir); err != nil {
				return err
			}
		}
		if rootDir == "" {
			rootDir = "."
		}

		vectors, err := store.NewChromem(cfg.Store.Location)
		if err != nil {
			return err
		}
		defer vectors.Close()

		provider := embed.NewHTTPProvider(cfg.Embedding.Endpoint, cfg.Embedding.Dimensions)
		defer provider.Close()

		progress := NewCLIProgressReporter(quiet)
		orchestrator := run.New(cfg, provider, vectors, progress)

		url := repoURL
		if url == "" {
			url = "file://" + rootDir
		}

		stats, err := orchestrator.Run(cmd.Context(), url, rootDir)
		if err != nil {
			return err
		}

		commit := git.NewOperations().HeadCommit(rootDir)
		if commit != "unknown" {
			stats.Repository.CommitHash = commit
		}

		printIssues(stats)

		if stats.ChunksUploaded == 0 && len(stats.Errors) > 0 {
			return fmt.Errorf("vectorization failed: %s", stats.Errors[0])
		}
		return nil
	},
}

// printIssues lists collected warnings and errors, truncated the way the
// summary panel shows them.
func printIssues(stats *run.ProcessingStats) {
	const maxShown = 5

	if len(stats.Errors) > 0 {
		fmt.Println("\nErrors:")
		for i, e := range stats.Errors {
			if i == maxShown {
				fmt.Printf("  ... and %d more errors\n", len(stats.Errors)-maxShown)
				break
			}
			fmt.Printf("  • %s\n", e)
		}
	}

	if verbose && len(stats.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, w := range stats.Warnings {
			if i == maxShown {
				fmt.Printf("  ... and %d more warnings\n", len(stats.Warnings)-maxShown)
				break
			}
			fmt.Printf("  • %s\n", w)
		}
	}
}

func init() {
	vectorizeCmd.Flags().StringVar(&repoURL, "repo", "", "remote repository URL to clone or update")
	vectorizeCmd.Flags().StringVar(&localPath, "path", "", "local path of the source tree")
	vectorizeCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	vectorizeCmd.Flags().BoolVar(&includeTests, "include-tests", false, "process test and example files")
	vectorizeCmd.Flags().BoolVar(&includeGenerated, "include-generated", false, "process generated files")

	rootCmd.AddCommand(vectorizeCmd)
}
