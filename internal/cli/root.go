package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devrag/devrag/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devrag",
	Short: "devrag - vectorize development repositories for similarity search",
	Long: `devrag extracts code and documentation chunks from a source tree,
embeds them, and stores the vectors for similarity search.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.devrag.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the run configuration from file, environment and
// defaults.
func loadConfig() (*config.Config, error) {
	return config.NewLoader(cfgFile).Load()
}
