package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/devrag/devrag/internal/run"
)

// CLIProgressReporter renders run progress events as progress bars.
type CLIProgressReporter struct {
	quiet     bool
	fileBar   *progressbar.ProgressBar
	uploadBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(filesByDialect map[string]int, totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Processing %d files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting chunks"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnDialectStart(dialect string, files int) {
	if c.quiet || !verbose {
		return
	}
	log.Printf("Processing %s files (%d)...\n", dialect, files)
}

func (c *CLIProgressReporter) OnFileProcessed(relPath string, chunks int) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnExtractionComplete(totalChunks int) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	log.Printf("Extracted %d chunks\n", totalChunks)
}

func (c *CLIProgressReporter) OnUploadStart(totalChunks int) {
	if c.quiet {
		return
	}
	c.uploadBar = progressbar.NewOptions(totalChunks,
		progressbar.OptionSetDescription("Embedding and uploading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("chunks/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnBatchDone(batch, totalBatches, uploaded, total int) {
	if c.quiet {
		return
	}
	if c.uploadBar != nil {
		c.uploadBar.Set(uploaded)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *run.ProcessingStats) {
	if c.quiet {
		return
	}
	if c.uploadBar != nil {
		c.uploadBar.Finish()
		c.uploadBar = nil
	}

	fmt.Println()
	fmt.Printf("✓ Vectorization complete: %d chunks uploaded in %.1fs\n",
		stats.ChunksUploaded, stats.ProcessingTime.Seconds())
	fmt.Printf("  Files processed: %d\n", stats.Repository.TotalFiles)
	fmt.Printf("  Chunks created:  %d\n", stats.ChunksCreated)
	if len(stats.Warnings) > 0 {
		fmt.Printf("  Warnings: %d\n", len(stats.Warnings))
	}
	if len(stats.Errors) > 0 {
		fmt.Printf("  Errors: %d\n", len(stats.Errors))
	}
}
