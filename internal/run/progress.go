package run

// ProgressReporter receives structured progress events from a run. The
// orchestrator calls it from a single goroutine; implementations render
// them however they like (progress bars, logs, nothing).
type ProgressReporter interface {
	OnDiscoveryComplete(filesByDialect map[string]int, totalFiles int)
	OnDialectStart(dialect string, files int)
	OnFileProcessed(relPath string, chunks int)
	OnExtractionComplete(totalChunks int)
	OnUploadStart(totalChunks int)
	OnBatchDone(batch, totalBatches, uploaded, total int)
	OnComplete(stats *ProcessingStats)
}

// NoOpProgressReporter ignores all events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(map[string]int, int)  {}
func (NoOpProgressReporter) OnDialectStart(string, int)               {}
func (NoOpProgressReporter) OnFileProcessed(string, int)              {}
func (NoOpProgressReporter) OnExtractionComplete(int)                 {}
func (NoOpProgressReporter) OnUploadStart(int)                        {}
func (NoOpProgressReporter) OnBatchDone(int, int, int, int)           {}
func (NoOpProgressReporter) OnComplete(*ProcessingStats)              {}
