package vectorize

import "github.com/shirou/gopsutil/v3/mem"

// systemMemoryPercent samples current system memory usage. Failure to
// sample reads as zero usage so the valve never blocks a run on a
// platform where sampling is unsupported.
func systemMemoryPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.UsedPercent
}
