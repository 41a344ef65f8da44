package batch

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// MemorySampler reports system memory utilization as a percentage.
type MemorySampler interface {
	Percent() (float64, error)
}

// ProcMemory samples /proc/meminfo.
type ProcMemory struct {
	fs procfs.FS
}

func NewProcMemory() (*ProcMemory, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("open procfs: %w", err)
	}
	return &ProcMemory{fs: fs}, nil
}

// Percent returns used memory as a percentage of total, where used is
// total minus available.
func (p *ProcMemory) Percent() (float64, error) {
	info, err := p.fs.Meminfo()
	if err != nil {
		return 0, fmt.Errorf("read meminfo: %w", err)
	}
	if info.MemTotal == nil || info.MemAvailable == nil || *info.MemTotal == 0 {
		return 0, fmt.Errorf("meminfo missing MemTotal/MemAvailable")
	}
	used := float64(*info.MemTotal-*info.MemAvailable) / float64(*info.MemTotal)
	return used * 100, nil
}
