package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"
)

var startedAt = time.Now()

// SysHealth is the process snapshot reported on /healthz.
type SysHealth struct {
	Uptime     string            `json:"uptime"`
	Goroutines int               `json:"goroutines"`
	HeapMB     uint64            `json:"heapMb"`
	SysMB      uint64            `json:"sysMb"`
	NumGC      uint32            `json:"numGc"`
	Disk       map[string]string `json:"disk,omitempty"`
}

// GetSysHealth reads runtime memory stats and the size on disk of each
// labelled directory, e.g. {"database": "./data", "snapshots": "./data/snapshots"}.
func GetSysHealth(dirs map[string]string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	h := SysHealth{
		Uptime:     time.Since(startedAt).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		HeapMB:     m.HeapAlloc >> 20,
		SysMB:      m.Sys >> 20,
		NumGC:      m.NumGC,
	}
	if len(dirs) > 0 {
		h.Disk = make(map[string]string, len(dirs))
		for label, dir := range dirs {
			h.Disk[label] = dirUsage(dir)
		}
	}
	return h
}

func dirUsage(dir string) string {
	var size int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return "unreadable"
	}
	return humanBytes(size)
}

func humanBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v, units := float64(n)/1024, "KMGTPE"
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %cB", v, units[i])
}
