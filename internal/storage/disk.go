// Package storage reports on the data files the service reads from disk.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// FileStat describes one data file.
type FileStat struct {
	Path    string    `json:"path"`
	Bytes   int64     `json:"bytes"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Missing bool      `json:"missing,omitempty"`
}

// Stat describes each non-empty path. A missing file is reported with
// Missing set rather than as an error; other stat failures are returned.
func Stat(paths ...string) ([]FileStat, error) {
	stats := make([]FileStat, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stats = append(stats, FileStat{Path: p, Missing: true})
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			return nil, &fs.PathError{Op: "stat", Path: p, Err: errors.New("is a directory")}
		}
		stats = append(stats, FileStat{Path: p, Bytes: info.Size(), ModTime: info.ModTime()})
	}
	return stats, nil
}

// DiskUsageBytes returns the combined size of stats.
func DiskUsageBytes(stats []FileStat) int64 {
	var total int64
	for _, s := range stats {
		total += s.Bytes
	}
	return total
}
