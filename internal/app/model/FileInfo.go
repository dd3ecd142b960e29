package model

import "time"

// FileInfo describes one entry of the input directory listing.
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
	Regular  bool
}
