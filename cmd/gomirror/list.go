// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/log"
	"github.com/navwar/gomirror/pkg/ts"
)

type listInput struct {
	FileSystem            fs.FileSystem
	Writer                io.Writer
	Format                string
	All                   bool
	Recursive             bool
	HumanReadableFileSize bool
	TimeLayout            ts.Layout
	TimeZone              *time.Location
}

// jsonEntry is written for each entry when the format is jsonl.
type jsonEntry struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Size    any    `json:"size"`
	ModTime string `json:"mod_time"`
}

func isHidden(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// list writes the entries beneath the root of the file system in walk order.
func list(ctx context.Context, input *listInput) error {
	timeZone := input.TimeZone
	if timeZone == nil {
		timeZone = time.Local
	}

	return fs.Walk(ctx, input.FileSystem, ".", false, func(name string, entry *fs.Entry, err error) error {
		if err != nil {
			return fmt.Errorf("error listing %q: %w", name, err)
		}

		if (!input.All) && isHidden(name) {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		entryType := "file"
		if entry.IsDir() {
			entryType = "dir"
		}

		var size any = entry.Size()
		if input.HumanReadableFileSize {
			size = strings.TrimSpace(formatHumanReadableFileSize(entry.Size()))
		}

		modTime := input.TimeLayout.Format(entry.ModTime().In(timeZone))

		switch input.Format {
		case log.FormatJSONL:
			b, err := json.Marshal(jsonEntry{
				Path:    name,
				Type:    entryType,
				Size:    size,
				ModTime: modTime,
			})
			if err != nil {
				return fmt.Errorf("error marshaling entry %q: %w", name, err)
			}
			_, _ = fmt.Fprintln(input.Writer, string(b))
		default:
			if input.HumanReadableFileSize {
				_, _ = fmt.Fprintf(input.Writer, "%-4s  %5v  %s  %s\n", entryType, size, modTime, name)
			} else {
				_, _ = fmt.Fprintf(input.Writer, "%-4s  %12v  %s  %s\n", entryType, size, modTime, name)
			}
		}

		if entry.IsDir() && !input.Recursive {
			return fs.SkipDir
		}

		return nil
	})
}
