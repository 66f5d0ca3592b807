package addfiles

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Summary describes the outcome of an add, e.g.
// "Added 2 tracks (7.3 MB), skipped 1".
func Summary(added int, bytes int64, skipped, failed int) string {
	var parts []string
	switch added {
	case 0:
		parts = append(parts, "No tracks added")
	case 1:
		parts = append(parts, fmt.Sprintf("Added 1 track (%s)", humanize.Bytes(uint64(max(bytes, 0)))))
	default:
		parts = append(parts, fmt.Sprintf("Added %d tracks (%s)", added, humanize.Bytes(uint64(max(bytes, 0)))))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d", skipped))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d unreadable", failed))
	}
	return strings.Join(parts, ", ")
}
