package inheritance

import (
	"sort"

	"github.com/inodb/inhmode/internal/record"
)

// SummarizeCompoundHets converts compound het annotations to modes,
// deduplicated and sorted.
func SummarizeCompoundHets(hets []record.CmpHet) []Mode {
	if len(hets) == 0 {
		return nil
	}
	seen := make(map[Mode]bool, len(hets))
	modes := make([]Mode, 0, len(hets))
	for _, h := range hets {
		m := CompoundHetMode(h.Phase, h.Impact)
		if seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
