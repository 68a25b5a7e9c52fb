package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/abcreative1/soulcount/internal/store"
)

// ToCSV writes one row per tasbih per recorded day, sorted by title then
// date, so the history is usable in a spreadsheet.
func ToCSV(tasbihs []store.Tasbih, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Title", "Date", "Count", "Lifetime Total", "Target"}); err != nil {
		return err
	}

	for _, t := range tasbihs {
		days := make([]string, 0, len(t.DailyCounts))
		for day := range t.DailyCounts {
			days = append(days, day)
		}
		sort.Strings(days)

		for _, day := range days {
			row := []string{
				t.Title,
				day,
				fmt.Sprintf("%d", t.DailyCounts[day]),
				fmt.Sprintf("%d", t.TotalCount),
				fmt.Sprintf("%d", t.Target),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
