package transform

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
)

// RowWarning reports a degraded transformation for one row/target pair.
type RowWarning struct {
	Row         int    `json:"row"`
	TargetField string `json:"targetField"`
	Message     string `json:"message"`
}

// ApplyRow applies a whole mapping set to one row, producing the
// target-keyed record plus warnings for any step that degraded to a
// placeholder. Warning Row indexes are filled by ApplyRows. The input row
// is never mutated.
func ApplyRow(set mapper.MappingSet, row mapper.Row) (mapper.Row, []RowWarning) {
	out := make(mapper.Row, len(set))
	var warnings []RowWarning

	for _, m := range set {
		value, err := ApplyMapping(m, row)
		if err != nil {
			warnings = append(warnings, RowWarning{TargetField: m.TargetField, Message: err.Error()})
		}
		// A later multi-source mapping (datetime_combine) may refine a
		// target an earlier bare mapping already filled; bare duplicates
		// keep the first resolved value.
		if _, seen := out[m.TargetField]; seen && len(m.Transformations) == 0 {
			continue
		}
		out[m.TargetField] = value
	}
	return out, warnings
}

// ApplyRows transforms a batch of rows, fanning out per row with a bounded
// errgroup. Results keep input order. Individual row failures never abort
// the batch; they surface as RowWarnings.
func ApplyRows(ctx context.Context, set mapper.MappingSet, rows []mapper.Row) ([]mapper.Row, []RowWarning) {
	results := make([]mapper.Row, len(rows))
	perRow := make([][]RowWarning, len(rows))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			results[i], perRow[i] = ApplyRow(set, row)
			return nil
		})
	}
	// Workers only write their own slot and never return errors.
	_ = g.Wait()

	var warnings []RowWarning
	for i, rowWarnings := range perRow {
		for _, w := range rowWarnings {
			w.Row = i
			warnings = append(warnings, w)
		}
	}
	return results, warnings
}
