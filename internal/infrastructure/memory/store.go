// Package memory provides process-local store adapters used for local runs and tests.
package memory

import (
	"sort"
	"time"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type record interface {
	field(name string) (any, bool)
	orderKey(field string) time.Time
	recordID() string
}

func matches(r record, equals []application.EqualityFilter) bool {
	for _, eq := range equals {
		value, ok := r.field(eq.Field)
		if !ok || value != eq.Value {
			return false
		}
	}
	return true
}

// selectRecords applies filter, order, cursor and limit the same way the Mongo adapter does.
func selectRecords[T record](all []T, query application.StoreQuery) []T {
	out := make([]T, 0, len(all))
	for _, r := range all {
		if matches(r, query.Equals) {
			out = append(out, r)
		}
	}

	if field := query.OrderBy.Field; field != "" {
		desc := query.OrderBy.Descending
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := out[i].orderKey(field), out[j].orderKey(field)
			if !ti.Equal(tj) {
				if desc {
					return ti.After(tj)
				}
				return ti.Before(tj)
			}
			if desc {
				return out[i].recordID() > out[j].recordID()
			}
			return out[i].recordID() < out[j].recordID()
		})
	}

	if c := query.StartAfter; c != nil && !c.IsZero() {
		field := query.OrderBy.Field
		if field == "" {
			field = domain.FieldPostedAt
		}
		kept := out[:0]
		for _, r := range out {
			if c.Precedes(r.orderKey(field), r.recordID()) {
				kept = append(kept, r)
			}
		}
		out = kept
	}

	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out
}
