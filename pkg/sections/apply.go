package sections

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/subway/pkg/network"
)

const maxLineWorkers = 20

// ApplyChanges applies each change and returns its error at the same index.
// Changes to one line keep their order, separate lines run in parallel.
func ApplyChanges(ctx context.Context, store network.Store, changes []Change) []error {
	results := make([]error, len(changes))

	var lineOrder []string
	groupedChanges := map[string][]int{}
	for i, change := range changes {
		if _, exists := groupedChanges[change.LineRef]; !exists {
			lineOrder = append(lineOrder, change.LineRef)
		}
		groupedChanges[change.LineRef] = append(groupedChanges[change.LineRef], i)
	}

	p := pool.New().WithMaxGoroutines(maxLineWorkers)
	for _, lineRef := range lineOrder {
		lineRef := lineRef
		indexes := groupedChanges[lineRef]

		p.Go(func() {
			for _, i := range indexes {
				line, err := changes[i].apply(ctx, store)
				results[i] = err

				if err != nil {
					log.Error().Err(err).
						Str("line", lineRef).
						Str("action", string(changes[i].Action)).
						Msg("Failed to apply section change")
					continue
				}

				log.Debug().
					Str("line", lineRef).
					Str("action", string(changes[i].Action)).
					Int("sections", len(line.Sections)).
					Msg("Applied section change")
			}
		})
	}
	p.Wait()

	return results
}
