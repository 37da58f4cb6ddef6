// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/sprintertech/bridge-verifier/verifier"
)

type Result struct {
	Scenario string
	State    verifier.State
	History  []verifier.State
	Err      error
}

// RunScenarios runs scenarios concurrently, at most maxConcurrent at a time.
// Scenarios sharing an account run one after another in configuration order.
// Every scenario yields a result at its configuration index, an aborted
// scenario does not stop the others.
func RunScenarios(ctx context.Context, v *verifier.Verifier, scenarios []*verifier.Scenario, maxConcurrent int) []Result {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	results := make([]Result, len(scenarios))
	p := pool.New().WithMaxGoroutines(maxConcurrent)
	for _, group := range groupByAccount(scenarios) {
		if len(group) > 1 {
			log.Debug().Msgf("Running %d scenarios sharing accounts sequentially", len(group))
		}

		p.Go(func() {
			for _, i := range group {
				scenario := scenarios[i]
				err := scenario.Run(ctx, v)
				results[i] = Result{
					Scenario: scenario.Name,
					State:    scenario.State(),
					History:  scenario.History(),
					Err:      err,
				}
			}
		})
	}
	p.Wait()
	return results
}

// groupByAccount partitions scenario indexes so that scenarios sharing an
// account, directly or through other scenarios, land in the same group.
// Groups and their members keep configuration order.
func groupByAccount(scenarios []*verifier.Scenario) [][]int {
	parent := make([]int, len(scenarios))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owners := make(map[verifier.Account]int)
	for i, scenario := range scenarios {
		for _, account := range scenario.Accounts() {
			j, ok := owners[account]
			if !ok {
				owners[account] = i
				continue
			}

			ri, rj := find(i), find(j)
			if ri < rj {
				ri, rj = rj, ri
			}
			parent[ri] = rj
		}
	}

	var groups [][]int
	index := make(map[int]int)
	for i := range scenarios {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// Report logs every result and returns an error listing the aborted
// scenarios.
func Report(results []Result) error {
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			log.Error().Str("scenario", result.Scenario).Msgf("Scenario aborted after %v: %s", result.History, result.Err)
			errs = append(errs, fmt.Errorf("%s: %w", result.Scenario, result.Err))
			continue
		}
		log.Info().Str("scenario", result.Scenario).Msgf("Scenario %s", result.State)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d scenarios aborted: %w", len(errs), len(results), errors.Join(errs...))
	}
	return nil
}
