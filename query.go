/*
Copyright © 2026 the MeritOrder authors.
This file is part of MeritOrder.

MeritOrder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeritOrder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeritOrder.  If not, see <http://www.gnu.org/licenses/>.*/

package meritorder

import (
	"context"
	"sync"

	"github.com/ctessum/requestcache"

	"github.com/gridmodel/meritorder/internal/hash"
	"github.com/gridmodel/meritorder/loads"
	"github.com/gridmodel/meritorder/plants"
)

// defaultCacheEntries is the number of per-selection dispatch results
// held in memory.
const defaultCacheEntries = 50

// An Engine answers presentation-layer queries against one registry.
// Dispatch results are computed lazily per (territory) selection and
// cached, so switching between selections does not repeat the
// Monte-Carlo work. An Engine is safe for concurrent use.
type Engine struct {
	// Registry is the full plant registry queries select from.
	Registry *plants.Registry

	// RunCount is the number of dispatch runs per selection.
	RunCount int

	// Seed seeds the dispatch random streams.
	Seed uint64

	// Workers bounds dispatch-run parallelism. Zero or one runs
	// serially.
	Workers int

	// Strict disables extrapolation when estimating emissions
	// factors for loads outside a curve's observed domain.
	Strict bool

	cache     *requestcache.Cache
	cacheOnce sync.Once
}

func (e *Engine) dispatchWorker(ctx context.Context, request interface{}) (interface{}, error) {
	territory := request.(string)
	sub := e.Registry.FilterTerritory(territory)
	if len(sub.Plants) == 0 {
		return nil, ErrNoData
	}
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	return RunDispatchConcurrent(ctx, sub, e.RunCount, e.Seed, workers)
}

// Runs returns the dispatch runs for the given territory selection,
// computing them on first use. An empty territory selects the whole
// registry. Selections matching no plants return ErrNoData.
func (e *Engine) Runs(ctx context.Context, territory string) ([]*DispatchRun, error) {
	e.cacheOnce.Do(func() {
		e.cache = requestcache.NewCache(e.dispatchWorker, 1,
			requestcache.Deduplicate(), requestcache.Memory(defaultCacheEntries))
	})
	key := "dispatch_" + hash.Hash(struct {
		Territory string
		RunCount  int
		Seed      uint64
	}{territory, e.RunCount, e.Seed})
	r := e.cache.NewRequest(ctx, territory, key)
	resultI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return resultI.([]*DispatchRun), nil
}

// Run returns dispatch run number run (1–RunCount) for the given
// territory selection. Run numbers outside that range return
// ErrNoData.
func (e *Engine) Run(ctx context.Context, territory string, run int) (*DispatchRun, error) {
	runs, err := e.Runs(ctx, territory)
	if err != nil {
		return nil, err
	}
	if run < 1 || run > len(runs) {
		return nil, ErrNoData
	}
	return runs[run-1], nil
}

// EFSeries estimates the per-run marginal emissions-factor series for
// the given territory selection and load samples.
func (e *Engine) EFSeries(ctx context.Context, territory string, samples []loads.Sample) ([]Series, error) {
	runs, err := e.Runs(ctx, territory)
	if err != nil {
		return nil, err
	}
	return Estimator{Strict: e.Strict}.MarginalEF(samples, runs)
}

// EFBand estimates the across-run uncertainty band for the given
// territory selection and load samples.
func (e *Engine) EFBand(ctx context.Context, territory string, samples []loads.Sample) ([]BandPoint, error) {
	series, err := e.EFSeries(ctx, territory, samples)
	if err != nil {
		return nil, err
	}
	return Band(series)
}
