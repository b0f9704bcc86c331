/*
	Basic Script that churns one shared store from many goroutines to exercise
	in-place reuse, relocation and defragmentation under the store lock.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/0xRadioAc7iv/go-quickdata/core"
	"github.com/0xRadioAc7iv/go-quickdata/internal"
	"github.com/0xRadioAc7iv/go-quickdata/internal/utils"
	"github.com/0xRadioAc7iv/go-quickdata/pkg/metrics"
)

const (
	concurrency = 6

	// Fixed universe
	totalKeys   = 100
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite  = 20
	keysPerCycleRetype = 10
	cyclesPerWorker    = 5000
	defragmentEvery    = 250

	sleepBetweenCycles = 10 * time.Millisecond

	progressEvery = 500
)

func main() {
	cfg, err := utils.HandleCLIInputs("data-gen", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	registry := metrics.NewRegistry()
	store, err := core.Open(cfg.Path,
		core.WithLogger(internal.NewLogger(cfg, os.Stderr)),
		core.WithMetrics(registry),
		core.WithSyncMode(cfg.SyncMode()),
	)
	if err != nil {
		fmt.Println("Error while opening store:", err)
		os.Exit(1)
	}
	defer store.Close()

	start := time.Now()
	fmt.Println("Starting quickdata churn-heavy load generator")

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		utils.ListenForProcessInterruptOrKill()
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			return runWorker(ctx, i, store, keys, values)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Println("Load stopped:", err)
	}
	fmt.Printf("Load finished in %v\n", time.Since(start))

	samples, err := registry.Snapshot()
	if err != nil {
		fmt.Println("Error while reading metrics:", err)
		return
	}
	for _, s := range samples {
		fmt.Println(s)
	}
}

func runWorker(ctx context.Context, id int, store *core.Store, keys []string, values []string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {
		if ctx.Err() != nil {
			return nil
		}

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := store.SaveString(key, val); err != nil {
				return fmt.Errorf("worker %d: save: %w", id, err)
			}
		}

		// ---- RETYPE PHASE (numbers land in text slots and relocate) ----
		for i := 0; i < keysPerCycleRetype; i++ {
			key := keys[rng.Intn(len(keys))]

			var err error
			switch rng.Intn(3) {
			case 0:
				err = store.SaveInt(key, rng.Int31())
			case 1:
				err = store.SaveLong(key, rng.Int63())
			default:
				err = store.SaveDouble(key, rng.Float64())
			}
			if err != nil {
				return fmt.Errorf("worker %d: retype: %w", id, err)
			}
		}

		if cycle%defragmentEvery == 0 {
			if err := store.Defragment(); err != nil {
				return fmt.Errorf("worker %d: defrag: %w", id, err)
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles\n", id, cycle)
		}

		if sleepBetweenCycles > 0 {
			time.Sleep(sleepBetweenCycles)
		}
	}
	return nil
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

// makeValues returns texts of growing length so saves both shrink into and
// outgrow existing slots.
func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-%0*d", i, i%40, 0)
	}
	return values
}
