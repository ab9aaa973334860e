package main

import (
	"fmt"
	"time"

	"github.com/egeozcan/unnamed-rts-sub001/engine/sim"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var ticks int
	var mapSize float64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure wall-clock throughput of the tick pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := newDemoMatch(mapSize)

			start := time.Now()
			for i := 0; i < ticks; i++ {
				sim.Step(state, sim.Tick{})
				if state.GameOver {
					break
				}
			}
			elapsed := time.Since(start)

			fmt.Printf("%d ticks in %s (%.1f ticks/sec)\n",
				state.Tick, elapsed, float64(state.Tick)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 6000, "number of TICK actions to step")
	cmd.Flags().Float64Var(&mapSize, "map-size", 4096, "square map width/height in world units")
	return cmd
}
