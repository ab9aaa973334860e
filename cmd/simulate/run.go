package main

import (
	"fmt"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
	"github.com/egeozcan/unnamed-rts-sub001/engine/sim"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var ticks int
	var mapSize float64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a freshly seeded match forward a fixed number of ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			state := newDemoMatch(mapSize)

			for i := 0; i < ticks; i++ {
				sim.Step(state, sim.Tick{})
				if state.GameOver {
					log.Info("game over", "tick", state.Tick, "winningTeam", state.WinnerTeam)
					break
				}
			}

			fmt.Printf("ran %d ticks (final tick=%d, gameOver=%v, winningTeam=%d)\n",
				ticks, state.Tick, state.GameOver, state.WinnerTeam)
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 600, "number of TICK actions to step")
	cmd.Flags().Float64Var(&mapSize, "map-size", 4096, "square map width/height in world units")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// newDemoMatch seeds a two-player skirmish against the default ruleset, the
// shape every unit/system test in this module also builds against.
func newDemoMatch(mapSize float64) *sim.State {
	rules := ruleset.NewDefaultRuleset()
	players := core.NewPlayerManager()

	p1 := core.NewPlayer(0, 5000, false)
	p2 := core.NewPlayer(1, 5000, true)
	p2.Personality = "aggressive"
	players.AddPlayer(p1)
	players.AddPlayer(p2)

	return sim.NewState(rules, players, sim.Config{
		MapWidth:          mapSize,
		MapHeight:         mapSize,
		ExpectedEntities:  512,
		PathCacheTTLTicks: rules.Tune.PathCacheTTLTicks,
	})
}
