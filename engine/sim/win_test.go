package sim

import (
	"testing"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
)

func TestCheckWinNoEliminationsKeepsPlaying(t *testing.T) {
	players := core.NewPlayerManager()
	players.AddPlayer(core.NewPlayer(0, 0, false))
	players.AddPlayer(core.NewPlayer(1, 0, false))

	_, over := checkWin(players)
	if over {
		t.Fatalf("game should not be over with two live teams")
	}
}

// S6, eliminating every player but one ends the match immediately in
// favor of the sole remaining team.
func TestCheckWinLastTeamStandingWins(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 0, false)
	p1 := core.NewPlayer(1, 0, false)
	players.AddPlayer(p0)
	players.AddPlayer(p1)
	p0.Eliminated = true

	winner, over := checkWin(players)
	if !over {
		t.Fatalf("game should be over once only one team remains")
	}
	if winner != p1.TeamID {
		t.Fatalf("winner team = %d, want %d", winner, p1.TeamID)
	}
}

func TestCheckWinAllEliminatedIsOverWithNoWinner(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 0, false)
	players.AddPlayer(p0)
	p0.Eliminated = true

	winner, over := checkWin(players)
	if !over {
		t.Fatalf("game should be over with every player eliminated")
	}
	if winner != -1 {
		t.Fatalf("winner = %d, want -1 (no winner)", winner)
	}
}

func TestCheckWinAlliedTeamsCountAsOneTeam(t *testing.T) {
	players := core.NewPlayerManager()
	p0 := core.NewPlayer(0, 0, false)
	p1 := core.NewPlayer(1, 0, false)
	p1.TeamID = p0.TeamID // ally on the same team
	players.AddPlayer(p0)
	players.AddPlayer(p1)

	_, over := checkWin(players)
	if over {
		t.Fatalf("two allied, non-eliminated players on one team should keep the game running")
	}
}
