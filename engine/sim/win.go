package sim

import "github.com/egeozcan/unnamed-rts-sub001/engine/core"

// checkWin implements spec §2 stage 9's win-condition check and spec
// §4.7's "enemy players whose win condition fires on your last-building
// loss win immediately": once only one team has a non-eliminated player
// left, that team wins.
func checkWin(players *core.PlayerManager) (winnerTeam int, over bool) {
	aliveTeam := -1
	teams := map[int]bool{}
	for _, p := range players.Players {
		if p.Eliminated {
			continue
		}
		teams[p.TeamID] = true
		aliveTeam = p.TeamID
	}
	if len(teams) == 1 {
		return aliveTeam, true
	}
	if len(teams) == 0 {
		return -1, true
	}
	return -1, false
}
