package systems

import (
	"testing"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
	"github.com/egeozcan/unnamed-rts-sub001/engine/ruleset"
)

func spawnUnitForDamage(t *testing.T, w *core.World, rules *ruleset.Ruleset, key string, hp int) core.EntityID {
	t.Helper()
	def := rules.Unit(key)
	if def == nil {
		t.Fatalf("no such unit %q in default ruleset", key)
	}
	id := w.Spawn(core.KindUnit)
	w.Attach(id, &core.Header{RuleKey: key, HP: hp, MaxHP: hp})
	return id
}

// S3, flamer (base 20) vs rifle infantry deals >= 25 effective damage.
func TestApplyDamageFlamerVsInfantry(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	bus := core.NewEventBus()
	id := spawnUnitForDamage(t, w, rules, "rifle_infantry", 125)

	dmg := ApplyDamage(w, rules, id, 20, "flamer", bus, 1)
	if dmg < 25 {
		t.Fatalf("flamer damage = %d, want >= 25", dmg)
	}
}

// S3, rifle (base 6) vs heavy tank (700 hp) needs > 100 hits to kill.
func TestApplyDamageRifleVsHeavyTankSurvivesManyHits(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	bus := core.NewEventBus()
	id := spawnUnitForDamage(t, w, rules, "heavy_tank", 700)

	for i := 0; i < 100; i++ {
		ApplyDamage(w, rules, id, 6, "bullets", bus, uint64(i))
	}
	hdr := w.Get(id, core.CompHeader).(*core.Header)
	if hdr.Dead() {
		t.Fatalf("heavy tank died within 100 rifle hits, want it to survive")
	}
}

// HP is clamped to zero and the entity destroyed on lethal damage, never
// driven negative.
func TestApplyDamageDestroysAtZeroHP(t *testing.T) {
	rules := ruleset.NewDefaultRuleset()
	w := core.NewWorld()
	bus := core.NewEventBus()
	id := spawnUnitForDamage(t, w, rules, "rifle_infantry", 10)

	dmg := ApplyDamage(w, rules, id, 999, "heavy_cannon", bus, 1)
	if dmg != 10 {
		t.Fatalf("applied damage = %d, want clamped to remaining hp 10", dmg)
	}
	hdr := w.Get(id, core.CompHeader).(*core.Header)
	if hdr.HP != 0 || !hdr.Dead() {
		t.Fatalf("expected hp=0 and Dead()=true, got hp=%d dead=%v", hdr.HP, hdr.Dead())
	}

	// already-dead entities absorb no further damage
	if dmg2 := ApplyDamage(w, rules, id, 50, "bullets", bus, 2); dmg2 != 0 {
		t.Fatalf("damage applied to dead entity = %d, want 0", dmg2)
	}
}
