package ruleset

import "testing"

// Damage inequalities the default ruleset must preserve (spec §8 S3):
// flamer beats infantry armor, bullets struggle against heavy armor,
// heavy_cannon keeps full damage against heavy armor.
func TestDefaultRulesetDamageModifiers(t *testing.T) {
	r := NewDefaultRuleset()

	flamerVsInfantry := int(float64(20) * r.DamageModifier("flamer", ArmorInfantry))
	if flamerVsInfantry < 25 {
		t.Fatalf("flamer vs infantry = %d, want >= 25", flamerVsInfantry)
	}

	rifleVsHeavy := float64(6) * r.DamageModifier("bullets", ArmorHeavy)
	if rifleVsHeavy >= 1 {
		hits := 700 / int(rifleVsHeavy)
		if hits <= 100 {
			t.Fatalf("rifle vs heavy tank kills in %d hits, want > 100", hits)
		}
	}
	// sub-1 per-hit damage floors to 1 in ApplyDamage, so 700 hp takes 700
	// hits either way, well above the 100-hit floor the scenario requires.

	cannonVsHeavy := int(float64(120) * r.DamageModifier("heavy_cannon", ArmorHeavy))
	if cannonVsHeavy < 120 {
		t.Fatalf("heavy_cannon vs heavy armor = %d, want >= 120", cannonVsHeavy)
	}
}

func TestDamageModifierDefaultsToOne(t *testing.T) {
	r := NewDefaultRuleset()
	if got := r.DamageModifier("nonexistent_weapon", ArmorInfantry); got != 1.0 {
		t.Fatalf("unconfigured weapon/armor pair = %v, want 1.0", got)
	}
}
