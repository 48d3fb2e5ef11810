package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// recordingHooks captures lifecycle transitions in order
type recordingHooks struct {
	log []string
}

func (h *recordingHooks) OnApply(inst *Instance) error {
	h.log = append(h.log, "apply:"+inst.DefinitionID)
	return nil
}

func (h *recordingHooks) OnTick(inst *Instance) error {
	h.log = append(h.log, fmt.Sprintf("tick:%s:%d", inst.DefinitionID, inst.Stacks))
	return nil
}

func (h *recordingHooks) OnRemove(inst *Instance) error {
	h.log = append(h.log, "remove:"+inst.DefinitionID)
	return nil
}

func newTestLedger(holderID string) *Ledger {
	return NewLedger(holderID, uuid.NewSequentialGenerator("status"))
}

func TestLedger_Apply(t *testing.T) {
	t.Run("new instance fires on-apply once", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{ID: "poisoned", DurationTurns: 3}
		inst, err := ledger.Apply(def, "rogue-1", "", hooks)
		require.NoError(t, err)
		assert.Equal(t, 3, inst.Remaining)
		assert.Equal(t, 1, inst.Stacks)
		assert.Equal(t, []string{"apply:poisoned"}, hooks.log)
	})

	t.Run("refresh policy resets duration without stacking", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{ID: "slowed", DurationTurns: 2, Stacking: content.StackingRefresh}
		first, err := ledger.Apply(def, "mage-1", "", hooks)
		require.NoError(t, err)
		first.Remaining = 1 // simulate a tick having passed

		second, err := ledger.Apply(def, "mage-1", "", hooks)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 2, second.Remaining, "duration refreshed")
		assert.Equal(t, 1, second.Stacks, "stacks untouched")
		assert.Equal(t, []string{"apply:slowed"}, hooks.log, "on-apply fires only for new instances")
	})

	t.Run("stack policy increments without refreshing", func(t *testing.T) {
		ledger := newTestLedger("orc-1")

		def := &content.StatusDefinition{
			ID:            "burning",
			DurationTurns: 3,
			Stacking:      content.StackingStacks,
			MaxStacks:     3,
		}
		inst, err := ledger.Apply(def, "mage-1", "", nil)
		require.NoError(t, err)
		inst.Remaining = 1

		for i := 0; i < 5; i++ {
			_, err = ledger.Apply(def, "mage-1", "", nil)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, inst.Stacks, "stacks bounded by max")
		assert.Equal(t, 1, inst.Remaining, "duration not refreshed under stack policy")
	})
}

func TestLedger_Concentration(t *testing.T) {
	t.Run("new concentration displaces the caster's prior one", func(t *testing.T) {
		ledger := newTestLedger("mage-1")
		hooks := &recordingHooks{}

		hexDef := &content.StatusDefinition{ID: "hex", Concentration: true, Permanent: true}
		hasteDef := &content.StatusDefinition{ID: "haste_anchor", Concentration: true, Permanent: true}

		_, err := ledger.Apply(hexDef, "mage-1", "", hooks)
		require.NoError(t, err)

		_, err = ledger.Apply(hasteDef, "mage-1", "", hooks)
		require.NoError(t, err)

		assert.False(t, ledger.Has("hex"))
		assert.True(t, ledger.Has("haste_anchor"))
		// Prior on-remove fires exactly once, before the new on-apply
		assert.Equal(t, []string{"apply:hex", "remove:hex", "apply:haste_anchor"}, hooks.log)
	})

	t.Run("different casters concentrate independently", func(t *testing.T) {
		ledger := newTestLedger("fighter-1")

		def := &content.StatusDefinition{ID: "bless_anchor", Concentration: true, Permanent: true}
		_, err := ledger.Apply(def, "cleric-1", "", nil)
		require.NoError(t, err)

		def2 := &content.StatusDefinition{ID: "hex", Concentration: true, Permanent: true}
		_, err = ledger.Apply(def2, "warlock-1", "", nil)
		require.NoError(t, err)

		assert.True(t, ledger.Has("bless_anchor"))
		assert.True(t, ledger.Has("hex"))
	})
}

func TestLedger_Tick(t *testing.T) {
	t.Run("functor fires then duration decrements", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{
			ID:            "burning",
			DurationTurns: 2,
			TickTiming:    content.TickTurnStart,
			TickFormula:   "1d4",
		}
		_, err := ledger.Apply(def, "mage-1", "", hooks)
		require.NoError(t, err)

		require.NoError(t, ledger.Tick(content.TickTurnStart, hooks))
		assert.Equal(t, []string{"apply:burning", "tick:burning:1"}, hooks.log)
		assert.Equal(t, 1, ledger.Get("burning").Remaining)
	})

	t.Run("duration reaching zero removes in the same tick cycle", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{ID: "stunned", DurationTurns: 1}
		_, err := ledger.Apply(def, "mage-1", "", hooks)
		require.NoError(t, err)

		require.NoError(t, ledger.Tick(content.TickTurnStart, hooks))
		assert.False(t, ledger.Has("stunned"), "no extra lingering turn")
		assert.Equal(t, []string{"apply:stunned", "remove:stunned"}, hooks.log)
	})

	t.Run("only the matching tick timing fires", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{
			ID:            "acid",
			DurationTurns: 2,
			TickTiming:    content.TickTurnEnd,
			TickFormula:   "1d4",
		}
		_, err := ledger.Apply(def, "mage-1", "", hooks)
		require.NoError(t, err)

		require.NoError(t, ledger.Tick(content.TickTurnStart, hooks))
		assert.Equal(t, 2, ledger.Get("acid").Remaining, "start tick must not touch an end-tick status")

		require.NoError(t, ledger.Tick(content.TickTurnEnd, hooks))
		assert.Equal(t, 1, ledger.Get("acid").Remaining)
	})

	t.Run("permanent statuses tick but never expire", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		def := &content.StatusDefinition{
			ID:          "regeneration",
			Permanent:   true,
			TickFormula: "1d6",
			TickHeals:   true,
		}
		_, err := ledger.Apply(def, "orc-1", "", hooks)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, ledger.Tick(content.TickTurnStart, hooks))
		}
		assert.True(t, ledger.Has("regeneration"))
	})
}

func TestLedger_Removal(t *testing.T) {
	t.Run("remove by group", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		burning := &content.StatusDefinition{ID: "burning", Permanent: true, RemovalGroup: "fire"}
		oiled := &content.StatusDefinition{ID: "oiled", Permanent: true, RemovalGroup: "fire"}
		chilled := &content.StatusDefinition{ID: "chilled", Permanent: true, RemovalGroup: "cold"}

		_, err := ledger.Apply(burning, "x", "", hooks)
		require.NoError(t, err)
		_, err = ledger.Apply(oiled, "x", "", hooks)
		require.NoError(t, err)
		_, err = ledger.Apply(chilled, "x", "", hooks)
		require.NoError(t, err)

		removed, err := ledger.RemoveByGroup("fire", hooks)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.False(t, ledger.Has("burning"))
		assert.False(t, ledger.Has("oiled"))
		assert.True(t, ledger.Has("chilled"))
	})

	t.Run("linked groups removed atomically", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		sub1 := &content.StatusDefinition{ID: "weakened", Permanent: true, RemovalGroup: "shatter_sub"}
		sub2 := &content.StatusDefinition{ID: "exposed", Permanent: true, RemovalGroup: "shatter_sub"}
		composite := &content.StatusDefinition{
			ID:           "shattered",
			Permanent:    true,
			RemovalGroup: "shatter",
			LinkedGroups: []string{"shatter_sub"},
		}

		_, err := ledger.Apply(sub1, "x", "", hooks)
		require.NoError(t, err)
		_, err = ledger.Apply(sub2, "x", "", hooks)
		require.NoError(t, err)
		_, err = ledger.Apply(composite, "x", "", hooks)
		require.NoError(t, err)

		_, err = ledger.RemoveByGroup("shatter", hooks)
		require.NoError(t, err)
		assert.Empty(t, ledger.Active(), "composite removal sweeps linked sub-statuses")
	})

	t.Run("remove anchored instances", func(t *testing.T) {
		ledger := newTestLedger("fighter-1")

		buff := &content.StatusDefinition{ID: "blessed", Permanent: true}
		_, err := ledger.Apply(buff, "cleric-1", "anchor-42", nil)
		require.NoError(t, err)

		other := &content.StatusDefinition{ID: "raging", Permanent: true}
		_, err = ledger.Apply(other, "fighter-1", "", nil)
		require.NoError(t, err)

		require.NoError(t, ledger.RemoveAnchored("anchor-42", nil))
		assert.False(t, ledger.Has("blessed"))
		assert.True(t, ledger.Has("raging"))
	})

	t.Run("remove all when holder leaves combat", func(t *testing.T) {
		ledger := newTestLedger("orc-1")
		hooks := &recordingHooks{}

		for _, id := range []string{"a", "b", "c"} {
			_, err := ledger.Apply(&content.StatusDefinition{ID: id, Permanent: true}, "x", "", hooks)
			require.NoError(t, err)
		}

		require.NoError(t, ledger.RemoveAll(hooks))
		assert.Empty(t, ledger.Active())
		assert.Len(t, hooks.log, 6, "three applies, three removes")
	})
}

func TestLedger_ResistanceFor(t *testing.T) {
	fireResist := &content.StatusDefinition{
		ID: "fire_shield", Permanent: true,
		Grants: content.Grants{Resistances: []rules.DamageType{rules.DamageFire}},
	}
	fireVuln := &content.StatusDefinition{
		ID: "oil_soaked", Permanent: true,
		Grants: content.Grants{Vulnerabilities: []rules.DamageType{rules.DamageFire}},
	}
	allImmune := &content.StatusDefinition{
		ID: "stoneform", Permanent: true,
		Grants: content.Grants{Immunities: []rules.DamageType{"all"}},
	}

	t.Run("resistance applies", func(t *testing.T) {
		ledger := newTestLedger("x")
		_, err := ledger.Apply(fireResist, "x", "", nil)
		require.NoError(t, err)

		assert.Equal(t, rules.Resistant, ledger.ResistanceFor(rules.DamageFire))
		assert.Equal(t, rules.ResistanceNone, ledger.ResistanceFor(rules.DamageCold))
	})

	t.Run("resistance and vulnerability cancel", func(t *testing.T) {
		ledger := newTestLedger("x")
		_, err := ledger.Apply(fireResist, "x", "", nil)
		require.NoError(t, err)
		_, err = ledger.Apply(fireVuln, "x", "", nil)
		require.NoError(t, err)

		assert.Equal(t, rules.ResistanceNone, ledger.ResistanceFor(rules.DamageFire))
	})

	t.Run("immunity wins over everything", func(t *testing.T) {
		ledger := newTestLedger("x")
		_, err := ledger.Apply(fireVuln, "x", "", nil)
		require.NoError(t, err)
		_, err = ledger.Apply(allImmune, "x", "", nil)
		require.NoError(t, err)

		assert.Equal(t, rules.Immune, ledger.ResistanceFor(rules.DamageFire))
		assert.Equal(t, rules.Immune, ledger.ResistanceFor(rules.DamagePsychic))
	})

	t.Run("query reflects removal immediately", func(t *testing.T) {
		ledger := newTestLedger("x")
		inst, err := ledger.Apply(fireResist, "x", "", nil)
		require.NoError(t, err)
		assert.Equal(t, rules.Resistant, ledger.ResistanceFor(rules.DamageFire))

		require.NoError(t, ledger.RemoveInstance(inst.ID, nil))
		assert.Equal(t, rules.ResistanceNone, ledger.ResistanceFor(rules.DamageFire))
	})
}

func TestLedger_Modifiers(t *testing.T) {
	ledger := newTestLedger("x")

	_, err := ledger.Apply(&content.StatusDefinition{
		ID: "blessed", Name: "Blessed", Permanent: true,
		Grants: content.Grants{AttackBonus: 2, SaveBonus: 2},
	}, "cleric-1", "", nil)
	require.NoError(t, err)

	_, err = ledger.Apply(&content.StatusDefinition{
		ID: "shield_of_faith", Name: "Shield of Faith", Permanent: true,
		Grants: content.Grants{ACBonus: 2},
	}, "cleric-1", "", nil)
	require.NoError(t, err)

	attackMods := ledger.AttackModifiers()
	require.Len(t, attackMods, 1)
	assert.Equal(t, 2, attackMods[0].Value)

	saveMods := ledger.SaveModifiers()
	require.Len(t, saveMods, 1)

	assert.Equal(t, 2, ledger.ACBonus())
}

func TestLedger_Snapshot(t *testing.T) {
	ledger := newTestLedger("orc-1")

	_, err := ledger.Apply(&content.StatusDefinition{ID: "poisoned", DurationTurns: 2}, "rogue-1", "", nil)
	require.NoError(t, err)

	snaps := ledger.SnapshotAll()
	require.Len(t, snaps, 1)
	assert.Equal(t, "poisoned", snaps[0].DefinitionID)
	assert.Equal(t, "rogue-1", snaps[0].SourceID)
	assert.Equal(t, 2, snaps[0].Remaining)
	assert.Equal(t, 1, snaps[0].Stacks)
}
