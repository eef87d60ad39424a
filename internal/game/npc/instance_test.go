package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// script replays fixed Intn and Float64 draws.
type script struct {
	ints   []int
	floats []float64
	ni, nf int
}

func (s *script) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ni%len(s.ints)] % n
	s.ni++
	return v
}

func (s *script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.nf%len(s.floats)]
	s.nf++
	return v
}

func TestNewInstance_CopiesTemplate(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Element = "frost"
	tmpl.StatusChance = 0.3
	tmpl.AIDomain = "skirmisher"
	inst := npc.NewInstance("rat-1", tmpl, grid.Point{X: 2, Y: 3}, 7)

	assert.Equal(t, "rat-1", inst.ID)
	assert.Equal(t, combat.KindAgent, inst.Kind)
	assert.Equal(t, "rat", inst.TemplateID)
	assert.Equal(t, grid.Point{X: 2, Y: 3}, inst.Pos)
	assert.Equal(t, 7, inst.MaxHP)
	assert.Equal(t, 7, inst.CurrentHP)
	assert.Equal(t, combat.ElementFrost, inst.Element)
	assert.Equal(t, 0.3, inst.StatusChance)
	assert.Equal(t, "skirmisher", inst.AIDomain)
	assert.Equal(t, 6, inst.SightRadius)
	require.NotNil(t, inst.Conditions)
	assert.Equal(t, 0, inst.Conditions.Len())
}

func TestInstance_TryTaunt(t *testing.T) {
	tmpl := validTemplate()
	inst := npc.NewInstance("rat-1", tmpl, grid.Point{}, 5)
	src := &script{ints: []int{1}, floats: []float64{0.1}}
	_, ok := inst.TryTaunt(src)
	assert.False(t, ok, "no taunts configured")
	assert.Equal(t, 0, src.nf, "no draw without taunts")

	inst.Taunts = []string{"Squeak!", "Hiss!"}
	inst.TauntChance = 0.5
	line, ok := inst.TryTaunt(src)
	require.True(t, ok)
	assert.Equal(t, "Hiss!", line)

	_, ok = inst.TryTaunt(&script{floats: []float64{0.9}})
	assert.False(t, ok)
}

func TestInstance_HealthDescription(t *testing.T) {
	inst := npc.NewInstance("rat-1", validTemplate(), grid.Point{}, 100)
	cases := []struct {
		hp   int
		want string
	}{
		{100, "unharmed"},
		{90, "barely scratched"},
		{60, "lightly wounded"},
		{40, "moderately wounded"},
		{20, "heavily wounded"},
		{5, "critically wounded"},
		{0, "dead"},
	}
	for _, tc := range cases {
		inst.CurrentHP = tc.hp
		assert.Equal(t, tc.want, inst.HealthDescription(), "hp=%d", tc.hp)
	}
}
