package engine

import (
	"fmt"

	"underkingdom-server/internal/data"
	"underkingdom-server/internal/domain"
	"underkingdom-server/internal/systems"
)

// --- ФАБРИКА СУЩНОСТЕЙ ---
// Единственное место, где статические определения превращаются в живые
// сущности. Все производные величины (MaxHP, резисты от трейтов)
// считаются здесь и при пересчете модификаторов.

// SpawnCreature создает сущность из определения каталога и ставит ее на клетку
func (s *GameService) SpawnCreature(defID string, pos domain.Position) (*domain.Entity, error) {
	def, ok := s.Catalog.Creature(defID)
	if !ok {
		return nil, fmt.Errorf("unknown creature %q", defID)
	}
	if !s.World.InBounds(pos.X, pos.Y) || s.World.IsOccupied(pos.X, pos.Y) {
		return nil, fmt.Errorf("cannot place %q at %d,%d", defID, pos.X, pos.Y)
	}

	e := buildEntity(def)
	e.Pos = pos
	s.World.RegisterEntity(e)
	s.Entities = append(s.Entities, e)
	return e, nil
}

// SpawnPlayer создает игрока с расой и классом
func (s *GameService) SpawnPlayer(name, raceID, classID string, pos domain.Position) (*domain.Entity, error) {
	race, ok := s.Catalog.Race(raceID)
	if !ok {
		return nil, fmt.Errorf("unknown race %q", raceID)
	}
	class, ok := s.Catalog.Class(classID)
	if !ok {
		return nil, fmt.Errorf("unknown class %q", classID)
	}
	if !s.World.InBounds(pos.X, pos.Y) || s.World.IsOccupied(pos.X, pos.Y) {
		return nil, fmt.Errorf("cannot place player at %d,%d", pos.X, pos.Y)
	}

	e := &domain.Entity{
		ID:           domain.NewID(),
		Kind:         domain.KindPlayer,
		Name:         name,
		Pos:          pos,
		Blocking:     true,
		CreatureType: domain.CreatureHumanoid,
		Faction:      domain.FactionPlayer,
		Stats:        domain.NewStats(10, 10, 10, 10, 10, 10),
		Summoner:     &domain.SummonerComponent{},
		Traits: &domain.TraitsComponent{
			Race:  data.BuildTrait(race),
			Class: data.BuildTrait(class),
		},
	}
	applyTraitBase(e)
	systems.RecomputeModifiers(e)

	s.World.RegisterEntity(e)
	s.Entities = append(s.Entities, e)
	return e, nil
}

// SummonCreature призывает существо на клетку рядом с владельцем.
// Длительность и режим берутся из определения, режим можно сменить позже.
func (s *GameService) SummonCreature(owner *domain.Entity, defID string, pos domain.Position, mode domain.SummonMode) (*domain.Entity, error) {
	def, ok := s.Catalog.Creature(defID)
	if !ok {
		return nil, fmt.Errorf("unknown creature %q", defID)
	}
	if !s.World.InBounds(pos.X, pos.Y) || s.World.IsOccupied(pos.X, pos.Y) {
		return nil, fmt.Errorf("cannot summon %q at %d,%d", defID, pos.X, pos.Y)
	}

	e := buildEntity(def)
	e.Kind = domain.KindSummon
	e.Faction = owner.Faction
	e.Pos = pos
	duration := def.SummonDuration
	if duration == 0 {
		duration = domain.SummonUnlimited
	}
	e.Summon = &domain.SummonComponent{
		OwnerID:  owner.ID,
		Mode:     mode,
		Duration: duration,
	}

	s.Entities = append(s.Entities, e)
	systems.SpawnSummon(owner, e, s.deps())
	return e, nil
}

// buildEntity собирает сущность из определения, без привязки к миру
func buildEntity(def *data.CreatureDef) *domain.Entity {
	attr := func(name string) int {
		if v, ok := def.Attributes[name]; ok {
			return v
		}
		return 10
	}
	stats := domain.NewStats(
		attr("str"), attr("dex"), attr("con"),
		attr("int"), attr("wis"), attr("cha"),
	)
	stats.BaseDamage = def.BaseDamage
	stats.BaseArmor = def.BaseArmor
	stats.LightRadius = def.LightRadius
	for name, val := range def.Resist {
		kind, _ := domain.ParseDamageKind(name)
		stats.Resist[kind] = domain.ClampResistance(val)
	}

	e := &domain.Entity{
		ID:           domain.NewID(),
		Kind:         domain.ParseKind(def.Kind),
		Name:         def.Name,
		Blocking:     true,
		CreatureType: domain.ParseCreatureType(def.CreatureType),
		Faction:      domain.ParseFaction(def.Faction),
		Stats:        stats,
		AI: &domain.AIComponent{
			Mode:             domain.ParseBehavior(def.Behavior),
			State:            domain.StateNormal,
			AggroRadius:      defaultAggro(def.AggroRadius),
			FearedComponents: def.Feared,
			FearDistance:     def.FearDistance,
			LootTable:        def.LootTable,
			XP:               def.XP,
		},
	}
	if def.Mana > 0 {
		e.Caster = &domain.CasterComponent{
			Known:   def.Abilities,
			Mana:    def.Mana,
			MaxMana: def.Mana,
		}
	}
	return e
}

func defaultAggro(r int) int {
	if r <= 0 {
		return domain.DefaultAggroRadius
	}
	return r
}

// applyTraitBase вносит постоянные резисты трейтов в базовую таблицу.
// Резисты складываются по формуле убывающей отдачи, как и временные.
func applyTraitBase(e *domain.Entity) {
	if e.Traits == nil || e.Stats == nil {
		return
	}
	e.Traits.Each(func(t *domain.Trait) {
		for kind, delta := range t.ResistBonus {
			e.Stats.Resist[kind] = domain.ClampResistance(
				domain.ComposeResistance(e.Stats.Resist[kind], delta))
		}
	})
}
