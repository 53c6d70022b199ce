package domain

import "github.com/google/uuid"

// --- КОМПОНЕНТЫ ---

// AIComponent - Мозги и боевое состояние врага.
// Примечание: у игрока этого компонента нет, им управляет человек.
type AIComponent struct {
	Mode  BehaviorMode `json:"mode"`
	State AIState      `json:"state"`

	AggroRadius int `json:"aggroRadius"`

	// Alerted + LastKnown - память о цели. Ставятся при обнаружении
	// или безусловно при получении урона.
	Alerted      bool     `json:"alerted"`
	TargetID     string   `json:"targetId,omitempty"`
	LastKnown    Position `json:"lastKnown"`
	HasLastKnown bool     `json:"hasLastKnown"`

	// FearedComponents - типы компонентов строений, которых существо избегает
	// (например "fire"). FearDistance - дистанция избегания в клетках.
	FearedComponents []string `json:"fearedComponents,omitempty"`
	FearDistance     int      `json:"fearDistance,omitempty"`

	LootTable string `json:"lootTable,omitempty"`
	XP        int    `json:"xp,omitempty"`

	// PendingDoorClose - открытая дверь, которую убегающее умное существо
	// закроет за собой отдельным действием на следующем ходу.
	PendingDoorClose *Position `json:"pendingDoorClose,omitempty"`
}

// Alert безусловно переводит сущность в боевой режим и запоминает позицию источника
func (a *AIComponent) Alert(sourceID string, pos Position) {
	a.Alerted = true
	a.TargetID = sourceID
	a.LastKnown = pos
	a.HasLastKnown = true
}

// CalmDown сбрасывает боевое состояние
func (a *AIComponent) CalmDown() {
	a.Alerted = false
	a.TargetID = ""
	a.HasLastKnown = false
	a.State = StateNormal
}

// Concentration - поддерживаемый кастером эффект.
// Ломается синхронно внешними событиями (урон, принудительное перемещение).
type Concentration struct {
	EffectID string `json:"effectId"`
	TargetID string `json:"targetId"`
}

// CasterComponent - состояние заклинателя
type CasterComponent struct {
	Known   []string `json:"known"`
	Mana    int      `json:"mana"`
	MaxMana int      `json:"maxMana"`

	// Cooldowns: id способности -> ходов до готовности
	Cooldowns map[string]int `json:"cooldowns,omitempty"`

	// RegenCounter тикает каждый ход; мана приходит раз в ManaRegenInterval
	RegenCounter int `json:"regenCounter"`

	Concentration *Concentration `json:"concentration,omitempty"`
}

// Knows проверяет, известна ли способность
func (c *CasterComponent) Knows(abilityID string) bool {
	for _, id := range c.Known {
		if id == abilityID {
			return true
		}
	}
	return false
}

// CooldownLeft возвращает остаток кулдауна (0 = готово)
func (c *CasterComponent) CooldownLeft(abilityID string) int {
	if c.Cooldowns == nil {
		return 0
	}
	return c.Cooldowns[abilityID]
}

// SetCooldown взводит кулдаун способности
func (c *CasterComponent) SetCooldown(abilityID string, turns int) {
	if turns <= 0 {
		return
	}
	if c.Cooldowns == nil {
		c.Cooldowns = make(map[string]int)
	}
	c.Cooldowns[abilityID] = turns
}

// SpendMana тратит ману. Возвращает false, если не хватило.
func (c *CasterComponent) SpendMana(cost int) bool {
	if c.Mana < cost {
		return false
	}
	c.Mana -= cost
	return true
}

// TickResources вызывается один раз за ход независимо от того, был ли каст:
// уменьшает кулдауны и регенерирует ману раз в ManaRegenInterval ходов.
func (c *CasterComponent) TickResources() {
	for id, left := range c.Cooldowns {
		if left <= 1 {
			delete(c.Cooldowns, id)
		} else {
			c.Cooldowns[id] = left - 1
		}
	}

	c.RegenCounter++
	if c.RegenCounter >= ManaRegenInterval {
		c.RegenCounter = 0
		c.Mana += ManaRegenAmount
		if c.Mana > c.MaxMana {
			c.Mana = c.MaxMana
		}
	}
}

// SummonComponent - состояние призванного существа
type SummonComponent struct {
	OwnerID string     `json:"ownerId"`
	Mode    SummonMode `json:"mode"`

	// Duration в ходах. SummonUnlimited (-1) = без ограничения.
	Duration int `json:"duration"`

	// Dismissed - защита от двойного роспуска (смерть + истечение в один ход)
	Dismissed bool `json:"dismissed,omitempty"`
}

// SummonerComponent - список активных призывов владельца
type SummonerComponent struct {
	Active []string `json:"active,omitempty"`
}

func (s *SummonerComponent) Add(id string) {
	if !s.Has(id) {
		s.Active = append(s.Active, id)
	}
}

func (s *SummonerComponent) Has(id string) bool {
	for _, a := range s.Active {
		if a == id {
			return true
		}
	}
	return false
}

// Remove убирает призыв из списка. Возвращает false, если его там уже не было.
func (s *SummonerComponent) Remove(id string) bool {
	for i, a := range s.Active {
		if a == id {
			s.Active = append(s.Active[:i], s.Active[i+1:]...)
			return true
		}
	}
	return false
}

// TraitAbility - способность от расы/класса с ограниченным числом применений
type TraitAbility struct {
	AbilityID string `json:"abilityId" yaml:"ability"`
	Uses      int    `json:"uses" yaml:"uses"`
	MaxUses   int    `json:"maxUses" yaml:"max_uses"`
}

// Trait - пассивные модификаторы и способности от расы или класса.
// Компонент принадлежит сущности, а не наоборот: обратной ссылки нет,
// циклическое владение исключено.
type Trait struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	StatBonus   map[Attribute]int  `json:"statBonus,omitempty"`
	ArmorBonus  int                `json:"armorBonus,omitempty"`
	ResistBonus map[DamageKind]int `json:"resistBonus,omitempty"`
	Abilities   []TraitAbility     `json:"abilities,omitempty"`
}

// UseAbility списывает одно применение способности.
// false = способность неизвестна или применения кончились.
func (t *Trait) UseAbility(abilityID string) bool {
	for i := range t.Abilities {
		if t.Abilities[i].AbilityID == abilityID {
			if t.Abilities[i].Uses <= 0 {
				return false
			}
			t.Abilities[i].Uses--
			return true
		}
	}
	return false
}

// Refresh восстанавливает все применения (отдых)
func (t *Trait) Refresh() {
	for i := range t.Abilities {
		t.Abilities[i].Uses = t.Abilities[i].MaxUses
	}
}

// TraitsComponent - композиция расы и класса игрока
type TraitsComponent struct {
	Race  *Trait `json:"race,omitempty"`
	Class *Trait `json:"class,omitempty"`
}

// Each обходит ненулевые трейты
func (t *TraitsComponent) Each(fn func(*Trait)) {
	if t.Race != nil {
		fn(t.Race)
	}
	if t.Class != nil {
		fn(t.Class)
	}
}

// --- СУЩНОСТЬ ---

// NewID создает уникальный идентификатор сущности
func NewID() string {
	return uuid.NewString()
}

// Entity - единственный тип сущности. Вид задается Kind, поведение - компонентами.
// nil-компонент означает отсутствие свойства.
type Entity struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`

	Pos      Position `json:"pos"`
	Blocking bool     `json:"blocking"`

	CreatureType CreatureType `json:"creatureType"`
	Faction      Faction      `json:"faction"`

	Stats *StatsComponent `json:"stats,omitempty"`

	// Effects - упорядоченный список активных эффектов.
	// Управляется исключительно системой эффектов.
	Effects []ActiveEffect `json:"effects,omitempty"`

	AI       *AIComponent       `json:"ai,omitempty"`
	Caster   *CasterComponent   `json:"caster,omitempty"`
	Summon   *SummonComponent   `json:"summon,omitempty"`
	Summoner *SummonerComponent `json:"summoner,omitempty"`
	Traits   *TraitsComponent   `json:"traits,omitempty"`
}

// IsAlive - живые имеют статы и HP > 0
func (e *Entity) IsAlive() bool {
	return e.Stats != nil && !e.Stats.IsDead
}

// HasEffect проверяет наличие эффекта по id
func (e *Entity) HasEffect(id string) bool {
	for i := range e.Effects {
		if e.Effects[i].ID == id {
			return true
		}
	}
	return false
}

// EffectsByKind возвращает активные эффекты заданного вида
func (e *Entity) EffectsByKind(kind EffectKind) []*ActiveEffect {
	var out []*ActiveEffect
	for i := range e.Effects {
		if e.Effects[i].Kind == kind {
			out = append(out, &e.Effects[i])
		}
	}
	return out
}

// EffectiveResistance возвращает итоговый резист канала: база + активные
// elemental_resistance эффекты, сложенные по формуле убывающей отдачи.
func (e *Entity) EffectiveResistance(channel DamageKind) int {
	if e.Stats == nil {
		return 0
	}
	value := e.Stats.Resist[channel]
	for i := range e.Effects {
		eff := &e.Effects[i]
		if eff.Kind == EffectElementalResistance && eff.Resist != nil && eff.Resist.Channel == channel {
			value = ComposeResistance(value, eff.Resist.Delta)
		}
	}
	return ClampResistance(value)
}
