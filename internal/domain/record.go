package domain

// Контракт сериализации: плоские записи ключ-значение с вложенным массивом
// эффектов. Формат файла (JSON/бинарный, сжатие) - забота инфраструктуры,
// ядро определяет только форму записи.

// EffectRecord - один активный эффект в сериализованном виде
type EffectRecord struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Duration int    `json:"duration"`
	Source   string `json:"source,omitempty"`

	Stats map[string]int `json:"stats,omitempty"`
	Armor int            `json:"armor,omitempty"`
	Light int            `json:"light,omitempty"`

	DotPerTurn int    `json:"dotPerTurn,omitempty"`
	DotKind    string `json:"dotKind,omitempty"`

	ResistChannel string `json:"resistChannel,omitempty"`
	ResistDelta   int    `json:"resistDelta,omitempty"`

	MindFaction    string `json:"mindFaction,omitempty"`
	MindHasFaction bool   `json:"mindHasFaction,omitempty"`
	MindState      string `json:"mindState,omitempty"`

	FactionSnapshot string `json:"factionSnapshot,omitempty"`
}

// TraitRecord - раса или класс в сериализованном виде
type TraitRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	StatBonus   map[string]int `json:"statBonus,omitempty"`
	ArmorBonus  int            `json:"armorBonus,omitempty"`
	ResistBonus map[string]int `json:"resistBonus,omitempty"`
	Abilities   []TraitAbility `json:"abilities,omitempty"`
}

// EntityRecord - полное состояние сущности
type EntityRecord struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Blocking bool   `json:"blocking"`

	CreatureType string `json:"creatureType"`
	Faction      string `json:"faction"`

	Attributes map[string]int `json:"attributes,omitempty"`
	HP         int            `json:"hp"`
	MaxHP      int            `json:"maxHp"`
	BaseDamage int            `json:"baseDamage,omitempty"`
	BaseArmor  int            `json:"baseArmor,omitempty"`
	LightR     int            `json:"lightRadius,omitempty"`
	Resist     map[string]int `json:"resist,omitempty"`
	IsDead     bool           `json:"isDead,omitempty"`

	Effects []EffectRecord `json:"effects,omitempty"`

	// AI
	Behavior     string   `json:"behavior,omitempty"`
	AIState      string   `json:"aiState,omitempty"`
	AggroRadius  int      `json:"aggroRadius,omitempty"`
	Alerted      bool     `json:"alerted,omitempty"`
	TargetID     string   `json:"targetId,omitempty"`
	LastKnownX   int      `json:"lastKnownX,omitempty"`
	LastKnownY   int      `json:"lastKnownY,omitempty"`
	HasLastKnown bool     `json:"hasLastKnown,omitempty"`
	Feared       []string `json:"feared,omitempty"`
	FearDistance int      `json:"fearDistance,omitempty"`
	LootTable    string   `json:"lootTable,omitempty"`
	XP           int      `json:"xp,omitempty"`

	// Кастер
	Known        []string       `json:"known,omitempty"`
	Mana         int            `json:"mana,omitempty"`
	MaxMana      int            `json:"maxMana,omitempty"`
	Cooldowns    map[string]int `json:"cooldowns,omitempty"`
	RegenCounter int            `json:"regenCounter,omitempty"`

	// Призыв
	SummonOwner    string `json:"summonOwner,omitempty"`
	SummonMode     string `json:"summonMode,omitempty"`
	SummonDuration int    `json:"summonDuration,omitempty"`
	IsSummon       bool   `json:"isSummon,omitempty"`

	ActiveSummons []string `json:"activeSummons,omitempty"`

	RaceTrait  *TraitRecord `json:"raceTrait,omitempty"`
	ClassTrait *TraitRecord `json:"classTrait,omitempty"`
}

// ToRecord снимает сериализуемый слепок эффекта
func (e *ActiveEffect) ToRecord() EffectRecord {
	rec := EffectRecord{
		ID:       e.ID,
		Kind:     e.Kind.String(),
		Duration: e.Duration,
		Source:   e.Source,
	}
	if e.Stat != nil {
		rec.Armor = e.Stat.Armor
		rec.Light = e.Stat.Light
		if len(e.Stat.Deltas) > 0 {
			rec.Stats = make(map[string]int, len(e.Stat.Deltas))
			for a, d := range e.Stat.Deltas {
				rec.Stats[a.String()] = d
			}
		}
	}
	if e.Dot != nil {
		rec.DotPerTurn = e.Dot.PerTurn
		rec.DotKind = e.Dot.Kind.String()
	}
	if e.Resist != nil {
		rec.ResistChannel = e.Resist.Channel.String()
		rec.ResistDelta = e.Resist.Delta
	}
	if e.Mind != nil {
		rec.MindHasFaction = e.Mind.HasFaction
		if e.Mind.HasFaction {
			rec.MindFaction = e.Mind.OverrideFaction.String()
		}
		rec.MindState = e.Mind.OverrideState.String()
	}
	if e.Kind.IsMindEffect() {
		rec.FactionSnapshot = e.FactionSnapshot.String()
	}
	return rec
}

// EffectFromRecord восстанавливает эффект из записи
func EffectFromRecord(rec EffectRecord) ActiveEffect {
	eff := ActiveEffect{
		ID:       rec.ID,
		Kind:     ParseEffectKind(rec.Kind),
		Duration: rec.Duration,
		Source:   rec.Source,
	}
	switch eff.Kind {
	case EffectBuff, EffectDebuff:
		stat := &StatPayload{Armor: rec.Armor, Light: rec.Light}
		if len(rec.Stats) > 0 {
			stat.Deltas = make(map[Attribute]int, len(rec.Stats))
			for name, d := range rec.Stats {
				if a, ok := ParseAttribute(name); ok {
					stat.Deltas[a] = d
				}
			}
		}
		eff.Stat = stat
	case EffectDot:
		kind, _ := ParseDamageKind(rec.DotKind)
		eff.Dot = &DotPayload{PerTurn: rec.DotPerTurn, Kind: kind}
	case EffectElementalResistance:
		ch, _ := ParseDamageKind(rec.ResistChannel)
		eff.Resist = &ResistPayload{Channel: ch, Delta: rec.ResistDelta}
	case EffectCharm, EffectFear, EffectCalm, EffectEnrage:
		eff.Mind = &MindPayload{
			HasFaction:    rec.MindHasFaction,
			OverrideState: ParseAIState(rec.MindState),
		}
		if rec.MindHasFaction {
			eff.Mind.OverrideFaction = ParseFaction(rec.MindFaction)
		}
		eff.FactionSnapshot = ParseFaction(rec.FactionSnapshot)
	}
	return eff
}

func (t *Trait) toRecord() *TraitRecord {
	rec := &TraitRecord{
		ID:         t.ID,
		Name:       t.Name,
		ArmorBonus: t.ArmorBonus,
		Abilities:  append([]TraitAbility(nil), t.Abilities...),
	}
	if len(t.StatBonus) > 0 {
		rec.StatBonus = make(map[string]int, len(t.StatBonus))
		for a, d := range t.StatBonus {
			rec.StatBonus[a.String()] = d
		}
	}
	if len(t.ResistBonus) > 0 {
		rec.ResistBonus = make(map[string]int, len(t.ResistBonus))
		for ch, d := range t.ResistBonus {
			rec.ResistBonus[ch.String()] = d
		}
	}
	return rec
}

func traitFromRecord(rec *TraitRecord) *Trait {
	if rec == nil {
		return nil
	}
	t := &Trait{
		ID:         rec.ID,
		Name:       rec.Name,
		ArmorBonus: rec.ArmorBonus,
		Abilities:  append([]TraitAbility(nil), rec.Abilities...),
	}
	if len(rec.StatBonus) > 0 {
		t.StatBonus = make(map[Attribute]int, len(rec.StatBonus))
		for name, d := range rec.StatBonus {
			if a, ok := ParseAttribute(name); ok {
				t.StatBonus[a] = d
			}
		}
	}
	if len(rec.ResistBonus) > 0 {
		t.ResistBonus = make(map[DamageKind]int, len(rec.ResistBonus))
		for name, d := range rec.ResistBonus {
			if ch, ok := ParseDamageKind(name); ok {
				t.ResistBonus[ch] = d
			}
		}
	}
	return t
}

// ToRecord снимает полный сериализуемый слепок сущности
func (e *Entity) ToRecord() EntityRecord {
	rec := EntityRecord{
		ID:           e.ID,
		Kind:         e.Kind.String(),
		Name:         e.Name,
		X:            e.Pos.X,
		Y:            e.Pos.Y,
		Blocking:     e.Blocking,
		CreatureType: e.CreatureType.String(),
		Faction:      e.Faction.String(),
	}

	if e.Stats != nil {
		rec.Attributes = make(map[string]int, NumAttributes)
		for a := Attribute(0); a < NumAttributes; a++ {
			rec.Attributes[a.String()] = e.Stats.Base[a]
		}
		rec.HP = e.Stats.HP
		rec.MaxHP = e.Stats.MaxHP
		rec.BaseDamage = e.Stats.BaseDamage
		rec.BaseArmor = e.Stats.BaseArmor
		rec.LightR = e.Stats.LightRadius
		rec.IsDead = e.Stats.IsDead
		rec.Resist = make(map[string]int)
		for ch := DamageKind(0); ch < NumDamageKinds; ch++ {
			if e.Stats.Resist[ch] != 0 {
				rec.Resist[ch.String()] = e.Stats.Resist[ch]
			}
		}
	}

	for i := range e.Effects {
		rec.Effects = append(rec.Effects, e.Effects[i].ToRecord())
	}

	if e.AI != nil {
		rec.Behavior = e.AI.Mode.String()
		rec.AIState = e.AI.State.String()
		rec.AggroRadius = e.AI.AggroRadius
		rec.Alerted = e.AI.Alerted
		rec.TargetID = e.AI.TargetID
		rec.LastKnownX = e.AI.LastKnown.X
		rec.LastKnownY = e.AI.LastKnown.Y
		rec.HasLastKnown = e.AI.HasLastKnown
		rec.Feared = append([]string(nil), e.AI.FearedComponents...)
		rec.FearDistance = e.AI.FearDistance
		rec.LootTable = e.AI.LootTable
		rec.XP = e.AI.XP
	}

	if e.Caster != nil {
		rec.Known = append([]string(nil), e.Caster.Known...)
		rec.Mana = e.Caster.Mana
		rec.MaxMana = e.Caster.MaxMana
		rec.RegenCounter = e.Caster.RegenCounter
		if len(e.Caster.Cooldowns) > 0 {
			rec.Cooldowns = make(map[string]int, len(e.Caster.Cooldowns))
			for id, left := range e.Caster.Cooldowns {
				rec.Cooldowns[id] = left
			}
		}
	}

	if e.Summon != nil {
		rec.IsSummon = true
		rec.SummonOwner = e.Summon.OwnerID
		rec.SummonMode = e.Summon.Mode.String()
		rec.SummonDuration = e.Summon.Duration
	}

	if e.Summoner != nil {
		rec.ActiveSummons = append([]string(nil), e.Summoner.Active...)
	}

	if e.Traits != nil {
		if e.Traits.Race != nil {
			rec.RaceTrait = e.Traits.Race.toRecord()
		}
		if e.Traits.Class != nil {
			rec.ClassTrait = e.Traits.Class.toRecord()
		}
	}

	return rec
}

// FromRecord восстанавливает сущность из записи
func FromRecord(rec EntityRecord) *Entity {
	e := &Entity{
		ID:           rec.ID,
		Kind:         ParseKind(rec.Kind),
		Name:         rec.Name,
		Pos:          Position{X: rec.X, Y: rec.Y},
		Blocking:     rec.Blocking,
		CreatureType: ParseCreatureType(rec.CreatureType),
		Faction:      ParseFaction(rec.Faction),
	}

	if rec.Attributes != nil || rec.MaxHP > 0 {
		stats := &StatsComponent{
			HP:          rec.HP,
			MaxHP:       rec.MaxHP,
			BaseDamage:  rec.BaseDamage,
			BaseArmor:   rec.BaseArmor,
			LightRadius: rec.LightR,
			IsDead:      rec.IsDead,
		}
		for name, v := range rec.Attributes {
			if a, ok := ParseAttribute(name); ok {
				stats.Base[a] = v
			}
		}
		for name, v := range rec.Resist {
			if ch, ok := ParseDamageKind(name); ok {
				stats.Resist[ch] = v
			}
		}
		e.Stats = stats
	}

	for _, effRec := range rec.Effects {
		e.Effects = append(e.Effects, EffectFromRecord(effRec))
	}

	if rec.Behavior != "" {
		e.AI = &AIComponent{
			Mode:             ParseBehavior(rec.Behavior),
			State:            ParseAIState(rec.AIState),
			AggroRadius:      rec.AggroRadius,
			Alerted:          rec.Alerted,
			TargetID:         rec.TargetID,
			LastKnown:        Position{X: rec.LastKnownX, Y: rec.LastKnownY},
			HasLastKnown:     rec.HasLastKnown,
			FearedComponents: append([]string(nil), rec.Feared...),
			FearDistance:     rec.FearDistance,
			LootTable:        rec.LootTable,
			XP:               rec.XP,
		}
	}

	if len(rec.Known) > 0 || rec.MaxMana > 0 {
		e.Caster = &CasterComponent{
			Known:        append([]string(nil), rec.Known...),
			Mana:         rec.Mana,
			MaxMana:      rec.MaxMana,
			RegenCounter: rec.RegenCounter,
		}
		if len(rec.Cooldowns) > 0 {
			e.Caster.Cooldowns = make(map[string]int, len(rec.Cooldowns))
			for id, left := range rec.Cooldowns {
				e.Caster.Cooldowns[id] = left
			}
		}
	}

	if rec.IsSummon {
		e.Summon = &SummonComponent{
			OwnerID:  rec.SummonOwner,
			Mode:     ParseSummonMode(rec.SummonMode),
			Duration: rec.SummonDuration,
		}
	}

	if len(rec.ActiveSummons) > 0 {
		e.Summoner = &SummonerComponent{Active: append([]string(nil), rec.ActiveSummons...)}
	}

	if rec.RaceTrait != nil || rec.ClassTrait != nil {
		e.Traits = &TraitsComponent{
			Race:  traitFromRecord(rec.RaceTrait),
			Class: traitFromRecord(rec.ClassTrait),
		}
	}

	return e
}
