package data

// YAML-схемы статических данных. Строковые теги конвертируются в
// доменные enum-ы один раз при загрузке; дальше ядро со строками
// не работает.

type effectYAML struct {
	ID       string `yaml:"id"`
	Kind     string `yaml:"kind"`
	Duration int    `yaml:"duration"`

	// buff/debuff
	Deltas map[string]int `yaml:"deltas,omitempty"`
	Armor  int            `yaml:"armor,omitempty"`
	Light  int            `yaml:"light,omitempty"`

	// dot
	PerTurn    int    `yaml:"per_turn,omitempty"`
	DamageKind string `yaml:"damage_kind,omitempty"`

	// elemental_resistance
	Channel string `yaml:"channel,omitempty"`
	Delta   int    `yaml:"delta,omitempty"`

	// mind-эффекты
	Faction string `yaml:"faction,omitempty"`
	State   string `yaml:"state,omitempty"`
}

type abilityYAML struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Cost          int          `yaml:"cost"`
	Range         int          `yaml:"range"`
	Cooldown      int          `yaml:"cooldown"`
	Targeting     string       `yaml:"targeting"`
	Damage        int          `yaml:"damage,omitempty"`
	DamageKind    string       `yaml:"damage_kind,omitempty"`
	Concentration bool         `yaml:"concentration,omitempty"`
	Effects       []effectYAML `yaml:"effects,omitempty"`
}

type abilityFile struct {
	Abilities []abilityYAML `yaml:"abilities"`
}

// CreatureDef - статическое определение существа для фабрики спавна
type CreatureDef struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Kind         string         `yaml:"kind"`
	CreatureType string         `yaml:"creature_type"`
	Faction      string         `yaml:"faction"`
	Attributes   map[string]int `yaml:"attributes"`
	BaseDamage   int            `yaml:"base_damage"`
	BaseArmor    int            `yaml:"base_armor"`
	LightRadius  int            `yaml:"light_radius,omitempty"`
	Resist       map[string]int `yaml:"resist,omitempty"`

	Behavior     string   `yaml:"behavior,omitempty"`
	AggroRadius  int      `yaml:"aggro_radius,omitempty"`
	Feared       []string `yaml:"feared_components,omitempty"`
	FearDistance int      `yaml:"fear_distance,omitempty"`
	LootTable    string   `yaml:"loot_table,omitempty"`
	XP           int      `yaml:"xp,omitempty"`

	Mana      int      `yaml:"mana,omitempty"`
	Abilities []string `yaml:"abilities,omitempty"`

	// Для призываемых существ
	SummonDuration int `yaml:"summon_duration,omitempty"`
}

type creatureFile struct {
	Creatures []CreatureDef `yaml:"creatures"`
}

type traitAbilityYAML struct {
	Ability string `yaml:"ability"`
	Uses    int    `yaml:"uses"`
}

// TraitDef - раса или класс
type TraitDef struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	StatBonus   map[string]int     `yaml:"stat_bonus,omitempty"`
	ArmorBonus  int                `yaml:"armor_bonus,omitempty"`
	ResistBonus map[string]int     `yaml:"resist_bonus,omitempty"`
	Abilities   []traitAbilityYAML `yaml:"abilities,omitempty"`
}

type traitFile struct {
	Races   []TraitDef `yaml:"races,omitempty"`
	Classes []TraitDef `yaml:"classes,omitempty"`
}
