package domain

import "strings"

// EntityKind - Внутренний числовой идентификатор вида сущности
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindEnemy
	KindNPC
	KindSummon
	KindItemProxy
)

var kindStringMap = map[string]EntityKind{
	"PLAYER":     KindPlayer,
	"ENEMY":      KindEnemy,
	"NPC":        KindNPC,
	"SUMMON":     KindSummon,
	"ITEM_PROXY": KindItemProxy,
}

var kindToString = map[EntityKind]string{
	KindPlayer:    "PLAYER",
	KindEnemy:     "ENEMY",
	KindNPC:       "NPC",
	KindSummon:    "SUMMON",
	KindItemProxy: "ITEM_PROXY",
}

// ParseKind конвертирует строку из JSON/YAML в EntityKind
func ParseKind(s string) EntityKind {
	if val, ok := kindStringMap[strings.ToUpper(s)]; ok {
		return val
	}
	return KindUnknown
}

func (k EntityKind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// CreatureType - биологический тип существа.
// Используется для резистов, ритуалов и эффектов, действующих только на нежить и т.д.
type CreatureType uint8

const (
	CreatureHumanoid CreatureType = iota
	CreatureAnimal
	CreatureUndead
	CreatureConstruct
	CreatureDemon
	CreatureElemental
	CreatureAberration
	CreatureMonstrosity
	CreatureOoze
)

var creatureStringMap = map[string]CreatureType{
	"humanoid":    CreatureHumanoid,
	"animal":      CreatureAnimal,
	"beast":       CreatureAnimal, // синоним из старых файлов данных
	"undead":      CreatureUndead,
	"construct":   CreatureConstruct,
	"demon":       CreatureDemon,
	"elemental":   CreatureElemental,
	"aberration":  CreatureAberration,
	"monstrosity": CreatureMonstrosity,
	"ooze":        CreatureOoze,
}

var creatureToString = map[CreatureType]string{
	CreatureHumanoid:    "humanoid",
	CreatureAnimal:      "animal",
	CreatureUndead:      "undead",
	CreatureConstruct:   "construct",
	CreatureDemon:       "demon",
	CreatureElemental:   "elemental",
	CreatureAberration:  "aberration",
	CreatureMonstrosity: "monstrosity",
	CreatureOoze:        "ooze",
}

// ParseCreatureType конвертирует строку данных в CreatureType.
// Неизвестный тип считается humanoid (самый безопасный дефолт).
func ParseCreatureType(s string) CreatureType {
	if val, ok := creatureStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return CreatureHumanoid
}

func (c CreatureType) String() string {
	if val, ok := creatureToString[c]; ok {
		return val
	}
	return "humanoid"
}

// Faction - фракционная принадлежность. Определяет, кто кому враг.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionMonsters
	FactionWild
)

var factionStringMap = map[string]Faction{
	"neutral":  FactionNeutral,
	"player":   FactionPlayer,
	"monsters": FactionMonsters,
	"wild":     FactionWild,
}

var factionToString = map[Faction]string{
	FactionNeutral:  "neutral",
	FactionPlayer:   "player",
	FactionMonsters: "monsters",
	FactionWild:     "wild",
}

func ParseFaction(s string) Faction {
	if val, ok := factionStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return FactionNeutral
}

func (f Faction) String() string {
	if val, ok := factionToString[f]; ok {
		return val
	}
	return "neutral"
}

// Hostile возвращает true, если фракции враждебны друг другу.
// Нейтралы не воюют ни с кем.
func (f Faction) Hostile(other Faction) bool {
	if f == FactionNeutral || other == FactionNeutral {
		return false
	}
	return f != other
}

// AIState - текущее состояние "психики" сущности
type AIState uint8

const (
	StateNormal AIState = iota
	StateFleeing
	StateBerserk
	StateIdle
)

var aiStateToString = map[AIState]string{
	StateNormal:  "normal",
	StateFleeing: "fleeing",
	StateBerserk: "berserk",
	StateIdle:    "idle",
}

var aiStateStringMap = map[string]AIState{
	"normal":  StateNormal,
	"fleeing": StateFleeing,
	"berserk": StateBerserk,
	"idle":    StateIdle,
}

func ParseAIState(s string) AIState {
	if val, ok := aiStateStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return StateNormal
}

func (s AIState) String() string {
	if val, ok := aiStateToString[s]; ok {
		return val
	}
	return "normal"
}

// BehaviorMode - модель поведения врага (как он выбирает действия)
type BehaviorMode uint8

const (
	BehaviorWander BehaviorMode = iota
	BehaviorGuardian
	BehaviorAggressive
	BehaviorPack
	BehaviorPassive
	BehaviorCasterAggressive
	BehaviorCasterDefensive
)

var behaviorStringMap = map[string]BehaviorMode{
	"wander":                BehaviorWander,
	"guardian":              BehaviorGuardian,
	"aggressive":            BehaviorAggressive,
	"pack":                  BehaviorPack,
	"passive":               BehaviorPassive,
	"spellcaster_aggressive": BehaviorCasterAggressive,
	"spellcaster_defensive":  BehaviorCasterDefensive,
}

var behaviorToString = map[BehaviorMode]string{
	BehaviorWander:           "wander",
	BehaviorGuardian:         "guardian",
	BehaviorAggressive:       "aggressive",
	BehaviorPack:             "pack",
	BehaviorPassive:          "passive",
	BehaviorCasterAggressive: "spellcaster_aggressive",
	BehaviorCasterDefensive:  "spellcaster_defensive",
}

func ParseBehavior(s string) BehaviorMode {
	if val, ok := behaviorStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return BehaviorWander
}

func (b BehaviorMode) String() string {
	if val, ok := behaviorToString[b]; ok {
		return val
	}
	return "wander"
}

// IsCaster возвращает true для режимов, которым разрешено колдовать
func (b BehaviorMode) IsCaster() bool {
	return b == BehaviorCasterAggressive || b == BehaviorCasterDefensive
}

// SummonMode - приказ, который игрок дал призванному существу
type SummonMode uint8

const (
	SummonFollow SummonMode = iota
	SummonAggressive
	SummonDefensive
	SummonStay
)

var summonModeStringMap = map[string]SummonMode{
	"follow":     SummonFollow,
	"aggressive": SummonAggressive,
	"defensive":  SummonDefensive,
	"stay":       SummonStay,
}

var summonModeToString = map[SummonMode]string{
	SummonFollow:     "follow",
	SummonAggressive: "aggressive",
	SummonDefensive:  "defensive",
	SummonStay:       "stay",
}

func ParseSummonMode(s string) SummonMode {
	if val, ok := summonModeStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return SummonFollow
}

func (m SummonMode) String() string {
	if val, ok := summonModeToString[m]; ok {
		return val
	}
	return "follow"
}

// EffectKind - закрытое множество видов эффектов.
// Никаких словарей со строковыми ключами: опечатка в данных ловится при загрузке.
type EffectKind uint8

const (
	EffectUnknown EffectKind = iota
	EffectBuff
	EffectDebuff
	EffectDot
	EffectCharm
	EffectFear
	EffectCalm
	EffectEnrage
	EffectElementalResistance
)

var effectKindStringMap = map[string]EffectKind{
	"buff":                 EffectBuff,
	"debuff":               EffectDebuff,
	"dot":                  EffectDot,
	"charm":                EffectCharm,
	"fear":                 EffectFear,
	"calm":                 EffectCalm,
	"enrage":               EffectEnrage,
	"elemental_resistance": EffectElementalResistance,
}

var effectKindToString = map[EffectKind]string{
	EffectBuff:                "buff",
	EffectDebuff:              "debuff",
	EffectDot:                 "dot",
	EffectCharm:               "charm",
	EffectFear:                "fear",
	EffectCalm:                "calm",
	EffectEnrage:              "enrage",
	EffectElementalResistance: "elemental_resistance",
}

func ParseEffectKind(s string) EffectKind {
	if val, ok := effectKindStringMap[strings.ToLower(s)]; ok {
		return val
	}
	return EffectUnknown
}

func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "unknown"
}

// IsMindEffect возвращает true для эффектов, которые подменяют фракцию
// или состояние AI и требуют отката по снапшоту при снятии.
func (k EffectKind) IsMindEffect() bool {
	switch k {
	case EffectCharm, EffectFear, EffectCalm, EffectEnrage:
		return true
	}
	return false
}

// DamageKind - канал урона / резиста
type DamageKind uint8

const (
	DamageSlashing DamageKind = iota
	DamagePiercing
	DamageBludgeoning
	DamageFire
	DamageIce
	DamageLightning
	DamagePoison
	DamageAcid
	DamageNecrotic
	DamageRadiant
	DamagePsychic

	// NumDamageKinds - размер таблицы резистов
	NumDamageKinds = 11
)

var damageKindStringMap = map[string]DamageKind{
	"slashing":    DamageSlashing,
	"piercing":    DamagePiercing,
	"bludgeoning": DamageBludgeoning,
	"fire":        DamageFire,
	"ice":         DamageIce,
	"lightning":   DamageLightning,
	"poison":      DamagePoison,
	"acid":        DamageAcid,
	"necrotic":    DamageNecrotic,
	"radiant":     DamageRadiant,
	"psychic":     DamagePsychic,
}

var damageKindToString = map[DamageKind]string{
	DamageSlashing:    "slashing",
	DamagePiercing:    "piercing",
	DamageBludgeoning: "bludgeoning",
	DamageFire:        "fire",
	DamageIce:         "ice",
	DamageLightning:   "lightning",
	DamagePoison:      "poison",
	DamageAcid:        "acid",
	DamageNecrotic:    "necrotic",
	DamageRadiant:     "radiant",
	DamagePsychic:     "psychic",
}

// ParseDamageKind конвертирует строку данных в DamageKind.
// Второе значение false = неизвестный канал (ошибка в данных).
func ParseDamageKind(s string) (DamageKind, bool) {
	val, ok := damageKindStringMap[strings.ToLower(s)]
	return val, ok
}

func (d DamageKind) String() string {
	if val, ok := damageKindToString[d]; ok {
		return val
	}
	return "unknown"
}

// Attribute - индекс базовой характеристики
type Attribute uint8

const (
	Strength Attribute = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma

	// NumAttributes - размер массива характеристик
	NumAttributes = 6
)

var attributeStringMap = map[string]Attribute{
	"str": Strength,
	"dex": Dexterity,
	"con": Constitution,
	"int": Intelligence,
	"wis": Wisdom,
	"cha": Charisma,
}

var attributeToString = map[Attribute]string{
	Strength:     "str",
	Dexterity:    "dex",
	Constitution: "con",
	Intelligence: "int",
	Wisdom:       "wis",
	Charisma:     "cha",
}

func ParseAttribute(s string) (Attribute, bool) {
	val, ok := attributeStringMap[strings.ToLower(s)]
	return val, ok
}

func (a Attribute) String() string {
	if val, ok := attributeToString[a]; ok {
		return val
	}
	return "unknown"
}
