package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"
)

// --- КАТАЛОГ СТАТИЧЕСКИХ ДАННЫХ ---
// Каталог загружается один раз на старте и дальше только читается.
// Все ошибки данных (опечатки в enum-ах, пустые id, битые ссылки)
// ловятся здесь, а не в середине боя.

type Catalog struct {
	abilities map[string]*domain.AbilityDef
	creatures map[string]*CreatureDef
	races     map[string]*TraitDef
	classes   map[string]*TraitDef
}

// Load читает все YAML-файлы каталога из dir
func Load(dir string) (*Catalog, error) {
	cat := &Catalog{
		abilities: make(map[string]*domain.AbilityDef),
		creatures: make(map[string]*CreatureDef),
		races:     make(map[string]*TraitDef),
		classes:   make(map[string]*TraitDef),
	}

	if err := cat.loadAbilities(filepath.Join(dir, "abilities.yaml")); err != nil {
		return nil, fmt.Errorf("abilities: %w", err)
	}
	if err := cat.loadCreatures(filepath.Join(dir, "creatures.yaml")); err != nil {
		return nil, fmt.Errorf("creatures: %w", err)
	}
	if err := cat.loadTraits(filepath.Join(dir, "traits.yaml")); err != nil {
		return nil, fmt.Errorf("traits: %w", err)
	}
	if err := cat.validateRefs(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"abilities": len(cat.abilities),
		"creatures": len(cat.creatures),
		"races":     len(cat.races),
		"classes":   len(cat.classes),
	}).Info("Каталог данных загружен")
	return cat, nil
}

// Ability реализует интерфейс каталога способностей для боевых систем
func (c *Catalog) Ability(id string) (*domain.AbilityDef, bool) {
	def, ok := c.abilities[id]
	return def, ok
}

func (c *Catalog) Creature(id string) (*CreatureDef, bool) {
	def, ok := c.creatures[id]
	return def, ok
}

func (c *Catalog) Race(id string) (*TraitDef, bool) {
	def, ok := c.races[id]
	return def, ok
}

func (c *Catalog) Class(id string) (*TraitDef, bool) {
	def, ok := c.classes[id]
	return def, ok
}

// --- ЗАГРУЗКА ФАЙЛОВ ---

func (c *Catalog) loadAbilities(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file abilityFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for i := range file.Abilities {
		def, err := buildAbility(&file.Abilities[i])
		if err != nil {
			return err
		}
		if _, dup := c.abilities[def.ID]; dup {
			return fmt.Errorf("duplicate ability id %q", def.ID)
		}
		c.abilities[def.ID] = def
	}
	return nil
}

func (c *Catalog) loadCreatures(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file creatureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for i := range file.Creatures {
		def := &file.Creatures[i]
		if err := validateCreature(def); err != nil {
			return err
		}
		if _, dup := c.creatures[def.ID]; dup {
			return fmt.Errorf("duplicate creature id %q", def.ID)
		}
		c.creatures[def.ID] = def
	}
	return nil
}

func (c *Catalog) loadTraits(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file traitFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for i := range file.Races {
		def := &file.Races[i]
		if err := validateTrait(def); err != nil {
			return fmt.Errorf("race %q: %w", def.ID, err)
		}
		c.races[def.ID] = def
	}
	for i := range file.Classes {
		def := &file.Classes[i]
		if err := validateTrait(def); err != nil {
			return fmt.Errorf("class %q: %w", def.ID, err)
		}
		c.classes[def.ID] = def
	}
	return nil
}

// validateRefs проверяет перекрестные ссылки после загрузки всех файлов
func (c *Catalog) validateRefs() error {
	for id, def := range c.creatures {
		for _, ab := range def.Abilities {
			if _, ok := c.abilities[ab]; !ok {
				return fmt.Errorf("creature %q: unknown ability %q", id, ab)
			}
		}
	}
	check := func(kind string, defs map[string]*TraitDef) error {
		for id, def := range defs {
			for _, ab := range def.Abilities {
				if _, ok := c.abilities[ab.Ability]; !ok {
					return fmt.Errorf("%s %q: unknown ability %q", kind, id, ab.Ability)
				}
			}
		}
		return nil
	}
	if err := check("race", c.races); err != nil {
		return err
	}
	return check("class", c.classes)
}

// --- КОНВЕРТАЦИЯ YAML -> ДОМЕН ---

func buildAbility(y *abilityYAML) (*domain.AbilityDef, error) {
	if y.ID == "" {
		return nil, fmt.Errorf("ability without id")
	}
	def := &domain.AbilityDef{
		ID:            y.ID,
		Name:          y.Name,
		Cost:          y.Cost,
		Range:         y.Range,
		Cooldown:      y.Cooldown,
		Targeting:     domain.ParseTargetMode(y.Targeting),
		Damage:        y.Damage,
		Concentration: y.Concentration,
	}
	if y.Damage < 0 {
		return nil, fmt.Errorf("ability %q: negative damage", y.ID)
	}
	if y.Damage > 0 {
		kind, ok := domain.ParseDamageKind(y.DamageKind)
		if !ok {
			return nil, fmt.Errorf("ability %q: unknown damage kind %q", y.ID, y.DamageKind)
		}
		def.DamageKind = kind
	}
	for i := range y.Effects {
		eff, err := buildEffect(&y.Effects[i], y.ID)
		if err != nil {
			return nil, fmt.Errorf("ability %q: %w", y.ID, err)
		}
		def.Effects = append(def.Effects, eff)
	}
	return def, nil
}

func buildEffect(y *effectYAML, source string) (domain.ActiveEffect, error) {
	eff := domain.ActiveEffect{
		ID:       y.ID,
		Kind:     domain.ParseEffectKind(y.Kind),
		Duration: y.Duration,
		Source:   source,
	}
	switch eff.Kind {
	case domain.EffectBuff, domain.EffectDebuff:
		stat := &domain.StatPayload{Armor: y.Armor, Light: y.Light}
		if len(y.Deltas) > 0 {
			stat.Deltas = make(map[domain.Attribute]int, len(y.Deltas))
			for name, delta := range y.Deltas {
				attr, ok := domain.ParseAttribute(name)
				if !ok {
					return eff, fmt.Errorf("effect %q: unknown attribute %q", y.ID, name)
				}
				stat.Deltas[attr] = delta
			}
		}
		eff.Stat = stat
	case domain.EffectDot:
		kind, ok := domain.ParseDamageKind(y.DamageKind)
		if !ok {
			return eff, fmt.Errorf("effect %q: unknown damage kind %q", y.ID, y.DamageKind)
		}
		eff.Dot = &domain.DotPayload{PerTurn: y.PerTurn, Kind: kind}
	case domain.EffectElementalResistance:
		channel, ok := domain.ParseDamageKind(y.Channel)
		if !ok {
			return eff, fmt.Errorf("effect %q: unknown resist channel %q", y.ID, y.Channel)
		}
		eff.Resist = &domain.ResistPayload{Channel: channel, Delta: y.Delta}
	case domain.EffectCharm, domain.EffectFear, domain.EffectCalm, domain.EffectEnrage:
		mind := &domain.MindPayload{}
		if y.Faction != "" {
			mind.OverrideFaction = domain.ParseFaction(y.Faction)
			mind.HasFaction = true
		}
		if y.State != "" {
			mind.OverrideState = domain.ParseAIState(y.State)
		}
		eff.Mind = mind
	}
	if err := eff.Validate(); err != nil {
		return eff, err
	}
	return eff, nil
}

func validateCreature(def *CreatureDef) error {
	if def.ID == "" {
		return fmt.Errorf("creature without id")
	}
	if def.Name == "" {
		return fmt.Errorf("creature %q: empty name", def.ID)
	}
	for name := range def.Attributes {
		if _, ok := domain.ParseAttribute(name); !ok {
			return fmt.Errorf("creature %q: unknown attribute %q", def.ID, name)
		}
	}
	for name := range def.Resist {
		if _, ok := domain.ParseDamageKind(name); !ok {
			return fmt.Errorf("creature %q: unknown resist channel %q", def.ID, name)
		}
	}
	if def.Mana > 0 && len(def.Abilities) == 0 {
		return fmt.Errorf("creature %q: mana pool without abilities", def.ID)
	}
	return nil
}

func validateTrait(def *TraitDef) error {
	if def.ID == "" {
		return fmt.Errorf("trait without id")
	}
	for name := range def.StatBonus {
		if _, ok := domain.ParseAttribute(name); !ok {
			return fmt.Errorf("unknown attribute %q", name)
		}
	}
	for name := range def.ResistBonus {
		if _, ok := domain.ParseDamageKind(name); !ok {
			return fmt.Errorf("unknown resist channel %q", name)
		}
	}
	for _, ab := range def.Abilities {
		if ab.Uses <= 0 {
			return fmt.Errorf("ability %q: uses must be positive", ab.Ability)
		}
	}
	return nil
}

// BuildTrait конвертирует определение расы или класса в доменный компонент
func BuildTrait(def *TraitDef) *domain.Trait {
	trait := &domain.Trait{
		ID:         def.ID,
		Name:       def.Name,
		ArmorBonus: def.ArmorBonus,
	}
	if len(def.StatBonus) > 0 {
		trait.StatBonus = make(map[domain.Attribute]int, len(def.StatBonus))
		for name, delta := range def.StatBonus {
			attr, _ := domain.ParseAttribute(name)
			trait.StatBonus[attr] = delta
		}
	}
	if len(def.ResistBonus) > 0 {
		trait.ResistBonus = make(map[domain.DamageKind]int, len(def.ResistBonus))
		for name, delta := range def.ResistBonus {
			kind, _ := domain.ParseDamageKind(name)
			trait.ResistBonus[kind] = delta
		}
	}
	for _, ab := range def.Abilities {
		trait.Abilities = append(trait.Abilities, domain.TraitAbility{
			AbilityID: ab.Ability,
			Uses:      ab.Uses,
			MaxUses:   ab.Uses,
		})
	}
	return trait
}
