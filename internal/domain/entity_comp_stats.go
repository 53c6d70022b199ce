package domain

// StatsComponent - Характеристики и Ресурсы
type StatsComponent struct {
	// Base - шесть базовых характеристик (индекс Attribute)
	Base [NumAttributes]int `json:"base"`

	// TempDeltas - временные дельты от эффектов.
	// Не сериализуются и не редактируются вручную: система эффектов
	// обнуляет их и суммирует заново при каждом пересчете.
	TempDeltas [NumAttributes]int `json:"-"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	BaseDamage int `json:"baseDamage"`

	BaseArmor  int `json:"baseArmor"`
	ArmorDelta int `json:"-"`

	LightRadius int `json:"lightRadius,omitempty"`
	LightDelta  int `json:"-"`

	// Resist - базовая таблица резистов, канал -> значение [-100..100]
	Resist [NumDamageKinds]int `json:"resist"`

	IsDead bool `json:"isDead"`
}

// NewStats создает компонент со здоровьем, выведенным из CON
func NewStats(str, dex, con, intel, wis, cha int) *StatsComponent {
	s := &StatsComponent{
		Base: [NumAttributes]int{str, dex, con, intel, wis, cha},
	}
	s.MaxHP = BaseHealth + con*HealthPerCon
	s.HP = s.MaxHP
	return s
}

// EffectiveAttribute возвращает базу + временные дельты, но не меньше 1
func (s *StatsComponent) EffectiveAttribute(a Attribute) int {
	v := s.Base[a] + s.TempDeltas[a]
	if v < 1 {
		v = 1
	}
	return v
}

// EffectiveArmor возвращает броню с учетом временных модификаторов (минимум 0)
func (s *StatsComponent) EffectiveArmor() int {
	v := s.BaseArmor + s.ArmorDelta
	if v < 0 {
		v = 0
	}
	return v
}

// EffectiveLightRadius возвращает радиус света с бонусами
func (s *StatsComponent) EffectiveLightRadius() int {
	v := s.LightRadius + s.LightDelta
	if v < 0 {
		v = 0
	}
	return v
}

// ApplyStatModifiers прибавляет дельты поверх текущих
func (s *StatsComponent) ApplyStatModifiers(mods map[Attribute]int) {
	for a, d := range mods {
		if int(a) < NumAttributes {
			s.TempDeltas[a] += d
		}
	}
}

// ClearStatModifiers обнуляет все временные дельты (перед пересчетом)
func (s *StatsComponent) ClearStatModifiers() {
	s.TempDeltas = [NumAttributes]int{}
	s.ArmorDelta = 0
	s.LightDelta = 0
}

// TakeDamage наносит урон. Возвращает true ровно один раз - когда цель погибла.
// Повторные удары по трупу ничего не делают (смерть не может сработать дважды).
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность. Трупы не лечатся.
func (s *StatsComponent) Heal(amount int) {
	if s.IsDead || amount <= 0 {
		return
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
}

// ComposeResistance складывает два значения резиста по формуле убывающей отдачи:
// new = cur + (100-cur)*added/100. Коммутативна, 50+50 дает 75, а не 100.
func ComposeResistance(current, added int) int {
	return current + (100-current)*added/100
}

// ClampResistance ограничивает значение канала границами таблицы
func ClampResistance(v int) int {
	if v < ResistanceMin {
		return ResistanceMin
	}
	if v > ResistanceMax {
		return ResistanceMax
	}
	return v
}
