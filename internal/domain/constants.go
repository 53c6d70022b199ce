package domain

// Параметры здоровья и маны
const (
	// BaseHealth + CON * HealthPerCon = максимум здоровья
	BaseHealth   = 10
	HealthPerCon = 5

	// Мана регенерирует фиксированной порцией раз в ManaRegenInterval ходов
	ManaRegenInterval = 5
	ManaRegenAmount   = 2
)

// Пороги интеллекта для взаимодействия с дверьми
const (
	// DoorOpenIntelligence - минимальный INT, чтобы открыть закрытую дверь
	DoorOpenIntelligence = 5
	// DoorCloseIntelligence - минимальный INT, чтобы закрыть дверь за собой при бегстве
	DoorCloseIntelligence = 8
)

// Дистанции для кастер-поведений (в клетках, манхэттен)
const (
	// CasterMeleeThreshold - агрессивный кастер сближается, если цель дальше
	CasterMeleeThreshold = 2
	// CasterMinRange - защитный кастер отступает, если цель на этой дистанции или ближе
	CasterMinRange = 3
	// CasterMaxRange - защитный кастер сближается, если цель дальше
	CasterMaxRange = 6
)

// Дистанции для призванных существ
const (
	SummonFollowRadius    = 2
	SummonDefensiveRadius = 3

	// SummonUnlimited - сентинел "без ограничения по времени"
	SummonUnlimited = -1
)

// Границы таблицы резистов
const (
	ResistanceMin = -100
	ResistanceMax = 100
)

// DefaultAggroRadius используется, если в данных существа радиус не задан
const DefaultAggroRadius = 8
