package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"underkingdom-server/internal/data"
	"underkingdom-server/internal/domain"
	"underkingdom-server/internal/infrastructure/storage"
	"underkingdom-server/internal/network"
	"underkingdom-server/internal/systems"
	"underkingdom-server/pkg/api"
	"underkingdom-server/pkg/logger"
)

// GameService владеет миром и гоняет пошаговую симуляцию.
// Все мутации мира идут через AdvanceTurn под мьютексом: внутри хода
// конкурентности нет, системы пишут в сущности напрямую.
type GameService struct {
	mu sync.Mutex

	World *domain.GameWorld

	// Entities - все сущности в порядке появления. Порядок обхода
	// стабилен, от него зависит воспроизводимость симуляции.
	Entities []*domain.Entity

	Catalog *data.Catalog
	Hub     *network.Broadcaster

	seed    int64
	rng     *rand.Rand
	sysDeps systems.Deps

	quit chan struct{}
	done chan struct{}

	log *logrus.Entry
}

// turnInterval - реальное время одного хода мира в live-режиме
const turnInterval = 500 * time.Millisecond

// NewService собирает сервис: мир, генератор, резолверы, шину событий
func NewService(cfg Config, catalog *data.Catalog) *GameService {
	world := domain.NewWorld(cfg.MapWidth, cfg.MapHeight)
	hub := network.NewBroadcaster()
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &GameService{
		World:   world,
		Catalog: catalog,
		Hub:     hub,
		seed:    cfg.Seed,
		rng:     rng,
		quit:    make(chan struct{}),
		log:     logger.Log.WithField("component", "engine"),
	}

	s.sysDeps = systems.Deps{
		World:     world,
		Combat:    systems.NewMeleeResolver(rng),
		Abilities: catalog,
		LOS:       systems.WorldLOS{World: world},
		Rand:      rng,
		Notify:    newEventPublisher(world, hub),
	}
	s.sysDeps.Resolver = systems.NewAbilityResolver(&s.sysDeps)

	s.log.WithFields(logrus.Fields{
		"seed":   cfg.Seed,
		"width":  cfg.MapWidth,
		"height": cfg.MapHeight,
	}).Info("Мир создан")
	return s
}

func (s *GameService) deps() *systems.Deps {
	return &s.sysDeps
}

// Start запускает игровой цикл в фоне
func (s *GameService) Start() {
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.runGameLoop()
	}()
}

// Stop останавливает игровой цикл и дожидается конца текущего хода.
// После возврата мир больше никто не мутирует, снимок делать безопасно.
func (s *GameService) Stop() {
	close(s.quit)
	if s.done != nil {
		<-s.done
	}
}

func (s *GameService) runGameLoop() {
	s.log.Info("Игровой цикл запущен")
	ticker := time.NewTicker(turnInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			s.log.Info("Игровой цикл остановлен")
			return
		case <-ticker.C:
			s.AdvanceTurn()
		}
	}
}

// AdvanceTurn прогоняет один полный ход мира:
// сначала эффекты на всех живых сущностях, затем действия AI.
// Игроки действуют снаружи между ходами, здесь у них тикают только ресурсы.
func (s *GameService) AdvanceTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.World.Tick++
	deps := s.deps()

	// Фаза 1: эффекты. DoT, истечение длительностей, пересчет модификаторов.
	// Снимок списка берем заранее: смерть от яда не должна менять порядок обхода.
	snapshot := make([]*domain.Entity, len(s.Entities))
	copy(snapshot, s.Entities)
	for _, e := range snapshot {
		if e.IsAlive() {
			systems.ProcessTurn(e, deps)
		}
	}

	// Фаза 2: действия. Сущности без AI пропускаются,
	// их каналы ресурсов тикают здесь же.
	for _, e := range snapshot {
		if !e.IsAlive() {
			continue
		}
		if e.AI == nil {
			if e.Caster != nil {
				e.Caster.TickResources()
			}
			continue
		}
		systems.TakeTurn(e, deps)
	}

	s.compactEntities()
}

// compactEntities убирает из списка обхода распущенные призывы.
// Трупы остаются: из них лутается добыча.
func (s *GameService) compactEntities() {
	out := s.Entities[:0]
	for _, e := range s.Entities {
		if e.Summon != nil && e.Summon.Dismissed {
			continue
		}
		out = append(out, e)
	}
	s.Entities = out
}

// EntityByID ищет сущность в реестре мира
func (s *GameService) EntityByID(id string) (*domain.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.World.GetEntity(id)
	return e, e != nil
}

// SetSummonMode меняет приказ призванному существу владельца
func (s *GameService) SetSummonMode(owner *domain.Entity, summonID string, mode domain.SummonMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner.Summoner == nil || !owner.Summoner.Has(summonID) {
		return false
	}
	summon := s.World.GetEntity(summonID)
	if summon == nil || summon.Summon == nil {
		return false
	}
	summon.Summon.Mode = mode
	return true
}

// Dismiss принудительно распускает призыв владельца
func (s *GameService) Dismiss(owner *domain.Entity, summonID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner.Summoner == nil || !owner.Summoner.Has(summonID) {
		return false
	}
	summon := s.World.GetEntity(summonID)
	if summon == nil || summon.Summon == nil {
		return false
	}
	systems.DismissSummon(summon, s.deps())
	return true
}

// UseTraitAbility применяет ограниченную способность расы или класса.
// Применение списывается у первого трейта, который знает способность
// и еще имеет заряды. nil target означает каст на себя.
func (s *GameService) UseTraitAbility(owner *domain.Entity, abilityID string, target *domain.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner == nil || !owner.IsAlive() || owner.Traits == nil {
		return false
	}
	def, ok := s.Catalog.Ability(abilityID)
	if !ok {
		return false
	}
	if target == nil {
		target = owner
	}

	used := false
	owner.Traits.Each(func(t *domain.Trait) {
		if !used && t.UseAbility(abilityID) {
			used = true
		}
	})
	if !used {
		return false
	}

	s.sysDeps.Resolver.ApplyAbility(owner, target, def)
	s.log.WithFields(logrus.Fields{
		"entity":  owner.ID,
		"ability": abilityID,
	}).Info("Способность трейта применена")
	return true
}

// Rest восстанавливает заряды способностей трейтов (привал)
func (s *GameService) Rest(e *domain.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e == nil || e.Traits == nil {
		return
	}
	e.Traits.Each(func(t *domain.Trait) {
		t.Refresh()
	})
}

// Snapshot возвращает слепок живых и мертвых сущностей для отладки
func (s *GameService) Snapshot() []api.EntityView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]api.EntityView, 0, len(s.Entities))
	for _, e := range s.Entities {
		v := api.EntityView{
			ID:      e.ID,
			Kind:    e.Kind.String(),
			Name:    e.Name,
			Pos:     api.PositionView{X: e.Pos.X, Y: e.Pos.Y},
			Faction: e.Faction.String(),
		}
		if e.Stats != nil {
			v.HP = e.Stats.HP
			v.MaxHP = e.Stats.MaxHP
			v.IsDead = e.Stats.IsDead
		}
		for i := range e.Effects {
			v.Effects = append(v.Effects, e.Effects[i].ID)
		}
		views = append(views, v)
	}
	return views
}

// Capture снимает консистентный снимок мира под мьютексом
func (s *GameService) Capture() *storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.Capture(s.seed, s.World.Tick, s.Entities)
}

// RestoreSnapshot заселяет мир сущностями из снимка.
// Записи хранят список эффектов, но не агрегированные модификаторы,
// поэтому после восстановления их нужно пересчитать.
func (s *GameService) RestoreSnapshot(snap *storage.Snapshot) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.World.Tick = snap.Tick
	restored := snap.Restore()
	for _, e := range restored {
		systems.RecomputeModifiers(e)
		s.World.RegisterEntity(e)
		s.Entities = append(s.Entities, e)
	}

	s.log.WithFields(logrus.Fields{
		"tick":     snap.Tick,
		"entities": len(restored),
	}).Info("Мир восстановлен из снимка")
	return len(restored)
}

// Tick возвращает номер текущего хода
func (s *GameService) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.World.Tick
}
