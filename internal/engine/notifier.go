package engine

import (
	"github.com/sirupsen/logrus"

	"underkingdom-server/internal/domain"
	"underkingdom-server/internal/network"
	"underkingdom-server/pkg/api"
	"underkingdom-server/pkg/logger"
)

// eventPublisher переводит события симуляции в уведомления клиентам
// и структурный лог. Тик проставляется в момент публикации.
type eventPublisher struct {
	world *domain.GameWorld
	hub   *network.Broadcaster
	log   *logrus.Entry
}

func newEventPublisher(world *domain.GameWorld, hub *network.Broadcaster) *eventPublisher {
	return &eventPublisher{
		world: world,
		hub:   hub,
		log:   logger.Log.WithField("component", "events"),
	}
}

func (p *eventPublisher) publish(n api.Notification) {
	n.Tick = p.world.Tick
	p.hub.Broadcast(n)
}

func posView(pos domain.Position) *api.PositionView {
	return &api.PositionView{X: pos.X, Y: pos.Y}
}

func (p *eventPublisher) EntityDied(e *domain.Entity) {
	p.log.WithFields(logrus.Fields{"entity": e.ID, "name": e.Name}).Info("Сущность погибла")
	p.publish(api.Notification{
		Type:     api.NotifyEntityDied,
		EntityID: e.ID,
		To:       posView(e.Pos),
	})
}

func (p *eventPublisher) EntityMoved(e *domain.Entity, from, to domain.Position) {
	p.publish(api.Notification{
		Type:     api.NotifyEntityMoved,
		EntityID: e.ID,
		From:     posView(from),
		To:       posView(to),
	})
}

func (p *eventPublisher) EffectApplied(target *domain.Entity, eff *domain.ActiveEffect) {
	p.log.WithFields(logrus.Fields{
		"entity":   target.ID,
		"effect":   eff.ID,
		"kind":     eff.Kind.String(),
		"duration": eff.Duration,
	}).Debug("Эффект наложен")
	p.publish(api.Notification{
		Type:     api.NotifyEffectApplied,
		EntityID: target.ID,
		EffectID: eff.ID,
	})
}

func (p *eventPublisher) EffectRemoved(target *domain.Entity, effectID string) {
	p.publish(api.Notification{
		Type:     api.NotifyEffectRemoved,
		EntityID: target.ID,
		EffectID: effectID,
	})
}

func (p *eventPublisher) EffectExpired(target *domain.Entity, effectID string) {
	p.publish(api.Notification{
		Type:     api.NotifyEffectExpired,
		EntityID: target.ID,
		EffectID: effectID,
	})
}

func (p *eventPublisher) SummonCreated(owner, summon *domain.Entity) {
	p.log.WithFields(logrus.Fields{"owner": owner.ID, "summon": summon.ID}).Info("Существо призвано")
	p.publish(api.Notification{
		Type:     api.NotifySummonCreated,
		EntityID: summon.ID,
		OwnerID:  owner.ID,
		To:       posView(summon.Pos),
	})
}

func (p *eventPublisher) SummonDismissed(ownerID, summonID string) {
	p.publish(api.Notification{
		Type:     api.NotifySummonDismissed,
		EntityID: summonID,
		OwnerID:  ownerID,
	})
}

func (p *eventPublisher) Message(text, severity string) {
	p.publish(api.Notification{
		Type:     api.NotifyMessage,
		Text:     text,
		Severity: severity,
	})
}
