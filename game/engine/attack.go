package engine

import (
	"github.com/sirupsen/logrus"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

// AttackDamage is the hit point loss of a single attack.
const AttackDamage float32 = 1.0

// ProcessAttack applies an attack against the world. Attacking a target that
// no longer exists is a no-op, so several attacks queued against the same
// target never fail.
func ProcessAttack(world *World, action AttackAction) error {
	attacker, err := getEntity(world, action.EntityID)
	if err != nil {
		return err
	}
	if action.Target == NoEntity {
		return ErrEmptyTargetEntityID
	}

	target, ok := world.GetEntity(action.Target)
	if !ok {
		return nil
	}

	log := logger.Component("combat").WithFields(logrus.Fields{
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
		"target_type": target.Type.String(),
	})

	if !target.Health.Mortal {
		log.Debug("Attack ineffective: target has no hit points.")
		return nil
	}

	damaged := target.TakeDamage(AttackDamage)
	if damaged.IsDead() {
		world.RemoveEntity(damaged)
	} else {
		world.UpdateEntity(damaged)
	}

	log.WithFields(logrus.Fields{
		"hp_before":   target.Health.Points,
		"hp_after":    damaged.Health.Points,
		"target_died": damaged.IsDead(),
	}).Debug("Attack resolved.")

	return nil
}
