// Package bonus holds the gather bonus tables and the roll that turns one
// gather into zero or more extra items.
package bonus

import (
	"context"

	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
	"github.com/osse101/GatherBonus_Go/internal/permission"
)

// MessageSource renders localized chat lines
type MessageSource interface {
	Message(key, playerLang string, args ...any) string
}

// Resolver rolls the bonus table of a gathered resource for one player
type Resolver struct {
	registry *Registry
	perms    permission.Checker
	items    host.ItemFactory
	messages MessageSource
	rng      RandomSource
	// offline skips the process-wide bonus metrics
	offline bool
}

// NewResolver wires a resolver. A nil rng falls back to DefaultSource.
func NewResolver(registry *Registry, perms permission.Checker, items host.ItemFactory, messages MessageSource, rng RandomSource) *Resolver {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Resolver{
		registry: registry,
		perms:    perms,
		items:    items,
		messages: messages,
		rng:      rng,
	}
}

// Resolve grants the bonus items player earned by gathering resource.
// Unknown resources and players without the rule permission are no-ops.
func (r *Resolver) Resolve(ctx context.Context, player host.Player, resource string) (domain.GatherResult, error) {
	result := domain.GatherResult{Resource: resource}
	if player == nil {
		return result, domain.ErrNilPlayer
	}

	snap := r.registry.Current()
	rule, ok := snap.Rule(resource)
	if !ok {
		return result, nil
	}
	result.Matched = true

	if !r.perms.Has(player.UserID(), rule.Permission) {
		return result, nil
	}
	result.Allowed = true

	log := logger.FromContext(ctx)
	granted := 0
	for i, entry := range rule.Entries {
		if rule.MaxItems != 0 && granted >= rule.MaxItems {
			break
		}
		result.Rolls++

		if !r.roll(entry.Chance) {
			r.countRoll(resource, metrics.OutcomeMiss)
			continue
		}
		r.countRoll(resource, metrics.OutcomeHit)

		amount := rollRange(r.rng, entry.AmountMin, entry.AmountMax)
		item, err := r.items.CreateByName(entry.Shortname, amount, entry.Skin)
		if err == nil && item == nil {
			err = domain.ErrMissingItem
		}
		if err != nil {
			if !r.offline {
				metrics.BonusCreateFailures.WithLabelValues(entry.Shortname).Inc()
			}
			log.Warn(LogMsgCreateFailed, LogFieldItem, entry.Shortname, LogFieldResource, resource, LogFieldError, err)
			continue
		}
		if entry.DisplayName != "" {
			item.SetName(entry.DisplayName)
		}
		if err := player.GiveItem(item); err != nil {
			log.Warn(LogMsgGiveFailed, LogFieldItem, entry.Shortname, LogFieldPlayer, player.UserID(), LogFieldError, err)
			continue
		}

		granted++
		result.Grants = append(result.Grants, domain.Grant{
			Entry:       i,
			Shortname:   entry.Shortname,
			Amount:      amount,
			Skin:        entry.Skin,
			DisplayName: entry.DisplayName,
		})
		if !r.offline {
			metrics.BonusItemsGranted.WithLabelValues(entry.Shortname).Add(float64(amount))
		}
		log.Debug(LogMsgBonusGranted,
			LogFieldResource, resource,
			LogFieldItem, entry.Shortname,
			LogFieldAmount, amount,
			LogFieldPlayer, player.UserID())

		if snap.ChatMessages() && r.messages != nil {
			player.ChatMessage(r.messages.Message(domain.MessageKeyReceived, player.Language(), chatLabel(entry)))
		}
	}
	return result, nil
}

// roll succeeds when a uniform draw in [0,100) does not exceed chance
func (r *Resolver) roll(chance int) bool {
	if chance <= domain.ChanceMin {
		return false
	}
	return r.rng.IntN(RollSides) <= chance
}

// chatLabel is the item name shown in the received message
func chatLabel(entry Entry) string {
	if entry.DisplayName != "" {
		return entry.DisplayName
	}
	return entry.Shortname
}

func (r *Resolver) countRoll(resource, outcome string) {
	if r.offline {
		return
	}
	metrics.BonusRolls.WithLabelValues(resource, outcome).Inc()
}
