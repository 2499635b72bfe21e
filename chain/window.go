package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mizanlabs/athan"
	"github.com/mizanlabs/athan/firetime"
	"github.com/mizanlabs/athan/id"
	"github.com/mizanlabs/athan/store"
)

// ErrComputation indicates no notification in the window could be computed
// at all (dataset exhausted or missing). Single uncoverable days are skipped
// silently; only a fully empty window reaches this.
var ErrComputation = errors.New("could not compute notification window")

type windowPlan struct {
	notifications []*store.Notification
	latest        time.Time
	daysSkipped   int
}

// buildWindow materializes the lookahead window into concrete notifications.
// Days the resolver cannot cover are skipped; fire times not strictly in the
// future are dropped so the store is never handed a past trigger.
func (c *Controller) buildWindow(ctx context.Context, now time.Time) (*windowPlan, error) {
	start := athan.Midnight(now).AddDate(0, 0, -1)
	plan := &windowPlan{}
	seen := make(map[string]bool)

	for i := 0; i < c.cfg.LookaheadDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrComputation, err)
		}

		day := start.AddDate(0, 0, i)
		resolved, err := c.resolver.Resolve(day)
		if err != nil {
			plan.daysSkipped++
			c.log.Debug().Err(err).Str("date", day.Format("2006-01-02")).Msg("skipping uncovered day")
			continue
		}

		for _, p := range c.cfg.Prayers {
			clock, ok := resolved.Times[p]
			if !ok {
				continue
			}
			fire, err := firetime.Compute(day, clock, c.cfg.AdvanceWarningMinutes)
			if err != nil {
				c.log.Warn().Err(err).Str("prayer", string(p)).Str("date", day.Format("2006-01-02")).Msg("bad prayer time in dataset")
				continue
			}
			if !fire.After(now) {
				continue
			}

			nid := id.ForPrayer(p, day)
			if seen[nid] {
				continue
			}
			seen[nid] = true

			plan.notifications = append(plan.notifications, &store.Notification{
				ID:     nid,
				Title:  reminderTitle(p),
				Body:   reminderBody(p, clock, c.cfg.AdvanceWarningMinutes),
				FireAt: fire,
				Metadata: map[string]string{
					store.MetaType:   store.TypePrayerReminder,
					store.MetaPrayer: string(p),
					store.MetaDate:   day.Format("2006-01-02"),
					store.MetaClock:  clock,
				},
			})
			if fire.After(plan.latest) {
				plan.latest = fire
			}
		}
	}

	if len(plan.notifications) == 0 {
		return nil, fmt.Errorf("%w: %d of %d days uncovered", ErrComputation, plan.daysSkipped, c.cfg.LookaheadDays)
	}
	return plan, nil
}

func reminderTitle(p athan.Prayer) string {
	return displayName(p) + " reminder"
}

func reminderBody(p athan.Prayer, clock string, minutesBefore int) string {
	if minutesBefore <= 0 {
		return fmt.Sprintf("It is time for %s (%s).", displayName(p), clock)
	}
	return fmt.Sprintf("%s is at %s, in %d minutes.", displayName(p), clock, minutesBefore)
}

func displayName(p athan.Prayer) string {
	switch p {
	case athan.PrayerFajr:
		return "Fajr"
	case athan.PrayerShuruq:
		return "Shuruq"
	case athan.PrayerDhuha:
		return "Dhuha"
	case athan.PrayerDhuhr:
		return "Dhuhr"
	case athan.PrayerAsr:
		return "Asr"
	case athan.PrayerMaghrib:
		return "Maghrib"
	case athan.PrayerIsha:
		return "Isha"
	default:
		return string(p)
	}
}
