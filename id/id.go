// Package id generates stable notification identifiers. IDs are derived from
// the notification's identity (prayer + date) so recomputing a window yields
// the same IDs and rescheduling is a replace, not a duplicate.
package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mizanlabs/athan"
)

// Prefix marks every notification owned by this engine. Cancel-by-prefix uses
// it to wipe a stale window without touching notifications scheduled by
// anything else on the device.
const Prefix = "athan_"

// Namespace UUIDs for the UUIDv5 derivations.
var (
	prayerNamespace  = uuid.MustParse("8f3c1a2e-64d0-45b9-9a17-c53f20d6b1aa")
	triggerNamespace = uuid.MustParse("8f3c1a2f-64d0-45b9-9a17-c53f20d6b1aa")
)

// ForPrayer returns the deterministic ID for a prayer reminder on a given
// calendar day.
func ForPrayer(p athan.Prayer, date time.Time) string {
	name := fmt.Sprintf("%s:%s", p, date.Format("2006-01-02"))
	return Prefix + uuid.NewSHA1(prayerNamespace, []byte(name)).String()
}

// RefreshTrigger returns the single fixed ID used for the chain's refresh
// trigger. Re-arming always replaces the previous trigger, which is what
// keeps exactly one pending at a time.
func RefreshTrigger() string {
	return Prefix + uuid.NewSHA1(triggerNamespace, []byte("refresh")).String()
}
