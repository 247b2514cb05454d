package session

import (
	"github.com/vovakirdan/netbreach/internal/minigame"
	"github.com/vovakirdan/netbreach/internal/upgrade"
)

// EventKind identifies a player action.
type EventKind int

const (
	EventSelectTarget EventKind = iota
	EventHack
	EventAttack
	EventPurchase
	EventShoot
	EventTogglePause
	EventQuitRound
	EventUsePerk
	EventLaunchFinal
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventSelectTarget:
		return "select"
	case EventHack:
		return "hack"
	case EventAttack:
		return "attack"
	case EventPurchase:
		return "purchase"
	case EventShoot:
		return "shoot"
	case EventTogglePause:
		return "pause"
	case EventQuitRound:
		return "quit"
	case EventUsePerk:
		return "perk"
	case EventLaunchFinal:
		return "launch"
	default:
		return "unknown"
	}
}

// Event is a queued player action. Only the fields its kind needs are set.
type Event struct {
	Kind    EventKind
	Target  string // Country code for select and attack
	Upgrade upgrade.ID
	Perk    minigame.Perk
}

// SelectTarget selects a country on the map.
func SelectTarget(code string) Event { return Event{Kind: EventSelectTarget, Target: code} }

// Hack starts a hack on the selected country.
func Hack() Event { return Event{Kind: EventHack} }

// Attack strikes target from the selected, compromised country.
func Attack(target string) Event { return Event{Kind: EventAttack, Target: target} }

// Purchase buys an upgrade.
func Purchase(id upgrade.ID) Event { return Event{Kind: EventPurchase, Upgrade: id} }

// Shoot fires a ball in the active round.
func Shoot() Event { return Event{Kind: EventShoot} }

// TogglePause pauses or resumes the active round.
func TogglePause() Event { return Event{Kind: EventTogglePause} }

// QuitRound aborts the active round.
func QuitRound() Event { return Event{Kind: EventQuitRound} }

// UsePerk spends a perk in the active round.
func UsePerk(p minigame.Perk) Event { return Event{Kind: EventUsePerk, Perk: p} }

// LaunchFinal starts the final countdown after exposure.
func LaunchFinal() Event { return Event{Kind: EventLaunchFinal} }
