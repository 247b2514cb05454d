// Package upgrade holds the upgrade catalog and the set of upgrades a run
// has bought.
package upgrade

// ID identifies an upgrade.
type ID string

const (
	Stealth  ID = "stealth"
	Firewall ID = "firewall"
	Botnet   ID = "botnet"
	Encrypt  ID = "encrypt"
	Payload  ID = "payload"
	AI       ID = "ai"
)

// Upgrade describes one purchasable upgrade.
type Upgrade struct {
	ID          ID
	Name        string
	Description string
	Cost        int
}

// catalog is kept in shop order.
var catalog = []Upgrade{
	{Stealth, "Stealth Protocol", "Reduces detection rate by 25%", 1000},
	{Firewall, "Firewall Bypass", "Hacking success rate increased", 500},
	{Botnet, "Botnet Expansion", "Increases minigame balls by 1", 800},
	{Encrypt, "Quantum Encryption", "Detection decreases faster", 1500},
	{Payload, "Enhanced Payload", "Nuclear attacks 50% stronger", 2000},
	{AI, "AI Assistant", "Auto-completes easy minigames", 3000},
}

// Catalog returns every upgrade in shop order.
func Catalog() []Upgrade {
	out := make([]Upgrade, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the upgrade with the given id.
func Lookup(id ID) (Upgrade, bool) {
	for _, u := range catalog {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

// Store tracks the upgrades owned by a run. The zero value is empty and
// ready to use.
type Store struct {
	owned map[ID]bool
	order []ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{owned: make(map[ID]bool)}
}

// Has reports whether the upgrade is owned.
func (s *Store) Has(id ID) bool {
	return s != nil && s.owned[id]
}

// Purchase buys an upgrade from the given balance.
// It returns the remaining balance and whether anything was bought.
// Unknown ids, owned upgrades and short balances leave the balance as is.
func (s *Store) Purchase(id ID, balance int) (int, bool) {
	u, ok := Lookup(id)
	if !ok || s.Has(id) || balance < u.Cost {
		return balance, false
	}
	if s.owned == nil {
		s.owned = make(map[ID]bool)
	}
	s.owned[id] = true
	s.order = append(s.order, id)
	return balance - u.Cost, true
}

// Owned returns the owned upgrades in purchase order.
func (s *Store) Owned() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}
