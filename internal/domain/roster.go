package domain

// NumRosterSlots is the fixed roster size: three tier picks plus three wildcards.
const NumRosterSlots = 6

// Slot names in canonical order. perPlayerHomeRuns is positionally aligned
// with this order.
const (
	SlotTier1     = "tier1"
	SlotTier2     = "tier2"
	SlotTier3     = "tier3"
	SlotWildcard1 = "wildcard1"
	SlotWildcard2 = "wildcard2"
	SlotWildcard3 = "wildcard3"
)

// SlotNames lists the six roster slots in canonical order.
var SlotNames = [NumRosterSlots]string{
	SlotTier1, SlotTier2, SlotTier3,
	SlotWildcard1, SlotWildcard2, SlotWildcard3,
}

// Roster holds the six picks. Players are embedded as drafted (a snapshot of
// the player at creation time); only the id is used for stat lookups afterward.
type Roster struct {
	Tier1     Player `json:"tier1"`
	Tier2     Player `json:"tier2"`
	Tier3     Player `json:"tier3"`
	Wildcard1 Player `json:"wildcard1"`
	Wildcard2 Player `json:"wildcard2"`
	Wildcard3 Player `json:"wildcard3"`
}

// Slots returns the picks in canonical slot order.
func (r Roster) Slots() [NumRosterSlots]Player {
	return [NumRosterSlots]Player{
		r.Tier1, r.Tier2, r.Tier3,
		r.Wildcard1, r.Wildcard2, r.Wildcard3,
	}
}

// PlayerIDs returns the six referenced player ids in slot order.
func (r Roster) PlayerIDs() [NumRosterSlots]string {
	slots := r.Slots()
	var ids [NumRosterSlots]string
	for i, p := range slots {
		ids[i] = p.ID
	}
	return ids
}

// Complete reports whether every slot references a player.
func (r Roster) Complete() bool {
	for _, id := range r.PlayerIDs() {
		if id == "" {
			return false
		}
	}
	return true
}

// DuplicateWildcards reports whether any two wildcard slots reference the
// same player.
func (r Roster) DuplicateWildcards() bool {
	w := [3]string{r.Wildcard1.ID, r.Wildcard2.ID, r.Wildcard3.ID}
	return w[0] == w[1] || w[0] == w[2] || w[1] == w[2]
}

// DuplicateAnySlot reports whether the same player appears in more than one
// of the six slots.
func (r Roster) DuplicateAnySlot() bool {
	seen := make(map[string]struct{}, NumRosterSlots)
	for _, id := range r.PlayerIDs() {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
