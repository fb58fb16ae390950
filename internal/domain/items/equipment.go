package items

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// DegradedSuffix marks a fully degraded barrows piece, e.g. "Dharok's helm 0"
const DegradedSuffix = " 0"

// Slot is an equipment slot with its own repair cost
type Slot string

const (
	SlotHelm   Slot = "helm"
	SlotBody   Slot = "body"
	SlotLegs   Slot = "legs"
	SlotWeapon Slot = "weapon"
)

// EquipmentSet names the four pieces of a barrows set and the assembled set item
type EquipmentSet struct {
	name   string
	helm   string
	body   string
	legs   string
	weapon string
	set    string
}

var barrowsSets = map[string]EquipmentSet{
	"Ahrim's":  newBarrowsSet("Ahrim's", "hood", "robetop", "robeskirt", "staff"),
	"Dharok's": newBarrowsSet("Dharok's", "helm", "platebody", "platelegs", "greataxe"),
	"Guthan's": newBarrowsSet("Guthan's", "helm", "platebody", "chainskirt", "warspear"),
	"Karil's":  newBarrowsSet("Karil's", "coif", "leathertop", "leatherskirt", "crossbow"),
	"Torag's":  newBarrowsSet("Torag's", "helm", "platebody", "platelegs", "hammers"),
	"Verac's":  newBarrowsSet("Verac's", "helm", "brassard", "plateskirt", "flail"),
}

func newBarrowsSet(brother, helm, body, legs, weapon string) EquipmentSet {
	return EquipmentSet{
		name:   brother,
		helm:   brother + " " + helm,
		body:   brother + " " + body,
		legs:   brother + " " + legs,
		weapon: brother + " " + weapon,
		set:    brother + " armour set",
	}
}

// BarrowsSetNames returns the known set names, sorted
func BarrowsSetNames() []string {
	names := lo.Keys(barrowsSets)
	sort.Strings(names)
	return names
}

// LoadEquipmentSet returns the barrows set with the given name, e.g. "Dharok's"
func LoadEquipmentSet(name string) (EquipmentSet, error) {
	set, ok := barrowsSets[name]
	if !ok {
		return EquipmentSet{}, &ErrUnknownEquipmentSet{Name: name, Choices: BarrowsSetNames()}
	}
	return set, nil
}

// FindSetByPiece returns the set containing the repaired piece and the piece's slot
func FindSetByPiece(piece string) (EquipmentSet, Slot, bool) {
	for _, name := range BarrowsSetNames() {
		set := barrowsSets[name]
		if slot, ok := set.SlotOf(piece); ok {
			return set, slot, true
		}
	}
	return EquipmentSet{}, "", false
}

func (s EquipmentSet) Name() string   { return s.name }
func (s EquipmentSet) Helm() string   { return s.helm }
func (s EquipmentSet) Body() string   { return s.body }
func (s EquipmentSet) Legs() string   { return s.legs }
func (s EquipmentSet) Weapon() string { return s.weapon }
func (s EquipmentSet) Set() string    { return s.set }

// Pieces returns the repaired piece names ordered helm, body, legs, weapon
func (s EquipmentSet) Pieces() []string {
	return []string{s.helm, s.body, s.legs, s.weapon}
}

// Degraded returns the fully degraded piece names in the same order as Pieces
func (s EquipmentSet) Degraded() []string {
	return lo.Map(s.Pieces(), func(piece string, _ int) string {
		return DegradedName(piece)
	})
}

// SlotOf returns the slot a repaired piece occupies in this set
func (s EquipmentSet) SlotOf(piece string) (Slot, bool) {
	switch piece {
	case s.helm:
		return SlotHelm, true
	case s.body:
		return SlotBody, true
	case s.legs:
		return SlotLegs, true
	case s.weapon:
		return SlotWeapon, true
	}
	return "", false
}

// DegradedName returns the fully degraded name of a repaired piece
func DegradedName(repaired string) string {
	return repaired + DegradedSuffix
}

// RepairedName strips the degraded marker from a piece name.
// The second result is false when name is not a degraded piece.
func RepairedName(degraded string) (string, bool) {
	repaired, found := strings.CutSuffix(degraded, DegradedSuffix)
	if !found || repaired == "" {
		return "", false
	}
	return repaired, true
}
