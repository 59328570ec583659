/*
Package game
File: factions.go
Description:
    Faction relations. A positive relation means the two factions are friendly,
    zero is neutral and negative is hostile.
*/

package game

// SelfRelation is the affinity a faction has with itself.
const SelfRelation = 100

// RelationWith returns f's affinity towards other as declared by f.
func (f Faction) RelationWith(other string) int {
	if other == f.Key {
		return SelfRelation
	}
	return f.Relations[other]
}

// Factions indexes the universe's factions by key.
type Factions map[string]Faction

// NewFactions builds the index from the YAML list.
func NewFactions(list []Faction) Factions {
	idx := make(Factions, len(list))
	for _, f := range list {
		idx[f.Key] = f
	}
	return idx
}

// RelationWith returns the affinity between a and b.
// When only one side declares the relation it applies both ways; when both do,
// a's view wins. Unknown factions are neutral.
func (fs Factions) RelationWith(a, b string) int {
	if a == b && a != "" {
		return SelfRelation
	}
	if fa, ok := fs[a]; ok {
		if v, ok := fa.Relations[b]; ok {
			return v
		}
	}
	if fb, ok := fs[b]; ok {
		if v, ok := fb.Relations[a]; ok {
			return v
		}
	}
	return 0
}
