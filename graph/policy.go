package graph

// HoldPolicy decides which edges leave a node when the next chord has the
// same name as the current one. Candidates arrive in generation order and
// the returned edges are inserted as-is.
type HoldPolicy interface {
	Select(candidates []Edge) []Edge
}

// ForceMovement keeps only the first cheapest edge with a positive cost so a
// repeated chord is re-voiced. If every candidate costs zero it keeps the
// first one so the graph stays connected.
type ForceMovement struct{}

func (ForceMovement) Select(candidates []Edge) []Edge {
	if len(candidates) == 0 {
		return nil
	}

	best := -1
	for i, c := range candidates {
		if c.Cost > 0 && (best < 0 || c.Cost < candidates[best].Cost) {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}
	return []Edge{candidates[best]}
}

// AllowHolds treats a repeated chord like any other change.
type AllowHolds struct{}

func (AllowHolds) Select(candidates []Edge) []Edge {
	return candidates
}
