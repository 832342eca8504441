package core

import "evolve/pkg/domain"

// ParentState is either NoParent or HasParent. The zero Controller starts in
// NoParent; Promote arms a parent and Discard revokes it.
type ParentState interface {
	isParentState()
}

// NoParent means new organisms are generated at random.
type NoParent struct{}

// HasParent means new organisms are mutated children of Organism.
type HasParent struct {
	Organism domain.Organism
}

func (NoParent) isParentState()  {}
func (HasParent) isParentState() {}

// Armed returns the parent organism, if any.
func Armed(p ParentState) (domain.Organism, bool) {
	if hp, ok := p.(HasParent); ok && hp.Organism != nil {
		return hp.Organism, true
	}
	return nil, false
}

// parentOf is the promote transition: an occupied slot arms its organism, an
// empty or invalid one leaves the board without a parent.
func parentOf(org domain.Organism) ParentState {
	if org == nil {
		return NoParent{}
	}
	return HasParent{Organism: org}
}

// isParent reports whether org is the armed parent, by identity.
func isParent(p ParentState, org domain.Organism) bool {
	parent, ok := Armed(p)
	return ok && org != nil && parent == org
}
