package forum

// VoteSet is membership of voters in one entity's voter set. Implementations
// back it with a vote row per (entity, voter) pair, so Add of an existing
// member must never produce a duplicate.
type VoteSet interface {
	Has(entityID, voterID uint) (bool, error)
	Add(entityID, voterID uint) error
	Remove(entityID, voterID uint) error
	Count(entityID uint) (int64, error)
}

// ToggleVote flips voterID's membership in the entity's voter set and
// returns the resulting set size. Two identical calls cancel out; a single
// call is always a strict flip, never a "set vote".
func ToggleVote(set VoteSet, entityID, voterID uint) (int64, error) {
	has, err := set.Has(entityID, voterID)
	if err != nil {
		return 0, err
	}
	if has {
		err = set.Remove(entityID, voterID)
	} else {
		err = set.Add(entityID, voterID)
	}
	if err != nil {
		return 0, err
	}
	return set.Count(entityID)
}
