package models

// Rank is a role a user holds within a project. Lower values are more
// privileged; the value doubles as the persisted ordinal.
type Rank int

const (
	// RankAdmin can manage the project, its lists and its members.
	RankAdmin Rank = 1
	// RankDeveloper can create and modify tasks and tags.
	RankDeveloper Rank = 2
	// RankGuest has read access and can post messages.
	RankGuest Rank = 3
)

// rankNames maps ranks to their wire representation.
var rankNames = map[Rank]string{
	RankAdmin:     "ADMIN",
	RankDeveloper: "DEVELOPER",
	RankGuest:     "GUEST",
}

// Valid reports whether r is one of the three persistable ranks.
func (r Rank) Valid() bool {
	_, ok := rankNames[r]
	return ok
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Effective converts a persisted rank into its authorization-time value.
func (r Rank) Effective() EffectiveRank {
	return EffectiveRank(r)
}

// ParseRank converts a wire name into a Rank.
// The second return value is false for unknown names, including the
// NO_RELATION sentinel, which is never accepted from a request.
func ParseRank(name string) (Rank, bool) {
	for r, n := range rankNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// EffectiveRank is the rank actually granted for authorization purposes.
// It extends Rank with the NoRelation sentinel, which only exists in memory:
// a membership row is never written with it.
type EffectiveRank int

const (
	EffectiveAdmin     = EffectiveRank(RankAdmin)
	EffectiveDeveloper = EffectiveRank(RankDeveloper)
	EffectiveGuest     = EffectiveRank(RankGuest)

	// NoRelation means no confirmed membership exists between the user and
	// the project. It satisfies no minimum except itself.
	NoRelation EffectiveRank = 10
)

// Satisfies reports whether e is at least as privileged as min.
func (e EffectiveRank) Satisfies(min EffectiveRank) bool {
	return e <= min
}

func (e EffectiveRank) String() string {
	if e == NoRelation {
		return "NO_RELATION"
	}
	return Rank(e).String()
}
