package data

import "fmt"

// RangeID is the numeric range specifier stored on a skill template.
type RangeID int16

const (
	RangeEitherSide       RangeID = 2
	RangeBothSides        RangeID = 3
	RangeSelfBothSides    RangeID = 4
	RangeEnemyNear1       RangeID = 5
	RangeEnemyNear2       RangeID = 6
	RangeEnemyNear3       RangeID = 7
	RangeAll              RangeID = 8
	RangeEnemyAll         RangeID = 9
	RangeRight            RangeID = 15
	RangeEnemyRandom3     RangeID = 16
	RangeEnemyRandom6     RangeID = 17
	RangeEnemyRandom4     RangeID = 19
	RangeEnemyRandom5     RangeID = 20
	RangeMyself           RangeID = 21
	RangeEnemyRandom2     RangeID = 23
	RangeEnemyFrontAll    RangeID = 24
	RangeEnemyRearAll     RangeID = 25
	RangeEnemyFrontMidAll RangeID = 26
	RangeEnemyNear4       RangeID = 32
	RangeEnemyNear5       RangeID = 33
	RangeEnemyAllScaled   RangeID = 204
)

// RangeKind is the resolver family a RangeID belongs to.
type RangeKind int8

const (
	KindEitherSide RangeKind = iota + 1
	KindBothSides
	KindSelfBothSides
	KindMyself
	KindAll
	KindRight
	KindEnemyAll
	KindEnemyFrontAll
	KindEnemyRearAll
	KindEnemyFrontMidAll
	KindEnemyNear
	KindEnemyRandom
	KindFriendRandom
)

func (k RangeKind) String() string {
	switch k {
	case KindEitherSide:
		return "either_side"
	case KindBothSides:
		return "both_sides"
	case KindSelfBothSides:
		return "self_both_sides"
	case KindMyself:
		return "myself"
	case KindAll:
		return "all"
	case KindRight:
		return "right"
	case KindEnemyAll:
		return "enemy_all"
	case KindEnemyFrontAll:
		return "enemy_front_all"
	case KindEnemyRearAll:
		return "enemy_rear_all"
	case KindEnemyFrontMidAll:
		return "enemy_front_mid_all"
	case KindEnemyNear:
		return "enemy_near"
	case KindEnemyRandom:
		return "enemy_random"
	case KindFriendRandom:
		return "friend_random"
	}
	return fmt.Sprintf("RangeKind(%d)", int8(k))
}

// RangeSpec is the static description of a range id.
type RangeSpec struct {
	ID          RangeID
	Kind        RangeKind
	Count       int  // targets for near/random kinds
	MaxDistance int  // enemy_near: max column distance from the centre enemy
	Scaled      bool // damage scales with the number of live targets
	IncludeSelf bool // friend_random: executor may be drawn
	Unique      bool // friend_random: no card drawn twice
}

var (
	enemyRandomCount = map[RangeID]int{
		16: 3,
		17: 6,
		19: 4,
		20: 5,
		23: 2,
	}

	enemyNearCount = map[RangeID]int{
		5:  1,
		6:  2,
		7:  3,
		32: 4,
		33: 5,
	}

	enemyNearScaledCount = map[RangeID]int{
		312: 2,
		313: 3,
		314: 4,
		315: 5,
	}

	// keyed by target count
	nearMaxDistance = map[int]int{
		1: 1,
		2: 1,
		3: 1,
		4: 2,
		5: 2,
	}

	friendRandomCount = map[RangeID]int{
		101: 1, 102: 2, 103: 3, 104: 4, 105: 5, 106: 6,
		111: 1, 112: 2, 113: 3, 114: 4, 115: 5, 116: 6,
		121: 1, 122: 2, 123: 3, 124: 4, 125: 5, 126: 6,
		131: 1, 132: 2, 133: 3, 134: 4, 135: 5, 136: 6,
	}

	friendRandomIncludeSelf = map[RangeID]bool{
		111: true, 112: true, 113: true, 114: true, 115: true, 116: true,
		131: true, 132: true, 133: true, 134: true, 135: true, 136: true,
	}

	friendRandomUnique = map[RangeID]bool{
		121: true, 122: true, 123: true, 124: true, 125: true, 126: true,
		131: true, 132: true, 133: true, 134: true, 135: true, 136: true,
	}

	// damage multiplier by number of live targets, index = targets-1
	scalePatterns = map[RangeID][]float64{
		202: {1.5, 1},
		203: {1.75, 1.25, 1},
		204: {1.9375, 1.4375, 1.25, 1.13, 1, 1, 1, 1, 1, 1},
		208: {1.9375, 1.4375, 1.25, 1.13, 1},
		212: {1, 1, 1, 1, 1},
		213: {1, 1, 1, 1, 1},
		214: {1, 1, 1, 1, 1},
		215: {1, 1, 1, 1, 1},
		234: {1, 1, 1, 1, 1},
		312: {1.5, 1},
		313: {1.75, 1.25, 1},
		314: {1.875, 1.375, 1.16, 1},
		315: {1.9375, 1.4375, 1.25, 1.13, 1},
		322: {1.5, 1},
		323: {1.75, 1.25, 1},
		324: {1.875, 1.375, 1.16, 1},
		325: {1.875, 1.375, 1.16, 1, 1},
		326: {1.875, 1.375, 1.16, 1, 1, 1},
		332: {1.5, 1},
		333: {1.75, 1.25, 1},
		334: {1.875, 1.375, 1.16, 1},
		335: {1.9375, 1.4375, 1.25, 1.13, 1},
		336: {1.9375, 1.4375, 1.25, 1.13, 1, 1},
	}

	plainRanges = map[RangeID]RangeKind{
		RangeEitherSide:       KindEitherSide,
		RangeBothSides:        KindBothSides,
		RangeSelfBothSides:    KindSelfBothSides,
		RangeAll:              KindAll,
		RangeEnemyAll:         KindEnemyAll,
		RangeEnemyAllScaled:   KindEnemyAll,
		RangeEnemyFrontAll:    KindEnemyFrontAll,
		RangeEnemyRearAll:     KindEnemyRearAll,
		RangeEnemyFrontMidAll: KindEnemyFrontMidAll,
		RangeMyself:           KindMyself,
		RangeRight:            KindRight,
	}
)

// Spec resolves a range id to its static description.
func (id RangeID) Spec() (RangeSpec, error) {
	if n, ok := enemyRandomCount[id]; ok {
		return RangeSpec{ID: id, Kind: KindEnemyRandom, Count: n}, nil
	}
	if n, ok := enemyNearCount[id]; ok {
		return RangeSpec{ID: id, Kind: KindEnemyNear, Count: n, MaxDistance: nearMaxDistance[n]}, nil
	}
	if n, ok := enemyNearScaledCount[id]; ok {
		return RangeSpec{ID: id, Kind: KindEnemyNear, Count: n, MaxDistance: nearMaxDistance[n], Scaled: true}, nil
	}
	if n, ok := friendRandomCount[id]; ok {
		return RangeSpec{
			ID:          id,
			Kind:        KindFriendRandom,
			Count:       n,
			IncludeSelf: friendRandomIncludeSelf[id],
			Unique:      friendRandomUnique[id],
		}, nil
	}
	if kind, ok := plainRanges[id]; ok {
		return RangeSpec{ID: id, Kind: kind, Scaled: id == RangeEnemyAllScaled}, nil
	}
	return RangeSpec{}, fmt.Errorf("skill range %d: %w", id, ErrInvalidEnum)
}

// ScaleRatio returns the damage multiplier for a scaled range with targets live targets.
func ScaleRatio(id RangeID, targets int) (float64, error) {
	pattern, ok := scalePatterns[id]
	if !ok {
		return 0, fmt.Errorf("no scale pattern for range %d: %w", id, ErrInvalidEnum)
	}
	if targets < 1 || targets > len(pattern) {
		return 0, fmt.Errorf("scale pattern for range %d has no entry for %d targets", id, targets)
	}
	return pattern[targets-1], nil
}
