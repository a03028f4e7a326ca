package wheel

import "math"

const (
	// FullTurn is one revolution in degrees.
	FullTurn = 360.0

	// DefaultMinFullSpins is the fewest whole turns added to a spin.
	DefaultMinFullSpins = 12

	// DefaultMaxFullSpins is the most whole turns added to a spin.
	DefaultMaxFullSpins = 18
)

// Spin describes the rotation that brings a chosen segment under the pointer.
type Spin struct {
	Index        int     `json:"index"`
	Count        int     `json:"count"`
	SegmentAngle float64 `json:"segmentAngle"`
	Target       float64 `json:"target"` // residue in [0, 360) the wheel must stop at
	FullSpins    int     `json:"fullSpins"`
	From         float64 `json:"from"`
	To           float64 `json:"to"`
}

// Mapper converts a drawn segment index into an absolute wheel rotation.
type Mapper struct {
	src      Source
	minSpins int
	maxSpins int
}

// NewMapper creates a Mapper adding between minSpins and maxSpins whole turns.
func NewMapper(src Source, minSpins, maxSpins int) (*Mapper, error) {
	if minSpins < 1 || minSpins > maxSpins {
		return nil, ErrInvalidSpinRange
	}
	return &Mapper{src: src, minSpins: minSpins, maxSpins: maxSpins}, nil
}

// Map returns the spin from current to a rotation whose residue aligns the
// pointer (at 0°) with the centre of segment index. The wheel always moves
// forward: To > From.
func (m *Mapper) Map(current float64, index, count int) (Spin, error) {
	return Rotate(current, index, count, InRange(m.src, m.minSpins, m.maxSpins))
}

// Rotate is Map with an explicit number of whole turns.
func Rotate(current float64, index, count, fullSpins int) (Spin, error) {
	if count <= 0 {
		return Spin{}, ErrNoSegments
	}
	if index < 0 || index >= count {
		return Spin{}, ErrIndexOutOfRange
	}

	target := TargetResidue(index, count)
	delta := Normalize(target - Normalize(current))

	return Spin{
		Index:        index,
		Count:        count,
		SegmentAngle: SegmentAngle(count),
		Target:       target,
		FullSpins:    fullSpins,
		From:         current,
		To:           current + delta + float64(fullSpins)*FullTurn,
	}, nil
}

// SegmentAngle is the arc covered by each of count segments.
func SegmentAngle(count int) float64 {
	return FullTurn / float64(count)
}

// TargetResidue is the rotation, modulo a full turn, at which segment index
// sits under the pointer. Rotation turns the wheel opposite to the direction
// segment centres are laid out in, hence the negation.
func TargetResidue(index, count int) float64 {
	return Normalize(-float64(index) * SegmentAngle(count))
}

// Normalize maps an angle into [0, 360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, FullTurn)
	if r < 0 {
		r += FullTurn
	}
	if r >= FullTurn {
		r = 0
	}
	return r
}

// SegmentUnderPointer returns the index of the segment the pointer rests on
// for a given rotation.
func SegmentUnderPointer(rotation float64, count int) int {
	if count <= 0 {
		return -1
	}
	angle := SegmentAngle(count)
	// the segment whose centre sits at -rotation; round to the nearest centre
	pos := Normalize(-rotation) / angle
	return int(math.Round(pos)) % count
}
