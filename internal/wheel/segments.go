package wheel

import (
	"fmt"
	"strings"

	"luckywheel/internal/models"
)

// DefaultCommonMarkers identify the low-value prize that floods the wheel.
var DefaultCommonMarkers = []string{"200k", "200,000", "200.000"}

// Builder arranges prize units into wheel segments so that the common
// prize is spread out between the other prizes.
type Builder struct {
	src     Source
	markers []string
}

// NewBuilder creates a Builder. With no markers DefaultCommonMarkers is used.
func NewBuilder(src Source, markers ...string) *Builder {
	if len(markers) == 0 {
		markers = DefaultCommonMarkers
	}

	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			lowered = append(lowered, m)
		}
	}

	return &Builder{src: src, markers: lowered}
}

// IsCommon reports whether a prize name matches one of the common markers.
func (b *Builder) IsCommon(name string) bool {
	name = strings.ToLower(name)
	for _, m := range b.markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// Build expands the prizes into one segment per remaining unit, shuffles the
// common and other buckets independently and interleaves them, other first.
// The result is rebuilt from scratch on every call.
func (b *Builder) Build(prizes []models.Prize) []models.Segment {
	var common, other []models.Segment
	for _, seg := range Expand(prizes) {
		if b.IsCommon(seg.Name) {
			common = append(common, seg)
		} else {
			other = append(other, seg)
		}
	}

	Shuffle(b.src, common)
	Shuffle(b.src, other)

	return Interleave(other, common)
}

// Expand returns one segment per remaining unit of every prize, in prize order.
func Expand(prizes []models.Prize) []models.Segment {
	var segments []models.Segment
	for _, p := range prizes {
		for i := range p.Remaining() {
			segments = append(segments, models.Segment{
				ID:      fmt.Sprintf("%s-%d", p.ID, i),
				PrizeID: p.ID,
				Name:    p.Name,
				Color:   p.Color,
			})
		}
	}
	return segments
}

// Shuffle permutes segments in place with Fisher–Yates.
func Shuffle(src Source, segments []models.Segment) {
	for i := len(segments) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		segments[i], segments[j] = segments[j], segments[i]
	}
}

// Interleave emits first[0], second[0], first[1], second[1], ... and keeps
// emitting the longer slice alone once the shorter one runs out.
func Interleave(first, second []models.Segment) []models.Segment {
	result := make([]models.Segment, 0, len(first)+len(second))
	for i := 0; i < max(len(first), len(second)); i++ {
		if i < len(first) {
			result = append(result, first[i])
		}
		if i < len(second) {
			result = append(result, second[i])
		}
	}
	return result
}
