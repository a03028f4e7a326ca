package wheel

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"text/template"

	"luckywheel/internal/models"
)

// BorderWidth is the rim drawn around the segments, in pixels.
const BorderWidth = 8

// smallFontThreshold is the segment count above which labels use the small font.
const smallFontThreshold = 6

// Size is a wheel size preset.
type Size struct {
	Name          string `json:"name"`
	Diameter      int    `json:"diameter"`
	TextDistance  int    `json:"textDistance"`
	CenterSize    int    `json:"centerSize"`
	FontSize      int    `json:"fontSize"`
	SmallFontSize int    `json:"smallFontSize"`
}

// Sizes lists the presets offered to the operator.
var Sizes = map[string]Size{
	"small":  {Name: "small", Diameter: 320, TextDistance: 105, CenterSize: 60, FontSize: 13, SmallFontSize: 11},
	"medium": {Name: "medium", Diameter: 400, TextDistance: 135, CenterSize: 70, FontSize: 15, SmallFontSize: 12},
	"large":  {Name: "large", Diameter: 480, TextDistance: 165, CenterSize: 80, FontSize: 16, SmallFontSize: 13},
	"xlarge": {Name: "xlarge", Diameter: 560, TextDistance: 195, CenterSize: 90, FontSize: 18, SmallFontSize: 14},
}

// LookupSize returns the named preset.
func LookupSize(name string) (Size, error) {
	s, ok := Sizes[strings.ToLower(name)]
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrUnknownSize, name)
	}
	return s, nil
}

// SegmentView is the drawable geometry of one segment. Angles are in
// degrees in the wheel's own frame, clockwise from the pointer at 0°.
type SegmentView struct {
	Index        int     `json:"index"`
	ID           string  `json:"id"`
	PrizeID      string  `json:"prizeId"`
	Label        string  `json:"label"`
	Color        string  `json:"color"`
	StartAngle   float64 `json:"startAngle"`
	CenterAngle  float64 `json:"centerAngle"`
	EndAngle     float64 `json:"endAngle"`
	Path         string  `json:"path"`
	TextX        float64 `json:"textX"`
	TextY        float64 `json:"textY"`
	TextRotation float64 `json:"textRotation"`
}

// Layout is the full wheel geometry for one size preset.
type Layout struct {
	Size         Size          `json:"size"`
	Radius       float64       `json:"radius"`
	SegmentAngle float64       `json:"segmentAngle"`
	FontSize     int           `json:"fontSize"`
	Rotation     float64       `json:"rotation"`
	Segments     []SegmentView `json:"segments"`
}

// NewLayout computes the geometry of segments on a wheel of the given size
// resting at rotation.
func NewLayout(segments []models.Segment, size Size, rotation float64) Layout {
	layout := Layout{
		Size:     size,
		Radius:   float64(size.Diameter-2*BorderWidth) / 2,
		FontSize: size.FontSize,
		Rotation: rotation,
		Segments: make([]SegmentView, 0, len(segments)),
	}
	if len(segments) == 0 {
		return layout
	}
	if len(segments) > smallFontThreshold {
		layout.FontSize = size.SmallFontSize
	}

	angle := SegmentAngle(len(segments))
	layout.SegmentAngle = angle
	r := layout.Radius

	for i, seg := range segments {
		center := float64(i) * angle
		start := center - angle/2
		end := center + angle/2

		tx, ty := polar(r, float64(size.TextDistance), center)
		textRotation := center
		if center > 90 && center < 270 {
			textRotation = center + 180
		}

		layout.Segments = append(layout.Segments, SegmentView{
			Index:        i,
			ID:           seg.ID,
			PrizeID:      seg.PrizeID,
			Label:        Label(seg.Name),
			Color:        seg.Color,
			StartAngle:   start,
			CenterAngle:  center,
			EndAngle:     end,
			Path:         segmentPath(r, start, end, len(segments) == 1),
			TextX:        tx,
			TextY:        ty,
			TextRotation: textRotation,
		})
	}

	return layout
}

// Label is the text printed on a segment: the prize name up to the first '-'.
func Label(name string) string {
	before, _, _ := strings.Cut(name, "-")
	return strings.TrimSpace(before)
}

func polar(center, dist, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return center + dist*math.Cos(rad), center + dist*math.Sin(rad)
}

func segmentPath(r, start, end float64, whole bool) string {
	if whole {
		// a single arc cannot close on itself, draw two halves
		return fmt.Sprintf("M %.2f %.2f m %.2f 0 a %.2f %.2f 0 1 1 %.2f 0 a %.2f %.2f 0 1 1 %.2f 0 Z",
			r, r, -r, r, r, 2*r, r, r, -2*r)
	}

	x1, y1 := polar(r, r, start)
	x2, y2 := polar(r, r, end)
	largeArc := 0
	if end-start > 180 {
		largeArc = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		r, r, x1, y1, r, r, largeArc, x2, y2)
}

var svgTemplate = template.Must(template.New("wheel").Funcs(template.FuncMap{
	"esc": html.EscapeString,
	"f":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size.Diameter}}" height="{{.Size.Diameter}}" viewBox="0 0 {{.Size.Diameter}} {{.Size.Diameter}}">
<circle cx="{{.Half}}" cy="{{.Half}}" r="{{.Half}}" fill="#facc15"/>
<g transform="translate({{.Border}} {{.Border}}) rotate({{f .Rotation}} {{f .Radius}} {{f .Radius}})">
{{- range .Segments}}
<path d="{{.Path}}" fill="{{esc .Color}}"/>
{{- end}}
{{- range .Segments}}
<text x="{{f .TextX}}" y="{{f .TextY}}" fill="white" font-size="{{$.FontSize}}px" font-weight="bold" text-anchor="middle" dominant-baseline="middle" transform="rotate({{f .TextRotation}} {{f .TextX}} {{f .TextY}})">{{esc .Label}}</text>
{{- end}}
</g>
<line x1="{{.Half}}" y1="{{.Half}}" x2="{{f .PointerEnd}}" y2="{{.Half}}" stroke="#dc2626" stroke-width="4"/>
<polygon points="{{f .PointerEnd}},{{f .PointerTop}} {{f .PointerTip}},{{.Half}} {{f .PointerEnd}},{{f .PointerBottom}}" fill="#dc2626"/>
<circle cx="{{.Half}}" cy="{{.Half}}" r="{{.CenterRadius}}" fill="#fde047" stroke="white" stroke-width="4"/>
</svg>
`))

type svgData struct {
	Layout
	Half          int
	Border        int
	CenterRadius  int
	PointerEnd    float64
	PointerTip    float64
	PointerTop    float64
	PointerBottom float64
}

// WriteSVG renders the layout as a standalone SVG document with the pointer
// fixed at 0° (pointing right).
func WriteSVG(w io.Writer, layout Layout) error {
	half := layout.Size.Diameter / 2
	centerRadius := layout.Size.CenterSize / 2
	pointerEnd := float64(half+centerRadius) + (float64(half)-float64(centerRadius))*0.55

	return svgTemplate.Execute(w, svgData{
		Layout:        layout,
		Half:          half,
		Border:        BorderWidth,
		CenterRadius:  centerRadius,
		PointerEnd:    pointerEnd,
		PointerTip:    pointerEnd + 20,
		PointerTop:    float64(half) - 14,
		PointerBottom: float64(half) + 14,
	})
}
