package pipeline

import (
	"fmt"
	"image"

	"github.com/ironsheep/target-vision/internal/imaging"
)

// drawOverlay returns an annotated copy of frame: the target box, an arrow
// from the bottom center to the target, a 5x5 marker where the center probe
// reads, and an info line along the bottom edge.
func (p *Pipeline) drawOverlay(frame image.Image, res Result) *image.NRGBA {
	out := imaging.CloneFrame(frame)
	w, h := res.Width, res.Height
	c := p.markColor

	if res.Found {
		imaging.DrawRect(out, res.Target.Box.Rect(), c)
		center := res.Target.Box.Center()
		imaging.DrawArrow(out, w/2, h-1, center.X, center.Y, c)
	}

	imaging.DrawRect(out, image.Rect(w/2-2, h/2-2, w/2+3, h/2+3), c)
	imaging.DrawTextContrast(out, 2, h-15, InfoLine(res), c)
	return out
}

// InfoLine formats the overlay text: frame number, then the center probe
// with its channel names, then the palette color for the sector strategy.
func InfoLine(res Result) string {
	names := res.Segmentation.Space.ChannelNames()
	probe := res.Segmentation.Probe
	line := fmt.Sprintf("Frame %3d %s %3d %s %3d %s %3d",
		res.Seq, names[0], probe[0], names[1], probe[1], names[2], probe[2])
	if res.Segmentation.Label != "" {
		line += " " + res.Segmentation.Label
	}
	return line
}
