//go:build gocv
// +build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// openCVSegmenter runs the HSV threshold through OpenCV. Regions come from
// cv::findContours in list mode, so holes are reported as their own
// contours and areas are polygon areas rather than pixel counts.
type openCVSegmenter struct {
	opts Options
}

func newOpenCVSegmenter(opts Options) (Segmenter, error) {
	return &openCVSegmenter{opts: opts}, nil
}

func (s *openCVSegmenter) Name() string { return StrategyOpenCV }
func (s *openCVSegmenter) Keys() tuning.ChannelKeys { return tuning.HSVKeys }
func (s *openCVSegmenter) DefaultBound() tuning.ColorBound { return tuning.DefaultHSV() }

func (s *openCVSegmenter) Segment(frame image.Image, bound tuning.ColorBound) (Segmentation, error) {
	seg := Segmentation{Space: imaging.SpaceHSV, LabelIndex: -1}
	if err := imaging.CheckFrame(frame); err != nil {
		return seg, err
	}

	src, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return seg, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer src.Close()

	scale := s.opts.scale()
	small := gocv.NewMat()
	defer small.Close()
	if scale > 1 {
		w := max(1, src.Cols()/scale)
		h := max(1, src.Rows()/scale)
		gocv.Resize(src, &small, image.Point{X: w, Y: h}, 0, 0, gocv.InterpolationLinear)
	} else {
		src.CopyTo(&small)
	}

	norm := gocv.NewMat()
	defer norm.Close()
	gocv.Normalize(small, &norm, 0, 255, gocv.NormMinMax)

	radius := s.opts.BlurRadius
	if radius <= 0 {
		radius = imaging.DefaultBlurRadius
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(norm, &blurred, image.Point{}, radius, radius, gocv.BorderDefault)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(blurred, &hsv, gocv.ColorBGRToHSV)

	cx, cy := hsv.Cols()/2, hsv.Rows()/2
	for c := 0; c < 3; c++ {
		seg.Probe[c] = int(hsv.GetUCharAt(cy, cx*3+c))
	}

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(bound.Min[0], bound.Min[1], bound.Min[2], 0),
		gocv.NewScalar(bound.Max[0], bound.Max[1], bound.Max[2], 0),
		&mask)

	contours := gocv.FindContours(mask, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	seg.Candidates = make([]Candidate, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		seg.Candidates = append(seg.Candidates, Candidate{
			Area: gocv.ContourArea(contour) * float64(scale*scale),
			Box:  boxFromRect(gocv.BoundingRect(contour), scale),
		})
	}
	return seg, nil
}
