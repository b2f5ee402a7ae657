//go:build !gocv
// +build !gocv

package detection

import (
	"errors"
)

// ErrOpenCVUnavailable is returned by New for the opencv strategy when the
// binary was built without OpenCV.
var ErrOpenCVUnavailable = errors.New("opencv strategy not available: rebuild with -tags gocv")

func newOpenCVSegmenter(Options) (Segmenter, error) {
	return nil, ErrOpenCVUnavailable
}
