package classifier

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid classifier parameters")

// Params holds the thresholds of both classification stages.
type Params struct {
	LengthLow          int
	LengthHigh         int
	StopwordsLow       float64
	StopwordsHigh      float64
	MaxLinkDensity     float64
	MaxHeadingDistance int
	NoHeadings         bool
}

func DefaultParams() Params {
	return Params{
		LengthLow:          70,
		LengthHigh:         200,
		StopwordsLow:       0.30,
		StopwordsHigh:      0.32,
		MaxLinkDensity:     0.20,
		MaxHeadingDistance: 200,
		NoHeadings:         false,
	}
}

// LanguageIndependent zeroes both stop-word thresholds, which must go
// together with an empty stop-word set.
func (p Params) LanguageIndependent() Params {
	p.StopwordsLow = 0
	p.StopwordsHigh = 0
	return p
}

func (p Params) Validate() error {
	if p.LengthLow < 0 || p.LengthHigh < 0 {
		return fmt.Errorf("%w: lengths must not be negative", ErrInvalidParams)
	}
	if p.LengthLow > p.LengthHigh {
		return fmt.Errorf("%w: length-low %d exceeds length-high %d", ErrInvalidParams, p.LengthLow, p.LengthHigh)
	}
	if p.StopwordsLow < 0 || p.StopwordsHigh > 1 {
		return fmt.Errorf("%w: stop-word densities must be within [0, 1]", ErrInvalidParams)
	}
	if p.StopwordsLow > p.StopwordsHigh {
		return fmt.Errorf("%w: stopwords-low %.2f exceeds stopwords-high %.2f", ErrInvalidParams, p.StopwordsLow, p.StopwordsHigh)
	}
	if p.MaxLinkDensity < 0 || p.MaxLinkDensity > 1 {
		return fmt.Errorf("%w: max-link-density must be within [0, 1]", ErrInvalidParams)
	}
	if p.MaxHeadingDistance < 0 {
		return fmt.Errorf("%w: max-heading-distance must not be negative", ErrInvalidParams)
	}
	return nil
}
