package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// SignatureUsage is the upload usage that triggers signature image checks.
const SignatureUsage = "signatures"

const (
	minSignatureWidth  = 150
	minSignatureHeight = 40
	backgroundRatio    = 0.4
	inkRatio           = 0.003
)

var (
	ErrSignatureTooSmall   = errors.New("signature image is too small")
	ErrSignatureBackground = errors.New("signature must have a white or transparent background")
	ErrSignatureNoStrokes  = errors.New("signature must contain visible strokes")
)

// SignatureStats counts the pixel classes used to judge a signature image.
type SignatureStats struct {
	Width, Height int
	Transparent   int
	White         int
	Ink           int
}

func (s SignatureStats) total() float64 { return float64(s.Width * s.Height) }

func Measure(img image.Image) SignatureStats {
	b := img.Bounds()
	st := SignatureStats{Width: b.Dx(), Height: b.Dy()}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				st.Transparent++
			}
			if c.R > 240 && c.G > 240 && c.B > 240 {
				st.White++
			}
			if c.R < 80 && c.G < 80 && c.B < 80 && c.A > 80 {
				st.Ink++
			}
		}
	}
	return st
}

// Check applies the size, background and ink thresholds.
func (s SignatureStats) Check() error {
	if s.Width < minSignatureWidth || s.Height < minSignatureHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrSignatureTooSmall, s.Width, s.Height, minSignatureWidth, minSignatureHeight)
	}
	total := s.total()
	if float64(s.Transparent) <= total*backgroundRatio && float64(s.White) <= total*backgroundRatio {
		return ErrSignatureBackground
	}
	if float64(s.Ink) < total*inkRatio {
		return ErrSignatureNoStrokes
	}
	return nil
}

// ValidateSignature decodes a png, jpeg or webp body and checks it looks like a signature.
func ValidateSignature(body []byte) error {
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return Measure(img).Check()
}
