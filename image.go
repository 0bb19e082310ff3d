package gridform

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
)

type imageXObject struct {
	name       string
	width      int
	height     int
	colorSpace string // DeviceGray or DeviceRGB
	data       []byte // flate-compressed samples
}

// encodeImage converts img into an 8-bit image XObject. Grayscale images are
// stored as DeviceGray, everything else as DeviceRGB.
func encodeImage(img image.Image) (*imageXObject, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	var samples []byte
	cs := "DeviceRGB"
	if gray, ok := img.(*image.Gray); ok {
		cs = "DeviceGray"
		samples = make([]byte, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := gray.Pix[gray.PixOffset(b.Min.X, y):]
			samples = append(samples, row[:w]...)
		}
	} else {
		samples = make([]byte, 0, w*h*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				samples = append(samples, byte(r>>8), byte(g>>8), byte(bl>>8))
			}
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(samples); err != nil {
		return nil, fmt.Errorf("compressing image: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing image: %w", err)
	}

	return &imageXObject{
		width:      w,
		height:     h,
		colorSpace: cs,
		data:       buf.Bytes(),
	}, nil
}

func (x *imageXObject) dict() string {
	return fmt.Sprintf("<</Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent 8 /Filter /FlateDecode /Length %d>>",
		x.width, x.height, x.colorSpace, len(x.data))
}
