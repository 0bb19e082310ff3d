package formtpl

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
)

// Supported barcode symbologies.
const (
	SymbologyCode128 = "code128"
	SymbologyQR      = "qr"
	SymbologyEAN     = "ean"
	SymbologyPDF417  = "pdf417"
)

type barcodeEncoder func(content string) (barcode.Barcode, error)

// symbologyOf maps a symbology name to its encoder. The empty string selects
// code128.
func symbologyOf(name string) (barcodeEncoder, error) {
	switch name {
	case "", SymbologyCode128:
		return func(content string) (barcode.Barcode, error) {
			return code128.Encode(content)
		}, nil
	case SymbologyQR:
		return func(content string) (barcode.Barcode, error) {
			return qr.Encode(content, qr.M, qr.Auto)
		}, nil
	case SymbologyEAN:
		return func(content string) (barcode.Barcode, error) {
			return ean.Encode(content)
		}, nil
	case SymbologyPDF417:
		return func(content string) (barcode.Barcode, error) {
			return pdf417.Encode(content, 4)
		}, nil
	}
	return nil, fmt.Errorf("unknown barcode symbology %q", name)
}

// barcodeImage encodes content and scales the result to the given pixel
// dimensions.
func barcodeImage(content, symbology string, w, h int) (image.Image, error) {
	encode, err := symbologyOf(symbology)
	if err != nil {
		return nil, err
	}
	bc, err := encode(content)
	if err != nil {
		return nil, fmt.Errorf("encoding barcode: %w", err)
	}
	scaled, err := barcode.Scale(bc, w, h)
	if err != nil {
		return nil, fmt.Errorf("scaling barcode to %dx%d: %w", w, h, err)
	}
	return scaled, nil
}
