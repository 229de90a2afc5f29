// Package checkin implements the client-side check-in workflow: scan or type
// a barcode, confirm the quantity, post the item, then assign it to a
// storage location.
package checkin

import (
	"errors"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ErrNoBarcode is returned by a Detector when the frame contains no readable
// barcode. The scan loop treats it as a normal empty frame.
var ErrNoBarcode = errors.New("no barcode in frame")

// ErrDetectorUnsupported means no barcode detector is available on this
// platform. Callers fall back to manual entry; scanning is optional.
var ErrDetectorUnsupported = errors.New("barcode detection unsupported")

// Detector decodes at most one barcode from a frame. Implementations return
// only the first decode even when a frame contains several codes.
type Detector interface {
	Detect(img image.Image) (string, error)
}

// ZXingDetector decodes EAN/UPC retail barcodes using the zxing port.
type ZXingDetector struct {
	reader gozxing.Reader
}

// NewZXingDetector returns the default product-barcode detector.
func NewZXingDetector() *ZXingDetector {
	return &ZXingDetector{reader: oned.NewMultiFormatUPCEANReader(nil)}
}

// Detect returns the first barcode decoded from the frame, or ErrNoBarcode.
func (d *ZXingDetector) Detect(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", ErrNoBarcode
	}
	result, err := d.reader.Decode(bmp, nil)
	if err != nil {
		return "", ErrNoBarcode
	}
	return result.GetText(), nil
}
