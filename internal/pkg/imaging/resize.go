package imaging

import (
	"bytes"
	"fmt"

	img "github.com/disintegration/imaging"
)

// DownscaleJPEG decodes an image, bounds its long edge to maxEdge and
// re-encodes it as JPEG at the given quality. Images already within bounds
// are still re-encoded so the caller always gets a JPEG payload.
func DownscaleJPEG(data []byte, maxEdge, quality int) ([]byte, error) {
	src, err := img.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxEdge || h > maxEdge {
		if w >= h {
			src = img.Resize(src, maxEdge, 0, img.Lanczos)
		} else {
			src = img.Resize(src, 0, maxEdge, img.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf, src, img.JPEG, img.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
