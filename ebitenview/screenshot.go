package ebitenview

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/skitter"
	"github.com/phanxgames/skitter/internal/pngfile"
	"go.uber.org/zap"
)

// screenshots queues labels and captures them at the end of Draw.
type screenshots struct {
	dir   string
	queue []string
}

func (s *screenshots) request(label string) {
	s.queue = append(s.queue, label)
}

// flush captures the rendered frame for every queued label and writes each
// as a PNG file named <timestamp>_<label>.png.
func (s *screenshots) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	log := skitter.Logger()
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(img.Pix, pixels)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.queue {
		path := pngfile.Path(s.dir, stamp, label)
		if err := pngfile.Write(path, img); err != nil {
			log.Warn("screenshot", zap.Error(err))
			continue
		}
		log.Info("screenshot saved", zap.String("path", path))
	}
}

// unpremultiply converts premultiplied RGBA pixels into straight-alpha dst.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}
