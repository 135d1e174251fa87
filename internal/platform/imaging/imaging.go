// Package imaging normaliza las fotos de perfil de las mascotas antes de
// guardarlas: JPEG, sin transparencia, lado mayor acotado.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	DefaultMaxSide   = 1024
	DefaultQuality   = 85
	DefaultMaxPixels = 40_000_000
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrTooManyPixels se chequea con DecodeConfig, antes de decodificar.
	ErrTooManyPixels = errors.New("image dimensions too large")
)

// sniffed por bytes; el Content-Type del multipart no se mira.
var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Options: cero => default.
type Options struct {
	MaxSide   int
	Quality   int
	MaxPixels int
}

func (o Options) withDefaults() Options {
	if o.MaxSide <= 0 {
		o.MaxSide = DefaultMaxSide
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}

// Photo es la foto lista para el PhotoStore.
type Photo struct {
	Data   []byte
	Width  int
	Height int
}

func (Photo) ContentType() string { return "image/jpeg" }

// Normalize valida, achica y re-encodea una foto subida.
func Normalize(r io.Reader, opts Options) (Photo, error) {
	opts = opts.withDefaults()

	data, err := io.ReadAll(r)
	if err != nil {
		return Photo{}, fmt.Errorf("reading photo: %w", err)
	}
	if ct := http.DetectContentType(data); !accepted[ct] {
		return Photo{}, fmt.Errorf("%w: %s (JPEG or PNG only)", ErrUnsupportedFormat, ct)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width*cfg.Height > opts.MaxPixels {
		return Photo{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Photo{}, fmt.Errorf("decoding photo: %w", err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), opts.MaxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// fondo blanco: un PNG transparente en JPEG quedaría negro
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == src.Bounds().Dx() && h == src.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return Photo{}, fmt.Errorf("encoding photo: %w", err)
	}
	return Photo{Data: buf.Bytes(), Width: w, Height: h}, nil
}

// fit devuelve el tamaño que entra en maxSide x maxSide manteniendo proporción.
func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	long, short := w, h
	if h > w {
		long, short = h, w
	}
	scaled := max(1, short*maxSide/long)
	if w >= h {
		return maxSide, scaled
	}
	return scaled, maxSide
}
