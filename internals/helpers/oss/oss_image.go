package helper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Captured signature pads send jpeg/png; everything is normalized to WebP
// before it hits the bucket so the verifier and the web UI see one format.

const (
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = 80
)

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		img, _, err = image.Decode(bytes.NewReader(all))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return img, nil
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// flattenWhite composites transparent pixels onto a white background.
// Signature pads export PNG with alpha; WebP keeps the alpha but the
// verifier expects ink on white.
func flattenWhite(src image.Image) image.Image {
	b := src.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, src, image.Pt(0, 0), 1.0)
}

// ConvertToWebP re-encodes arbitrary image bytes to bounded-size WebP.
func ConvertToWebP(all []byte, filename string) ([]byte, error) {
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = flattenWhite(img)
	img = downscaleIfNeeded(img, webpMaxW, webpMaxH)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadImageAsWebP reads a multipart image, re-encodes it to WebP and uploads
// it under dir. Returns the object key.
func (s *OSSService) UploadImageAsWebP(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	all := make([]byte, 0, fh.Size)
	buf := bytes.NewBuffer(all)
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}

	out, err := ConvertToWebP(buf.Bytes(), fh.Filename)
	if err != nil {
		return "", err
	}

	name := strings.TrimSuffix(fh.Filename, strings.ToLower(filepathExt(fh.Filename))) + ".webp"
	return s.UploadBytes(ctx, dir, name, out, "image/webp")
}

func filepathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
