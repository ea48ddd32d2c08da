// Package media converts uploaded image files into data URL payloads and back.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxUpload bounds the size of a single uploaded image.
const MaxUpload = 5 << 20

var (
	ErrNotImage   = errors.New("payload is not a supported image")
	ErrTooLarge   = errors.New("image exceeds upload limit")
	ErrBadDataURL = errors.New("malformed data URL")
)

// Encode reads an image file and returns it as a base64 data URL.
// The content is checked to be a PNG, JPEG, GIF or WebP image.
func Encode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUpload+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > MaxUpload {
		return "", ErrTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// Parse splits a base64 data URL into its media type and payload.
func Parse(dataURL string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrBadDataURL)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return mediaType, data, nil
}

// Load decodes a data URL into an image.
func Load(dataURL string) (image.Image, error) {
	_, data, err := Parse(dataURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return img, nil
}
