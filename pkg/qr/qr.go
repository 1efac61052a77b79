package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Renderer turns a ticket UID into scannable image bytes. It is a stateless
// collaborator of the issuance workflow, kept behind an interface so tests
// can swap in a failing or recording fake.
type Renderer interface {
	Render(payload string) ([]byte, error)
}

type pngRenderer struct {
	size int
}

// NewRenderer returns a PNG QR renderer. size is the image edge in pixels.
func NewRenderer(size int) Renderer {
	if size <= 0 {
		size = 256
	}
	return &pngRenderer{size: size}
}

func (r *pngRenderer) Render(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode QR for payload %s: %w", payload, err)
	}
	return png, nil
}
