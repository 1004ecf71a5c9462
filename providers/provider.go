package providers

import "context"

// QRRenderer turns an opaque text payload into displayable image bytes.
// The rendering backend is a black box to the rest of the pipeline.
type QRRenderer interface {
	Render(ctx context.Context, payload string) ([]byte, error)
}
