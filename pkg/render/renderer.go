package render

import (
	"context"

	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

// Renderer converts a form configuration plus per-request state into a byte
// representation (HTML, interactive transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, cfg formconfig.FormConfig, options RenderOptions) ([]byte, error)
}
