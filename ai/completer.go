package ai

import "context"

// Completer is the narrow contract for the external text-completion
// service. All response-shape assumptions live in the calling component.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
