package i18n

import (
	"context"
	"sync"
)

// DefaultLanguage is the language used when no localizer was negotiated.
const DefaultLanguage = "zh-Hans"

type ctxKey struct{}

var fallbackLocalizer = sync.OnceValue(func() *Localizer {
	c, err := New(DefaultLanguage)
	if err != nil {
		return nil
	}

	return c.Localizer()
})

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the localizer stored in ctx, or one for
// DefaultLanguage when there is none.
func FromContext(ctx context.Context) *Localizer {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*Localizer); ok && l != nil {
			return l
		}
	}

	return fallbackLocalizer()
}
