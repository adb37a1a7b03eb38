package llmclient

import (
	"context"
	"log"
)

// Middleware decorates a Reasoner to inject cross-cutting concerns.
type Middleware func(Reasoner) Reasoner

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Reasoner, mws ...Middleware) Reasoner {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// WithLogging logs request shape and errors. Provide a custom logger or
// nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Reasoner) Reasoner {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Reasoner
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateStructured(ctx context.Context, req Request) (string, error) {
	var textBytes, imageBytes int
	images := 0
	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			images++
			imageBytes += len(p.Data)
			continue
		}
		textBytes += len(p.Text)
	}
	l.log.Printf("[LogSight] reasoner request (%s): %d text bytes, %d images (%d bytes)",
		req.Model, textBytes, images, imageBytes)
	out, err := l.next.GenerateStructured(ctx, req)
	if err != nil {
		l.log.Printf("[LogSight] reasoner error (%s): %v", req.Model, err)
	}
	return out, err
}

func (l *logging) Chat(ctx context.Context, req ChatRequest) (string, error) {
	l.log.Printf("[LogSight] chat request (%s): %d prior turns, %d byte message",
		req.Model, len(req.History), len(req.Message))
	out, err := l.next.Chat(ctx, req)
	if err != nil {
		l.log.Printf("[LogSight] chat error (%s): %v", req.Model, err)
	}
	return out, err
}
