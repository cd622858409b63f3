package trace

import "context"

// ctxState is what a context carries for tracing: the tracer and the span
// new child spans attach to.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx == nil {
		return ctxState{}
	}
	st, _ := ctx.Value(ctxKey{}).(ctxState)
	return st
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t := stateOf(ctx).tracer; t != nil {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. Span ids belong to a tracer, so the current
// span is reset.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// SpanContext identifies the span that is active in a context.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the active span of ctx; zero when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// WithSpanContext makes sc the active span of ctx, keeping its tracer.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	st := stateOf(ctx)
	st.span = sc
	return context.WithValue(ctx, ctxKey{}, st)
}
