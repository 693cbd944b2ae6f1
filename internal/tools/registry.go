// Package tools exposes search operations as named, independently invocable tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/domain"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/logger"
	"github.com/kailas-cloud/searchtools/internal/metrics"
)

// Handler runs one tool invocation. args is the raw JSON argument object.
type Handler func(ctx context.Context, args json.RawMessage) envelope.Envelope

// Tool is a registered operation.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Registry holds tools in registration order.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{tools: make(map[string]Tool), logger: logger}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %q: handler is required", t.Name)
	}
	if _, dup := r.tools[t.Name]; dup {
		return fmt.Errorf("tool %q: %w", t.Name, domain.ErrAlreadyRegistered)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Definitions describes every tool in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, Definition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schemaOf(t.Params),
		})
	}
	return out
}

// Call invokes a tool. The only error is domain.ErrUnknownTool; every other
// outcome, panics included, is reported through the envelope.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (envelope.Envelope, error) {
	t, ok := r.tools[name]
	if !ok {
		return envelope.Envelope{}, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}

	invocationID := uuid.NewString()
	log := logger.FromContextOr(ctx, r.logger).With(
		zap.String("tool", name),
		zap.String("invocation_id", invocationID),
	)
	ctx = logger.ContextWithLogger(ctx, log)

	start := time.Now()
	env := r.invoke(ctx, t, args)
	duration := time.Since(start)

	outcome := outcomeOf(env)
	metrics.ToolInvocationsTotal.WithLabelValues(name, outcome).Inc()
	metrics.ToolInvocationDuration.WithLabelValues(name).Observe(duration.Seconds())

	fields := []zap.Field{zap.String("outcome", outcome), zap.Duration("duration", duration)}
	if env.Success {
		if env.Count != nil {
			fields = append(fields, zap.Int("count", *env.Count))
		}
		log.Info("Tool invocation completed", fields...)
	} else {
		log.Warn("Tool invocation failed", append(fields, zap.String("error", env.Error))...)
	}
	return env, nil
}

func (r *Registry) invoke(ctx context.Context, t Tool, args json.RawMessage) (env envelope.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.ToolPanicsTotal.WithLabelValues(t.Name).Inc()
			logger.FromContext(ctx).Error("Tool handler panicked",
				zap.Any("panic", rec),
				zap.StackSkip("stack", 1),
			)
			env = envelope.UnknownFailure(fmt.Sprintf("unknown error: %v", rec))
		}
	}()
	return t.Handler(ctx, args)
}

func outcomeOf(env envelope.Envelope) string {
	switch {
	case env.Success:
		return "ok"
	case env.ErrorType != "":
		return env.ErrorType
	default:
		return "request_error"
	}
}
