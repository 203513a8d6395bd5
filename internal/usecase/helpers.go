package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("go-jobboard-backend/internal/usecase")

func validateRequest(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}
	return nil
}

func requireActor(actor *domain.Actor) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthorized, please log in.")
	}
	return nil
}

// publish sends a domain event. Delivery failures are logged and never
// fail the request that produced the event.
func publish(ctx context.Context, events domain.EventPublisher, key string, payload map[string]any) {
	if events == nil {
		return
	}
	evt := domain.DomainEvent{Type: key, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := events.Publish(ctx, key, evt); err != nil {
		logger.Log.Warn("failed to publish event", "event", key, "error", err)
	}
}
