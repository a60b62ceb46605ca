package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const instrumentationName = "github.com/metinatakli/cinema-seating"

// InitTelemetry installs the global trace and meter providers and returns a
// shutdown function. Without a collector URL it does nothing.
func InitTelemetry(cfg Config, logger *slog.Logger) (func(context.Context), error) {
	if cfg.OtelCollectorUrl == "" {
		logger.Info("OpenTelemetry collector URL not set, skipping initialization")

		return func(context.Context) {}, nil
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("cinema-seating-api"),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(cfg.Env),
		),
	)
	if err != nil {
		return nil, errors.New("failed to create otel resource")
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, errors.New("failed to create otel trace exporter")
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithResource(res),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(traceExporter)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, errors.New("failed to create otel metric exporter")
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(15*time.Second))),
	)

	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err := errors.Join(
			tracerProvider.Shutdown(shutdownCtx),
			meterProvider.Shutdown(shutdownCtx),
		)
		if err != nil {
			logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}

	return shutdown, nil
}

// metrics counts seat traffic. The instruments come from the global meter
// provider, so they are no-ops until InitTelemetry installs a real one.
type metrics struct {
	seatsHeld     otelmetric.Int64Counter
	seatsReleased otelmetric.Int64Counter
	ticketsSold   otelmetric.Int64Counter
	rejections    otelmetric.Int64Counter
}

func newMetrics(logger *slog.Logger) *metrics {
	m, err := buildMetrics(otel.Meter(instrumentationName))
	if err != nil {
		logger.Warn("failed to create metric instruments, metrics disabled", "error", err)

		m, _ = buildMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	}

	return m
}

func buildMetrics(meter otelmetric.Meter) (*metrics, error) {
	seatsHeld, err1 := meter.Int64Counter("seating.seats.held",
		otelmetric.WithDescription("Seats put on hold"))
	seatsReleased, err2 := meter.Int64Counter("seating.seats.released",
		otelmetric.WithDescription("Held seats given back by their owner"))
	ticketsSold, err3 := meter.Int64Counter("seating.tickets.sold",
		otelmetric.WithDescription("Tickets issued"))
	rejections, err4 := meter.Int64Counter("seating.requests.rejected",
		otelmetric.WithDescription("Hold and purchase requests rejected by the seating plan"))

	err := errors.Join(err1, err2, err3, err4)
	if err != nil {
		return nil, err
	}

	return &metrics{
		seatsHeld:     seatsHeld,
		seatsReleased: seatsReleased,
		ticketsSold:   ticketsSold,
		rejections:    rejections,
	}, nil
}

func showingAttr(showingID int) otelmetric.MeasurementOption {
	return otelmetric.WithAttributes(attribute.Int("showing.id", showingID))
}
