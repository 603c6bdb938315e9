package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var otelSeverities = map[LogLevel]otellog.Severity{
	LogLevelDebug: otellog.SeverityDebug,
	LogLevelInfo:  otellog.SeverityInfo,
	LogLevelWarn:  otellog.SeverityWarn,
	LogLevelError: otellog.SeverityError,
	LogLevelFatal: otellog.SeverityFatal,
}

// OTELLogger ships records to an OTLP collector over gRPC.
type OTELLogger struct {
	logger   otellog.Logger
	provider *sdklog.LoggerProvider
}

func initializeOtelLogger(ctx context.Context, collectorEndpoint, serviceName string) (*OTELLogger, error) {
	if collectorEndpoint == "" {
		return nil, fmt.Errorf("otel collector endpoint is required in production")
	}

	conn, err := grpc.NewClient(collectorEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("otel grpc client: %w", err)
	}

	exporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("otel log exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceNamespace("catalog"),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return &OTELLogger{
		logger:   provider.Logger(serviceName),
		provider: provider,
	}, nil
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	var record otellog.Record
	record.SetTimestamp(entry.Timestamp)
	record.SetBody(otellog.StringValue(entry.Message))
	record.SetSeverityText(string(entry.Level))
	record.SetSeverity(otelSeverities[entry.Level])

	for key, value := range entry.Attributes {
		record.AddAttributes(otelAttribute(key, value))
	}
	if entry.Error != nil {
		record.AddAttributes(otellog.String("error", entry.Error.Error()))
	}

	l.logger.Emit(ctx, record)
	if entry.Level == LogLevelFatal {
		_ = l.provider.ForceFlush(ctx)
		os.Exit(1)
	}
}

func otelAttribute(key string, value any) otellog.KeyValue {
	switch v := value.(type) {
	case string:
		return otellog.String(key, v)
	case int:
		return otellog.Int(key, v)
	case int64:
		return otellog.Int64(key, v)
	case float64:
		return otellog.Float64(key, v)
	case bool:
		return otellog.Bool(key, v)
	case time.Duration:
		return otellog.String(key, v.String())
	case fmt.Stringer:
		return otellog.String(key, v.String())
	default:
		return otellog.String(key, fmt.Sprint(v))
	}
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}
