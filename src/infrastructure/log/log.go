package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type loggerKeyType string

const correlationIDKey loggerKeyType = "loggerWithCorrelation"
const WarnLevel = logrus.WarnLevel
const InfoLevel = logrus.InfoLevel
const ErrorLevel = logrus.ErrorLevel

type Field struct {
	URL            string
	HostName       string
	HTTPStatusCode int
	Duration       int64
	HTTPMethod     string
	Message        string
	Extra          map[string]any
}

type Logger interface {
	Info(ctx context.Context, message string)
	Warn(ctx context.Context, message string)
	Exception(ctx context.Context, message string, error error)
	Fatal(ctx context.Context, message string, error error)
	InfoWithExtra(ctx context.Context, message string, dictionary map[string]any)
	WarnWithExtra(ctx context.Context, message string, dictionary map[string]any)
	Response(ctx context.Context, withFields *Field, level logrus.Level)
	WithCorrelationID(ctx context.Context, id string) context.Context
}

type logger struct {
	logRus *logrus.Entry
}

func (l *logger) InfoWithExtra(ctx context.Context, message string, dictionary map[string]any) {
	l.withContext(ctx).WithFields(toFields(dictionary)).Info(message)
}

func (l *logger) Info(ctx context.Context, message string) {
	l.withContext(ctx).WithFields(logrus.Fields{"DateTime": time.Now()}).Info(message)
}

func (l *logger) Warn(ctx context.Context, message string) {
	l.withContext(ctx).WithFields(logrus.Fields{"DateTime": time.Now()}).Warn(message)
}

func (l *logger) WarnWithExtra(ctx context.Context, message string, dictionary map[string]any) {
	l.withContext(ctx).WithFields(toFields(dictionary)).Warn(message)
}

func (l *logger) Fatal(ctx context.Context, message string, err error) {
	l.Exception(ctx, message, err)
	os.Exit(-1)
}

func (l *logger) Exception(ctx context.Context, message string, err error) {
	l.withContext(ctx).WithFields(logrus.Fields{
		"DateTime":  time.Now(),
		"Exception": err}).Error(message)
}

func (l *logger) Response(ctx context.Context, withFields *Field, level logrus.Level) {
	var fields = logrus.Fields{
		"DateTime":       time.Now(),
		"HttpMethod":     withFields.HTTPMethod,
		"HttpStatusCode": withFields.HTTPStatusCode,
		"Duration":       withFields.Duration,
		"HostName":       withFields.HostName,
		"Url":            withFields.URL,
	}

	for key, value := range withFields.Extra {
		fields[key] = value
	}

	l.withContext(ctx).WithFields(fields).Logln(level, withFields.Message)
}

// NewLogger writes JSON lines to stdout at the given level ("debug", "info", "warn", "error").
func NewLogger(level string) Logger {
	return NewLoggerWithOutput(os.Stdout, level)
}

func NewLoggerWithOutput(out io.Writer, level string) Logger {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = InfoLevel
	}

	var log = logrus.New()
	log.SetOutput(out)
	log.SetFormatter(new(jsonFormatter))
	log.SetLevel(parsed)
	return &logger{logRus: logrus.NewEntry(log)}
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() Logger {
	return NewLoggerWithOutput(io.Discard, "error")
}

func (l *logger) withContext(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return l.logRus
	}
	entry, ok := ctx.Value(correlationIDKey).(*logrus.Entry)
	if !ok {
		return l.logRus
	}
	return entry
}

func (l *logger) WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, l.withContext(ctx).WithFields(logrus.Fields{"CorrelationId": id}))
}

func toFields(dictionary map[string]any) logrus.Fields {
	var fields = logrus.Fields{"DateTime": time.Now()}
	for key, value := range dictionary {
		fields[key] = value
	}
	return fields
}

type jsonFormatter struct{}

func (*jsonFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(logrus.Fields, len(entry.Data)+2)
	for key, value := range entry.Data {
		data[key] = value
	}
	data["Message"] = entry.Message
	data["Level"] = entry.Level.String()

	if exception, ok := data["Exception"]; ok {
		data["Exception"] = fmt.Sprint(exception)
	}

	serialized, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON, %w", err)
	}

	return append(serialized, '\n'), nil
}
