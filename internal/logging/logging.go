package logging

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Configure sets up logrus for the given environment. Production logs JSON
// so the aggregator can index fields; everything else stays human-readable.
func Configure(env string) {
	if env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}

// InitSentry initializes Sentry when a DSN is configured. Returns a flush
// func suitable for deferring in main.
func InitSentry(dsn, env string) func() {
	if dsn == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	})
	if err != nil {
		logrus.Warnf("sentry init failed: %v", err)
		return func() {}
	}

	logrus.Info("sentry initialized")
	return func() { sentry.Flush(2 * time.Second) }
}
