package nats

import (
	"log/slog"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

// Connect dials NATS with reconnect handling that logs through logger.
func Connect(url, clientName string, logger *slog.Logger) (*natsgo.Conn, error) {
	return natsgo.Connect(url,
		natsgo.Name(clientName),
		natsgo.Timeout(5*time.Second),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if logger != nil && err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			if logger != nil {
				logger.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
			}
		}),
	)
}
