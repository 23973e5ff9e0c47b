package listener

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Config"
	ingest "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Ingest"
	logger "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Logger"
	interfaces "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Repository/Interfaces"
)

// Listener holds the single long-lived subscription that feeds the telemetry
// store. It is constructed once at process start with an injected repository;
// nothing reaches for ambient broker or database state.
//
// Messages are handled sequentially in arrival order (SetOrderMatters), so a
// device's batches never interleave partial writes. A rejected or failed
// message is logged and dropped; consumption is at-most-once, and the
// subscription loop never dies on a bad payload.
type Listener struct {
	cfg         config.MQTTConfig
	readingRepo interfaces.ReadingRepository
	logger      *logger.Logger
	client      mqtt.Client
}

func New(cfg config.MQTTConfig, readingRepo interfaces.ReadingRepository, logger *logger.Logger) *Listener {
	return &Listener{
		cfg:         cfg,
		readingRepo: readingRepo,
		logger:      logger,
	}
}

func (l *Listener) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(l.cfg.GetBrokerURL()).
		SetClientID(l.cfg.ClientID).
		SetOrderMatters(true).
		SetKeepAlive(l.cfg.KeepAlive).
		SetPingTimeout(l.cfg.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if l.cfg.BrokerUser != "" {
		opts.SetUsername(l.cfg.BrokerUser)
		opts.SetPassword(l.cfg.BrokerPass)
	}

	if l.cfg.UseTLS {
		tlsCfg, err := l.tlsConfig(l.cfg.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		l.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		l.logger.Logger.Info().Str("topic", l.cfg.Topic).Msg("MQTT connected, subscribing to topic")
		if token := c.Subscribe(l.cfg.Topic, 1, func(_ mqtt.Client, m mqtt.Message) {
			l.HandleMessage(ctx, m.Payload())
		}); token.Wait() && token.Error() != nil {
			l.logger.Logger.Error().Err(token.Error()).Str("topic", l.cfg.Topic).Msg("Failed to subscribe to MQTT topic")
		}
	}

	l.client = mqtt.NewClient(opts)
	if tk := l.client.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	return nil
}

func (l *Listener) Stop() {
	if l.client != nil && l.client.IsConnected() {
		l.client.Disconnect(500)
	}
}

func (l *Listener) IsConnected() bool {
	return l.client != nil && l.client.IsConnected()
}

// HandleMessage runs one payload through the normalizer and commits the
// accepted drafts as a single batch. Rejects are logged with the raw payload
// for diagnosis and dropped; there is no retry and nothing propagates back to
// the device.
func (l *Listener) HandleMessage(ctx context.Context, payload []byte) {
	readings, err := ingest.Normalize(payload)
	if err != nil {
		l.logger.Logger.Warn().
			Err(err).
			Str("payload", string(payload)).
			Msg("Rejected telemetry message")
		return
	}

	if len(readings) == 0 {
		return
	}

	if err := l.readingRepo.InsertBatch(ctx, readings); err != nil {
		l.logger.Logger.Error().
			Err(err).
			Str("device_id", readings[0].DeviceID).
			Int("readings", len(readings)).
			Msg("Failed to insert readings, message dropped")
		return
	}

	l.logger.Logger.Debug().
		Str("device_id", readings[0].DeviceID).
		Int("readings", len(readings)).
		Msg("Inserted readings")
}

func (l *Listener) tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
