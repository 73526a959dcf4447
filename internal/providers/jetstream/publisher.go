package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/messaging"
)

const (
	DEFAULT_SUBJECT_PREFIX   = "mints"
	DEFAULT_DUPLICATE_WINDOW = 10 * time.Minute
	STREAM_PROVISION_TIMEOUT = 10 * time.Second
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL             string
	SubjectPrefix   string
	StreamName      string
	DuplicateWindow time.Duration
	MaxReconnects   int
	ReconnectWait   time.Duration
	ConnectionName  string
	PublishTimeout  time.Duration
}

type publisher struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	prefix  string
	timeout time.Duration
	json    adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = DEFAULT_SUBJECT_PREFIX
	}

	if cfg.StreamName != "" {
		if err := provisionStream(js, cfg.StreamName, prefix, cfg.DuplicateWindow); err != nil {
			nc.Close()
			return nil, err
		}
	}

	return &publisher{
		nc:      nc,
		js:      js,
		prefix:  prefix,
		timeout: cfg.PublishTimeout,
		json:    jsonAdapter,
	}, nil
}

// provisionStream creates or updates the stream capturing every {prefix}.{kind} subject
func provisionStream(js adapter.JetStream, name, prefix string, duplicates time.Duration) error {
	if duplicates <= 0 {
		duplicates = DEFAULT_DUPLICATE_WINDOW
	}

	ctx, cancel := context.WithTimeout(context.Background(), STREAM_PROVISION_TIMEOUT)
	defer cancel()

	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       name,
		Subjects:   []string{prefix + ".>"},
		Storage:    jetstream.FileStorage,
		Duplicates: duplicates,
	})
	if err != nil {
		return fmt.Errorf("failed to provision stream %s: %w", name, err)
	}

	logger.Info("Provisioned JetStream stream", zap.String("stream", name), zap.String("subjects", prefix+".>"))
	return nil
}

// PublishMint publishes a mint event to NATS JetStream. The receipt ID is used as
// the message ID so the stream drops duplicates of a retried publish.
func (p *publisher) PublishMint(ctx context.Context, event *domain.MintEvent) error {
	if !event.Valid() {
		return errors.New("invalid mint event")
	}

	logger.DebugCtx(ctx, "Publishing mint event",
		zap.String("receipt_id", event.ReceiptID),
		zap.String("kind", string(event.Kind)),
	)

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	_, err = p.js.Publish(ctx, p.buildSubject(event), data, jetstream.WithMsgID(event.ReceiptID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject based on the event
func (p *publisher) buildSubject(event *domain.MintEvent) string {
	// Format: {prefix}.{kind}
	// e.g., mints.public, mints.dutch_auction
	return fmt.Sprintf("%s.%s", p.prefix, event.Kind)
}

// Close drains the NATS connection, falling back to an immediate close
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Error(err, zap.String("message", "Failed to drain NATS connection"))
		p.nc.Close()
	}
}
