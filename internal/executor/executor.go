package executor

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/messaging"
	"github.com/feral-file/ff-minter/internal/minter"
	"github.com/feral-file/ff-minter/internal/store"
	"github.com/feral-file/ff-minter/internal/store/schema"
)

const (
	DEFAULT_WORKER_POOL_SIZE  = 4
	DEFAULT_WORKER_QUEUE_SIZE = 256
	DEFAULT_INITIAL_INTERVAL  = 500 * time.Millisecond
	DEFAULT_MAX_INTERVAL      = 30 * time.Second
	DEFAULT_MAX_ELAPSED_TIME  = time.Minute
	DEFAULT_REPUBLISH_LIMIT   = 500
	DEFAULT_RESTORE_BATCH     = 500
)

// Config holds the executor configuration
type Config struct {
	WorkerPoolSize  int
	WorkerQueueSize int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration // Total retry time for a single event
	RepublishLimit  int           // Receipts republished per RepublishPending call
	RestoreBatch    int           // Receipts loaded per query by Restore
}

// MintResult is the outcome of a committed mint
type MintResult struct {
	ReceiptID string
	Receipt   *minter.Receipt
}

// Executor runs mints against the contract and records every committed mint.
// A receipt is stored before its event is published; publishing happens in the
// background and is retried, receipts whose event could not be published are
// picked up again by RepublishPending.
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	Mint(ctx context.Context, caller common.Address, count uint64, payment *big.Int) (*MintResult, error)
	WhitelistMint(ctx context.Context, caller common.Address, count uint64, proof []common.Hash, payment *big.Int) (*MintResult, error)
	DutchAuctionMint(ctx context.Context, caller common.Address, count uint64, payment *big.Int) (*MintResult, error)
	MintForAddress(ctx context.Context, caller common.Address, beneficiary common.Address, count uint64) (*MintResult, error)

	// GetReceipts lists the stored receipts of the collection
	GetReceipts(ctx context.Context, filter store.MintReceiptFilter) ([]schema.MintReceipt, uint64, error)
	// GetTokenReceipt returns the receipt that minted a token, nil if none is stored
	GetTokenReceipt(ctx context.Context, id domain.TokenID) (*schema.MintReceipt, error)

	// Restore replays the stored receipts of the collection into the contract.
	// It must run before the first mint.
	Restore(ctx context.Context) (int, error)
	// RepublishPending schedules the events of stored receipts that were never published
	RepublishPending(ctx context.Context) (int, error)
	// Close waits for scheduled events until ctx is done, then abandons the remaining retries
	Close(ctx context.Context)
}

type executor struct {
	config    Config
	contract  minter.Contract
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
	pool      pond.Pool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewExecutor creates a new executor and starts its publishing pool
func NewExecutor(
	cfg Config,
	contract minter.Contract,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
) Executor {
	cfg = withDefaults(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	return &executor{
		config:    cfg,
		contract:  contract,
		store:     st,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
		pool: pond.NewPool(
			cfg.WorkerPoolSize,
			pond.WithQueueSize(cfg.WorkerQueueSize),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

func withDefaults(cfg Config) Config {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = DEFAULT_WORKER_QUEUE_SIZE
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DEFAULT_INITIAL_INTERVAL
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DEFAULT_MAX_INTERVAL
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = DEFAULT_MAX_ELAPSED_TIME
	}
	if cfg.RepublishLimit <= 0 {
		cfg.RepublishLimit = DEFAULT_REPUBLISH_LIMIT
	}
	if cfg.RestoreBatch <= 0 {
		cfg.RestoreBatch = DEFAULT_RESTORE_BATCH
	}
	return cfg
}

func (e *executor) Mint(ctx context.Context, caller common.Address, count uint64, payment *big.Int) (*MintResult, error) {
	receipt, err := e.contract.Mint(caller, count, payment)
	if err != nil {
		return nil, err
	}
	return e.record(ctx, receipt), nil
}

func (e *executor) WhitelistMint(ctx context.Context, caller common.Address, count uint64, proof []common.Hash, payment *big.Int) (*MintResult, error) {
	receipt, err := e.contract.WhitelistMint(caller, count, proof, payment)
	if err != nil {
		return nil, err
	}
	return e.record(ctx, receipt), nil
}

func (e *executor) DutchAuctionMint(ctx context.Context, caller common.Address, count uint64, payment *big.Int) (*MintResult, error) {
	receipt, err := e.contract.DutchAuctionMint(caller, count, payment)
	if err != nil {
		return nil, err
	}
	return e.record(ctx, receipt), nil
}

func (e *executor) MintForAddress(ctx context.Context, caller common.Address, beneficiary common.Address, count uint64) (*MintResult, error) {
	receipt, err := e.contract.MintForAddress(caller, beneficiary, count)
	if err != nil {
		return nil, err
	}
	return e.record(ctx, receipt), nil
}

// record stores the receipt and schedules its event. The mint is already
// committed at this point, so storage failures are logged and never returned.
func (e *executor) record(ctx context.Context, receipt *minter.Receipt) *MintResult {
	event := e.eventFromReceipt(receipt)

	ids := make([]uint64, len(receipt.TokenIDs))
	for i, id := range receipt.TokenIDs {
		ids[i] = uint64(id)
	}

	persisted := true
	_, err := e.store.CreateMintReceipt(ctx, store.CreateMintReceiptInput{
		ID:          event.ReceiptID,
		Kind:        string(event.Kind),
		Collection:  event.Collection,
		Caller:      event.Caller,
		Beneficiary: event.Beneficiary,
		TokenIDs:    ids,
		PaidWei:     event.Paid,
		RequiredWei: event.Required,
		RefundWei:   event.Refund,
		Stage:       receipt.Stage.String(),
		MintedAt:    receipt.At,
	})
	if err != nil {
		persisted = false
		logger.ErrorCtx(ctx, fmt.Errorf("failed to store mint receipt: %w", err),
			zap.String("receipt_id", event.ReceiptID),
			zap.Any("token_ids", receipt.TokenIDs),
		)
	}

	e.dispatch(event, persisted)

	return &MintResult{ReceiptID: event.ReceiptID, Receipt: receipt}
}

func (e *executor) eventFromReceipt(receipt *minter.Receipt) *domain.MintEvent {
	return &domain.MintEvent{
		ReceiptID:   ulid.MustNewDefault(receipt.At).String(),
		Kind:        receipt.Kind,
		Collection:  e.contract.Symbol(),
		Caller:      receipt.Caller.Hex(),
		Beneficiary: receipt.Beneficiary.Hex(),
		TokenIDs:    receipt.TokenIDs,
		Paid:        receipt.Paid.String(),
		Required:    receipt.Required.String(),
		Refund:      receipt.Refund.String(),
		Stage:       receipt.Stage,
		Timestamp:   receipt.At,
	}
}

// dispatch publishes the event on the worker pool. When the receipt is stored
// it is marked as published afterwards.
func (e *executor) dispatch(event *domain.MintEvent, persisted bool) {
	e.pool.Submit(func() {
		ctx := e.ctx
		if err := e.publishWithRetry(ctx, event); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to publish mint event: %w", err),
				zap.String("receipt_id", event.ReceiptID),
			)
			return
		}

		if !persisted {
			return
		}

		if err := e.store.MarkMintReceiptPublished(ctx, event.ReceiptID, e.clock.Now()); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to mark mint receipt published: %w", err),
				zap.String("receipt_id", event.ReceiptID),
			)
		}
	})
}

// publishWithRetry publishes an event with exponential backoff retry
func (e *executor) publishWithRetry(ctx context.Context, event *domain.MintEvent) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.config.InitialInterval
	b.MaxInterval = e.config.MaxInterval
	b.MaxElapsedTime = e.config.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		return e.publisher.PublishMint(ctx, event)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Mint event publish failed, retrying",
			zap.Error(err),
			zap.String("receipt_id", event.ReceiptID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}

	return nil
}

func (e *executor) GetReceipts(ctx context.Context, filter store.MintReceiptFilter) ([]schema.MintReceipt, uint64, error) {
	filter.Collection = e.contract.Symbol()
	return e.store.GetMintReceipts(ctx, filter)
}

func (e *executor) GetTokenReceipt(ctx context.Context, id domain.TokenID) (*schema.MintReceipt, error) {
	return e.store.GetMintReceiptByTokenID(ctx, e.contract.Symbol(), uint64(id))
}

func (e *executor) RepublishPending(ctx context.Context) (int, error) {
	receipts, err := e.store.GetUnpublishedMintReceipts(ctx, e.config.RepublishLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to get unpublished mint receipts: %w", err)
	}

	scheduled := 0
	for i := range receipts {
		event, err := e.eventFromRecord(&receipts[i])
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("receipt_id", receipts[i].ID))
			continue
		}
		e.dispatch(event, true)
		scheduled++
	}

	if scheduled > 0 {
		logger.InfoCtx(ctx, "Republishing pending mint events", zap.Int("count", scheduled))
	}

	return scheduled, nil
}

func (e *executor) Restore(ctx context.Context) (int, error) {
	var receipts []minter.Receipt
	afterID := ""
	for {
		page, err := e.store.GetMintReceiptsAfter(ctx, e.contract.Symbol(), afterID, e.config.RestoreBatch)
		if err != nil {
			return 0, fmt.Errorf("failed to get stored mint receipts: %w", err)
		}

		for i := range page {
			receipt, err := e.receiptFromRecord(&page[i])
			if err != nil {
				return 0, err
			}
			receipts = append(receipts, *receipt)
		}

		if len(page) < e.config.RestoreBatch {
			break
		}
		afterID = page[len(page)-1].ID
	}

	if err := e.contract.Restore(receipts); err != nil {
		return 0, fmt.Errorf("failed to restore contract: %w", err)
	}

	logger.InfoCtx(ctx, "Restored mints from stored receipts",
		zap.Int("receipts", len(receipts)),
		zap.Uint64("total_supply", e.contract.TotalSupply()),
	)

	return len(receipts), nil
}

func (e *executor) receiptFromRecord(r *schema.MintReceipt) (*minter.Receipt, error) {
	event, err := e.eventFromRecord(r)
	if err != nil {
		return nil, err
	}

	caller, err := domain.ParseAddress(event.Caller)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caller of receipt %s: %w", r.ID, err)
	}
	beneficiary, err := domain.ParseAddress(event.Beneficiary)
	if err != nil {
		return nil, fmt.Errorf("failed to parse beneficiary of receipt %s: %w", r.ID, err)
	}

	amounts := make([]*big.Int, 3)
	for i, raw := range []string{event.Required, event.Paid, event.Refund} {
		if amounts[i], err = domain.ParseWei(raw); err != nil {
			return nil, fmt.Errorf("failed to parse amounts of receipt %s: %w", r.ID, err)
		}
	}

	return &minter.Receipt{
		Kind:        event.Kind,
		Caller:      caller,
		Beneficiary: beneficiary,
		TokenIDs:    event.TokenIDs,
		Required:    amounts[0],
		Paid:        amounts[1],
		Refund:      amounts[2],
		Stage:       event.Stage,
		At:          event.Timestamp,
	}, nil
}

func (e *executor) eventFromRecord(r *schema.MintReceipt) (*domain.MintEvent, error) {
	var ids []domain.TokenID
	if err := e.json.Unmarshal(r.TokenIDs, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse token ids of receipt %s: %w", r.ID, err)
	}

	stage, err := domain.ParseStage(r.Stage)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stage of receipt %s: %w", r.ID, err)
	}

	return &domain.MintEvent{
		ReceiptID:   r.ID,
		Kind:        domain.MintKind(r.Kind),
		Collection:  r.Collection,
		Caller:      r.Caller,
		Beneficiary: r.Beneficiary,
		TokenIDs:    ids,
		Paid:        r.PaidWei,
		Required:    r.RequiredWei,
		Refund:      r.RefundWei,
		Stage:       stage,
		Timestamp:   r.MintedAt,
	}, nil
}

func (e *executor) Close(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		e.pool.StopAndWait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Executor stop interrupted, pending mint events are left for republishing")
		e.cancel()
		<-done
	}

	e.cancel()
}
