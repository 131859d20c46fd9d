// Package client drives one ledger session over a framed connection: it
// registers, chains each request to the previous reply, and decodes the
// multi-batch reply bodies.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/ledgerwire/internal/ids"
	"github.com/danmuck/ledgerwire/internal/logging"
	"github.com/danmuck/ledgerwire/internal/observability"
	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/frame"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
	"github.com/danmuck/ledgerwire/internal/protocol/packet"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidConfig     = errors.New("client: invalid config")
	ErrNotRegistered     = errors.New("client: session not registered")
	ErrAlreadyRegistered = errors.New("client: session already registered")
	ErrUnexpectedReply   = errors.New("client: reply does not answer request")
	ErrClosed            = errors.New("client: closed")
)

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Client is safe for concurrent use; calls are serialized so at most one
// request is in flight. Close does not wait for that request: it closes the
// stream so the pending call returns ErrClosed.
type Client struct {
	mu       sync.Mutex
	cfg      Config
	conn     *frame.Conn
	deadline deadliner
	logger   zerolog.Logger
	out      *packet.Packet

	id         protocol.Uint128
	session    uint64
	parent     protocol.Uint128
	request    uint32
	registered bool
	closed     atomic.Bool
}

// Dial connects over TCP and returns an unregistered client.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.validateDial(); err != nil {
		return nil, err
	}
	d := net.Dialer{Timeout: cfg.ConnectTimeout}
	conn, err := d.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", cfg.Address, err)
	}
	c, err := New(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an established stream. A zero cfg.ClientID is replaced with a
// freshly minted one.
func New(rw io.ReadWriter, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := cfg.ClientID
	logger := logging.Component("client")
	if id.IsZero() {
		var ksuid string
		id, ksuid = ids.ClientID()
		logger = logger.With().Str("ksuid", ksuid).Logger()
	}
	logger = logger.With().Stringer("client", id).Logger()

	c := &Client{
		cfg:    cfg,
		conn:   frame.NewConn(rw, frame.WithLimits(cfg.Limits), frame.WithLogger(logger)),
		logger: logger,
		out:    packet.New(),
		id:     id,
	}
	if d, ok := rw.(deadliner); ok {
		c.deadline = d
	}
	return c, nil
}

func (c *Client) ID() protocol.Uint128 {
	return c.id
}

// Session is the session number assigned by Register, zero before.
func (c *Client) Session() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) Close() error {
	c.closed.Store(true)
	return c.conn.Close()
}

// Register opens the session. It must succeed before any other operation.
func (c *Client) Register(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registered {
		return ErrAlreadyRegistered
	}
	start := time.Now()
	reply, _, err := c.roundTrip(ctx, protocol.OperationRegister, 0, []records.Record{records.RegisterRequest{}})
	c.observe(protocol.OperationRegister, 0, 0, start, err)
	if err != nil {
		return err
	}
	c.session = reply.Commit
	c.registered = true
	c.logger.Info().Uint64("session", c.session).Msg("registered")
	return nil
}

func (c *Client) CreateAccounts(ctx context.Context, accounts []records.Account) ([]records.CreateAccountsResult, error) {
	return call(ctx, c, protocol.OperationCreateAccounts, records.As(accounts), records.ResultSize, records.UnpackCreateAccountsResult)
}

func (c *Client) CreateTransfers(ctx context.Context, transfers []records.Transfer) ([]records.CreateTransfersResult, error) {
	return call(ctx, c, protocol.OperationCreateTransfers, records.As(transfers), records.ResultSize, records.UnpackCreateTransfersResult)
}

// LookupAccounts returns the accounts that exist, in request order.
func (c *Client) LookupAccounts(ctx context.Context, ids ...protocol.Uint128) ([]records.Account, error) {
	return call(ctx, c, protocol.OperationLookupAccounts, records.IDs(ids...), records.AccountSize, records.UnpackAccount)
}

func (c *Client) LookupTransfers(ctx context.Context, ids ...protocol.Uint128) ([]records.Transfer, error) {
	return call(ctx, c, protocol.OperationLookupTransfers, records.IDs(ids...), records.TransferSize, records.UnpackTransfer)
}

func (c *Client) GetAccountTransfers(ctx context.Context, f records.AccountFilter) ([]records.Transfer, error) {
	return call(ctx, c, protocol.OperationGetAccountTransfers, []records.Record{f}, records.TransferSize, records.UnpackTransfer)
}

func (c *Client) GetAccountBalances(ctx context.Context, f records.AccountFilter) ([]records.AccountBalance, error) {
	return call(ctx, c, protocol.OperationGetAccountBalances, []records.Record{f}, records.AccountBalanceSize, records.UnpackAccountBalance)
}

func (c *Client) QueryAccounts(ctx context.Context, f records.QueryFilter) ([]records.Account, error) {
	return call(ctx, c, protocol.OperationQueryAccounts, []records.Record{f}, records.AccountSize, records.UnpackAccount)
}

func (c *Client) QueryTransfers(ctx context.Context, f records.QueryFilter) ([]records.Transfer, error) {
	return call(ctx, c, protocol.OperationQueryTransfers, []records.Record{f}, records.TransferSize, records.UnpackTransfer)
}

// call runs one request and decodes the reply while the connection buffer is
// still owned by this call.
func call[T any](ctx context.Context, c *Client, op protocol.Operation, recs []records.Record, elementSize int, unpack func([]byte) T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registered {
		return nil, ErrNotRegistered
	}
	if len(recs) == 0 {
		return nil, nil
	}
	start := time.Now()
	number := c.request + 1
	_, body, err := c.roundTrip(ctx, op, number, recs)
	var out []T
	if err == nil {
		out, err = packet.DecodeBody(body, op, elementSize, unpack)
		if err != nil {
			err = fmt.Errorf("client: decode %s reply: %w", op, err)
		}
	}

	failures := 0
	if op == protocol.OperationCreateAccounts || op == protocol.OperationCreateTransfers {
		failures = len(out)
		observability.RecordResultErrors(op.String(), failures)
	}
	c.observe(op, number, failures, start, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) observe(op protocol.Operation, number uint32, failures int, start time.Time, err error) {
	elapsed := time.Since(start)
	observability.RecordRequest(op.String(), err, elapsed)
	observability.LogRequest(c.logger, op.String(), number, failures, elapsed, err)
}

// roundTrip sends one request and reads its reply. The returned body aliases
// the connection buffer. Callers hold c.mu.
func (c *Client) roundTrip(ctx context.Context, op protocol.Operation, number uint32, recs []records.Record) (*header.Reply, []byte, error) {
	if c.closed.Load() {
		return nil, nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	req := header.NewRequest(header.RequestConfig{
		Cluster:       c.cfg.Cluster,
		Release:       c.cfg.Release,
		Client:        c.id,
		Session:       c.session,
		RequestNumber: number,
		Operation:     op,
		Parent:        c.parent,
	})
	if err := c.out.SetHeader(req); err != nil {
		return nil, nil, err
	}
	if _, err := c.out.Pack(recs); err != nil {
		return nil, nil, err
	}

	stop := c.armDeadline(ctx)
	defer stop()

	if err := c.conn.Write(c.out); err != nil {
		return nil, nil, c.transportErr(ctx, "write", err)
	}
	in, err := c.conn.Read()
	if err != nil {
		return nil, nil, c.transportErr(ctx, "read", err)
	}

	r, ok := in.Header().(*header.Reply)
	if !ok {
		return nil, nil, fmt.Errorf("%w: command %s", ErrUnexpectedReply, in.Header().Prefix().Command)
	}
	if r.RequestChecksum != c.out.Checksum() {
		return nil, nil, fmt.Errorf("%w: request_checksum %s, sent %s", ErrUnexpectedReply, r.RequestChecksum, c.out.Checksum())
	}

	c.request = number
	c.parent = r.Context
	return r, in.Body(), nil
}

// armDeadline applies ctx and the request timeout to the stream and arranges
// for cancellation to unblock pending I/O.
func (c *Client) armDeadline(ctx context.Context) func() {
	if c.deadline == nil {
		return func() {}
	}
	deadline, ok := ctx.Deadline()
	if c.cfg.RequestTimeout > 0 {
		if timeout := time.Now().Add(c.cfg.RequestTimeout); !ok || timeout.Before(deadline) {
			deadline, ok = timeout, true
		}
	}
	if !ok {
		deadline = time.Time{}
	}
	_ = c.deadline.SetDeadline(deadline)
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		_ = c.deadline.SetDeadline(time.Unix(1, 0))
	})
	return func() {
		// The callback may already be running; the reset must land after it.
		if !stop() {
			<-fired
		}
		_ = c.deadline.SetDeadline(time.Time{})
	}
}

func (c *Client) transportErr(ctx context.Context, phase string, err error) error {
	if c.closed.Load() {
		return fmt.Errorf("%w: %s: %w", ErrClosed, phase, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("client: %s: %w", phase, ctxErr)
	}
	if dl, ok := ctx.Deadline(); ok && !time.Now().Before(dl) && errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("client: %s: %w", phase, context.DeadlineExceeded)
	}
	return fmt.Errorf("client: %s: %w", phase, err)
}
