// Package ledgertest runs an in-process ledger that speaks the real wire
// format, for exercising clients without a cluster.
package ledgertest

import (
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/danmuck/ledgerwire/internal/logging"
	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/frame"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
	"github.com/danmuck/ledgerwire/internal/protocol/packet"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
	"github.com/rs/zerolog"
)

// ReplyHook may rewrite a reply header before it is packed.
type ReplyHook func(req *header.Request, reply *header.Reply)

// Server answers requests from any number of connections against one shared
// ledger. Sessions are keyed by client id.
type Server struct {
	ledger *ledger
	logger zerolog.Logger

	mu         sync.Mutex
	sessions   map[protocol.Uint128]*session
	nextCommit uint64
	requests   []header.Request
	violations []string
	hook       ReplyHook
}

type session struct {
	number  uint64
	context protocol.Uint128
	request uint32
}

func NewServer() *Server {
	return &Server{
		ledger:   newLedger(),
		logger:   logging.Component("ledgertest"),
		sessions: make(map[protocol.Uint128]*session),
	}
}

// SetReplyHook installs h for all subsequent replies.
func (s *Server) SetReplyHook(h ReplyHook) {
	s.mu.Lock()
	s.hook = h
	s.mu.Unlock()
}

// Requests returns every request header received so far.
func (s *Server) Requests() []header.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]header.Request(nil), s.requests...)
}

// Violations lists session protocol breaches seen so far, such as a parent
// that does not match the previous reply context.
func (s *Server) Violations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.violations...)
}

// Pipe serves one end of an in-memory connection and returns the other.
func (s *Server) Pipe(t testing.TB) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(server)
	}()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
		<-done
	})
	return client
}

// Listen serves on a loopback TCP port and returns its address.
func (s *Server) Listen(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() { _ = s.Serve(conn) }()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})
	return ln.Addr().String()
}

// Serve answers requests on rw until the peer goes away.
func (s *Server) Serve(rw io.ReadWriteCloser) error {
	conn := frame.NewConn(rw, frame.WithLogger(s.logger))
	defer conn.Close()

	out := packet.New()
	for {
		in, err := conn.Read()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn().Err(err).Msg("read request")
			return err
		}
		req, ok := in.Header().(*header.Request)
		if !ok {
			s.logger.Warn().Stringer("command", in.Header().Prefix().Command).Msg("ignoring non-request")
			continue
		}
		if err := s.answer(conn, out, req, in.Body()); err != nil {
			return err
		}
	}
}

func (s *Server) answer(conn *frame.Conn, out *packet.Packet, req *header.Request, body []byte) error {
	reply := &header.Reply{
		Header: header.Header{
			Cluster: req.Cluster,
			Size:    header.Size,
			Release: req.Release,
			Command: protocol.CommandReply,
		},
		RequestChecksum: req.Checksum,
	}

	s.mu.Lock()
	s.requests = append(s.requests, *req)
	sess := s.sessions[req.Client]
	switch {
	case req.Operation == protocol.OperationRegister:
		s.nextCommit++
		sess = &session{number: s.nextCommit}
		s.sessions[req.Client] = sess
		reply.Commit = sess.number
	case sess == nil:
		s.violations = append(s.violations, "request from unregistered client "+req.Client.String())
	default:
		if req.Session != sess.number {
			s.violations = append(s.violations, "session mismatch for "+req.Client.String())
		}
		if req.Parent != sess.context {
			s.violations = append(s.violations, "parent does not chain for "+req.Client.String())
		}
		if req.RequestNumber != sess.request+1 {
			s.violations = append(s.violations, "request number skipped for "+req.Client.String())
		}
		sess.request = req.RequestNumber
		s.nextCommit++
		reply.Commit = s.nextCommit
	}
	reply.Context = req.Checksum
	if sess != nil {
		sess.context = reply.Context
	}
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(req, reply)
	}

	recs, err := s.execute(req.Operation, body)
	if err != nil {
		return err
	}
	if err := out.SetHeader(reply); err != nil {
		return err
	}
	if _, err := out.Pack(recs, packet.WithOperation(req.Operation)); err != nil {
		return err
	}
	return conn.Write(out)
}

func (s *Server) execute(op protocol.Operation, body []byte) ([]records.Record, error) {
	switch op {
	case protocol.OperationCreateAccounts:
		in, err := packet.DecodeBody(body, op, records.AccountSize, records.UnpackAccount)
		if err != nil {
			return nil, err
		}
		return records.As(s.ledger.createAccounts(in)), nil
	case protocol.OperationCreateTransfers:
		in, err := packet.DecodeBody(body, op, records.TransferSize, records.UnpackTransfer)
		if err != nil {
			return nil, err
		}
		return records.As(s.ledger.createTransfers(in)), nil
	case protocol.OperationLookupAccounts:
		in, err := packet.DecodeBody(body, op, records.IDSize, records.UnpackID)
		if err != nil {
			return nil, err
		}
		return records.As(s.ledger.lookupAccounts(in)), nil
	case protocol.OperationLookupTransfers:
		in, err := packet.DecodeBody(body, op, records.IDSize, records.UnpackID)
		if err != nil {
			return nil, err
		}
		return records.As(s.ledger.lookupTransfers(in)), nil
	case protocol.OperationGetAccountTransfers, protocol.OperationGetAccountBalances:
		in, err := packet.DecodeBody(body, op, records.AccountFilterSize, records.UnpackAccountFilter)
		if err != nil || len(in) == 0 {
			return nil, err
		}
		if op == protocol.OperationGetAccountTransfers {
			return records.As(s.ledger.accountTransfers(in[0])), nil
		}
		return records.As(s.ledger.accountBalances(in[0])), nil
	case protocol.OperationQueryAccounts, protocol.OperationQueryTransfers:
		in, err := packet.DecodeBody(body, op, records.QueryFilterSize, records.UnpackQueryFilter)
		if err != nil || len(in) == 0 {
			return nil, err
		}
		if op == protocol.OperationQueryAccounts {
			return records.As(s.ledger.queryAccounts(in[0])), nil
		}
		return records.As(s.ledger.queryTransfers(in[0])), nil
	}
	return nil, nil
}
