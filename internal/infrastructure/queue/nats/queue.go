package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
	"github.com/freud/split-text-smartly/internal/infrastructure/resilience"
)

var (
	_ ports.TextSplitService  = (*Queue)(nil)
	_ ports.SplitRequestQueue = (*Queue)(nil)
)

// Queue carries split requests over NATS request/reply. Workers serve a
// subject through a queue group; Split sends a request and waits for the
// reply, so a Queue can stand in for a local split service.
type Queue struct {
	conn           *nats.Conn
	subject        string
	group          string
	requestTimeout time.Duration
	executor       *resilience.Executor
}

// Options tunes the connection and the client side of request/reply. Zero
// values fall back to the defaults below.
type Options struct {
	QueueGroup         string
	RequestTimeout     time.Duration
	ConnectTimeout     time.Duration
	ReconnectWait      time.Duration
	MaxReconnects      int
	ResilienceExecutor *resilience.Executor
}

func NewWithOptions(url, subject string, options Options) (*Queue, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	conn, err := nats.Connect(
		url,
		nats.Name("split-text-smartly"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return newQueue(conn, subject, options), nil
}

func newQueue(conn *nats.Conn, subject string, options Options) *Queue {
	group := options.QueueGroup
	if group == "" {
		group = "splitters"
	}
	requestTimeout := options.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Second
	}
	return &Queue{
		conn:           conn,
		subject:        subject,
		group:          group,
		requestTimeout: requestTimeout,
		executor:       options.ResilienceExecutor,
	}
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// Split sends req to the workers and waits for their reply.
func (q *Queue) Split(ctx context.Context, req domain.SplitRequest) (*domain.SplitResult, error) {
	payload, err := encodeRequest(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "encode split request", err)
	}

	call := func(ctx context.Context) (*domain.SplitResult, error) {
		reqCtx, cancel := context.WithTimeout(ctx, q.requestTimeout)
		defer cancel()

		msg := nats.NewMsg(q.subject)
		msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
		msg.Data = payload

		reply, err := q.conn.RequestMsgWithContext(reqCtx, msg)
		if err != nil {
			return nil, fmt.Errorf("nats request: %w", err)
		}
		return decodeReply(reply.Data)
	}

	result, err := resilience.Call(ctx, q.executor, "nats.split", call, classifyNATSError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded(err)
	}
	return result, nil
}

// ServeSplitRequests answers split requests until ctx is cancelled, then
// drains the subscription.
func (q *Queue) ServeSplitRequests(ctx context.Context, handler func(context.Context, domain.SplitRequest) (*domain.SplitResult, error)) error {
	sub, err := q.conn.QueueSubscribe(q.subject, q.group, func(msg *nats.Msg) {
		handlerCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		reply := handleRequest(handlerCtx, msg.Data, handler)
		if msg.Reply == "" {
			slog.Warn("nats_split_request_without_reply", "subject", msg.Subject)
			return
		}
		if err := msg.Respond(reply); err != nil {
			slog.Error("nats_split_reply_failed", "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}
