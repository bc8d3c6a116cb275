// Package transport is the OSC client used to talk to AbletonOSC.
//
// Commands are sent from a UDP socket bound to the listen port, which is also where
// AbletonOSC delivers replies. A query waits for the next reply carrying the same
// address as the request.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chabad360/go-osc/osc"
	"github.com/charmbracelet/log"

	"liveconsole/internal/logger"
	"liveconsole/internal/parser"
)

// ErrorAddress is where AbletonOSC reports failed commands.
const ErrorAddress = "/live/error"

// Defaults match the AbletonOSC remote script.
const (
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 11000
	DefaultListenPort = 11001
	DefaultTimeout    = 250 * time.Millisecond
)

const maxDatagram = 65535

var (
	// ErrRequest is returned by Query when no usable reply arrives.
	ErrRequest = errors.New("request failed")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("transport closed")
)

// Config describes where to send commands and where to listen for replies.
type Config struct {
	Host       string
	Port       int
	ListenPort int
	Timeout    time.Duration
	Verbose    bool
	// Logger receives traffic and remote error reports. Defaults to an "OSC" styled logger.
	Logger *log.Logger
}

// Client sends OSC commands and correlates query replies by address.
type Client struct {
	conn    *net.UDPConn
	remote  *net.UDPAddr
	timeout time.Duration
	log     *log.Logger
	verbose atomic.Bool

	mu      sync.Mutex
	waiters map[string]chan []any

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// Dial binds the listen port, resolves the remote address and starts receiving replies.
func Dial(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	remote, err := net.ResolveUDPAddr("udp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("resolve %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: cfg.ListenPort})
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.ListenPort, err)
	}

	l := cfg.Logger
	if l == nil {
		l = logger.NewStyledLogger("OSC")
	}

	c := &Client{
		conn:    conn,
		remote:  remote,
		timeout: cfg.Timeout,
		log:     l,
		waiters: make(map[string]chan []any),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	c.SetVerbose(cfg.Verbose)

	go c.receive()

	logger.Debug("OSC transport ready", "remote", remote.String(), "listen", conn.LocalAddr().String())
	return c, nil
}

// LocalAddr returns the bound listen address.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// SetVerbose toggles logging of every outgoing and incoming message.
func (c *Client) SetVerbose(verbose bool) {
	c.verbose.Store(verbose)
	if verbose && c.log.GetLevel() > log.InfoLevel {
		c.log.SetLevel(log.InfoLevel)
	}
}

// Send transmits a command without waiting for a reply.
func (c *Client) Send(path string, args ...any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	msg := osc.NewMessage(path)
	for _, arg := range args {
		msg.Append(arg)
	}

	data, err := msg.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if c.verbose.Load() {
		c.log.Info("send", "address", path, "args", parser.FormatResponse(args))
	}

	if _, err := c.conn.WriteToUDP(data, c.remote); err != nil {
		return fmt.Errorf("send %s: %w", path, err)
	}
	return nil
}

// Query sends a command and blocks until a reply with the same address arrives,
// ctx is done, or the client timeout elapses. Failures to get a reply wrap ErrRequest.
func (c *Client) Query(ctx context.Context, path string, args ...any) ([]any, error) {
	reply := make(chan []any, 1)

	c.mu.Lock()
	c.waiters[path] = reply
	c.mu.Unlock()
	defer c.release(path, reply)

	if err := c.Send(path, args...); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	select {
	case values := <-reply:
		return values, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: no response to %s: %w", ErrRequest, path, ctx.Err())
	case <-c.done:
		return nil, ErrClosed
	}
}

// release drops the waiter for path if it is still the one registered by this call.
func (c *Client) release(path string, reply chan []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiters[path] == reply {
		delete(c.waiters, path)
	}
}

// Close stops the receive loop and releases the socket.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
		<-c.stopped
	})
	return err
}

func (c *Client) receive() {
	defer close(c.stopped)

	buf := make([]byte, maxDatagram)
	for {
		n, from, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			c.log.Debug("read failed", "error", err)
			continue
		}

		packet, err := osc.ParsePacket(string(buf[:n]))
		if err != nil {
			c.log.Debug("dropping undecodable packet", "from", from.String(), "error", err)
			continue
		}

		msg, ok := packet.(*osc.Message)
		if !ok {
			c.log.Debug("ignoring non-message packet", "from", from.String())
			continue
		}
		c.deliver(msg.Address, msg.Arguments)
	}
}

func (c *Client) deliver(address string, args []any) {
	if c.verbose.Load() {
		c.log.Info("recv", "address", address, "args", parser.FormatResponse(args))
	}

	if address == ErrorAddress {
		c.log.Warn("error from Live", "error", parser.FormatResponse(args))
	}

	c.mu.Lock()
	reply, ok := c.waiters[address]
	if ok {
		delete(c.waiters, address)
	}
	c.mu.Unlock()

	if !ok {
		c.log.Debug("unsolicited message", "address", address)
		return
	}
	reply <- args
}
