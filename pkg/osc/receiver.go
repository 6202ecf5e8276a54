// Package osc receives style control messages over UDP and feeds them
// into the control ring. Everything here runs on a background thread:
// it may block, allocate and log freely, and it never touches engine
// state directly — decoded messages travel through the single-producer
// ring and become live at the next drain tick.
package osc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/stylego/pkg/framework/control"
)

// Style control addresses. These mirror the control-plane clients the
// plugin is driven by.
const (
	AddrSwing            = "/style/swing"
	AddrAccent           = "/style/accent"
	AddrHumanizeTiming   = "/style/humanizeTiming"
	AddrHumanizeVelocity = "/style/humanizeVelocity"
	AddrEnable           = "/style/enable"
	AddrPing             = "/style/ping"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Receiver listens for OSC datagrams and produces control messages.
// It is the ring's sole producer.
type Receiver struct {
	port  int
	ring  *control.Ring
	log   *logrus.Logger
	epoch time.Time

	server *osc.Server
}

// NewReceiver creates a receiver pushing into ring. log may be nil, in
// which case the standard logger is used.
func NewReceiver(port int, ring *control.Ring, log *logrus.Logger) (*Receiver, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Receiver{
		port:  port,
		ring:  ring,
		log:   log,
		epoch: time.Now(),
	}

	d := osc.NewStandardDispatcher()
	handlers := map[string]osc.HandlerFunc{
		AddrSwing:            r.floatHandler(control.SetSwing),
		AddrAccent:           r.floatHandler(control.SetAccent),
		AddrHumanizeTiming:   r.floatHandler(control.SetHumanizeTiming),
		AddrHumanizeVelocity: r.floatHandler(control.SetHumanizeVelocity),
		AddrEnable:           r.boolHandler(control.SetEnable),
		AddrPing: func(msg *osc.Message) {
			r.log.WithField("address", msg.Address).Debug("ping")
		},
	}
	for addr, h := range handlers {
		if err := d.AddMsgHandler(addr, h); err != nil {
			return nil, fmt.Errorf("registering handler %s: %w", addr, err)
		}
	}

	r.server = &osc.Server{Dispatcher: d}
	return r, nil
}

// Run binds the UDP port and serves until ctx is cancelled. Bind
// failures are retried with exponential backoff; they never surface
// into the audio path. The socket is released before Run returns.
func (r *Receiver) Run(ctx context.Context) error {
	backoff := initialBackoff
	addr := fmt.Sprintf("127.0.0.1:%d", r.port)

	for {
		conn, err := net.ListenPacket("udp", addr)
		if err != nil {
			r.log.WithError(err).WithField("addr", addr).Warn("osc: bind failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff
		r.log.WithField("addr", addr).Info("osc: listening")

		errCh := make(chan error, 1)
		go func() {
			errCh <- r.server.Serve(conn)
		}()

		select {
		case <-ctx.Done():
			conn.Close()
			<-errCh
			r.log.Info("osc: stopped")
			return ctx.Err()
		case err := <-errCh:
			conn.Close()
			if err != nil {
				r.log.WithError(err).Warn("osc: serve failed, restarting")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
}

func (r *Receiver) now() float64 {
	return time.Since(r.epoch).Seconds()
}

func (r *Receiver) push(m control.Message) {
	if !r.ring.Push(m) {
		// Ring saturated: drop silently, the next update supersedes.
		// Logging here is fine, this is the producer thread.
		r.log.WithField("address", m.Address.String()).Debug("osc: control ring full, dropped")
	}
}

func (r *Receiver) floatHandler(addr control.Address) osc.HandlerFunc {
	return func(msg *osc.Message) {
		v, ok := floatArg(msg)
		if !ok {
			r.log.WithField("address", msg.Address).Warn("osc: expected float argument")
			return
		}
		r.push(control.FloatMessage(addr, v, r.now()))
	}
}

func (r *Receiver) boolHandler(addr control.Address) osc.HandlerFunc {
	return func(msg *osc.Message) {
		v, ok := boolArg(msg)
		if !ok {
			r.log.WithField("address", msg.Address).Warn("osc: expected bool argument")
			return
		}
		r.push(control.BoolMessage(addr, v, r.now()))
	}
}

// floatArg coerces the first OSC argument to a float64. OSC clients
// variously send f, d and i for numeric parameters.
func floatArg(msg *osc.Message) (float64, bool) {
	if len(msg.Arguments) == 0 {
		return 0, false
	}
	switch v := msg.Arguments[0].(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// boolArg coerces the first OSC argument to a bool, accepting the
// T/F tags and the common integer encoding.
func boolArg(msg *osc.Message) (bool, bool) {
	if len(msg.Arguments) == 0 {
		return false, false
	}
	switch v := msg.Arguments[0].(type) {
	case bool:
		return v, true
	case int32:
		return v != 0, true
	case int64:
		return v != 0, true
	case float32:
		return v != 0, true
	default:
		return false, false
	}
}
