package rpc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/sweep/internal/app"
)

// HandlerFunc implements one RPC method (§4.5's method table). result is
// marshaled verbatim into the response's `result` field; a non-nil err
// becomes the response's `error` field instead.
type HandlerFunc func(params json.RawMessage) (result any, err *Error)

// Dispatcher serializes request processing for one Peer (§4.5
// Concurrency: "requests are processed serially per peer in arrival
// order; responses are emitted in the same order") while allowing event
// emission to interleave freely from other goroutines (guarded by the
// Peer's own write mutex).
type Dispatcher struct {
	peer     *Peer
	handlers map[string]HandlerFunc
	log      *app.Logger
}

// NewDispatcher creates a Dispatcher bound to peer.
func NewDispatcher(peer *Peer, log *app.Logger) *Dispatcher {
	if log == nil {
		log = app.GetLogger()
	}
	return &Dispatcher{
		peer:     peer,
		handlers: make(map[string]HandlerFunc),
		log:      log.WithComponent("rpc"),
	}
}

// Register binds method to h.
func (d *Dispatcher) Register(method string, h HandlerFunc) {
	d.handlers[method] = h
}

// Serve reads and dispatches frames until the peer closes or a fatal I/O
// error occurs. Malformed JSON closes the peer (§7.2); everything else
// (unknown method, bad params) is reported as a JSON-RPC error response
// and the loop continues.
func (d *Dispatcher) Serve() error {
	for {
		raw, err := d.peer.ReadMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("rpc: read: %w", err)
		}
		if len(raw) == 0 {
			continue
		}
		if err := d.dispatch(raw); err != nil {
			return err
		}
	}
}

func (d *Dispatcher) dispatch(raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("rpc: malformed JSON from peer, closing")
	}

	// Peek id/method cheaply via gjson before deciding whether (and how)
	// to fully unmarshal, mirroring the probe step of the teacher's LSP
	// transport but via path queries instead of a second full Unmarshal.
	idResult := gjson.GetBytes(raw, "id")
	methodResult := gjson.GetBytes(raw, "method")
	isRequest := idResult.Exists()
	method := methodResult.String()

	if method == "" {
		// Not a request/notification we originate calls against; peers
		// never send us bare responses, so this is malformed input.
		if isRequest {
			return d.writeError(idResult.Raw, NewError(CodeInvalidRequest, "missing method"))
		}
		d.log.Warn("dropping frame with no method")
		return nil
	}

	handler, ok := d.handlers[method]
	if !ok {
		if isRequest {
			return d.writeError(idResult.Raw, NewError(CodeMethodNotFound, "unknown method: "+method))
		}
		d.log.WithField("method", method).Warn("dropping notification for unknown method")
		return nil
	}

	paramsResult := gjson.GetBytes(raw, "params")
	var params json.RawMessage
	if paramsResult.Exists() {
		params = json.RawMessage(paramsResult.Raw)
	}

	result, rpcErr := handler(params)
	if !isRequest {
		// Notification: effects apply, but no response is ever sent.
		if rpcErr != nil {
			d.log.WithField("method", method).WithField("error", rpcErr.Message).Warn("notification handler failed")
		}
		return nil
	}
	if rpcErr != nil {
		return d.writeError(idResult.Raw, rpcErr)
	}
	return d.writeResult(idResult.Raw, result)
}

// Emit sends an id-less event frame (`ready`, `select`, `bind`, §4.5).
// Safe to call concurrently with Serve and with other Emit calls.
func (d *Dispatcher) Emit(method string, params any) error {
	frame, err := sjson.SetBytes([]byte(`{}`), "jsonrpc", "2.0")
	if err != nil {
		return err
	}
	frame, err = sjson.SetBytes(frame, "method", method)
	if err != nil {
		return err
	}
	if params != nil {
		frame, err = sjson.SetBytes(frame, "params", params)
		if err != nil {
			return err
		}
	}
	return d.peer.WriteMessage(frame)
}

func (d *Dispatcher) writeResult(idRaw []byte, result any) error {
	frame, err := sjson.SetBytes([]byte(`{}`), "jsonrpc", "2.0")
	if err != nil {
		return err
	}
	frame, err = sjson.SetRawBytes(frame, "id", idRaw)
	if err != nil {
		return err
	}
	if result == nil {
		frame, err = sjson.SetRawBytes(frame, "result", []byte("null"))
	} else {
		frame, err = sjson.SetBytes(frame, "result", result)
	}
	if err != nil {
		return err
	}
	return d.peer.WriteMessage(frame)
}

func (d *Dispatcher) writeError(idRaw []byte, rpcErr *Error) error {
	frame, err := sjson.SetBytes([]byte(`{}`), "jsonrpc", "2.0")
	if err != nil {
		return err
	}
	if len(idRaw) > 0 {
		frame, err = sjson.SetRawBytes(frame, "id", idRaw)
	} else {
		frame, err = sjson.SetRawBytes(frame, "id", []byte("null"))
	}
	if err != nil {
		return err
	}
	frame, err = sjson.SetBytes(frame, "error.code", rpcErr.Code)
	if err != nil {
		return err
	}
	frame, err = sjson.SetBytes(frame, "error.message", rpcErr.Message)
	if err != nil {
		return err
	}
	return d.peer.WriteMessage(frame)
}
