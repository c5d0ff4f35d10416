package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// maxReplyBytes caps how much of a provider reply is decoded. Completions are
// short; anything larger is a misbehaving proxy.
const maxReplyBytes = 4 << 20

// transport is the wire half of a completer: one provider, one resilient
// client, every failure already translated into a domain error.
type transport struct {
	client  *clients.Client
	service string
}

func newTransport(client *clients.Client, service string) transport {
	return transport{client: client, service: service}
}

// postJSON sends in as JSON to path and decodes the reply into Out.
// Transport failures and error statuses come back through MapHTTPError; an
// undecodable reply is a domain.ParseError.
func postJSON[Out any](ctx context.Context, t transport, op, path string, header http.Header, in any) (*Out, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", op, err)
	}

	req, err := t.client.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(ctx, req)
	if err != nil {
		return nil, MapHTTPError(nil, err, t.service, op)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, MapHTTPError(resp, nil, t.service, op)
	}

	var out Out
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&out); err != nil {
		return nil, domain.NewParseError(op, err)
	}

	return &out, nil
}
