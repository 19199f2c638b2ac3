package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/erraggy/conjurego/wire"
)

// maxErrorBody bounds how much of a non-success response body is kept.
const maxErrorBody = 1 << 20

// Do sends a request through c. A Client failure becomes a *TransportError.
// A non-2xx response becomes a *ServiceError; its body is read and closed.
// On success the caller owns the response body.
func Do(ctx context.Context, c Client, method, path string, pathParams PathParams, queryParams QueryParams, headers http.Header, body Body) (Response, error) {
	if body == nil {
		body = EmptyBody()
	}
	resp, err := c.Request(ctx, method, path, pathParams, queryParams, headers, body)
	if err != nil {
		if errors.Is(err, ErrTransport) || errors.Is(err, ErrService) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, &TransportError{Method: method, Path: path, Cause: err}
	}
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, newServiceError(resp)
	}
	return resp, nil
}

func newServiceError(resp Response) *ServiceError {
	serr := &ServiceError{StatusCode: resp.StatusCode()}
	rc := resp.Body()
	if rc == nil {
		return serr
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxErrorBody))
	if err != nil {
		return serr
	}
	serr.Body = data

	var envelope struct {
		ErrorCode       *string `json:"errorCode"`
		ErrorName       *string `json:"errorName"`
		ErrorInstanceID *string `json:"errorInstanceId"`
	}
	s := wire.NewStream(bytes.NewReader(data))
	if wire.DecodeValue(s.Standard(), &envelope) == nil {
		serr.ErrorCode = deref(envelope.ErrorCode)
		serr.ErrorName = deref(envelope.ErrorName)
		serr.ErrorInstanceID = deref(envelope.ErrorInstanceID)
	}
	return serr
}

// DecodeJSON decodes the body of a successful response into v and closes it.
// A decode failure is an *InternalError.
func DecodeJSON(resp Response, v any) error {
	rc := resp.Body()
	if rc == nil {
		return &InternalError{Op: "decode response body", Cause: io.ErrUnexpectedEOF}
	}
	defer rc.Close()
	if err := wire.Decode(rc, v); err != nil {
		return &InternalError{Op: "decode response body", Cause: err}
	}
	return nil
}

// DiscardBody drains and closes the body of resp.
func DiscardBody(resp Response) {
	rc := resp.Body()
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}

// IsNoContent reports whether resp has status 204.
func IsNoContent(resp Response) bool {
	return resp.StatusCode() == http.StatusNoContent
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
