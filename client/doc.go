// Package client is the runtime used by generated Conjure client bindings.
//
// Generated code builds each request from the pieces in this package and
// sends it through a [Client]:
//
//	pathParams := client.PathParams{}
//	pathParams.Insert("thingId", client.ToPlain(thingID))
//	queryParams := client.QueryParams{}
//	headers := http.Header{}
//	client.AddHeader(headers, "Accept", client.ContentTypeJSON)
//	resp, err := client.Do(ctx, c, http.MethodGet, "/things/{thingId}",
//	    pathParams, queryParams, headers, client.EmptyBody())
//
// [Client] is the transport capability. [NewHTTPClient] provides one over
// net/http; any other implementation (for retries, tracing or tests) can be
// substituted.
//
// # Errors
//
// Calls surface exactly three error categories, each matched with errors.Is
// against a sentinel and with errors.As against its type:
//
//   - [TransportError] / [ErrTransport]: the request could not be sent or
//     no response was received
//   - [ServiceError] / [ErrService]: the server answered with a non-2xx
//     status; the body is kept raw
//   - [InternalError] / [ErrInternal]: a request body could not be encoded or
//     a successful response body could not be decoded
package client
