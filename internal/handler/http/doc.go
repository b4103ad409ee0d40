// Package http implements the HTTP transport layer of the account service.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as request tracing, access logging, and
// response compression are handled in this package before requests are
// delegated to the service layer.
//
// Every handled request is answered with HTTP 200 and a JSON envelope
// carrying a success flag and a human-readable message; transport-level
// status codes are reserved for malformed requests.
package http
