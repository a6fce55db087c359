// Package api exposes card extraction over HTTP. Handlers decode and
// validate requests, call a generation.Generator, and translate its results
// and errors into JSON responses.
package api
