// Package response holds the payload kinds a handler can return to control how its result is written.
package response

const HTMLContentType = "text/html; charset=utf-8"

// HTML is written verbatim as the response body with an HTML content type. An empty HTML yields an empty body.
type HTML string
