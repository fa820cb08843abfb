package domain

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagConfiguration marks invalid forwarder or CLI settings such as a missing webhook URL.
	ErrTagConfiguration = goerr.NewTag("configuration")
	// ErrTagTransport marks failures of the webhook request, including non-2xx responses.
	ErrTagTransport = goerr.NewTag("transport")
	// ErrTagSerialization marks context values or payloads that cannot be encoded as JSON.
	ErrTagSerialization = goerr.NewTag("serialization")
)
