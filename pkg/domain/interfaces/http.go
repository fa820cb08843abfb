package interfaces

import "net/http"

// HTTPClient sends webhook requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
