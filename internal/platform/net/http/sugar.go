package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		out, err := h(req)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	}))
}

// PostRaw mounts a handler that receives the raw request and returns a Response
// Webhook deliveries need the untouched body for signature checks, so no JSON binding happens here
func PostRaw(r Router, path string, h func(*http.Request) Response) {
	r.Post(path, Handle(h))
}
