package places

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

// Transport performs a single HTTP exchange. It is injected so that tests
// can script responses and failures without touching the network.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

type fasthttpTransport struct {
	timeout time.Duration
}

// NewTransport returns the production fasthttp-backed Transport. The timeout
// applies when the context carries no deadline of its own.
func NewTransport(timeout time.Duration) Transport {
	return &fasthttpTransport{timeout: timeout}
}

func (t *fasthttpTransport) Do(ctx context.Context, r *Request) (*Response, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetMethod(r.Method)
	req.Header.SetContentType("application/json")
	req.SetRequestURI(r.URL)
	for name, value := range r.Headers {
		req.Header.Set(name, value)
	}
	if len(r.Body) > 0 {
		req.SetBody(r.Body)
	}

	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(t.timeout)
	}

	if err := fasthttp.DoDeadline(req, res, deadline); err != nil {
		return nil, err
	}

	body := make([]byte, len(res.Body()))
	copy(body, res.Body())

	return &Response{StatusCode: res.StatusCode(), Body: body}, nil
}
