package request

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrClientNotIdentified = errors.New("client not identified")
)

type Context struct {
	request        *http.Request
	responseWriter http.ResponseWriter

	endpoint string

	identified bool
	clientId   string
}

func NewContext(request *http.Request, response http.ResponseWriter, endpoint string) *Context {
	return &Context{
		request:        request,
		responseWriter: response,
		endpoint:       endpoint,
	}
}

func (c *Context) Request() *http.Request {
	return c.request
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.responseWriter
}

func (c *Context) SetResponseWriter(writer http.ResponseWriter) {
	c.responseWriter = writer
}

func (c *Context) Endpoint() string {
	return c.endpoint
}

func (c *Context) Identify(clientId string) {
	c.identified = true
	c.clientId = clientId
}

func (c *Context) ClientId() (string, error) {
	if !c.identified {
		return "", ErrClientNotIdentified
	}
	return c.clientId, nil
}

func (c *Context) Context() context.Context {
	return c.request.Context()
}

func (c *Context) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}
