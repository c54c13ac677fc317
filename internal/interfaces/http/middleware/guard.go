// Package middleware implements the request admission pipeline. Each stage is
// a Guard producing an explicit Decision; Chain folds guards into a single
// gin handler that stops at the first terminal decision.
package middleware

import "github.com/gin-gonic/gin"

// Decision is a guard's verdict on one request. A terminal decision carries
// the response to send; a continuing decision may carry context values and
// headers to attach before the next stage runs.
type Decision struct {
	terminal bool
	status   int
	body     interface{}
	headers  map[string]string
	values   map[string]interface{}
}

// Continue admits the request to the next stage.
func Continue() Decision {
	return Decision{}
}

// Terminate rejects the request with the given status and JSON body.
func Terminate(status int, body interface{}) Decision {
	return Decision{terminal: true, status: status, body: body}
}

// WithValue attaches a context value set when the decision is applied.
func (d Decision) WithValue(key string, value interface{}) Decision {
	if d.values == nil {
		d.values = make(map[string]interface{})
	}
	d.values[key] = value
	return d
}

// WithHeader attaches a response header. Headers are applied for terminal and
// continuing decisions alike, so limiters can expose quota on success too.
func (d Decision) WithHeader(key, value string) Decision {
	if d.headers == nil {
		d.headers = make(map[string]string)
	}
	d.headers[key] = value
	return d
}

// Terminal reports whether the decision ends the request.
func (d Decision) Terminal() bool { return d.terminal }

// Status returns the response status of a terminal decision.
func (d Decision) Status() int { return d.status }

// Guard is one stage of the admission pipeline.
type Guard interface {
	// Name identifies the guard in logs and metrics.
	Name() string
	// Admit inspects the request and decides whether it proceeds. Guards
	// must not write to the response themselves; the chain applies the
	// decision.
	Admit(c *gin.Context) Decision
}

// Chain folds guards into a single handler. Guards run in the given order and
// the first terminal decision aborts the request; later guards never see it.
func Chain(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, g := range guards {
			d := g.Admit(c)
			for k, v := range d.headers {
				c.Header(k, v)
			}
			if d.terminal {
				c.AbortWithStatusJSON(d.status, d.body)
				return
			}
			for k, v := range d.values {
				c.Set(k, v)
			}
		}
		c.Next()
	}
}
