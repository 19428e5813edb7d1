package lambda

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

// proxy is the cached translation layer over one application's engine
type proxy struct {
	v1 *ginadapter.GinLambda
	v2 *ginadapter.GinLambdaV2

	// serialize is set unless the application declares itself concurrency-safe
	serialize bool
	mu        sync.Mutex
}

func newProxy(app Application) *proxy {
	engine := app.Engine()

	serialize := true
	if cs, ok := app.(concurrencySafe); ok && cs.ConcurrencySafe() {
		serialize = false
	}

	return &proxy{
		v1:        ginadapter.New(engine),
		v2:        ginadapter.NewV2(engine),
		serialize: serialize,
	}
}

func (p *proxy) acquire() func() {
	if !p.serialize {
		return func() {}
	}
	p.mu.Lock()
	return p.mu.Unlock
}

func (p *proxy) serveV1(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	defer p.acquire()()
	return p.v1.ProxyWithContext(ctx, req)
}

func (p *proxy) serveV2(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	defer p.acquire()()
	return p.v2.ProxyWithContext(ctx, req)
}
