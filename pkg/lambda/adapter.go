package lambda

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"serverless-gin-api/internal/metrics"
)

// Application is anything that serves HTTP through a gin engine
type Application interface {
	Engine() *gin.Engine
}

// Factory builds the Application. It runs once per execution context and
// again only after a failed attempt.
type Factory func(ctx context.Context) (Application, error)

// concurrencySafe is implemented by applications that accept parallel dispatch
type concurrencySafe interface {
	ConcurrencySafe() bool
}

// ErrNoApplication is returned when a factory yields neither an application nor an error
var ErrNoApplication = errors.New("application factory returned no application")

const constructionKey = "application"

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used for per-invocation logs
func WithLogger(logger *logrus.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Adapter turns API Gateway events into requests against a lazily built Application.
// It starts Cold and becomes Warm after the first successful construction;
// it never goes back to Cold.
type Adapter struct {
	factory Factory
	logger  *logrus.Logger

	group singleflight.Group
	mu    sync.RWMutex
	proxy *proxy
}

// NewAdapter creates an adapter around factory. Nothing is constructed until the first invocation.
func NewAdapter(factory Factory, opts ...Option) *Adapter {
	a := &Adapter{
		factory: factory,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsWarm reports whether the application has been constructed
func (a *Adapter) IsWarm() bool {
	return a.cached() != nil
}

// Start hands the adapter to the Lambda runtime. It does not return.
func (a *Adapter) Start() {
	lambda.Start(a.Handle)
}

// HandleAPIGateway serves a REST API (payload v1) event
func (a *Adapter) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	p, coldStart, err := a.warm(ctx)
	log := a.invocationLogger(ctx, FormatV1, coldStart)
	if err != nil {
		log.WithError(err).Error("Invocation failed: application unavailable")
		metrics.RecordInvocation(FormatV1, metrics.OutcomeConstructionError)
		return events.APIGatewayProxyResponse{}, err
	}

	resp, err := p.serveV1(ctx, req)
	if err != nil {
		log.WithError(err).Error("Failed to translate API Gateway event")
		metrics.RecordInvocation(FormatV1, metrics.OutcomeDispatchError)
		return badGatewayV1(ctx), nil
	}

	metrics.RecordInvocation(FormatV1, metrics.OutcomeSuccess)
	log.WithFields(logrus.Fields{
		"method":      req.HTTPMethod,
		"path":        req.Path,
		"status_code": resp.StatusCode,
	}).Debug("Invocation completed")
	return resp, nil
}

// HandleHTTPAPI serves an HTTP API (payload v2) event
func (a *Adapter) HandleHTTPAPI(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	p, coldStart, err := a.warm(ctx)
	log := a.invocationLogger(ctx, FormatV2, coldStart)
	if err != nil {
		log.WithError(err).Error("Invocation failed: application unavailable")
		metrics.RecordInvocation(FormatV2, metrics.OutcomeConstructionError)
		return events.APIGatewayV2HTTPResponse{}, err
	}

	resp, err := p.serveV2(ctx, req)
	if err != nil {
		log.WithError(err).Error("Failed to translate HTTP API event")
		metrics.RecordInvocation(FormatV2, metrics.OutcomeDispatchError)
		return badGatewayV2(ctx), nil
	}

	metrics.RecordInvocation(FormatV2, metrics.OutcomeSuccess)
	log.WithFields(logrus.Fields{
		"method":      req.RequestContext.HTTP.Method,
		"path":        req.RawPath,
		"status_code": resp.StatusCode,
	}).Debug("Invocation completed")
	return resp, nil
}

func (a *Adapter) cached() *proxy {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.proxy
}

// warm returns the cached proxy, constructing it first when Cold. Concurrent
// Cold callers share one construction. A caller whose context ends stops
// waiting while the construction carries on for the others.
func (a *Adapter) warm(ctx context.Context) (*proxy, bool, error) {
	if p := a.cached(); p != nil {
		return p, false, nil
	}

	buildCtx := context.WithoutCancel(ctx)
	ch := a.group.DoChan(constructionKey, func() (interface{}, error) {
		if p := a.cached(); p != nil {
			return p, nil
		}

		p, err := a.construct(buildCtx)
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.proxy = p
		a.mu.Unlock()
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, true, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, true, res.Err
		}
		return res.Val.(*proxy), true, nil
	}
}

// construct runs the factory, turning panics and empty results into errors
func (a *Adapter) construct(ctx context.Context) (p *proxy, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("application factory panicked: %v", r)
		}
		metrics.RecordConstruction(time.Since(start), err)

		fields := logrus.Fields{"duration_ms": time.Since(start).Milliseconds()}
		if err != nil {
			a.logger.WithFields(fields).WithError(err).Error("Application construction failed")
			return
		}
		a.logger.WithFields(fields).Info("Application constructed")
	}()

	app, err := a.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("application construction failed: %w", err)
	}
	if app == nil || app.Engine() == nil {
		return nil, ErrNoApplication
	}

	return newProxy(app), nil
}

func (a *Adapter) invocationLogger(ctx context.Context, format string, coldStart bool) *logrus.Entry {
	fields := logrus.Fields{
		"event_format": format,
		"cold_start":   coldStart,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
		fields["function_arn"] = lc.InvokedFunctionArn
	}
	if deadline, ok := ctx.Deadline(); ok {
		fields["remaining_ms"] = time.Until(deadline).Milliseconds()
	}
	return a.logger.WithFields(fields)
}
