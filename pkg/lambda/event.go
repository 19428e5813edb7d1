package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/tidwall/gjson"

	"serverless-gin-api/internal/middleware"
)

// Event payload formats
const (
	FormatV1 = "v1"
	FormatV2 = "v2"
)

// ErrInvalidEvent is returned for payloads that are not JSON objects
var ErrInvalidEvent = errors.New("invalid event payload")

// DetectFormat reports whether payload is an HTTP API v2 event or a REST API v1 event
func DetectFormat(payload []byte) string {
	if gjson.GetBytes(payload, "version").String() == "2.0" {
		return FormatV2
	}
	return FormatV1
}

// Handle serves a raw API Gateway event of either payload format
func (a *Adapter) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	if !gjson.ValidBytes(payload) || !gjson.ParseBytes(payload).IsObject() {
		return nil, ErrInvalidEvent
	}

	switch DetectFormat(payload) {
	case FormatV2:
		var req events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("failed to decode HTTP API event: %w", err)
		}
		return a.HandleHTTPAPI(ctx, req)
	default:
		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("failed to decode API Gateway event: %w", err)
		}
		return a.HandleAPIGateway(ctx, req)
	}
}

func badGatewayBody(ctx context.Context) string {
	resp := middleware.ErrorResponse{
		Error:     "Bad Gateway",
		Message:   "The request could not be translated for the application",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		resp.RequestID = lc.AwsRequestID
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return `{"error":"Bad Gateway"}`
	}
	return string(body)
}

func badGatewayV1(ctx context.Context) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusBadGateway,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       badGatewayBody(ctx),
	}
}

func badGatewayV2(ctx context.Context) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusBadGateway,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       badGatewayBody(ctx),
	}
}
