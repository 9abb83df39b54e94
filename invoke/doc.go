// Package invoke adapts business functions into API Gateway proxy handlers
// for the aws-lambda-go runtime.
//
// Each invocation gets its own response.Handler whose context info carries
// the request id. Errors returned by the function and recovered panics are
// funneled through Handler.HandleError, so the runtime always receives a
// well-formed proxy response:
//
//	lambda.Start(invoke.Wrap(func(ctx context.Context, req events.APIGatewayProxyRequest, h *response.Handler) error {
//	    if err := h.CheckMissingParams(req.QueryStringParameters); err != nil {
//	        return err
//	    }
//	    return h.RespondJSON(http.StatusOK, result)
//	}))
package invoke
