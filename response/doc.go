// Package response builds API Gateway proxy responses for lambda handlers
// and funnels every failure into a uniform JSON error body.
//
// A Handler is created once per invocation. Business code raises
// structured errors with RaiseError or CheckMissingParams and returns
// them; the entry point passes whatever error comes back to HandleError,
// which writes the status code and body:
//
//	h := response.New(http.StatusOK, response.WithContextInfo(map[string]any{"requestId": id}))
//	if err := run(h, req); err != nil {
//	    h.HandleError(err)
//	}
//	return h.Response(), nil
//
// The emitted body has the shape
//
//	{"code": "...", "message": "...", "detail": ..., "time": "2006-01-02T15:04:05.000Z", ...contextInfo}
package response
