// Package server runs proxy handlers behind a local HTTP server for
// development and integration tests.
//
// Incoming requests are translated into API Gateway proxy events, passed
// to the mounted handler, and the proxy response is written back. Routes
// use API Gateway resource syntax:
//
//	srv := server.New(cfg, log)
//	srv.ApplyMiddleware()
//	srv.Mount(http.MethodPost, "/users/{id}", invoke.Wrap(createUser))
//	_ = srv.Start(ctx)
package server
