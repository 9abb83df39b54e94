// Command example-handler is a sample API Gateway proxy function built on
// lambdakit. It runs under the Lambda runtime when deployed and as a local
// HTTP server otherwise.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/kbukum/lambdakit/config"
	"github.com/kbukum/lambdakit/invoke"
	"github.com/kbukum/lambdakit/logger"
	"github.com/kbukum/lambdakit/response"
	"github.com/kbukum/lambdakit/server"
	"github.com/kbukum/lambdakit/version"
)

const serviceName = "example-handler"

// Config is the example handler configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server               server.Config `yaml:"server" mapstructure:"server"`
}

// greetRequest is the body accepted by POST /greetings.
type greetRequest struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
}

var greetings = map[string]string{
	"en": "Hello",
	"de": "Hallo",
	"tr": "Merhaba",
}

func greet(_ context.Context, req events.APIGatewayProxyRequest, h *response.Handler) error {
	var in greetRequest
	if err := json.Unmarshal([]byte(req.Body), &in); err != nil {
		return h.RaiseError("ERR_BODY", http.StatusBadRequest, err.Error())
	}
	if err := h.CheckMissingParams(in); err != nil {
		return err
	}

	word, ok := greetings[*in.Language]
	if !ok {
		return h.RaiseError("ERR_LANGUAGE", http.StatusUnprocessableEntity, *in.Language)
	}
	return h.RespondJSON(http.StatusOK, map[string]string{"greeting": word + ", " + *in.Name})
}

func main() {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		logger.Fatal("Failed to load config", logger.ErrorFields("config", err))
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}
	cfg.ApplyDefaults()
	cfg.Server.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", logger.ErrorFields("config", err))
	}
	if err := cfg.Server.Validate(); err != nil {
		logger.Fatal("Invalid server config", logger.ErrorFields("config", err))
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.Get(cfg.Name)
	log.Info("Starting", map[string]interface{}{"version": cfg.Version, "function_version": version.Get().FunctionVersion})

	handler := invoke.Wrap(greet,
		invoke.WithStatusCode(cfg.Response.StatusCode),
		invoke.WithCustomErrors(customErrors().Merge(cfg.Response.Registry())),
		invoke.WithContextInfo(map[string]any{"service": cfg.Name, "version": cfg.Version}),
		invoke.WithLogger(log),
	)

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(handler)
		return
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.Mount(http.MethodPost, "/greetings", server.ProxyFunc(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", logger.ErrorFields("start", err))
	}
	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Failed to stop server", logger.ErrorFields("stop", err))
	}
}
