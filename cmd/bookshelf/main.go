// Command bookshelf runs the book catalog API.
//
// By default it starts as an AWS Lambda function behind an API Gateway proxy
// integration. When HTTP_ADDR is set it serves the same routes over HTTP
// instead, which together with DYNAMODB_ENDPOINT allows running against
// DynamoDB Local:
//
//	TABLE_NAME=books HTTP_ADDR=:8080 DYNAMODB_ENDPOINT=http://localhost:8000 bookshelf
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nisimpson/bookshelf"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logger := bootstrapLogger()
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, err := newRouter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create router")
	}

	if cfg.HTTPAddr == "" {
		lambda.Start(router.Handle)
		return
	}

	if err := serve(ctx, cfg.HTTPAddr, router, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newRouter(ctx context.Context, cfg *Config, logger zerolog.Logger) (*bookshelf.Router, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	store := bookshelf.NewDynamoStore(client, bookshelf.NewTable(cfg.TableName))
	return bookshelf.NewRouter(store, func(o *bookshelf.RouterOptions) {
		o.Logger = logger
		o.Collection = cfg.Collection
	}), nil
}

// serve runs handler on addr until ctx is cancelled, then drains
// in-flight requests.
func serve(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
