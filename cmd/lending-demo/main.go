// Command lending-demo runs the lending service end to end against a chosen
// store backend and the simulated payment gateway, printing each operation's
// result and the final patron status report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/log/global"

	"github.com/libraryops/library-lending-go/config"
	"github.com/libraryops/library-lending-go/lending"
	"github.com/libraryops/library-lending-go/lending/gormstore"
	"github.com/libraryops/library-lending-go/lending/memorystore"
	"github.com/libraryops/library-lending-go/lending/oteladapters"
	"github.com/libraryops/library-lending-go/lending/postgresstore"
	"github.com/libraryops/library-lending-go/paymentsim"
	"github.com/libraryops/library-lending-go/service"
)

const (
	storeBackendMemory   = "memory"
	storeBackendPostgres = "postgres"
	storeBackendMySQL    = "mysql"

	instrumentationName = "lending-demo"
)

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "path to the YAML config file")
		storeBackend = flag.String("store", storeBackendMemory, "store backend: memory, postgres or mysql")
		enableOTel   = flag.Bool("otel", false, "export traces and metrics to the configured OTLP endpoints")
	)
	flag.Parse()

	if err := run(context.Background(), *configPath, *storeBackend, *enableOTel); err != nil {
		fmt.Fprintln(os.Stderr, "lending-demo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, storeBackend string, enableOTel bool) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	var (
		logger           lending.Logger
		contextualLogger lending.ContextualLogger
		serviceOpts      []service.Option
	)

	if enableOTel {
		providers, provErr := config.NewObservabilityProviders(ctx, cfg.Observability)
		if provErr != nil {
			return provErr
		}
		defer func() { _ = providers.Shutdown(ctx) }()

		logger = oteladapters.NewSlogBridgeLogger(instrumentationName)
		contextualLogger = oteladapters.NewOTelLogger(
			global.GetLoggerProvider().Logger(instrumentationName))

		metrics := oteladapters.NewMetricsCollector(
			providers.MeterProvider.Meter(instrumentationName))
		serviceOpts = append(serviceOpts, service.WithMetrics(metrics))
	} else {
		logger = oteladapters.NewSlogBridgeLoggerWithHandler(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	store, err := buildStore(ctx, cfg, storeBackend, logger, contextualLogger)
	if err != nil {
		return err
	}

	serviceOpts = append(serviceOpts, service.WithLogger(logger))
	svc := service.NewLibraryService(store, paymentsim.NewGateway(), serviceOpts...)

	return runScenario(ctx, svc, store)
}

func buildStore(
	ctx context.Context,
	cfg config.Config,
	backend string,
	logger lending.Logger,
	contextualLogger lending.ContextualLogger,
) (lending.Store, error) {
	switch backend {
	case storeBackendMemory:
		return memorystore.NewMemoryStore(), nil

	case storeBackendPostgres:
		pool, err := config.NewPGXPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		storeOpts := []postgresstore.Option{postgresstore.WithLogger(logger)}
		if contextualLogger != nil {
			storeOpts = append(storeOpts, postgresstore.WithContextualLogger(contextualLogger))
		}
		return postgresstore.NewStoreFromPGXPool(pool, storeOpts...)

	case storeBackendMySQL:
		db, err := config.NewGormDB(cfg.MySQL)
		if err != nil {
			return nil, err
		}
		return gormstore.NewGormStore(db)

	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func runScenario(ctx context.Context, svc *service.LibraryService, store lending.Store) error {
	const patronID = "123456"

	printResult("add book", svc.AddBook(ctx, "The Go Programming Language", "Alan Donovan", "9780134190440", 3))
	printResult("add duplicate", svc.AddBook(ctx, "Another Copy", "Someone Else", "9780134190440", 1))

	book, err := store.GetBookByISBN(ctx, "9780134190440")
	if err != nil {
		return err
	}

	printResult("borrow", svc.BorrowBook(ctx, patronID, book.ID))

	fee, err := svc.CalculateLateFee(ctx, patronID, book.ID)
	if err != nil {
		return err
	}
	fmt.Printf("late fee:        $%.2f (%s)\n", fee.FeeAmount, fee.Status)

	matches, err := svc.SearchBooks(ctx, "go")
	if err != nil {
		return err
	}
	fmt.Printf("search \"go\":     %d match(es)\n", len(matches))

	report, err := svc.GetPatronStatusReport(ctx, patronID)
	if err != nil {
		return err
	}

	payload, err := report.JSON()
	if err != nil {
		return err
	}
	fmt.Printf("patron report:   %s\n", payload)

	printResult("return", svc.ReturnBook(ctx, patronID, book.ID))

	return nil
}

func printResult(operation string, result lending.Result) {
	status := "ok"
	if !result.Success {
		status = "failed"
	}
	fmt.Printf("%-16s [%s] %s\n", operation+":", status, result.Message)
}
