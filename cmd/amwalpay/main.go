package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/adapters/alert"
	"github.com/kevin07696/amwalpay-bridge/internal/adapters/amwal"
	"github.com/kevin07696/amwalpay-bridge/internal/adapters/native"
	"github.com/kevin07696/amwalpay-bridge/internal/adapters/secrets"
	"github.com/kevin07696/amwalpay-bridge/internal/config"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	"github.com/kevin07696/amwalpay-bridge/internal/services/payment"
	"github.com/kevin07696/amwalpay-bridge/pkg/logging"
	"github.com/kevin07696/amwalpay-bridge/pkg/observability"
	"github.com/kevin07696/amwalpay-bridge/pkg/security"
	"go.uber.org/zap/zapcore"
)

type options struct {
	action   string
	envFile  string
	params   string
	amount   string
	txType   string
	locale   string
	customer string
	txID     string
	wait     time.Duration

	delay    time.Duration
	decline  bool
	headless bool

	debug    bool
	showLogs bool
	logTag   string
	logLevel string
}

// AmwalCLI wires the bridge the way a host app would
type AmwalCLI struct {
	cfg    *config.Config
	logs   *logging.Logger
	logger *security.ZapLoggerAdapter
	out    io.Writer
}

func main() {
	opts := options{}
	flag.StringVar(&opts.action, "action", "", "Action to perform: hash, token, pay")
	flag.StringVar(&opts.envFile, "env-file", "", "Optional .env file to load before reading the environment")
	flag.StringVar(&opts.params, "params", "", "Comma separated key=value pairs to sign (hash)")
	flag.StringVar(&opts.amount, "amount", "1.000", "Amount in OMR (pay)")
	flag.StringVar(&opts.txType, "type", string(domain.TransactionTypeCardWallet), "Transaction type: NFC, CARD_WALLET, APPLE_PAY (pay)")
	flag.StringVar(&opts.locale, "locale", string(domain.LocaleEnglish), "Checkout locale: en, ar (pay)")
	flag.StringVar(&opts.customer, "customer", "", "Customer ID (token, pay)")
	flag.StringVar(&opts.txID, "tx-id", "", "Transaction ID, generated when empty (pay)")
	flag.DurationVar(&opts.wait, "wait", 30*time.Second, "How long to wait for the payment result (pay)")
	flag.DurationVar(&opts.delay, "delay", 500*time.Millisecond, "Simulated checkout duration (pay)")
	flag.BoolVar(&opts.decline, "decline", false, "Make the simulated checkout decline (pay)")
	flag.BoolVar(&opts.headless, "headless", false, "Simulate a host with no UI to present on (pay)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.showLogs, "show-logs", false, "Print buffered logs as JSON when done")
	flag.StringVar(&opts.logTag, "log-tag", "", "Only print buffered logs with this tag")
	flag.StringVar(&opts.logLevel, "log-level", "", "Only print buffered logs at this level")
	flag.Parse()

	if opts.action == "" {
		fmt.Println("Usage: amwalpay -action=<action> [options]")
		fmt.Println("Actions:")
		fmt.Println("  hash  - Print the signable string and secure hash of -params")
		fmt.Println("  token - Fetch an SDK session token for the configured merchant")
		fmt.Println("  pay   - Run a payment against the simulated native checkout")
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage reports err on exit. Token exchange failures were already
// printed by the alert writer, so only their code is repeated.
func exitMessage(err error) string {
	if domain.IsTokenError(err) {
		return fmt.Sprintf("Session token exchange failed (%s)", domain.GetErrorCode(err))
	}
	return fmt.Sprintf("Error: %v", err)
}

func run(opts options) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.envFile != "" {
		cfg, err = config.Load(opts.envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logs, err := logging.New(logging.Config{
		Level:       cfg.Logger.Level,
		Development: cfg.Logger.Development,
		BufferSize:  cfg.Logger.BufferSize,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logs.Sync()
	logs.SetDebug(opts.debug)

	if cfg.Metrics.Port > 0 {
		server := observability.StartMetricsServer(strconv.Itoa(cfg.Metrics.Port))
		defer observability.ShutdownMetricsServer(server)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &AmwalCLI{
		cfg:    cfg,
		logs:   logs,
		logger: security.NewZapLogger(logs.Logger),
		out:    os.Stdout,
	}

	switch opts.action {
	case "hash":
		err = cli.hash(ctx, opts)
	case "token":
		err = cli.token(ctx, opts)
	case "pay":
		err = cli.pay(ctx, opts)
	default:
		err = fmt.Errorf("unknown action: %s", opts.action)
	}

	if opts.showLogs {
		if printErr := cli.printLogs(opts); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}

func (c *AmwalCLI) secretKey(ctx context.Context) (string, error) {
	return secrets.Resolve(ctx, c.cfg.Secrets, c.logger.Named("Secrets"))
}

func (c *AmwalCLI) tokenClient() ports.SessionTokenClient {
	return amwal.NewSessionTokenAdapterWithDefaults(
		amwal.SessionTokenConfig{BaseURL: c.cfg.Amwal.BaseURL},
		c.cfg.Amwal.HTTPTimeout,
		alert.NewWriter(os.Stderr),
		c.logger.Named("SessionToken"),
	)
}

func (c *AmwalCLI) hash(ctx context.Context, opts options) error {
	key, err := c.secretKey(ctx)
	if err != nil {
		return err
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return err
	}

	signature, err := amwal.ClearSecureHash(key, params)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Signable string: %s\n", amwal.ComposeSignableString(params))
	fmt.Fprintf(c.out, "Secure hash:     %s\n", signature)
	return nil
}

func (c *AmwalCLI) token(ctx context.Context, opts options) error {
	key, err := c.secretKey(ctx)
	if err != nil {
		return err
	}

	token, err := c.tokenClient().FetchSessionToken(ctx, c.cfg.Amwal.Environment, c.cfg.Amwal.MerchantID, opts.customer, key)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Session token: %s\n", token)
	return nil
}

func (c *AmwalCLI) pay(ctx context.Context, opts options) error {
	key, err := c.secretKey(ctx)
	if err != nil {
		return err
	}

	sdk := native.NewSimulator(native.SimulatorConfig{
		Delay:       opts.delay,
		CustomerIDs: simulatedCustomerIDs(opts.customer),
		Decline:     opts.decline,
		Headless:    opts.headless,
	}, c.logger.Named("NativeSDK"))

	svc := payment.NewService(c.tokenClient(), sdk, c.logger.Named("Payment"))
	defer svc.Dispose()

	attempt, err := svc.StartPayment(ctx, domain.PaymentConfig{
		Environment:     c.cfg.Amwal.Environment,
		Currency:        domain.CurrencyOMR,
		Amount:          opts.amount,
		MerchantID:      c.cfg.Amwal.MerchantID,
		TerminalID:      c.cfg.Amwal.TerminalID,
		Locale:          domain.Locale(opts.locale),
		TransactionType: domain.TransactionType(strings.ToUpper(opts.txType)),
		SecureHash:      key,
		CustomerID:      opts.customer,
		TransactionID:   opts.txID,
	})
	if attempt == nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.wait)
	defer cancel()

	resp, waitErr := attempt.Await(waitCtx)
	if waitErr != nil {
		return fmt.Errorf("wait for payment %s: %w", attempt.TransactionID(), waitErr)
	}

	for id := range attempt.CustomerIDs() {
		fmt.Fprintf(c.out, "Customer ID: %s\n", id)
	}

	body, marshalErr := json.MarshalIndent(resp, "", "  ")
	if marshalErr != nil {
		return marshalErr
	}
	fmt.Fprintf(c.out, "%s\n", body)

	return err
}

func (c *AmwalCLI) printLogs(opts options) error {
	entries := c.logs.Buffer.Entries()
	if opts.logTag != "" {
		entries = c.logs.Buffer.ByTag(opts.logTag)
	}
	if opts.logLevel != "" {
		level, err := zapcore.ParseLevel(opts.logLevel)
		if err != nil {
			return fmt.Errorf("invalid -log-level: %w", err)
		}
		entries = filterLevel(entries, level)
	}

	body, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n", body)
	return nil
}

func filterLevel(entries []logging.Entry, level zapcore.Level) []logging.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Level == level.String() {
			out = append(out, e)
		}
	}
	return out
}

// parseParams turns "a=1,b=2" into a map. Empty values are kept and later dropped by the signer.
func parseParams(raw string) (map[string]string, error) {
	params := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return params, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, want key=value", pair)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

// simulatedCustomerIDs makes the simulator report a new customer when the caller had none
func simulatedCustomerIDs(existing string) []string {
	if existing != "" {
		return nil
	}
	return []string{"sim-customer-" + strconv.FormatInt(time.Now().Unix(), 10)}
}
