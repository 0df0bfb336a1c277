package config

import (
	"flag"
	"os"

	"github.com/peterbourgon/ff"
)

type Config struct {
	// address for the HTTP server to listen on
	Addr string
	// key clients must send in the X-API-Key header; empty disables auth
	APIKey string
	// deployment environment: development, test, production
	AppEnv string
	// when true, transactions are archived to Postgres (see POSTGRES_* vars)
	Archive bool
}

// Parse the flags in the flag set from the command line.
// Additional options may be provided to parse from environment variables, but flags get priority.
//
// Example .env file
// 	LEDGER_ADDR=:8080
// 	LEDGER_API_KEY=secret
// 	LEDGER_APP_ENV=development
func Parse() (*Config, error) {
	ledgerFlags := flag.NewFlagSet("ledger", flag.ExitOnError)
	var (
		addr    = ledgerFlags.String("addr", ":8080", "address for the HTTP server to listen on")
		apiKey  = ledgerFlags.String("api_key", "", "API key required on incoming requests")
		appEnv  = ledgerFlags.String("app_env", "development", "deployment environment")
		archive = ledgerFlags.Bool("archive", false, "archive transactions to Postgres")
	)

	err := ff.Parse(ledgerFlags, os.Args[1:],
		ff.WithIgnoreUndefined(true),
		ff.WithEnvVarPrefix("LEDGER"),
	)
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:    *addr,
		APIKey:  *apiKey,
		AppEnv:  *appEnv,
		Archive: *archive,
	}, nil
}
