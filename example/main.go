// Demonstrates bootstrapping a layered configuration resolver: bootstrap
// defaults, an env-backed unit, an inline unit, runtime overrides, and
// subtree scanning.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	config "github.com/jbstrap/strux-config"
)

// ServerConfig holds the settings consumed by the HTTP layer.
type ServerConfig struct {
	Host    string        `config:"host" env:"HOST"`
	Port    int           `config:"port" env:"PORT"`
	Timeout time.Duration `config:"timeout" env:"TIMEOUT"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	environ := config.NewEnv()

	serverDefaults := ServerConfig{
		Host:    "localhost",
		Port:    8080,
		Timeout: 30 * time.Second,
	}

	res, err := config.NewBuilder().
		WithLogger(log.Level(zerolog.DebugLevel)).
		WithDefault("app.name", "example").
		WithUnit(config.EnvUnit("server", environ, "EXAMPLE_SERVER_", serverDefaults)).
		WithInline("app", func() (map[string]any, error) {
			return map[string]any{
				"env":   environ.StringOr("APP_ENV", "production"),
				"debug": environ.BoolOr("APP_DEBUG", false),
			}, nil
		}).
		WithValidator(func(r *config.Resolver) error {
			log.Info().Str("env", r.StringOr("app.env", "?")).Msg("validated")
			return nil
		}).
		Build()
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	log.Info().
		Str("app", res.StringOr("app.name", "")).
		Str("host", res.StringOr("server.host", "")).
		Int("port", res.IntOr("server.port", 0)).
		Bool("debug", res.BoolOr("app.debug", false)).
		Msg("bootstrapped")

	// Runtime overrides layer above the merged namespace without touching it.
	if err := res.Set("server.port", 9090); err != nil {
		log.Fatal().Err(err).Msg("override failed")
	}
	log.Info().Int("port", res.IntOr("server.port", 0)).Msg("after override")

	res.Remove("server.port")
	log.Info().Int("port", res.IntOr("server.port", 0)).Msg("after remove")

	var server ServerConfig
	if err := res.Scan("server", &server); err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}
	log.Info().Dur("timeout", server.Timeout).Msg("scanned")

	if err := res.Dump(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("dump failed")
	}
}
