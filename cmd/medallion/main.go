// Command medallion resolves the effective server configuration from the
// config file, the config directory, and MEDALLION_* environment variables,
// and prints the merged result as indented JSON on stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/medallion-taxii/medallion/internal/config"
	"github.com/medallion-taxii/medallion/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// processOpts are options of the medallion process itself, not configuration
// keys: the config env schema does not recognize them.
type processOpts struct {
	LogLevel string `env:"MEDALLION_LOG_LEVEL" envDefault:"info"`
}

func main() {
	printBuildInfo()

	opts := processOpts{}
	if err := env.Parse(&opts); err != nil {
		logger.NewLogger("medallion", "info").
			Fatal().Err(err).Msg("error getting process options")
	}

	log := logger.NewLogger("medallion", opts.LogLevel)

	cfg, err := config.Load(parseFlags()...)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving configs")
	}

	log.Debug().Any("config", cfg).Msg("resolved configs")

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("error encoding resolved configs")
	}
	fmt.Println(string(out))
}

// parseFlags parses the command line into config.Load options.
//
// Flags:
//
//	-c/-conf-file config file path
//	-conf-dir config directory path
//	-no-conf-file disable the config file source
//	-no-conf-dir disable the config directory source
func parseFlags() []config.Option {
	var confFile, confDir string
	var noConfFile, noConfDir bool

	flag.StringVar(&confFile, "c", "", "Config file path")
	flag.StringVar(&confFile, "conf-file", "", "Config file path (alias)")
	flag.StringVar(&confDir, "conf-dir", "", "Config directory path")
	flag.BoolVar(&noConfFile, "no-conf-file", false, "Disable the config file source")
	flag.BoolVar(&noConfDir, "no-conf-dir", false, "Disable the config directory source")
	flag.Parse()

	var opts []config.Option
	if noConfFile {
		opts = append(opts, config.WithoutConfFile())
	} else if confFile != "" {
		opts = append(opts, config.WithConfFile(confFile))
	}
	if noConfDir {
		opts = append(opts, config.WithoutConfDir())
	} else if confDir != "" {
		opts = append(opts, config.WithConfDir(confDir))
	}

	return opts
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
