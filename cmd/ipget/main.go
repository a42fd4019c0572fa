package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/ipget/internal/config"
	"github.com/qdm12/ipget/internal/healthchecksio"
	"github.com/qdm12/ipget/internal/models"
	"github.com/qdm12/ipget/internal/persistence"
	"github.com/qdm12/ipget/internal/publicip"
	"github.com/qdm12/ipget/internal/shoutrrr"
	"github.com/qdm12/ipget/internal/watcher"
	"github.com/qdm12/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{})

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	err := _main(ctx, reader, os.Args, logger, buildInfo, time.Now)
	stop()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	os.Exit(0)
}

func _main(ctx context.Context, reader *reader.Reader, args []string,
	logger log.LoggerInterface, buildInfo models.BuildInformation,
	timeNow func() time.Time) (err error) {
	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		}
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	const httpTimeout = 10 * time.Second
	client := &http.Client{Timeout: httpTimeout}
	defer client.CloseIdleConnections()

	shoutrrrClient := setupShoutrrr(config.Shoutrrr, logger)
	hioClient := healthchecksio.New(client,
		config.Health.HealthchecksioBaseURL, *config.Health.HealthchecksioUUID)

	database, err := persistence.New(config.Storage)
	if err != nil {
		err = fmt.Errorf("setting up storage: %w", err)
		dispatchFatal(ctx, err, shoutrrrClient, hioClient, logger)
		return err
	}
	defer func() {
		closeErr := database.Close()
		if closeErr != nil {
			logger.Error("closing database: " + closeErr.Error())
		}
	}()
	logger.Info("Using " + database.String())

	fetcher, err := publicip.NewFetcher(config.PubIP, client,
		logger.New(log.SetComponent("publicip")))
	if err != nil {
		err = fmt.Errorf("setting up public IP fetcher: %w", err)
		dispatchFatal(ctx, err, shoutrrrClient, hioClient, logger)
		return err
	}

	runner := watcher.New(database, fetcher, shoutrrrClient, hioClient,
		logger.New(log.SetComponent("watcher")), timeNow)
	outcome := runner.Run(ctx)
	if outcome.ExitCode() != 0 {
		return fmt.Errorf("run failed: %w", errors.Join(outcome.Errors...))
	}

	return nil
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "ipget",
		Emails:     []string{"quentin.mcgaw@gmail.com"},
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(loggerOptions(config.Logger)...)
	logger.Info(config.String())

	return config, nil
}

func loggerOptions(settings config.Logger) (options []log.Option) {
	options = settings.ToOptions()
	if *settings.Directory != "" {
		const maxSizeMB = 10
		const maxBackups = 4
		rotatedFile := &lumberjack.Logger{
			Filename:   filepath.Join(*settings.Directory, "ipget.log"),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
		}
		writer := io.MultiWriter(os.Stdout, rotatedFile)
		options = append(options, log.SetWriters(writer))
	}
	return options
}

// setupShoutrrr never fails the run: invalid notification settings
// log an error and downgrade to a disabled client.
func setupShoutrrr(settings config.Shoutrrr,
	logger log.LoggerInterface) *shoutrrr.Client {
	shoutrrrLogger := logger.New(log.SetComponent("shoutrrr"))
	client, err := shoutrrr.New(shoutrrr.Settings{
		Addresses:    settings.Addresses,
		DefaultTitle: settings.DefaultTitle,
		Logger:       shoutrrrLogger,
	})
	if err != nil {
		logger.Error("notifications disabled: " + err.Error())
		return shoutrrr.NewDisabled(shoutrrrLogger)
	}
	return client
}

// dispatchFatal signals a fatal setup error to the notification
// collaborators before the process exits with the failure status.
func dispatchFatal(ctx context.Context, fatalErr error,
	shoutrrrClient *shoutrrr.Client, hioClient *healthchecksio.Client,
	logger log.LoggerInterface) {
	shoutrrrClient.Notify(fatalErr.Error())
	const timeout = 3 * time.Second
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := hioClient.Fail(pingCtx, fatalErr.Error())
	if err != nil {
		logger.Error("pinging healthcheck: " + err.Error())
	}
}
