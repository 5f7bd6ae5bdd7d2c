package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KyleBrandon/safetemp/config"
	"github.com/KyleBrandon/safetemp/internal/auth"
	"github.com/KyleBrandon/safetemp/internal/display"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/server/alarm"
	"github.com/KyleBrandon/safetemp/pkg/server/evaluations"
	"github.com/KyleBrandon/safetemp/pkg/server/health"
	"github.com/KyleBrandon/safetemp/pkg/server/metrics"
	"github.com/KyleBrandon/safetemp/pkg/server/temperatures"
	"github.com/KyleBrandon/safetemp/pkg/utils"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DEFAULT_SERVER_PORT          = "8080"
	DEFAULT_CONFIG_FILE_LOCATION = "./config/config.json"
	DEFAULT_SHUTDOWN_TIMEOUT     = 10 * time.Second
)

// Used by "flag" to read command line argument
var (
	cmdLineFlagMockSensor bool
	cmdLineFlagLogLevel   string
)

type ServerConfig struct {
	mux                *http.ServeMux
	metrics            *metrics.Metrics
	ServerPort         string
	UseMockSensor      bool
	LogFileLocation    string
	ConfigFileLocation string
	ApiKey             string
	Logger             *slog.Logger
	LoggerLevel        *slog.LevelVar
	LogWriter          io.Writer

	Settings config.Config
	Sensors  sensor.Sensors
}

// init will read and initialize the global command line variables
func init() {
	// initialize the mock sensor commandline flag
	flag.BoolVar(&cmdLineFlagMockSensor, "use_mock_sensor", false, "Indicate if we should use a mock sensor for the server instance.")
	flag.StringVar(&cmdLineFlagLogLevel, "log_level", config.DefaultLogLevel.String(), "The log level to start the server at")
}

// InitializeServer loads the configuration, registers the handlers and serves until interrupted.
func InitializeServer() error {
	slog.Debug(">>InitializeServer")
	defer slog.Debug("<<InitializeServer")

	sc, err := initializeServerConfig()
	if err != nil {
		return err
	}

	if rotating, ok := sc.LogWriter.(*lumberjack.Logger); ok {
		defer rotating.Close()
	}

	sc.mux = http.NewServeMux()
	sc.metrics = metrics.NewMetrics(prometheus.NewRegistry())

	healthHandler := health.NewHandler(sc.LoggerLevel)
	healthHandler.RegisterRoutes(sc.mux)

	temperatureHandler := temperatures.NewHandler(sc.Sensors)
	temperatureHandler.RegisterRoutes(sc.mux)

	evaluationHandler := evaluations.NewHandler(sc.Settings, sc.Sensors, display.NewText(os.Stdout), sc.metrics)
	evaluationHandler.RegisterRoutes(sc.mux)

	alarmHandler := alarm.NewHandler(sc.Sensors)
	alarmHandler.RegisterRoutes(sc.mux)

	sc.mux.Handle("GET /metrics", sc.metrics.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sc.runServer(ctx)
}

// runServer will start listening for connections and shut down once ctx is done.
func (sc *ServerConfig) runServer(ctx context.Context) error {
	slog.Info(">>runServer")
	defer slog.Info("<<runServer")

	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(sc.LogWriter, sc.metrics.WrapHandler(auth.RequireApiKey(sc.ApiKey)(sc.mux))),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", sc.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", sc.ServerPort)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DEFAULT_SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		return err
	}

	return nil
}

func initializeServerConfig() (ServerConfig, error) {
	slog.Info(">>initalizeServerConfig")
	defer slog.Info("<<initalizeServerConfig")

	sc := ServerConfig{}

	// MUST BE FIRST
	sc.readEnvironmentVariables()

	// configure slog
	sc.configureLogger()

	// load the configuration file and environment settings
	settings, err := config.LoadConfigSettings(sc.ConfigFileLocation)
	if err != nil {
		slog.Error("failed to load config file", "file", sc.ConfigFileLocation, "error", err)
		return sc, err
	}

	// load the sensor configuration
	sensors, err := sensor.NewSensorConfig(
		settings.SensorTimeoutSeconds,
		settings.Devices,
		sc.UseMockSensor)
	if err != nil {
		slog.Error("failed to initialize sensors", "error", err)
		return sc, err
	}

	sc.Settings = settings
	sc.Sensors = sensors

	slog.Info("Monitoring thresholds",
		"scale", settings.Scale,
		"min_temp", settings.MinTemp,
		"max_temp", settings.MaxTemp,
		"max_delta", settings.MaxDelta,
		"delta_rule", settings.DeltaRule)

	return sc, nil
}

func (sc *ServerConfig) readEnvironmentVariables() {
	slog.Info(">>loadConfiguration")
	defer slog.Info("<<loadConfiguration")

	// load the environment
	err := godotenv.Load()
	if err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	sc.ServerPort = os.Getenv("PORT")
	if len(sc.ServerPort) == 0 {
		sc.ServerPort = DEFAULT_SERVER_PORT
	}

	sc.LogFileLocation = os.Getenv("LOG_FILE_LOCATION")

	sc.ConfigFileLocation = os.Getenv("CONFIG_FILE_LOCATION")
	if len(sc.ConfigFileLocation) == 0 {
		sc.ConfigFileLocation = DEFAULT_CONFIG_FILE_LOCATION
	}

	// operator actions are open when no key is configured
	sc.ApiKey = os.Getenv("API_KEY")
	if len(sc.ApiKey) == 0 {
		slog.Warn("no API_KEY configured, operator actions are not protected")
	}

	// mock sensor flag is a command line flag for debugging
	sc.UseMockSensor = cmdLineFlagMockSensor
}

// configureLogger will initialize the slog to stderr and save the log level so it can be set via API.
func (sc *ServerConfig) configureLogger() {
	slog.Info(">>configureLogger")
	defer slog.Info("<<configureLogger")

	// create a variable to store the current log level
	currentLevel := new(slog.LevelVar)

	// parse the log level from any passed in command line flag
	level, err := utils.ParseLogLevel(cmdLineFlagLogLevel)
	if err != nil {
		slog.Error("Failed to parse the log level, setting to DefaultLogLevel", "error", err, "log_level", cmdLineFlagLogLevel)
		level = config.DefaultLogLevel
	}

	// set the log level
	currentLevel.Set(level)

	// by default we will write to stderr
	var logWriter io.Writer = os.Stderr
	if len(sc.LogFileLocation) != 0 {
		slog.Info("Save to log file", "file", sc.LogFileLocation)
		logWriter = &lumberjack.Logger{
			Filename:   sc.LogFileLocation,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	// create new text handler for log file
	fileHandler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: currentLevel})

	logger := slog.New(fileHandler)

	slog.SetDefault(logger)

	sc.Logger = logger
	sc.LoggerLevel = currentLevel
	sc.LogWriter = logWriter
}
