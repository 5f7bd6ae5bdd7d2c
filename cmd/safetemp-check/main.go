// Command safetemp-check evaluates a single pair of readings and exits with
// the legacy status code of the result: 0 nominal, 3 alarm, 5 invalid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/KyleBrandon/safetemp/config"
	"github.com/KyleBrandon/safetemp/internal/display"
	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/utils"
)

const (
	EXIT_NOMINAL = 0
	EXIT_USAGE   = 2
	EXIT_ALARM   = 3
	EXIT_INVALID = 5
	EXIT_SENSOR  = 6
)

type checkOptions struct {
	scale         string
	minTemp       float64
	maxTemp       float64
	maxDelta      float64
	deltaRule     string
	configFile    string
	useSensors    bool
	useMockSensor bool
	logLevel      string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts checkOptions

	fs := flag.NewFlagSet("safetemp-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scale, "scale", "C", "Scale of the thresholds and readings (C or F)")
	fs.Float64Var(&opts.minTemp, "min", 0, "Lowest acceptable temperature")
	fs.Float64Var(&opts.maxTemp, "max", 0, "Highest acceptable temperature")
	fs.Float64Var(&opts.maxDelta, "delta", 0, "Largest acceptable disagreement between the sensors")
	fs.StringVar(&opts.deltaRule, "delta_rule", "", "How sensor disagreement is measured (magnitude or absolute)")
	fs.StringVar(&opts.configFile, "config", "", "Settings file supplying thresholds, limits and devices")
	fs.BoolVar(&opts.useSensors, "sensors", false, "Read the configured sensor pair instead of taking readings as arguments")
	fs.BoolVar(&opts.useMockSensor, "use_mock_sensor", false, "Use mock sensors when reading the sensor pair")
	fs.StringVar(&opts.logLevel, "log_level", "WARN", "The log level for diagnostics written to stderr")

	if err := fs.Parse(args); err != nil {
		return EXIT_USAGE
	}

	level, err := utils.ParseLogLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return EXIT_USAGE
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	settings, err := opts.settings(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return EXIT_USAGE
	}

	s1, s2, err := opts.readings(fs.Args(), settings)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, errUsage) {
			fs.Usage()
			return EXIT_USAGE
		}
		return EXIT_SENSOR
	}

	ev := settings.Monitor().Evaluate(settings.Request(s1, s2))
	slog.Debug("evaluated readings", "sensor1", s1, "sensor2", s2, "result", ev.Result, "violations", ev.Violations)

	if err := display.NewText(stdout).Show(settings.Scale, s1, s2, ev); err != nil {
		slog.Warn("failed to write the evaluation", "error", err)
	}

	return exitCode(ev.Result)
}

var errUsage = errors.New("usage")

// settings starts from the settings file, when given, and applies any threshold flags on top.
func (opts checkOptions) settings(fs *flag.FlagSet) (config.Config, error) {
	var settings config.Config
	if opts.configFile != "" {
		loaded, err := config.LoadConfigSettings(opts.configFile)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			settings.Scale = monitor.ParseScale(opts.scale)
		case "min":
			settings.MinTemp = opts.minTemp
		case "max":
			settings.MaxTemp = opts.maxTemp
		case "delta":
			settings.MaxDelta = opts.maxDelta
		case "delta_rule":
			settings.DeltaRule, err = monitor.ParseDeltaRule(opts.deltaRule)
		}
	})

	if opts.configFile == "" && settings.Scale == monitor.ScaleUnknown && !isSet(fs, "scale") {
		settings.Scale = monitor.ParseScale(opts.scale)
	}

	return settings, err
}

func (opts checkOptions) readings(args []string, settings config.Config) (float64, float64, error) {
	if opts.useSensors {
		if len(settings.Devices) == 0 {
			return 0, 0, fmt.Errorf("%w: -sensors needs devices from -config", errUsage)
		}

		sensors, err := sensor.NewSensorConfig(settings.SensorTimeoutSeconds, settings.Devices, opts.useMockSensor)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to initialize sensors: %w", err)
		}

		r1, r2, err := sensors.ReadSensorPair()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read the sensor pair: %w", err)
		}

		return r1.In(settings.Scale), r2.In(settings.Scale), nil
	}

	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two sensor readings", errUsage)
	}

	s1, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: sensor 1: %v", errUsage, err)
	}

	s2, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: sensor 2: %v", errUsage, err)
	}

	return s1, s2, nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}

func exitCode(r monitor.Result) int {
	switch r {
	case monitor.Nominal:
		return EXIT_NOMINAL
	case monitor.Alarm:
		return EXIT_ALARM
	}

	return EXIT_INVALID
}
