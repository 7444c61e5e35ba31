// Command biquad designs biquad filters and graphic equalizers and prints
// their coefficients and frequency response.
//
// Usage:
//
//	biquad <command> [flags]
//
// Examples:
//
//	biquad coeffs --kind peak --freq 3000 --q 1.4 --gain -4
//	biquad response --kind lowpass --freq 1000 --measured
//	biquad eq --gain 1=6 --gain 10=-3
//	biquad eq --preset studio.lua --interactive --watch
//	biquad preset studio.lua
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/bitmark-inc/logger"

	"github.com/cwbudde/algo-biquad/dsp/filter/design"
	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/internal/preset"
)

var (
	version = "0.1.0"
)

// log defaults used when neither a preset nor --log-dir says otherwise
const (
	defaultLogFile  = "biquad.log"
	defaultLogSize  = 1024 * 1024
	defaultLogCount = 10
	defaultLogLevel = "info"
)

// smallest rotation settings logger.Initialise accepts
const (
	minimumLogSize  = 20000
	minimumLogCount = 10
)

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information."`
	LogDir  string      `name:"log-dir" type:"path" help:"Directory for log files (default: preset logging or the OS temp dir)."`

	Coeffs   CoeffsCmd   `cmd:"" help:"Print the raw and normalized coefficient set of one filter."`
	Response ResponseCmd `cmd:"" help:"Print the gain and phase response of one filter."`
	EQ       EQCmd       `cmd:"" name:"eq" help:"Show or edit a graphic equalizer."`
	Preset   PresetCmd   `cmd:"" help:"Validate a Lua preset and print its response."`
}

// env is bound into every command's Run method
type env struct {
	out io.Writer
	log *logger.L
}

type versionFlag bool

// BeforeReset prints the version and exits before required commands are
// checked.
func (v versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)

	return nil
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("biquad"),
		kong.Description("Biquad filter and equalizer designer"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
			"kinds":   kindList(),
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	}
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs, parserOptions()...)

	if err := logger.Initialise(loggingConfig(cliArgs, ctx.Command())); err != nil {
		cli.PrintError(os.Stderr, fmt.Sprintf("logger setup failed: %v", err))
		os.Exit(1)
	}
	defer logger.Finalise()

	log := logger.New("main")
	log.Infof("version: %s", version)
	log.Infof("command: %s", ctx.Command())

	err := ctx.Run(&env{out: os.Stdout, log: log})
	if err != nil {
		log.Errorf("%s: %v", ctx.Command(), err)
		cli.PrintError(os.Stderr, err.Error())
	}

	ctx.FatalIfErrorf(err)
}

// loggingConfig picks the logging block of the command's preset, if any,
// and lets --log-dir override its directory. Relative preset directories
// are taken from the preset file's directory.
func loggingConfig(c *CLI, command string) logger.Configuration {
	cfg := logger.Configuration{
		Directory: filepath.Join(os.TempDir(), "biquad"),
	}

	if path := c.presetPath(command); path != "" {
		if f, err := preset.Load(path); err == nil && f.Logging.Directory != "" {
			cfg = f.Logging
			if !filepath.IsAbs(cfg.Directory) {
				cfg.Directory = filepath.Join(filepath.Dir(path), cfg.Directory)
			}
		}
	}

	if c.LogDir != "" {
		cfg.Directory = c.LogDir
	}

	if cfg.File == "" {
		cfg.File = defaultLogFile
	}

	switch {
	case cfg.Size <= 0:
		cfg.Size = defaultLogSize
	case cfg.Size < minimumLogSize:
		cfg.Size = minimumLogSize
	}

	switch {
	case cfg.Count <= 0:
		cfg.Count = defaultLogCount
	case cfg.Count < minimumLogCount:
		cfg.Count = minimumLogCount
	}

	if len(cfg.Levels) == 0 {
		cfg.Levels = map[string]string{logger.DefaultTag: defaultLogLevel}
	}

	_ = os.MkdirAll(cfg.Directory, 0o750)

	return cfg
}

func (c *CLI) presetPath(command string) string {
	switch {
	case strings.HasPrefix(command, "preset"):
		return c.Preset.File
	case strings.HasPrefix(command, "eq"):
		return c.EQ.Preset
	default:
		return ""
	}
}

func kindList() string {
	kinds := design.Kinds()

	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}

	return strings.Join(names, ", ")
}
