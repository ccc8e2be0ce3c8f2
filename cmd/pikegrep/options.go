package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PIKEGREP"

var errUsage = errors.New("usage: pikegrep [flags] PATTERN [FILE...]")

// options holds the resolved command line. Every flag can also be set from a
// YAML file given with --config or from a PIKEGREP_* environment variable
// (dots and dashes become underscores, e.g. PIKEGREP_LOG_LEVEL).
// Precedence: flag, environment, config file, default.
type options struct {
	Pattern string
	Files   []string

	Lazy         bool
	OnlyMatching bool
	Captures     bool
	Count        bool
	Prefilter    bool
	Workers      int

	DumpAST     bool
	DumpProgram bool

	LogLevel     string
	LogFile      string
	LogMaxSizeMB int
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pikegrep", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, errUsage.Error())
		fs.PrintDefaults()
	}

	fs.String("config", "", "YAML file with option values")
	fs.Bool("lazy", false, "prefer fewer repetitions when recording captures")
	fs.BoolP("only-matching", "o", false, "print only the matched parts of a line")
	fs.Bool("captures", false, "print the match followed by its capture groups, tab separated")
	fs.BoolP("count", "c", false, "print the number of matching lines")
	fs.Bool("prefilter", true, "skip input with a literal prefilter")
	fs.Int("workers", 0, "number of search goroutines (0 means GOMAXPROCS)")
	fs.Bool("dump-ast", false, "print the syntax tree and exit")
	fs.Bool("dump-program", false, "print the compiled program and exit")
	fs.String("log.level", "warn", "log level: debug, info, warn or error")
	fs.String("log.file", "", "write logs to this file instead of stderr")
	fs.Int("log.max-size-mb", 100, "rotate the log file after this many megabytes")
	return fs
}

// loadOptions parses args (without the program name).
func loadOptions(args []string, output io.Writer) (*options, error) {
	fs := newFlagSet(output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, errUsage
	}

	o := &options{
		Pattern: positional[0],
		Files:   positional[1:],
	}
	d := decoder{v: v}
	o.Lazy = d.getBool("lazy")
	o.OnlyMatching = d.getBool("only-matching")
	o.Captures = d.getBool("captures")
	o.Count = d.getBool("count")
	o.Prefilter = d.getBool("prefilter")
	o.Workers = d.getInt("workers")
	o.DumpAST = d.getBool("dump-ast")
	o.DumpProgram = d.getBool("dump-program")
	o.LogLevel = d.getString("log.level")
	o.LogFile = d.getString("log.file")
	o.LogMaxSizeMB = d.getInt("log.max-size-mb")
	if d.err != nil {
		return nil, d.err
	}

	if o.Workers < 0 {
		return nil, errors.Newf("workers: must not be negative, got %d", o.Workers)
	}
	if o.LogMaxSizeMB <= 0 {
		return nil, errors.Newf("log.max-size-mb: must be positive, got %d", o.LogMaxSizeMB)
	}
	return o, nil
}

// decoder converts raw viper values and keeps the first failure. Values from
// the environment arrive as strings, which viper's typed getters would turn
// into zero values without reporting an error.
type decoder struct {
	v   *viper.Viper
	err error
}

func (d *decoder) getBool(key string) bool {
	b, err := cast.ToBoolE(d.v.Get(key))
	d.check(key, err)
	return b
}

func (d *decoder) getInt(key string) int {
	n, err := cast.ToIntE(d.v.Get(key))
	d.check(key, err)
	return n
}

func (d *decoder) getString(key string) string {
	s, err := cast.ToStringE(d.v.Get(key))
	d.check(key, err)
	return s
}

func (d *decoder) check(key string, err error) {
	if err != nil && d.err == nil {
		d.err = errors.Wrapf(err, "option %s", key)
	}
}
