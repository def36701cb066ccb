// Package config loads the settings of the jcm command from a config
// file, JCM_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/classpath"
	"github.com/dhamidi/jcm/codemodel"
	"github.com/dhamidi/jcm/writer"
)

var log = commonlog.GetLogger("jcm.config")

// DefaultName is the config file looked up in the working directory when
// none is given.
const DefaultName = "jcm"

type Config struct {
	// Output is the source directory. Resources go here too unless
	// Resources is set.
	Output    string `mapstructure:"output" validate:"required"`
	Resources string `mapstructure:"resources"`
	// Zip, when set, is an archive written instead of the directories.
	Zip string `mapstructure:"zip"`

	Blueprints      []string `mapstructure:"blueprints"`
	Classpath       []string `mapstructure:"classpath"`
	CaseInsensitive bool     `mapstructure:"case_insensitive"`
	Indent          int      `mapstructure:"indent" validate:"min=1,max=8"`
	Prolog          string   `mapstructure:"prolog"`

	Verbosity int    `mapstructure:"verbosity" validate:"min=-4,max=4"`
	LogFile   string `mapstructure:"log_file"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Flags registers the command line flags that override config keys.
func Flags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default ./jcm.yaml if present)")
	fs.StringP("output", "o", "", "source output directory")
	fs.String("resources", "", "resource output directory (default: the source directory)")
	fs.String("zip", "", "write all generated files to this zip archive")
	fs.StringSlice("classpath", nil, "directories and jars to resolve referenced classes from")
	fs.Bool("case-insensitive", false, "treat class names differing only by case as duplicates")
	fs.Int("indent", 0, "spaces per indentation level")
	fs.String("prolog", "", "comment placed at the top of every generated source file")
	fs.CountP("verbose", "v", "increase log verbosity")
	fs.String("log-file", "", "write logs to this file instead of stderr")
}

var flagKeys = map[string]string{
	"output":           "output",
	"resources":        "resources",
	"zip":              "zip",
	"classpath":        "classpath",
	"case-insensitive": "case_insensitive",
	"indent":           "indent",
	"prolog":           "prolog",
	"verbose":          "verbosity",
	"log-file":         "log_file",
}

// New returns a viper instance with defaults, environment binding and the
// given flags (registered by Flags) bound to their keys.
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("output", "generated")
	v.SetDefault("indent", 4)
	v.SetDefault("verbosity", 0)
	v.SetEnvPrefix("JCM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range flagKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	if err := v.BindEnv("blueprints"); err != nil {
		return nil, err
	}
	if fs == nil {
		return v, nil
	}
	for flag, key := range flagKeys {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; otherwise jcm.yaml, jcm.json or jcm.toml in the working
// directory is used if present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		log.Debug("no config file, using flags and environment")
	} else {
		log.Infof("using config %s", v.ConfigFileUsed())
	}
	return Decode(v)
}

// Decode unmarshals and validates the current state of v.
func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Watch reloads the configuration whenever the config file changes and
// hands the result, or the error, to onChange.
func Watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("config changed: %s", e.Name)
		onChange(Decode(v))
	})
	v.WatchConfig()
}

// ConfigureLogging applies Verbosity and LogFile to commonlog.
func (c *Config) ConfigureLogging() {
	var path *string
	if c.LogFile != "" {
		path = &c.LogFile
	}
	commonlog.Configure(c.Verbosity, path)
}

// Loader opens the classpath. Without entries it is the built-in table of
// core JDK types. The returned close function releases open jars.
func (c *Config) Loader() (classpath.Loader, func() error, error) {
	if len(c.Classpath) == 0 {
		return classpath.BootstrapLoader(), func() error { return nil }, nil
	}
	cp, err := classpath.New(c.Classpath)
	if err != nil {
		return nil, nil, err
	}
	return cp, cp.Close, nil
}

// ModelOptions turns the settings into codemodel options.
func (c *Config) ModelOptions(loader classpath.Loader) []codemodel.Option {
	return []codemodel.Option{
		codemodel.WithCaseInsensitiveFilenames(c.CaseInsensitive),
		codemodel.WithIndent(strings.Repeat(" ", c.Indent)),
		codemodel.WithClassLoader(loader),
	}
}

// Writers opens the destinations for sources and resources. The prolog is
// applied to sources only. With Zip set both share one archive, which is
// finished when the source writer is closed.
func (c *Config) Writers() (src, res writer.CodeWriter, err error) {
	if c.Zip != "" {
		f, err := os.Create(c.Zip)
		if err != nil {
			return nil, nil, err
		}
		zw := &closingZip{ZipCodeWriter: writer.NewZipCodeWriter(f), f: f}
		return writer.NewPrologCodeWriter(zw, c.Prolog), resourceView{zw}, nil
	}
	resDir := c.Resources
	if resDir == "" {
		resDir = c.Output
	}
	src = writer.NewPrologCodeWriter(writer.NewFileCodeWriter(c.Output), c.Prolog)
	return src, writer.NewFileCodeWriter(resDir), nil
}

// closingZip closes the archive file after the zip directory is written.
type closingZip struct {
	*writer.ZipCodeWriter
	f *os.File
}

func (z *closingZip) Close() error {
	return errors.Join(z.ZipCodeWriter.Close(), z.f.Close())
}

// resourceView shares an archive without closing it.
type resourceView struct{ writer.CodeWriter }

func (resourceView) Close() error { return nil }
