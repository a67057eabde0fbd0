package main

import (
	"time"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/api"
	"fileparse/internal/config"
	"fileparse/internal/errors"
	"fileparse/internal/i18n"
	"fileparse/internal/log"
	"fileparse/internal/prefs"
	"fileparse/internal/tui/styles"
	"fileparse/internal/upload"
	"fileparse/pkg/types"

	"github.com/spf13/cobra"
)

// rootOptions holds the global flags and what PersistentPreRunE loads
// from them.
type rootOptions struct {
	cfgFile string
	server  string
	lang    string
	debug   bool

	cfg   *config.Config
	store prefs.Store
}

// reportedError marks a failure the presenter already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "fileparse",
		Short: "Convert documents and recognize text in images",
		Long: `fileparse uploads a file to the parser service and shows the extracted text.

Document conversion handles office files, PDFs, code and markup. Image OCR
handles JPG, PNG, BMP, TIFF, GIF and WebP. The API key is stored once with
'fileparse key set' or taken from FILEPARSE_API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default is $HOME/.config/fileparse/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&o.server, "server", "", "parser service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&o.lang, "lang", "", "display language for this run: zh or en")
	rootCmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newKeyCmd(o))
	rootCmd.AddCommand(newLangCmd(o))
	rootCmd.AddCommand(newUploadCmd(o, types.Convert))
	rootCmd.AddCommand(newUploadCmd(o, types.OCR))
	rootCmd.AddCommand(newTypesCmd(o))
	rootCmd.AddCommand(newTUICmd(o))
	rootCmd.AddCommand(newGUICmd(o))
	rootCmd.AddCommand(newWatchCmd(o))
	rootCmd.AddCommand(newDevServerCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))

	return rootCmd
}

// load reads the config file, applies environment and flag overrides and
// opens the preference store.
func (o *rootOptions) load() error {
	log.SetDebug(o.debug)

	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if o.server != "" {
		cfg.Server.BaseURL = o.server
	}
	if o.lang != "" {
		l, err := i18n.ParseLang(o.lang)
		if err != nil {
			return errors.NewConfigError("bad --lang", "lang", errors.InvalidConfig, err)
		}
		cfg.UI.Language = string(l)
	}
	if err := cfg.Validate(); err != nil {
		return errors.NewConfigError("invalid configuration", "server", errors.InvalidConfig, err)
	}

	var logOpts []log.Option
	if cfg.Log.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		logOpts = append(logOpts, log.WithFile(cfg.Log.File))
	}
	if len(logOpts) > 0 {
		if err := log.Configure(logOpts...); err != nil {
			return errors.NewConfigError("invalid log file", "log.file", errors.InvalidConfig, err)
		}
	}

	cfg.ApplyTheme(cfg.UI.Theme)
	styles.Apply(cfg)

	file, err := prefs.OpenFile(cfg.Prefs.Path)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.store = prefs.NewOverlay(file, o.overrides())
	log.LogWithFields(log.F("server", cfg.Server.BaseURL), log.F("prefs", cfg.Prefs.Path)).Debug("configuration loaded")
	return nil
}

// overrides are preference values that win for this run without being
// stored.
func (o *rootOptions) overrides() map[string]string {
	over := map[string]string{prefs.KeyAPIKey: o.cfg.APIKey}
	if o.lang != "" {
		over[prefs.KeyLanguage] = o.cfg.UI.Language
	}
	return over
}

func (o *rootOptions) client() *api.Client {
	return api.NewClient(o.cfg.Server.BaseURL,
		api.WithTimeout(time.Duration(o.cfg.Server.Timeout)*time.Second))
}

// controllerOptions are shared by every front-end.
func (o *rootOptions) controllerOptions(mode types.Mode) []upload.Option {
	lang, _ := i18n.ParseLang(o.cfg.UI.Language)
	return []upload.Option{
		upload.WithMode(mode),
		upload.WithLanguage(lang),
		upload.WithCopyFeedback(time.Duration(o.cfg.UI.CopyFeedbackMS) * time.Millisecond),
	}
}

func (o *rootOptions) controller(p upload.Presenter, mode types.Mode) *upload.Controller {
	return upload.New(o.client(), o.store, p, o.controllerOptions(mode)...)
}

// localizer resolves the active language the way a controller does.
func (o *rootOptions) localizer() i18n.Localizer {
	return o.controller(cli.NewPresenter(nil, nil, false), o.cfg.Mode()).Localizer()
}
