// Package main provides the entry point for the speak CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speak/internal/elevenlabs"
	"github.com/dgnsrekt/speak/internal/voices"
	"github.com/dgnsrekt/speak/ui"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const maxTextSize = 1 << 20

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	voice      string
	mouse      bool
	noColor    bool
	apiBaseURL string
	apiTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:   "speak [FILE|-]",
		Short: "Turn text into speech from the terminal",
		Long: paragraph(
			fmt.Sprintf("\nPaste text, pick a voice and %s with ElevenLabs.", keyword("hear it spoken")),
		),
		Example: paragraph("speak\nspeak notes.txt\necho 'hello there' | speak --voice liam"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	// grab config values from Viper
	mouse = viper.GetBool("mouse")
	noColor = viper.GetBool("noColor")
	apiBaseURL = viper.GetString("api.base_url")
	apiTimeout = viper.GetDuration("api.timeout")

	voice = viper.GetString("voice")
	if voice != "" {
		v, ok := voices.Resolve(voice)
		if !ok {
			return fmt.Errorf("unknown voice %q (available: %s)", voice, strings.Join(voices.Names(), ", "))
		}
		voice = v.ID
	}

	if apiTimeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", apiTimeout)
	}

	u, err := url.ParseRequestURI(apiBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s is not a supported protocol", u.Scheme)
	}

	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// readText loads the initial text from stdin ("-" or a pipe) or a file.
func readText(args []string) (string, bool, error) {
	var (
		r     io.Reader
		piped bool
	)

	pipe, err := stdinIsPipe()
	if err != nil {
		return "", false, err
	}

	switch {
	case len(args) == 1 && args[0] != "-":
		f, err := os.Open(args[0])
		if err != nil {
			return "", false, fmt.Errorf("unable to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	case pipe || (len(args) == 1 && args[0] == "-"):
		r = os.Stdin
		piped = true
	default:
		return "", false, nil
	}

	b, err := io.ReadAll(io.LimitReader(r, maxTextSize+1))
	if err != nil {
		return "", false, fmt.Errorf("unable to read from reader: %w", err)
	}
	if len(b) > maxTextSize {
		return "", false, fmt.Errorf("text is larger than %d bytes", maxTextSize)
	}
	return string(b), piped, nil
}

func execute(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("speak needs a terminal to run")
	}

	text, piped, err := readText(args)
	if err != nil {
		return err
	}

	cfg, err := loadUIConfig()
	if err != nil {
		return err
	}
	cfg.Voice = voice
	cfg.Text = text
	cfg.EnableMouse = mouse
	cfg.NoColor = noColor
	cfg.APIBaseURL = apiBaseURL
	cfg.APITimeout = apiTimeout
	cfg.InputTTY = piped

	return ui.Run(cfg)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", configFile, "config file")
	rootCmd.Flags().StringVarP(&voice, "voice", "v", "", "voice id or name ("+strings.Join(voices.Names(), ", ")+")")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse support")
	_ = rootCmd.Flags().MarkHidden("mouse")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.Flags().StringVar(&apiBaseURL, "api-url", elevenlabs.BaseURL, "ElevenLabs API base url")
	_ = rootCmd.Flags().MarkHidden("api-url")
	rootCmd.Flags().DurationVar(&apiTimeout, "timeout", elevenlabs.DefaultTimeout, "synthesis request timeout")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))
	_ = viper.BindPFlag("noColor", rootCmd.Flags().Lookup("no-color"))
	_ = viper.BindPFlag("api.base_url", rootCmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("api.timeout", rootCmd.Flags().Lookup("timeout"))

	viper.SetDefault("voice", voices.Default().ID)
	viper.SetDefault("mouse", false)
	viper.SetDefault("api.base_url", elevenlabs.BaseURL)
	viper.SetDefault("api.timeout", elevenlabs.DefaultTimeout)

	rootCmd.AddCommand(configCmd, manCmd)
}

func configDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, "speak")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "speak")}, dirs...)
	}

	if c := os.Getenv("SPEAK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}
	return dirs, nil
}

func tryLoadConfigFromDefaultPlaces() {
	dirs, err := configDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("speak")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("speak")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	configFile = filepath.Join(dirs[0], "speak.yml")
}
