package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/editor"
	"github.com/dgnsrekt/speak/internal/voices"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# default voice, by id or name (sarah, liam, charlotte, lily)
voice: "sarah"
# mouse support
mouse: false
# disable colors
noColor: false

# ElevenLabs API settings.
# The API key is entered in the panel and is never read from this file.
api:
  base_url: "https://api.elevenlabs.io/v1"
  # request timeout for a single synthesis
  timeout: "30s"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the speak config file",
	Long:    paragraph(fmt.Sprintf("\n%s the speak config file with $EDITOR. A commented default file is created first if there is none, and the result is checked once the editor exits.", keyword("Edit"))),
	Example: paragraph("speak config\nspeak config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE:    editConfig,
}

func editConfig(cmd *cobra.Command, _ []string) error {
	if err := ensureConfigFile(); err != nil {
		return err
	}

	c, err := editor.Cmd("Speak", configFile)
	if err != nil {
		return fmt.Errorf("unable to find an editor: %w", err)
	}
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor exited with an error: %w", err)
	}

	if err := checkConfigFile(configFile); err != nil {
		return fmt.Errorf("%s: %w", configFile, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Config file:", configFile)
	return nil
}

// ensureConfigFile writes the default config to configFile unless a file
// is already there.
func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.ConfigFileUsed()
	}

	switch ext := filepath.Ext(configFile); ext {
	case ".yaml", ".yml":
	default:
		return fmt.Errorf("%q is not a supported configuration type: use .yaml or .yml", ext)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	f, err := os.OpenFile(configFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to create config file: %w", err)
	}
	if _, err := f.WriteString(defaultConfig); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return f.Close() //nolint:wrapcheck
}

// checkConfigFile parses path and validates the values speak reads from it.
func checkConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to parse config: %w", err)
	}

	if name := v.GetString("voice"); name != "" {
		if _, ok := voices.Resolve(name); !ok {
			return fmt.Errorf("unknown voice %q (available: %s)", name, strings.Join(voices.Names(), ", "))
		}
	}
	if v.IsSet("api.timeout") {
		if d := v.GetDuration("api.timeout"); d <= 0 {
			return fmt.Errorf("api.timeout must be a positive duration, got %q", v.GetString("api.timeout"))
		}
	}
	return nil
}
