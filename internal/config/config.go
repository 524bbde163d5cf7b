package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// RecipeFileExtension is the file extension of package recipes.
	RecipeFileExtension = ".recipe"

	// PackageFileExtension is the file extension of built binary packages.
	PackageFileExtension = ".alpaca-package.tar.gz"

	// ConfigPathEnvVar overrides the configuration file lookup.
	ConfigPathEnvVar = "ALEYA_CONFIG"
)

// Configuration holds the resolved alpaca configuration. It is built
// once at startup and passed explicitly to the components that need it;
// there is no global configuration state.
type Configuration struct {
	Verbose              bool
	SuppressBuildOutput  bool
	ShowDownloadProgress bool

	TargetArchitecture string
	TargetPlatform     string
	WorkspacePath      string

	// Repositories holds the raw repository declarations from the
	// configuration file, e.g. "git+https://example.org/recipes.git".
	Repositories   []string
	PackageStreams []string

	CFlags     string
	CPPFlags   string
	LDFlags    string
	MakeFlags  string
	NinjaFlags string

	GPGKeyPath    string
	GPGPassphrase string

	// Per-invocation options, set from command line flags rather than
	// the configuration file.
	ForceBuildFromSource   bool
	KeepWorkspaceOnFailure bool
	SkipPackageCheck       bool
	DeleteWorkspace        bool
	WorkspaceOverride      string
	OutputDir              string
	ForceDownload          bool
}

// Load reads the alpaca configuration. When path is empty the usual
// lookup order applies: the ALEYA_CONFIG environment variable,
// ~/.alpaca, /etc/alpaca.conf, then ./alpaca.conf in the working
// directory. A missing configuration file yields the defaults.
func Load(path string) (Configuration, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.SetDefault("general.verbose", false)
	v.SetDefault("general.suppress_build_output", false)
	v.SetDefault("general.show_download_progress", true)
	v.SetDefault("environment.target_architecture", "x86_64")
	v.SetDefault("environment.target_platform", "linux")
	v.SetDefault("environment.workspace_path", "~/alpaca_workspace")
	v.SetDefault("repository.repositories", []string{})
	v.SetDefault("repository.package_streams", []string{"core"})
	v.SetDefault("build.c_flags", "")
	v.SetDefault("build.cpp_flags", "")
	v.SetDefault("build.ld_flags", "")
	v.SetDefault("build.make_flags", "")
	v.SetDefault("build.ninja_flags", "")
	v.SetDefault("signing.gpg_key", "")
	v.SetDefault("signing.gpg_passphrase", "")

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		logrus.Debugf("Using configuration file %s", path)
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Configuration{}, err
		}
	} else {
		logrus.Warn("No configuration file found, using default configuration")
	}

	cfg := Configuration{
		Verbose:              v.GetBool("general.verbose"),
		SuppressBuildOutput:  v.GetBool("general.suppress_build_output"),
		ShowDownloadProgress: v.GetBool("general.show_download_progress"),
		TargetArchitecture:   v.GetString("environment.target_architecture"),
		TargetPlatform:       v.GetString("environment.target_platform"),
		WorkspacePath:        expandHome(v.GetString("environment.workspace_path")),
		Repositories:         v.GetStringSlice("repository.repositories"),
		PackageStreams:       v.GetStringSlice("repository.package_streams"),
		CFlags:               v.GetString("build.c_flags"),
		CPPFlags:             v.GetString("build.cpp_flags"),
		LDFlags:              v.GetString("build.ld_flags"),
		MakeFlags:            v.GetString("build.make_flags"),
		NinjaFlags:           v.GetString("build.ninja_flags"),
		GPGKeyPath:           expandHome(v.GetString("signing.gpg_key")),
		GPGPassphrase:        v.GetString("signing.gpg_passphrase"),
	}

	return cfg, nil
}

// RepositoryCachePath returns the directory holding the local cache of
// remote recipe repositories.
func (c Configuration) RepositoryCachePath() string {
	return filepath.Join(c.WorkspacePath, "repositories")
}

// WorkspaceBasePath returns the directory holding per-package build
// workspaces (sources and build intermediates).
func (c Configuration) WorkspaceBasePath() string {
	return filepath.Join(c.WorkspacePath, "workspace")
}

// BinaryCachePath returns the local binary package cache directory.
func (c Configuration) BinaryCachePath() string {
	return filepath.Join(c.WorkspacePath, "bincache", "local")
}

// PackageWorkspacePath returns the workspace directory for one atom
// string, honoring a per-invocation override.
func (c Configuration) PackageWorkspacePath(atom string) string {
	if c.WorkspaceOverride != "" {
		return c.WorkspaceOverride
	}
	return filepath.Join(c.WorkspaceBasePath(), atom)
}

func findConfigFile() string {
	if env := os.Getenv(ConfigPathEnvVar); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
		logrus.Warnf("Configuration file from %s does not exist: %s. Ignoring", ConfigPathEnvVar, env)
	}

	candidates := []string{expandHome("~/.alpaca"), "/etc/alpaca.conf", "alpaca.conf"}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
