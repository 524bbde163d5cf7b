package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/aleya-dev/alpaca/internal/recipe"
	"github.com/aleya-dev/alpaca/internal/shell"
	"github.com/aleya-dev/alpaca/internal/signer"
	"github.com/aleya-dev/alpaca/internal/utils"
	"github.com/sirupsen/logrus"
)

// Builder runs the build pipeline for one recipe: workspace setup,
// source acquisition, the handle_* script phases, packaging and
// cleanup. A recipe function that is not defined is skipped, so minimal
// recipes only declare what they need.
type Builder struct {
	cfg    config.Configuration
	signer signer.Signer
}

// New creates a builder. sig may be nil, in which case built packages
// are not signed.
func New(cfg config.Configuration, sig signer.Signer) *Builder {
	return &Builder{cfg: cfg, signer: sig}
}

// Build builds the package described by desc into a binary package
// archive and returns the archive path.
func (b *Builder) Build(ctx context.Context, desc *models.Description) (archive string, err error) {
	ws := b.workspace(desc)

	if err := b.createWorkspace(ws); err != nil {
		return "", err
	}

	defer func() {
		if err != nil && b.cfg.KeepWorkspaceOnFailure {
			logrus.Infof("Keeping build directories in %s", ws.root)
			return
		}
		logrus.Info("Cleaning up build directories...")
		if rmErr := os.RemoveAll(ws.root); rmErr != nil {
			logrus.Warnf("Failed to remove workspace %s: %v", ws.root, rmErr)
		}
	}()

	if err := b.acquireSources(ctx, desc, ws); err != nil {
		return "", err
	}

	logrus.Info("Building package...")
	if err := b.callFunction(ctx, desc, "handle_build", ws.buildDir, ws); err != nil {
		return "", err
	}

	if b.cfg.SkipPackageCheck {
		logrus.Warn("Skipping package check. " +
			"This can lead to unexpected behavior as packages may not be built correctly.")
	} else {
		logrus.Info("Checking package...")
		if err := b.callFunction(ctx, desc, "handle_check", ws.buildDir, ws); err != nil {
			return "", err
		}
	}

	logrus.Info("Packaging package...")
	if err := b.callFunction(ctx, desc, "handle_package", ws.buildDir, ws); err != nil {
		return "", err
	}

	return b.packageUp(desc, ws)
}

type workspace struct {
	root       string
	sourceDir  string
	buildDir   string
	packageDir string
}

func (b *Builder) workspace(desc *models.Description) workspace {
	root := b.cfg.PackageWorkspacePath(desc.Atom.String())
	return workspace{
		root:       root,
		sourceDir:  filepath.Join(root, "source"),
		buildDir:   filepath.Join(root, "build"),
		packageDir: filepath.Join(root, "package"),
	}
}

func (b *Builder) createWorkspace(ws workspace) error {
	if _, err := os.Stat(ws.root); err == nil {
		if !b.cfg.DeleteWorkspace {
			return &models.AlpacaError{
				Type:    models.ErrFileOp,
				Subject: ws.root,
				Err:     fmt.Errorf("workspace must not exist"),
			}
		}
		logrus.Debugf("Removing existing workspace %s", ws.root)
		if err := os.RemoveAll(ws.root); err != nil {
			return &models.AlpacaError{Type: models.ErrFileOp, Subject: ws.root, Err: err}
		}
	}

	logrus.Debugf("Creating workspace directories in %s", ws.root)

	for _, dir := range []string{ws.root, ws.sourceDir, ws.buildDir, ws.packageDir} {
		if err := utils.EnsureDir(dir); err != nil {
			return &models.AlpacaError{Type: models.ErrFileOp, Subject: dir, Err: err}
		}
	}

	return nil
}

// callFunction sources the recipe and invokes the named function if the
// recipe defines it.
func (b *Builder) callFunction(ctx context.Context, desc *models.Description, function, dir string, ws workspace) error {
	logrus.Debugf("Calling function %s in recipe from %s", function, dir)

	script := fmt.Sprintf(`source %s
if command -v %s >/dev/null 2>&1; then
	%s
else
	echo 'Skipping "%s". Function not found.'
fi
`, shell.Quote(desc.RecipePath), function, function, function)

	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	if b.cfg.SuppressBuildOutput {
		stdout = io.Discard
	}

	err := shell.Run(ctx, script, shell.Options{
		Dir:    dir,
		Env:    b.environment(desc, ws),
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		status, ok := shell.ExitStatus(err)
		if !ok {
			status = -1
		}
		return &models.AlpacaError{
			Type:    models.ErrRecipeExec,
			Subject: function,
			Err:     fmt.Errorf("recipe %s failed with exit status %d: %w", desc.RecipePath, status, err),
		}
	}

	return nil
}

// environment extends the recipe evaluation surface with the workspace
// directories the build phases operate on.
func (b *Builder) environment(desc *models.Description, ws workspace) map[string]string {
	env := recipe.Environment(b.cfg, &desc.Atom)
	env["source_directory"] = ws.sourceDir
	env["build_directory"] = ws.buildDir
	env["package_directory"] = ws.packageDir

	// Build phases invoke external tools (make, cc, tar), so unlike
	// metadata extraction they get the caller's PATH.
	env["PATH"] = os.Getenv("PATH")

	return env
}

// packageUp writes the package metadata files and archives the package
// directory into the binary package artifact.
func (b *Builder) packageUp(desc *models.Description, ws workspace) (string, error) {
	if err := WriteFileInfo(ws.packageDir); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: ws.packageDir, Err: err}
	}

	binHash, err := b.binaryHash(desc)
	if err != nil {
		return "", err
	}
	if err := utils.WriteFile(filepath.Join(ws.packageDir, ".hash"), []byte(binHash+"\n"), 0644); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: ws.packageDir, Err: err}
	}

	info := packageInfo(desc)
	if err := utils.WriteFile(filepath.Join(ws.packageDir, ".package_info"), []byte(info), 0644); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: ws.packageDir, Err: err}
	}

	outputDir := b.cfg.OutputDir
	if outputDir == "" {
		outputDir = b.cfg.BinaryCachePath()
	}
	if err := utils.EnsureDir(outputDir); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: outputDir, Err: err}
	}

	archive := filepath.Join(outputDir, desc.Atom.String()+config.PackageFileExtension)

	logrus.Infof("Writing package archive %s", archive)
	if err := utils.CreateTarGz(ws.packageDir, archive); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: archive, Err: err}
	}

	if b.signer != nil {
		if err := b.signArchive(archive); err != nil {
			return "", err
		}
	}

	return archive, nil
}

// binaryHash identifies a built binary: the digest of the recipe text
// and the target architecture. A matching hash in the binary cache
// means a rebuild from source can be skipped.
func (b *Builder) binaryHash(desc *models.Description) (string, error) {
	script, err := os.ReadFile(desc.RecipePath)
	if err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: desc.RecipePath, Err: err}
	}

	return utils.DataSHA256(append(script, []byte(b.cfg.TargetArchitecture)...)), nil
}

func (b *Builder) signArchive(archive string) error {
	data, err := os.ReadFile(archive)
	if err != nil {
		return &models.AlpacaError{Type: models.ErrSigning, Subject: archive, Err: err}
	}

	sig, err := b.signer.SignDetached(data)
	if err != nil {
		return &models.AlpacaError{Type: models.ErrSigning, Subject: archive, Err: err}
	}

	logrus.Debugf("Writing detached signature %s.sig", archive)
	return utils.WriteFile(archive+".sig", sig, 0644)
}

func packageInfo(desc *models.Description) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "name=%q\n", desc.Atom.Name)
	fmt.Fprintf(&sb, "version=%q\n", desc.Atom.Version)
	fmt.Fprintf(&sb, "release=%q\n", desc.Atom.Release)
	fmt.Fprintf(&sb, "url=%q\n", desc.URL)
	fmt.Fprintf(&sb, "licenses=(%s)\n", strings.Join(desc.Licenses, " "))
	fmt.Fprintf(&sb, "dependencies=(%s)\n", strings.Join(desc.Dependencies, " "))
	fmt.Fprintf(&sb, "build_dependencies=(%s)\n", strings.Join(desc.BuildDependencies, " "))
	fmt.Fprintf(&sb, "sources=(%s)\n", strings.Join(desc.Sources, " "))
	fmt.Fprintf(&sb, "sha256sums=(%s)\n", strings.Join(desc.SHA256Sums, " "))
	fmt.Fprintf(&sb, "package_options=(%s)\n", strings.Join(desc.AvailableOptions, " "))

	return sb.String()
}
