package recipe

import (
	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/models"
)

// Environment builds the variable set a recipe observes during
// evaluation. This is the complete surface: recipes never see the
// ambient process environment, only the target description, the
// package identity and the build flags.
func Environment(cfg config.Configuration, atom *models.Atom) map[string]string {
	env := map[string]string{
		"target_architecture": cfg.TargetArchitecture,
		"target_platform":     cfg.TargetPlatform,
		"c_flags":             cfg.CFlags,
		"cpp_flags":           cfg.CPPFlags,
		"ld_flags":            cfg.LDFlags,
		"make_flags":          cfg.MakeFlags,
		"ninja_flags":         cfg.NinjaFlags,
	}

	// The identity variables are absent during the early probe that
	// reads name/version/release out of a bare recipe file.
	if atom != nil {
		env["package_atom"] = atom.String()
		env["package_version"] = atom.Version
		env["package_build"] = atom.Release
	}

	return env
}
