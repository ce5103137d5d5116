// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
)

// installRustup installs rustup unless it is already on PATH.
func (p *Plugin) installRustup(ctx context.Context, data any, opts Options) bool {
	if !p.enabled(InstallRustup, data) {
		return false
	}
	return p.ensure(ctx, rustupInstaller, "rustup", opts)
}

// cargo installs every listed package. A failed package does not stop the
// remaining ones; the result is false if any failed.
func (p *Plugin) cargo(ctx context.Context, data any, opts Options) bool {
	pkgs, err := packageList(data)
	if err != nil {
		p.log().Error("cargo expects a list of packages", "err", err)
		return false
	}

	result := true
	for _, pkg := range pkgs {
		if !p.ensure(ctx, cargoInstaller, pkg, opts) {
			result = false
		}
	}

	if result {
		p.log().Info("All cargo packages have been installed")
	} else {
		p.log().Error("Some packages were not installed")
	}
	return result
}

// cargoUpdate installs cargo-update if needed, then updates every package.
func (p *Plugin) cargoUpdate(ctx context.Context, data any, opts Options) bool {
	if !p.enabled(CargoUpdate, data) {
		return false
	}

	if !p.ensure(ctx, cargoUpdateInstaller, "cargo-update", opts) {
		return false
	}

	code := p.invoke(ctx, cargoUpdateAll, opts)
	if !code.IsSuccess() {
		p.log().Warn("Failed to update cargo packages", "exit", code)
		return false
	}

	p.log().Info("All cargo packages up to date")
	return true
}

// enabled interprets a flag-style payload. An explicit false is a refusal.
func (p *Plugin) enabled(name Name, data any) bool {
	on, err := cast.ToBoolE(data)
	if err != nil {
		p.log().Error(fmt.Sprintf("%s expects a boolean", name), "value", data)
		return false
	}
	if !on {
		p.log().Error(fmt.Sprintf("%s: false is nonsensical, remove the directive instead", name))
		return false
	}
	return true
}

// packageList coerces a list payload into package specifiers. A nil element
// becomes a blank specifier so it fails on its own without aborting the list.
func packageList(data any) ([]PackageSpec, error) {
	var items []any
	switch v := data.(type) {
	case []any:
		items = v
	case []string:
		specs := make([]PackageSpec, len(v))
		for i, s := range v {
			specs[i] = PackageSpec(s)
		}
		return specs, nil
	default:
		return nil, fmt.Errorf("got %T", data)
	}

	specs := make([]PackageSpec, 0, len(items))
	for i, item := range items {
		if item == nil {
			specs = append(specs, "")
			continue
		}
		s, err := cast.ToStringE(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		specs = append(specs, PackageSpec(s))
	}
	return specs, nil
}
