// Package ports defines the core interfaces for the application.
package ports

import "github.com/plankbuild/plank/internal/core/domain"

// BaseRegistryProvider supplies the base capability/toolchain registry and
// named extension layers for a platform. The core calls it as a pure lookup;
// an unknown platform surfaces as ErrUnsupportedPlatform.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry_provider.go -destination=mocks/mock_registry_provider.go -package=mocks
type BaseRegistryProvider interface {
	// BaseRegistry returns the base registry for the platform.
	BaseRegistry(platform domain.Platform) (*domain.Registry, error)

	// ExtensionLayer returns the named extension layer for the platform.
	// An unknown layer name surfaces as ErrUnresolvedExtension.
	ExtensionLayer(platform domain.Platform, name string) (domain.ExtensionLayer, error)
}
