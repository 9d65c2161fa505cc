//go:build darwin && cgo

package darwin

import "winctl/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Windows:       NewWindowLister(),
			Accessibility: NewAccessibility(),
			Apps:          NewAppController(),
			Spaces:        NewSpaceManager(),
			Permissions:   NewPermissions(),
		}, nil
	}
}
