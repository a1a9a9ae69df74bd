package module

import (
	_ "embed"
	"fmt"
)

//go:embed framework.xml
var frameworkManifest []byte

// FrameworkName is name of built-in framework module.
const FrameworkName = "PresentationFramework"

// Framework returns freshly parsed built-in framework module: base visual
// element types, stock controls and their default styles.
func Framework() (*Module, error) {
	m, err := Parse(frameworkManifest, "framework.xml")
	if err != nil {
		return nil, fmt.Errorf("unable to load framework module: %w", err)
	}
	return m, nil
}
