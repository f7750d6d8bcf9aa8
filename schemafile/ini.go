package schemafile

import (
	"fmt"

	"github.com/containeroo/envcfg"
	"github.com/containeroo/envcfg/keypath"
	"gopkg.in/ini.v1"
)

// INIDecoder decodes INI schemas. Keys before the first section belong to the
// root; a section named "APP.RECIPES" is the namespace RECIPES inside APP.
type INIDecoder struct{}

func (INIDecoder) Decode(data []byte) (*envcfg.NamespaceSpec, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	root := &node{namespace: true}
	for _, section := range cfg.Sections() {
		target := root
		if section.Name() != ini.DefaultSection {
			path, err := keypath.Parse(section.Name())
			if err != nil {
				return nil, fmt.Errorf("%w: section %q: %v", ErrBadSchema, section.Name(), err)
			}
			target = root.descend(path)
		}
		for _, k := range section.Keys() {
			target.children = append(target.children, &node{name: k.Name(), decl: k.Value()})
		}
	}
	return toSpec(root.children)
}
