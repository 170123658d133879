package core

import (
	"github.com/mitchellh/mapstructure"
)

// storedModValue is the object form of a stored enablement choice. The
// nested mods map holds the choices for the module's own sub-tree.
type storedModValue struct {
	Value *bool          `mapstructure:"value"`
	Mods  map[string]any `mapstructure:"mods"`
}

// ResolveModules flattens a module tree into the set participating in this
// launch, in declaration order. A disabled optional module excludes its
// entire sub-tree; an enabled or required module's sub-tree is evaluated
// independently against its nested configuration. The walk uses an explicit
// stack so a pathologically deep tree cannot blow the call stack.
func ResolveModules(modules []Module, config map[string]any) []Module {
	type frame struct {
		module Module
		config map[string]any
	}

	stack := make([]frame, 0, len(modules))
	for i := len(modules) - 1; i >= 0; i-- {
		stack = append(stack, frame{modules[i], config})
	}

	var out []Module
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		enabled, subConfig := moduleEnabled(&f.module, f.config)
		if !enabled {
			continue
		}

		flat := f.module
		flat.SubModules = nil
		out = append(out, flat)

		for i := len(f.module.SubModules) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.module.SubModules[i], subConfig})
		}
	}
	return out
}

// moduleEnabled applies the enablement policy for one module: a required
// module always participates, an optional one follows its stored choice and
// then its declared default. The second return is the nested configuration
// for the module's sub-tree.
func moduleEnabled(m *Module, config map[string]any) (bool, map[string]any) {
	var stored any
	if config != nil {
		stored = config[m.Identity()]
	}

	if m.Required.IsRequired() {
		_, sub := decodeStoredChoice(stored)
		return true, sub
	}

	if stored == nil {
		return m.Required.DefaultEnabled(), nil
	}

	return decodeStoredChoice(stored)
}

// decodeStoredChoice interprets a stored configuration value: a plain bool,
// or an object whose value field is true or absent. Anything undecodable
// counts as enabled so a corrupt config file cannot silently drop mods.
func decodeStoredChoice(stored any) (bool, map[string]any) {
	switch v := stored.(type) {
	case nil:
		return true, nil
	case bool:
		return v, nil
	}

	var obj storedModValue
	if err := mapstructure.Decode(stored, &obj); err != nil {
		return true, nil
	}
	return obj.Value == nil || *obj.Value, obj.Mods
}
