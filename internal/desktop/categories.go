package desktop

import "github.com/mj1618/desktop-clippy/internal/platform"

// ControlTypeSet is a set of control type names.
type ControlTypeSet map[string]bool

// Control type names per category, as reported by the accessibility layer.
var (
	InteractiveTypes = ControlTypeSet{"Button": true, "Edit": true, "ComboBox": true, "CheckBox": true}
	InformativeTypes = ControlTypeSet{"Text": true}
	ScrollableTypes  = ControlTypeSet{"ScrollBar": true, "List": true}
)

// Matcher returns a predicate accepting elements whose control type is in
// the set. Elements whose control type cannot be read never match.
func (s ControlTypeSet) Matcher() func(platform.Element) bool {
	return func(el platform.Element) bool {
		name, err := el.ControlTypeName()
		if err != nil {
			return false
		}
		return s[name]
	}
}
