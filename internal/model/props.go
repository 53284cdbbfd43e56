package model

import "github.com/zclconf/go-cty/cty"

// Props values form a closed set: boolean, string, or number. Anything
// else in a manifest is a configuration error, not a value to coerce.

// CheckProps validates every value of a props mapping against the accepted
// type set.
func CheckProps(owner string, props map[string]cty.Value) error {
	for k, v := range props {
		if !IsPropType(v.Type()) {
			return Configf("%s: prop %q has unsupported type %s (want bool, string, or number)", owner, k, v.Type().FriendlyName())
		}
	}
	return nil
}

// IsPropType reports whether ty is in the accepted prop value set.
func IsPropType(ty cty.Type) bool {
	return ty == cty.Bool || ty == cty.String || ty == cty.Number
}

// FormatProp renders a prop value the way it appears in emitted macro
// flags. Numbers keep their shortest exact decimal form.
func FormatProp(v cty.Value) (string, error) {
	switch v.Type() {
	case cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	default:
		return "", Configf("prop value has unsupported type %s (want bool, string, or number)", v.Type().FriendlyName())
	}
}
