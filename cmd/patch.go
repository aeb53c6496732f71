package cmd

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/moyoez/configd/types"
)

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// ParsePatchArgs turns key=value arguments into a ConfigPatch. Keys are sjson
// paths, so nested devSettings keys can be addressed with dots.
func ParsePatchArgs(args []string) (types.ConfigPatch, error) {
	var patch types.ConfigPatch
	doc := "{}"
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return patch, fmt.Errorf("invalid argument %q: want key=value", arg)
		}
		var err error
		if gjson.Valid(value) {
			doc, err = sjson.SetRaw(doc, key, value)
		} else {
			doc, err = sjson.Set(doc, key, value)
		}
		if err != nil {
			return patch, fmt.Errorf("set %s: %w", key, err)
		}
	}
	if err := strictJSON.UnmarshalFromString(doc, &patch); err != nil {
		return patch, fmt.Errorf("invalid config patch %s: %w", doc, err)
	}
	return patch, nil
}
