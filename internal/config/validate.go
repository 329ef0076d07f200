// CUE schema validation code
package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

//go:embed mission.cue
var missionSchema string

// ValidateWithCue checks a YAML mission document against the embedded #Mission
// schema. name is only used in error positions.
func ValidateWithCue(name string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(missionSchema, cue.Filename("mission.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Mission"))

	file, err := yaml.Extract(name, data)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if configVal.Err() != nil {
		return fmt.Errorf("cannot build YAML config: %w", configVal.Err())
	}

	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
