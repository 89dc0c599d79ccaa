// Package config holds the settings of a zcurve run. They come from struct
// defaults, an optional YAML or JSON file and finally the command line.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/perimeterx/marshmallow"
	"sigs.k8s.io/yaml"

	"github.com/pdok/zcurve/vector"
)

type Config struct {
	// Degree has no default, it has to be chosen
	Degree        uint   `validate:"required,gte=1,lte=16" json:"degree"`
	Variant       string `json:"variant,omitempty"`
	Threads       int    `default:"3" validate:"gte=1,lte=8" json:"threads"`
	VectorBackend string `default:"detect" validate:"oneof=detect auto scalar none lanes simd" json:"vectorBackend"`
	// Tables is a directory with lookup table artifacts. When empty the tables are built at startup.
	Tables string `json:"tables,omitempty"`
	Bench  Bench  `json:"bench"`
	SVG    SVG    `json:"svg"`
}

type Bench struct {
	Iterations   uint    `default:"10" validate:"gte=1,lte=1000000" json:"iterations"`
	PauseSeconds float64 `default:"0" validate:"gte=0" json:"pauseSeconds"`
}

type SVG struct {
	// Save writes the curve to Filename after a full curve run
	Save     bool   `json:"save,omitempty"`
	Filename string `default:"zcurve.svg" validate:"required,max=255,excludes=/" json:"filename"`
	Scale    uint   `default:"10" validate:"gte=1" json:"scale"`
	Offset   uint   `default:"2" json:"offset"`
	Style    string `default:"path" validate:"oneof=path line" json:"style"`
}

// Default returns a config with every default filled in. It does not validate,
// the degree still has to be set.
func Default() (Config, error) {
	var c Config
	err := defaults.Set(&c)
	return c, err
}

// Load reads a YAML or JSON config file on top of the defaults. Keys that
// are not part of Config are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	// an empty file decodes to null, which leaves c untouched
	c, err := Default()
	if err != nil {
		return Config{}, err
	}
	if err = yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return c, nil
}

// plain is Config without its UnmarshalJSON
type plain Config

// UnmarshalJSON also serves YAML, which sigs.k8s.io/yaml converts to JSON first.
// Values are decoded on top of the defaults, nested ones included.
func (c *Config) UnmarshalJSON(data []byte) error {
	err := defaults.Set(c)
	if err != nil {
		return err
	}
	var probe plain
	unknown, err := marshmallow.Unmarshal(data, &probe, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		keys := make([]string, 0, len(unknown))
		for k := range unknown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return json.Unmarshal(data, (*plain)(c))
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SVGOutput is the file a full curve run saves to, if any.
func (c *Config) SVGOutput() (string, bool) {
	return c.SVG.Filename, c.SVG.Save
}

// Backend is the vector backend the config asks for.
func (c *Config) Backend() (vector.Backend, error) {
	return vector.ParseBackend(c.VectorBackend)
}
