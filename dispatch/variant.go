package dispatch

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Variant names one implementation strategy.
type Variant string

const (
	Scalar         Variant = "scalar"
	Magic          Variant = "magic"
	Lookup4        Variant = "lookup-4bit"
	Lookup8        Variant = "lookup-8bit"
	Lookup16       Variant = "lookup-16bit"
	VectorNaive    Variant = "vector-naive"
	VectorMagic    Variant = "vector-magic"
	VectorLookup16 Variant = "vector-lookup-16bit"
	Parallel       Variant = "parallel"
)

// Variants lists every variant, whatever mode it supports.
var Variants = []Variant{Scalar, Magic, Lookup4, Lookup8, Lookup16, VectorNaive, VectorMagic, VectorLookup16, Parallel}

// aliases are the implementation names the command line tool used to print
var aliases = map[string]Variant{
	"ZCURVE":                   Scalar,
	"ZCURVE_MAGIC":             Magic,
	"ZCURVE_LOOKUP_4BIT":       Lookup4,
	"ZCURVE_LOOKUP_8BIT":       Lookup8,
	"ZCURVE_LOOKUP_16BIT":      Lookup16,
	"ZCURVE_SIMD":              VectorNaive,
	"ZCURVE_MAGIC_SIMD":        VectorMagic,
	"ZCURVE_LOOKUP_SIMD_16BIT": VectorLookup16,
	"ZCURVE_MULTITHREADED":     Parallel,
}

// Alias returns the old style upper case name of v, or an empty string.
func (v Variant) Alias() string {
	for alias, variant := range aliases {
		if variant == v {
			return alias
		}
	}
	return ""
}

// lookupVariant finds a variant by its name, its old style name or a
// differently cased spelling of its name (VectorMagic, vector_magic).
func lookupVariant(name string) (Variant, bool) {
	name = strings.TrimSpace(name)
	for _, v := range Variants {
		if string(v) == name {
			return v, true
		}
	}
	if v, ok := aliases[strings.ToUpper(name)]; ok {
		return v, true
	}
	kebab := Variant(strcase.ToKebab(name))
	for _, v := range Variants {
		if v == kebab {
			return v, true
		}
	}
	return "", false
}
