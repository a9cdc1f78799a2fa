package dataset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

const utf8BOM = "\ufeff"

// Schema describes how source headers and flag tokens map onto canonical names.
type Schema struct {
	// Aliases maps a source header (case-insensitive) to a canonical column name.
	Aliases map[string]string `yaml:"aliases"`
	// YesTokens are the source spellings of a positive coverage flag.
	YesTokens []string `yaml:"yes_tokens"`
	// NoTokens are the source spellings of a negative coverage flag.
	NoTokens []string `yaml:"no_tokens"`
	// Required lists canonical columns a dataset must carry.
	Required []string `yaml:"required"`
}

// DefaultSchema returns the schema of the national coverage dataset, whose headers are Spanish.
func DefaultSchema() Schema {
	return Schema{
		Aliases: map[string]string{
			"DEPARTAMENTO":               domain.ColDepartment,
			"MUNICIPIO":                  domain.ColMunicipality,
			"CENTRO_POBLADO":             domain.ColPopulatedCenter,
			"NOMBRE_PROVEEDOR_COMERCIAL": domain.ColProvider,
			"COBERTURA_2G":               domain.ColCoverage2G,
			"COBERTURA_3G":               domain.ColCoverage3G,
			"COBERTURA_4G":               domain.ColCoverage4G,
			"COBERTURA_5G":               domain.ColCoverage5G,
			"TASA_POBREZA":               domain.ColPovertyRate,
			"TASA_DESEMPLEO":             domain.ColUnemploymentRate,
			"TASA_ELECTRIFICACION":       domain.ColElectrificationRate,
			"INGRESO_PROMEDIO_HOGAR":     domain.ColHouseholdIncome,
			"ESTRATO_PROMEDIO":           domain.ColAverageStratum,
			"PCT_HOGARES_INTERNET":       domain.ColHouseholdInternet,
			"PRECIPITACION_MEDIA":        domain.ColMeanPrecipitation,
			"LATITUD":                    domain.ColLatitude,
			"LONGITUD":                   domain.ColLongitude,
		},
		YesTokens: []string{domain.FlagYes, "SÍ", "SI"},
		NoTokens:  []string{domain.FlagNo},
		Required:  domain.HierarchyColumns(),
	}
}

// LoadSchema reads a YAML schema file and merges it over DefaultSchema.
// Aliases are added or overridden one by one; token and required lists replace the defaults
// when present.
func LoadSchema(path string) (Schema, error) {
	schema := DefaultSchema()

	data, err := os.ReadFile(path)
	if err != nil {
		return schema, fmt.Errorf("read schema %s: %w", path, err)
	}

	var override Schema
	if err := yaml.Unmarshal(data, &override); err != nil {
		return schema, fmt.Errorf("%w: parse schema %s: %w", apperrors.ErrInvalidInput, path, err)
	}

	for from, to := range override.Aliases {
		schema.Aliases[normalizeHeader(from)] = normalizeHeader(to)
	}

	if len(override.YesTokens) > 0 {
		schema.YesTokens = override.YesTokens
	}

	if len(override.NoTokens) > 0 {
		schema.NoTokens = override.NoTokens
	}

	if len(override.Required) > 0 {
		schema.Required = override.Required
	}

	return schema, nil
}

// Canonical returns the canonical column name for a source header.
// Headers without an alias keep their trimmed, upper-cased spelling.
func (s Schema) Canonical(header string) string {
	h := normalizeHeader(header)

	for from, to := range s.Aliases {
		if normalizeHeader(from) == h {
			return to
		}
	}

	return h
}

// NormalizeFlag maps a source flag token onto FlagYes or FlagNo.
// Unknown tokens are returned trimmed but otherwise untouched, so they never compare equal to FlagYes.
func (s Schema) NormalizeFlag(v string) string {
	v = strings.TrimSpace(v)

	for _, tok := range s.YesTokens {
		if strings.EqualFold(v, tok) {
			return domain.FlagYes
		}
	}

	for _, tok := range s.NoTokens {
		if strings.EqualFold(v, tok) {
			return domain.FlagNo
		}
	}

	return v
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}
