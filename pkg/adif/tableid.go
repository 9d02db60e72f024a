package adif

import (
	"fmt"
	"strconv"
	"strings"
)

// Table ids routed by Load.
const (
	enumerationPrefix = "Enumeration_"
	fieldPrefix       = "Field_"
	dataTypesID       = "_Data_Types"
	headerFieldsID    = "Field_Header"
)

// Subdivision enumerations are split over one table per DXCC entity.
const (
	PrimarySubdivision      = "Primary_Administrative_Subdivision"
	SecondarySubdivision    = "Secondary_Administrative_Subdivision"
	SecondarySubdivisionAlt = "Secondary_Administrative_Subdivision_Alt"
)

type variant int

const (
	plainEnumeration variant = iota
	primaryVariant
	secondaryVariant
	secondaryAltVariant
)

func (v variant) isSubdivision() bool {
	return v != plainEnumeration
}

// variantOf classifies an enumeration name. The _Alt name is tested before
// its shorter prefix.
func variantOf(name string) variant {
	switch {
	case strings.HasPrefix(name, PrimarySubdivision):
		return primaryVariant
	case strings.HasPrefix(name, SecondarySubdivisionAlt):
		return secondaryAltVariant
	case strings.HasPrefix(name, SecondarySubdivision):
		return secondaryVariant
	default:
		return plainEnumeration
	}
}

var variantNames = map[variant]string{
	primaryVariant:      PrimarySubdivision,
	secondaryVariant:    SecondarySubdivision,
	secondaryAltVariant: SecondarySubdivisionAlt,
}

// enumerationID is a parsed Enumeration_{name}[_{dxcc}] table id.
type enumerationID struct {
	name    string
	variant variant
	// entity is the DXCC entity code of a subdivision table.
	entity int
}

func parseEnumerationID(id string) (enumerationID, error) {
	name := strings.TrimPrefix(id, enumerationPrefix)
	v := variantOf(name)
	if !v.isSubdivision() {
		return enumerationID{name: name}, nil
	}

	base := variantNames[v]
	suffix, ok := strings.CutPrefix(name[len(base):], "_")
	if !ok || suffix == "" {
		return enumerationID{}, fmt.Errorf("%w: table id %q has no DXCC entity code", ErrStructure, id)
	}
	entity, err := strconv.Atoi(suffix)
	if err != nil || entity < 0 {
		return enumerationID{}, fmt.Errorf("%w: table id %q has an invalid DXCC entity code %q", ErrStructure, id, suffix)
	}
	return enumerationID{name: base, variant: v, entity: entity}, nil
}
