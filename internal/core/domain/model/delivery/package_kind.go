package delivery

import (
	"livraison/internal/pkg/errs"
)

// PackageKind tags what kind of package a delivery carries.
// It is a closed enumeration used for pricing and display only;
// the lifecycle is identical for every kind.
type PackageKind int

const (
	// PackageKindUnknown represents an invalid or undefined kind.
	PackageKindUnknown PackageKind = iota

	// PackageKindDocument is an envelope or paperwork delivery.
	PackageKindDocument

	// PackageKindMeal is a food delivery.
	PackageKindMeal

	// PackageKindParcel is a boxed package.
	PackageKindParcel

	// PackageKindOther covers everything else.
	PackageKindOther
)

func getPackageKindStrings() map[PackageKind]string {
	return map[PackageKind]string{
		PackageKindUnknown:  "unknown",
		PackageKindDocument: "document",
		PackageKindMeal:     "meal",
		PackageKindParcel:   "parcel",
		PackageKindOther:    "other",
	}
}

// Validate checks if the PackageKind is one of the defined kinds.
func (k PackageKind) Validate() error {
	if k == PackageKindUnknown {
		return errs.NewValueIsInvalidError("packageKind")
	}
	if _, ok := getPackageKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidError("packageKind")
	}
	return nil
}

// String returns the lowercase name of the kind.
func (k PackageKind) String() string {
	if str, ok := getPackageKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// PackageKindFromString parses a kind name as produced by String.
func PackageKindFromString(s string) (PackageKind, error) {
	for kind, str := range getPackageKindStrings() {
		if str == s && kind != PackageKindUnknown {
			return kind, nil
		}
	}
	return PackageKindUnknown, errs.NewValueIsInvalidError("packageKind")
}
