package services

import (
	"fmt"
)

// PackItem is one packing obligation: a number of units of a product together
// with the product's unit mass. Callers are expected to have filtered the
// obligations to what is actually in stock before packing.
type PackItem struct {
	ProductID     int
	Quantity      int
	UnitMassGrams int
}

// Package is one planned physical package. Lines hold at most one entry per
// product and TotalMassGrams is the summed unit mass times quantity over the
// lines. Strategies guarantee TotalMassGrams never exceeds the ceiling they
// were invoked with.
type Package struct {
	Lines          []PackItem
	TotalMassGrams int
}

// PackingStrategy converts a flat list of packing obligations into a sequence
// of packages, each with total mass at or under the given ceiling.
//
// Strategies are stateless and side-effect-free so they can be swapped
// without changing callers and unit-tested in isolation. Items whose unit
// mass alone exceeds the ceiling can never ship; they are returned in the
// second result instead of failing the whole batch, and the caller decides
// how to report them.
type PackingStrategy interface {
	// Name returns the stable identifier of the heuristic, used in
	// configuration and logs.
	Name() string

	// Pack bins the items into packages under ceilingGrams.
	// The returned packages appear in creation order. Items that cannot ship
	// under the ceiling are returned as unshippable with their full
	// remaining quantity.
	Pack(items []PackItem, ceilingGrams int) (packages []Package, unshippable []PackItem)
}

// StrategyByName resolves a packing heuristic from its configuration name.
// Recognized names are "greedy-first-fit" and "weight-balanced".
func StrategyByName(name string) (PackingStrategy, error) {
	switch name {
	case GreedyFirstFitName, "":
		return NewGreedyFirstFitStrategy(), nil
	case WeightBalancedName:
		return NewWeightBalancedStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown packing strategy %q", name)
	}
}

// addToPackage merges quantity units of the item into the package, summing
// with an existing line for the same product if present.
func addToPackage(pkg *Package, item PackItem, quantity int) {
	for idx := range pkg.Lines {
		if pkg.Lines[idx].ProductID == item.ProductID {
			pkg.Lines[idx].Quantity += quantity
			pkg.TotalMassGrams += item.UnitMassGrams * quantity
			return
		}
	}

	pkg.Lines = append(pkg.Lines, PackItem{
		ProductID:     item.ProductID,
		Quantity:      quantity,
		UnitMassGrams: item.UnitMassGrams,
	})
	pkg.TotalMassGrams += item.UnitMassGrams * quantity
}
