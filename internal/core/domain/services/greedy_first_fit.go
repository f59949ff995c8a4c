package services

import (
	"sort"
)

// GreedyFirstFitName is the configuration name of the greedy first-fit heuristic.
const GreedyFirstFitName = "greedy-first-fit"

// GreedyFirstFitStrategy packs obligations heaviest-product-first into the
// earliest open package with room, opening a new package only when no
// existing one can take another unit.
//
// Seating large items before the bins are constrained by smaller ones
// reduces fragmentation, which keeps the package count close to the optimum
// for typical warehouse loads without the cost of an exact solver.
type GreedyFirstFitStrategy struct{}

// NewGreedyFirstFitStrategy creates a GreedyFirstFitStrategy.
func NewGreedyFirstFitStrategy() GreedyFirstFitStrategy {
	return GreedyFirstFitStrategy{}
}

// Name returns the stable identifier of the heuristic.
func (GreedyFirstFitStrategy) Name() string {
	return GreedyFirstFitName
}

// Pack bins the items into packages under ceilingGrams.
//
// The algorithm:
//  1. Discard items with non-positive quantity or unit mass; sort the rest
//     by unit mass descending.
//  2. For each item, while units remain: place as many units as fit into the
//     first open package with residual capacity for at least one unit,
//     merging into an existing line for the same product; if no open package
//     has room, open a new one with up to floor(ceiling/unitMass) units.
//  3. A product whose single unit exceeds the ceiling can never ship; its
//     whole quantity is reported as unshippable and packing continues with
//     the remaining items.
func (GreedyFirstFitStrategy) Pack(items []PackItem, ceilingGrams int) ([]Package, []PackItem) {
	sorted := make([]PackItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 && item.UnitMassGrams > 0 {
			sorted = append(sorted, item)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnitMassGrams > sorted[j].UnitMassGrams
	})

	packages := make([]Package, 0)
	unshippable := make([]PackItem, 0)

	for _, item := range sorted {
		maxPerPackage := ceilingGrams / item.UnitMassGrams
		if maxPerPackage == 0 {
			unshippable = append(unshippable, item)
			continue
		}

		remaining := item.Quantity
		for remaining > 0 {
			placed := false
			for idx := range packages {
				residual := ceilingGrams - packages[idx].TotalMassGrams
				fit := residual / item.UnitMassGrams
				if fit == 0 {
					continue
				}

				take := min(fit, remaining)
				addToPackage(&packages[idx], item, take)
				remaining -= take
				placed = true
				break
			}

			if !placed {
				take := min(maxPerPackage, remaining)
				fresh := Package{}
				addToPackage(&fresh, item, take)
				packages = append(packages, fresh)
				remaining -= take
			}
		}
	}

	return packages, unshippable
}
