package services

import (
	"sort"
)

// WeightBalancedName is the configuration name of the weight-balanced heuristic.
const WeightBalancedName = "weight-balanced"

// WeightBalancedStrategy packs obligations heaviest-product-first into the
// lightest open package that still has room, so package masses end up close
// to each other instead of front-loading the earliest packages.
//
// Balanced packages are easier on manual handling and carrier billing tiers;
// the trade-off is a package count that can exceed first-fit's by a small
// margin. The ceiling guarantee is identical to GreedyFirstFitStrategy.
type WeightBalancedStrategy struct{}

// NewWeightBalancedStrategy creates a WeightBalancedStrategy.
func NewWeightBalancedStrategy() WeightBalancedStrategy {
	return WeightBalancedStrategy{}
}

// Name returns the stable identifier of the heuristic.
func (WeightBalancedStrategy) Name() string {
	return WeightBalancedName
}

// Pack bins the items into packages under ceilingGrams, preferring the
// lightest open package for each placement. Items that cannot ship under the
// ceiling are returned as unshippable, as with the first-fit heuristic.
func (WeightBalancedStrategy) Pack(items []PackItem, ceilingGrams int) ([]Package, []PackItem) {
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
			lightest := -1
			for idx := range packages {
				residual := ceilingGrams - packages[idx].TotalMassGrams
				if residual < item.UnitMassGrams {
					continue
				}
				if lightest == -1 || packages[idx].TotalMassGrams < packages[lightest].TotalMassGrams {
					lightest = idx
				}
			}

			if lightest == -1 {
				take := min(maxPerPackage, remaining)
				fresh := Package{}
				addToPackage(&fresh, item, take)
				packages = append(packages, fresh)
				remaining -= take
				continue
			}

			// Place one unit at a time so mass stays spread across packages.
			addToPackage(&packages[lightest], item, 1)
			remaining--
		}
	}

	return packages, unshippable
}
