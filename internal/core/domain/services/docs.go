// Package services provides domain services for the fulfillment system.
//
// The package includes:
//   - PackingStrategy: the pluggable heuristic turning packing obligations
//     into weight-legal packages
//   - GreedyFirstFitStrategy: heaviest-first, first-fit binning
//   - WeightBalancedStrategy: heaviest-first binning into the lightest open package
//
// Strategies are stateless and side-effect-free; they know nothing about
// stock, orders, or persistence. The allocator owns filtering obligations to
// available stock and committing the resulting packages.
package services
