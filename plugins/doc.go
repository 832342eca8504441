// Package plugins hosts organism implementations. Each subpackage provides a
// domain.Generator and its domain.Organism type, and depends only on the
// public contracts in evolve/pkg/domain; nothing under plugins may import an
// internal package of this module.
package plugins
