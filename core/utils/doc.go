// Package utils provides small helpers shared across the asset catalog,
// such as display formatting of scalar values.
package utils
