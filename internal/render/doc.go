// Package render converts numeric magnitudes into the fixed-width text
// fragments duhist reports are built from: 3-character size and age fields,
// middle-elided labels, and ASCII bars on a linear or logarithmic scale.
package render
