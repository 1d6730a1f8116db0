// Package sections recovers the numbered-section tree of a standard from its
// cleaned text stream. It walks the text line by line against an ordered set
// of heading grammars, partitions content into per-section buffers, trims
// next-heading leakage from each buffer, and orders the result canonically
// (numeric sections first, then lettered annexes).
package sections
