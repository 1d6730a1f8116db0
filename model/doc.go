// Package model defines the structured record produced by the extraction
// pipeline: the document-level record, its ordered sections, validated tables,
// grouped figures, and the bounding-box geometry shared by the spatial
// components.
//
// All values in this package are plain data. They are created by the pipeline
// components, finalized once, and never mutated afterwards; JSON tags match the
// on-disk record format (Spanish field names, following the UNE tooling this
// module interoperates with).
package model
