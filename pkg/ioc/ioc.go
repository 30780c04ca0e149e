// Package ioc contains the pure model of the IOC World Bird List:
// taxa, ranks, the taxonomy forest with its flat name index, the tree
// builder for Master rows, the merge of auxiliary sources and statistics.
//
// This package does no I/O. Reading source tables and persisting
// taxonomies are implemented by internal/iosource and internal/iostore.
package ioc

// Store persists a Taxonomy as a directory with one JSON file per taxon.
type Store interface {
	// Dir returns the store directory.
	Dir() string

	// Exists reports whether the store directory is present on disk.
	Exists() bool

	// Write creates the store directory and writes the version marker and
	// one file per taxon. The directory must not exist yet. The taxonomy
	// is not modified.
	Write(tx *Taxonomy) error

	// Read reconstructs a Taxonomy from the store, counting taxa per rank
	// exactly like the Builder does.
	Read() (*Taxonomy, error)
}

// Assembler builds a merged Taxonomy from IOC source files. When no
// Master file is given, the taxonomy is loaded from the Store.
type Assembler interface {
	Assemble(paths []string) (*Taxonomy, error)
}
