package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Source file errors
	SourceFileNotFoundError
	SourceNotTabularError
	SourceUnrecognizedFormatError
	SourceReadError

	// Taxonomy structure errors
	TaxonomyHierarchyError
	TaxonomyDuplicateKeyError
	TaxonomyBrokenReferenceError
	TaxonomyCycleError
	TaxonomyMalformedRecordError

	// Store errors
	StoreExistsError
	StoreNoMasterDataError
	StoreEncodeError
)
