package ioc

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
)

// HierarchyError is returned when a Master row does not fit under the
// current ancestor, for example a species that follows a family without a
// genus in between.
func HierarchyError(key string, rank, parentRank Rank) error {
	msg := `Taxon <em>%s</em> (%s) cannot be placed under %s

<em>How to fix:</em>
  Check that the Master file lists every intermediate rank`
	parent := "the top of the hierarchy"
	if parentRank != UnknownRank {
		parent = "a taxon of rank " + string(parentRank)
	}
	vars := []any{key, rank, parent}

	return &gn.Error{
		Code: errcode.TaxonomyHierarchyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"structural inconsistency: %s '%s' under %s",
			rank, key, parent,
		),
	}
}

// DuplicateKeyError is returned when two taxa share the same unique key.
func DuplicateKeyError(key string, first, second Rank) error {
	msg := `Unique key <em>%s</em> is used by more than one taxon (%s, %s)`
	vars := []any{key, first, second}

	return &gn.Error{
		Code: errcode.TaxonomyDuplicateKeyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("duplicate key '%s'", key),
	}
}

// EmptyNameError is returned for a row that has a rank but no name.
func EmptyNameError(rank Rank) error {
	msg := `Found a taxon of rank <em>%s</em> without a name`
	vars := []any{rank}

	return &gn.Error{
		Code: errcode.TaxonomyHierarchyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("empty name for rank %s", rank),
	}
}
