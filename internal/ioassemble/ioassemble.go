// Package ioassemble turns a set of IOC files into one taxonomy. The
// taxonomy comes from a Master file when one is given, otherwise from the
// store. Other files then add comparison lists, common names, extinction
// flags and codes to it.
package ioassemble

import (
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/internal/iosource"
	"github.com/gnames/gnioc/pkg/config"
	"github.com/gnames/gnioc/pkg/ioc"
)

type assembler struct {
	cfg   *config.Config
	store ioc.Store
}

// New creates an Assembler that falls back to the given store when no
// Master file is provided.
func New(cfg *config.Config, store ioc.Store) ioc.Assembler {
	return &assembler{cfg: cfg, store: store}
}

// Assemble checks and classifies the files, builds or loads the taxonomy
// and merges auxiliary data into it in the order Other Lists,
// Multilingual, Complementary.
func (a *assembler) Assemble(paths []string) (*ioc.Taxonomy, error) {
	if err := iosource.CheckFiles(paths); err != nil {
		return nil, err
	}
	a.info("IOC files: <em>%v</em>", paths)

	srcs, err := iosource.Sorted(paths)
	if err != nil {
		return nil, err
	}

	tx, err := a.taxonomy(srcs)
	if err != nil {
		return nil, err
	}

	for _, src := range srcs {
		if src.Kind() == iosource.MasterKind {
			continue
		}
		if err = a.merge(tx, src); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// taxonomy reads the first Master file, or loads the store if there is
// none. Extra Master files are ignored.
func (a *assembler) taxonomy(srcs []*iosource.Source) (*ioc.Taxonomy, error) {
	var master *iosource.Source
	for _, src := range srcs {
		if src.Kind() != iosource.MasterKind {
			continue
		}
		if master != nil {
			slog.Warn("Ignoring extra Master file", "path", src.Path())
			gn.Warn("Ignoring extra Master file <em>%s</em>", src.Path())
			continue
		}
		master = src
	}

	if master == nil {
		a.info("Loading existing master data from <em>%s</em>", a.store.Dir())
		tx, err := a.store.Read()
		if err != nil {
			return nil, err
		}
		a.info("IOC Version: <em>%s</em>", tx.Version)
		return tx, nil
	}

	a.info("Reading IOC Master file <em>%s</em>", master.Path())
	a.info("IOC Version: <em>%s</em>", master.Version())
	if err := master.Read(); err != nil {
		return nil, err
	}
	tx := master.Taxonomy()
	slog.Info("Master file read",
		"path", master.Path(),
		"version", tx.Version,
		"taxa", tx.Stats.Total(),
	)
	return tx, nil
}

func (a *assembler) merge(tx *ioc.Taxonomy, src *iosource.Source) error {
	a.info("Reading IOC %s file <em>%s</em>", src.Kind(), src.Path())
	if err := src.Read(); err != nil {
		return err
	}

	var count int
	switch src.Kind() {
	case iosource.OtherListsKind:
		count = tx.AddTaxonomies(src.OtherLists())
	case iosource.MultilingualKind:
		count = tx.AddLanguages(src.Languages())
	case iosource.ComplementaryKind:
		count = tx.AddComplementaryInfo(src.Complementary())
	}

	slog.Info("Merged file",
		"path", src.Path(),
		"kind", src.Kind().String(),
		"taxa_updated", count,
	)
	return nil
}

func (a *assembler) info(msg string, vars ...any) {
	if a.cfg.Verbose {
		gn.Info(msg, vars...)
	}
}
