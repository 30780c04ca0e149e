package iosource

import (
	"log/slog"

	"github.com/gnames/gnioc/pkg/ioc"
	"github.com/gnames/gnioc/pkg/parserpool"
)

type rankColumn struct {
	rank ioc.Rank
	idx  int
}

type masterColumns struct {
	ranks            []rankColumn
	familyEnglish    int
	speciesEnglish   int
	authority        int
	breedingRange    int
	nonbreedingRange int
	comment          int
}

func newMasterColumns(h header) masterColumns {
	return masterColumns{
		ranks: []rankColumn{
			{ioc.Infraclass, h.index("infraclass")},
			{ioc.Order, h.index("order")},
			{ioc.Family, h.index("family (scientific)", "family")},
			{ioc.Genus, h.index("genus")},
			{ioc.Species, h.index("species (scientific)", "species")},
			{ioc.Subspecies, h.index("subspecies")},
		},
		familyEnglish:    h.index("family (english)"),
		speciesEnglish:   h.index("species (english)"),
		authority:        h.index("authority"),
		breedingRange:    h.index("breeding range"),
		nonbreedingRange: h.index("nonbreeding range", "non-breeding range"),
		comment:          h.index("comment", "comments"),
	}
}

// masterRow converts a data row. The rank is taken from the deepest
// non-empty rank column. It returns false for rows without a rank cell.
func (mc masterColumns) masterRow(row []string) (ioc.MasterRow, bool) {
	var res ioc.MasterRow
	for _, rc := range mc.ranks {
		if name := cell(row, rc.idx); name != "" {
			res.Rank = rc.rank
			res.Name = name
		}
	}
	if res.Rank == ioc.UnknownRank {
		return res, false
	}

	switch res.Rank {
	case ioc.Family:
		res.EnglishName = cell(row, mc.familyEnglish)
	case ioc.Species:
		res.EnglishName = cell(row, mc.speciesEnglish)
	}
	res.Authority = cell(row, mc.authority)
	res.BreedingRange = cell(row, mc.breedingRange)
	res.NonbreedingRange = cell(row, mc.nonbreedingRange)
	res.Comment = cell(row, mc.comment)
	return res, true
}

func (s *Source) readMaster(h header, rows [][]string) error {
	mc := newMasterColumns(h)
	b := ioc.NewBuilder(s.version)
	for i, row := range rows {
		mr, ok := mc.masterRow(row)
		if !ok {
			continue
		}
		if err := b.Add(mr); err != nil {
			slog.Error("Cannot add Master row",
				"path", s.path,
				"row", s.headerRow+i+2,
				"rank", string(mr.Rank),
				"name", mr.Name,
				"error", err,
			)
			return err
		}
	}
	s.taxonomy = b.Taxonomy()
	return nil
}

func (s *Source) readOtherLists(h header, rows [][]string) error {
	nameIdx := h.nameIndex()
	followIdx := h.prefixIndex("following")
	listIdxs := h.valueColumns(nameIdx, followIdx)

	pool := parserpool.NewPool(1)
	defer pool.Close()

	res := make(map[string]ioc.OtherListsEntry)
	for _, row := range rows {
		key := pool.Canonical(cell(row, nameIdx))
		if key == "" {
			continue
		}
		entry := ioc.OtherListsEntry{
			FollowingEntries: cell(row, followIdx),
			Lists:            make(map[string]string),
		}
		for _, idx := range listIdxs {
			if v := cell(row, idx); v != "" {
				entry.Lists[h.names[idx]] = v
			}
		}
		res[key] = entry
	}
	s.otherLists = res
	return nil
}

func (s *Source) readLanguages(h header, rows [][]string) error {
	nameIdx := h.nameIndex()
	langIdxs := h.valueColumns(nameIdx)

	pool := parserpool.NewPool(1)
	defer pool.Close()

	res := make(map[string]map[string]string)
	for _, row := range rows {
		key := pool.Canonical(cell(row, nameIdx))
		if key == "" {
			continue
		}
		names := make(map[string]string)
		for _, idx := range langIdxs {
			if v := cell(row, idx); v != "" {
				names[h.names[idx]] = v
			}
		}
		if len(names) == 0 {
			continue
		}
		res[key] = names
	}
	s.languages = res
	return nil
}

func (s *Source) readComplementary(h header, rows [][]string) error {
	nameIdx := h.nameIndex()
	extinctIdx := h.index("extinct")
	codeIdx := h.index("code")

	pool := parserpool.NewPool(1)
	defer pool.Close()

	res := make(map[string]ioc.ComplementaryEntry)
	for _, row := range rows {
		key := pool.Canonical(cell(row, nameIdx))
		if key == "" {
			continue
		}
		res[key] = ioc.ComplementaryEntry{
			Extinct: isExtinct(cell(row, extinctIdx)),
			Code:    cell(row, codeIdx),
		}
	}
	s.complementary = res
	return nil
}
