package flatfile

import (
	"sort"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// scanIDs lists record directories of the type in scan order. A missing
// type directory means no records.
func (s *Store) scanIDs() ([]string, error) {
	entries, err := readDir(s.fs, s.typePath())
	if err != nil {
		return nil, readFailed(err, "listing %s", s.typ)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || isReserved(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	return ids, nil
}

// Find returns matching ids, sorted and paginated. Filters are ANDed.
// Scalar attributes match by equality; plural attributes match when the
// stored list contains the filter value, or every element of a list filter.
func (s *Store) Find(q types.Query) ([]string, error) {
	order := q.Sort
	if len(order) == 0 {
		order = types.DefaultSort
	}

	var ids []string
	var err error
	if len(q.Where) == 0 {
		ids, err = s.scanIDs()
	} else {
		ids, err = s.filter(q.Where)
	}
	if err != nil {
		return nil, err
	}
	if ids, err = s.sortIDs(ids, order); err != nil {
		return nil, err
	}

	s.found = len(ids)
	return paginate(ids, q.Offset, q.Limit), nil
}

func (s *Store) filter(where types.Record) ([]string, error) {
	all, err := s.scanIDs()
	if err != nil {
		return nil, err
	}

	var result []string
	for i, attr := range where.Keys() {
		want := where[attr]
		if isTimestamp(attr) {
			if want, err = parseTimestamp(attr, want); err != nil {
				return nil, err
			}
		}
		matched := make(map[string]bool)
		for _, id := range all {
			got, err := s.readAttr(id, attr, false)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, err
			}
			if s.matches(attr, got, want) {
				matched[id] = true
			}
		}

		if i == 0 {
			for _, id := range all {
				if matched[id] {
					result = append(result, id)
				}
			}
			continue
		}
		kept := result[:0]
		for _, id := range result {
			if matched[id] {
				kept = append(kept, id)
			}
		}
		result = kept
	}
	return result, nil
}

func (s *Store) matches(attr string, got, want types.Value) bool {
	if !s.isPlural(attr) {
		return got.Equal(want)
	}
	if want.Kind() != types.KindList {
		return got.Contains(want)
	}
	elems, _ := want.AsList()
	for _, e := range elems {
		if !got.Contains(e) {
			return false
		}
	}
	return true
}

type sortRow struct {
	id   string
	keys []types.Value
}

// sortIDs orders ids by raw attribute values. A missing attribute sorts as
// null; ties keep scan order.
func (s *Store) sortIDs(ids []string, order types.Sort) ([]string, error) {
	rows := make([]sortRow, len(ids))
	for i, id := range ids {
		rows[i] = sortRow{id: id, keys: make([]types.Value, len(order))}
		for k, key := range order {
			v, err := s.readAttr(id, key.Attr, false)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			rows[i].keys[k] = v
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		for k, key := range order {
			c := rows[a].keys[k].Compare(rows[b].keys[k])
			if c == 0 {
				continue
			}
			if key.Direction == types.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out, nil
}

func paginate(ids []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []string{}
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
