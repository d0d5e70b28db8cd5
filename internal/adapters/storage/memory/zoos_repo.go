package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"zoo-registry/internal/domain/animals"
	"zoo-registry/internal/domain/zoos"
)

type zooRepo struct {
	s *Store
}

func (r *zooRepo) Create(ctx context.Context, z zoos.Zoo) (zoos.Zoo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.zoos {
		if existing.Designation == z.Designation {
			return zoos.Zoo{}, fmt.Errorf("%w: %s", zoos.ErrDesignationExists, z.Designation)
		}
	}

	now := r.s.now()
	z.ID = r.s.nextID()
	z.Version = 0
	z.CreatedAt = now
	z.UpdatedAt = now

	addr := *z.Address
	addr.ID = r.s.nextID()
	addr.ZooID = z.ID
	z.Address = &addr

	created := make([]animals.Animal, 0, len(z.Animals))
	for _, a := range z.Animals {
		a.ID = r.s.nextID()
		a.Version = 0
		a.ZooID = z.ID
		a.File = nil
		r.s.animals[a.ID] = a
		created = append(created, a)
	}
	z.Animals = created

	stored := z
	stored.Animals = nil
	r.s.zoos[z.ID] = stored

	return z, nil
}

func (r *zooRepo) GetByID(ctx context.Context, id int64, withAnimals bool) (zoos.Zoo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	z, ok := r.s.zoos[id]
	if !ok {
		return zoos.Zoo{}, zoos.ErrNotFound
	}

	out := z
	if z.Address != nil {
		addr := *z.Address
		out.Address = &addr
	}
	if withAnimals {
		out.Animals = r.animalsOf(id)
	}
	return out, nil
}

func (r *zooRepo) FindMatching(ctx context.Context, c zoos.SearchCriteria, p zoos.Pageable) ([]zoos.Zoo, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]zoos.Zoo, 0)
	for _, z := range r.s.zoos {
		if !matches(z, c) {
			continue
		}
		out := z
		out.Address = nil // el listado no junta la dirección
		matched = append(matched, out)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if p.Size == 0 {
		return matched, total, nil
	}

	start := p.Page * p.Size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *zooRepo) ExistsByDesignation(ctx context.Context, designation string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, z := range r.s.zoos {
		if z.Designation == designation {
			return true, nil
		}
	}
	return false, nil
}

func (r *zooRepo) UpdateCore(ctx context.Context, id int64, core zoos.CoreUpdate, expectedVersion int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	z, ok := r.s.zoos[id]
	if !ok {
		return 0, zoos.ErrNotFound
	}
	if z.Version != expectedVersion {
		return 0, zoos.ErrVersionConflict
	}

	z.Designation = core.Designation
	z.EntranceFee = core.EntranceFee
	z.Open = core.Open
	z.Homepage = core.Homepage
	z.Version++
	z.UpdatedAt = r.s.now()
	r.s.zoos[id] = z

	return z.Version, nil
}

func (r *zooRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.zoos[id]; !ok {
		return false, nil
	}

	for aid, a := range r.s.animals {
		if a.ZooID != id {
			continue
		}
		if fid, ok := r.s.fileByAnimal[aid]; ok {
			delete(r.s.files, fid)
			delete(r.s.fileByAnimal, aid)
		}
		delete(r.s.animals, aid)
	}
	delete(r.s.zoos, id)

	return true, nil
}

// animalsOf asume que el caller ya tiene el lock.
func (r *zooRepo) animalsOf(zooID int64) []animals.Animal {
	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if a.ZooID == zooID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(z zoos.Zoo, c zoos.SearchCriteria) bool {
	if c.Designation != nil &&
		!strings.Contains(strings.ToLower(z.Designation), strings.ToLower(*c.Designation)) {
		return false
	}
	if c.EntranceFee != nil && z.EntranceFee.GreaterThan(*c.EntranceFee) {
		return false
	}
	if c.Open != nil && z.Open != *c.Open {
		return false
	}
	if c.Homepage != nil && z.Homepage != *c.Homepage {
		return false
	}
	return true
}
