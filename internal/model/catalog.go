package model

import (
	"time"

	"github.com/google/uuid"
)

// Catalog is a named, reusable list of present shapes. Region counts are
// written against a catalog's order, so storing one lets several inputs share
// the same shapes.
type Catalog struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Presents    []Present `json:"presents"`
}

// NewCatalog creates a catalog from the given presents, renumbering them in
// order.
func NewCatalog(name, description string, presents []Present) Catalog {
	now := time.Now().UTC().Format(time.RFC3339)
	return Catalog{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Presents:    copyPresents(presents),
	}
}

// ToProblem pairs the catalog with a list of regions.
func (c Catalog) ToProblem(regions []Region) (Problem, error) {
	return NewProblem(copyPresents(c.Presents), regions)
}

// CatalogStore holds a collection of catalogs.
type CatalogStore struct {
	Catalogs []Catalog `json:"catalogs"`
}

// NewCatalogStore creates an empty catalog store.
func NewCatalogStore() CatalogStore {
	return CatalogStore{
		Catalogs: []Catalog{},
	}
}

// Add adds a catalog to the store.
func (cs *CatalogStore) Add(c Catalog) {
	cs.Catalogs = append(cs.Catalogs, c)
}

// Remove removes a catalog by ID. Returns true if found and removed.
func (cs *CatalogStore) Remove(id string) bool {
	for i, c := range cs.Catalogs {
		if c.ID == id {
			cs.Catalogs = append(cs.Catalogs[:i], cs.Catalogs[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the catalog with the given ID, or nil.
func (cs *CatalogStore) FindByID(id string) *Catalog {
	for i := range cs.Catalogs {
		if cs.Catalogs[i].ID == id {
			return &cs.Catalogs[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first catalog with the given name, or nil.
func (cs *CatalogStore) FindByName(name string) *Catalog {
	for i := range cs.Catalogs {
		if cs.Catalogs[i].Name == name {
			return &cs.Catalogs[i]
		}
	}
	return nil
}

// Names returns the catalog names in store order.
func (cs *CatalogStore) Names() []string {
	names := make([]string, len(cs.Catalogs))
	for i, c := range cs.Catalogs {
		names[i] = c.Name
	}
	return names
}

func copyPresents(presents []Present) []Present {
	cp := make([]Present, len(presents))
	for i, p := range presents {
		cp[i] = p
		cp[i].Index = i
	}
	return cp
}
