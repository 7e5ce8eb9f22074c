package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/GiftPack/internal/model"
)

// DefaultCatalogPath returns ~/.giftpack/catalogs.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalogs.json")
}

// SaveCatalogs writes the catalog store to a JSON file.
func SaveCatalogs(path string, store model.CatalogStore) error {
	return writeJSON(path, store)
}

// LoadCatalogs reads a catalog store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadCatalogs(path string) (model.CatalogStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewCatalogStore(), nil
		}
		return model.CatalogStore{}, err
	}
	var store model.CatalogStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.CatalogStore{}, err
	}
	if store.Catalogs == nil {
		store.Catalogs = []model.Catalog{}
	}
	return store, nil
}

// SaveCatalog adds c to the store at path, replacing any catalog with the
// same name.
func SaveCatalog(path string, c model.Catalog) error {
	store, err := LoadCatalogs(path)
	if err != nil {
		return err
	}
	if existing := store.FindByName(c.Name); existing != nil {
		store.Remove(existing.ID)
	}
	store.Add(c)
	return SaveCatalogs(path, store)
}

// LoadCatalog returns the catalog named name from the store at path.
func LoadCatalog(path, name string) (model.Catalog, bool, error) {
	store, err := LoadCatalogs(path)
	if err != nil {
		return model.Catalog{}, false, err
	}
	c := store.FindByName(name)
	if c == nil {
		return model.Catalog{}, false, nil
	}
	return *c, true, nil
}
