package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
)

// CacheSchemaVersion is the current version of the cached entry layout.
// Increment when the cached shape changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

type cachedItemEntry struct {
	Version string
	Item    *domain.Item
}

type cachedRecipeEntry struct {
	Version string
	Recipe  *domain.Recipe
}

type cachedNamesEntry struct {
	Version string
	Names   []string
}

// lookupCache is an in-memory TTL LRU in front of the cache store for hot
// item lookups and search candidate name lists. Core Item/Recipe rows never
// expire in the store; this secondary cache does.
type lookupCache struct {
	items   *expirable.LRU[string, *cachedItemEntry]
	recipes *expirable.LRU[string, *cachedRecipeEntry]
	names   *expirable.LRU[string, *cachedNamesEntry]
}

func newLookupCache(size int, ttl time.Duration) *lookupCache {
	return &lookupCache{
		items:   expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
		recipes: expirable.NewLRU[string, *cachedRecipeEntry](size, nil, ttl),
		names:   expirable.NewLRU[string, *cachedNamesEntry](4, nil, ttl),
	}
}

func (c *lookupCache) GetItem(itemID string) (*domain.Item, bool) {
	entry, found := c.items.Get(itemID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.items.Remove(itemID)
		return nil, false
	}
	return entry.Item, true
}

func (c *lookupCache) SetItem(itemID string, item *domain.Item) {
	c.items.Add(itemID, &cachedItemEntry{Version: CacheSchemaVersion, Item: item})
}

func (c *lookupCache) GetRecipe(recipeID string) (*domain.Recipe, bool) {
	entry, found := c.recipes.Get(recipeID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.recipes.Remove(recipeID)
		return nil, false
	}
	return entry.Recipe, true
}

func (c *lookupCache) SetRecipe(recipeID string, recipe *domain.Recipe) {
	c.recipes.Add(recipeID, &cachedRecipeEntry{Version: CacheSchemaVersion, Recipe: recipe})
}

func (c *lookupCache) GetNames(kind string) ([]string, bool) {
	entry, found := c.names.Get(kind)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.names.Remove(kind)
		return nil, false
	}
	return entry.Names, true
}

func (c *lookupCache) SetNames(kind string, names []string) {
	c.names.Add(kind, &cachedNamesEntry{Version: CacheSchemaVersion, Names: names})
}

// Purge removes all entries, used after a full refresh replaces the cache.
func (c *lookupCache) Purge() {
	c.items.Purge()
	c.recipes.Purge()
	c.names.Purge()
}
