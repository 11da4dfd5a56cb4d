package codex

import (
	"context"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/rawdoc"
)

// FetchItems fetches and normalizes all items. Failures degrade to an empty
// slice; callers must not read an empty result as "nothing to update".
func (c *Client) FetchItems(ctx context.Context) []domain.Item {
	docs := c.fetchBulk(ctx, ResourceItems, EndpointItems)

	items := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		item, ok := ItemFromDoc(doc)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	logger.FromContext(ctx).Info(LogMsgFetchedRecords, "resource", ResourceItems, "count", len(items))
	return items
}

// FetchRecipes fetches and normalizes all crafting recipes.
func (c *Client) FetchRecipes(ctx context.Context) []domain.Recipe {
	docs := c.fetchBulk(ctx, ResourceRecipes, EndpointRecipes)

	recipes := make([]domain.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipe, ok := RecipeFromDoc(doc)
		if !ok {
			continue
		}
		recipes = append(recipes, recipe)
	}

	logger.FromContext(ctx).Info(LogMsgFetchedRecords, "resource", ResourceRecipes, "count", len(recipes))
	return recipes
}

// FetchMobs fetches and normalizes all mobs.
func (c *Client) FetchMobs(ctx context.Context) []domain.Mob {
	docs := c.fetchBulk(ctx, ResourceMobs, EndpointMobs)

	mobs := make([]domain.Mob, 0, len(docs))
	for _, doc := range docs {
		mob, ok := MobFromDoc(doc)
		if !ok {
			continue
		}
		mobs = append(mobs, mob)
	}

	logger.FromContext(ctx).Info(LogMsgFetchedRecords, "resource", ResourceMobs, "count", len(mobs))
	return mobs
}

// ItemFromDoc normalizes a raw item record. Only the identifier is required;
// every other field falls back to its zero value when absent or mistyped.
func ItemFromDoc(doc rawdoc.Doc) (domain.Item, bool) {
	id := doc.FirstString("guid", "id", "itemId")
	if id == "" {
		return domain.Item{}, false
	}

	tags := doc.StringSlice("gameplayTags")
	if len(tags) == 0 {
		tags = doc.StringSlice("tags")
	}

	item := domain.Item{
		ItemID:      id,
		Name:        doc.FirstString("itemName", "name", "displayName"),
		Description: doc.FirstString("description", "desc"),
		Type:        rawdoc.TagSegment(tags, TagPrefixItem, 1),
		Category:    rawdoc.TagSegment(tags, TagPrefixItem, 2),
		Rarity:      doc.String("rarity"),
		IconURL:     doc.FirstString("icon", "iconUrl", "image"),
		Stackable:   doc.Bool("stackable"),
		Slot:        doc.FirstString("slot", "equipSlot"),
		Tags:        tags,
		Raw:         doc.Marshal(),
	}
	if lvl, ok := doc.TryInt("level"); ok {
		item.Level = &lvl
	} else if tier, ok := doc.TryInt("tier"); ok {
		item.Level = &tier
	}

	return item, true
}

// RecipeFromDoc normalizes a raw recipe record. Bulk recipe payloads usually
// omit the ingredient list, but when one of the known ingredient keys is
// present it is normalized immediately and the recipe arrives pre-enriched.
func RecipeFromDoc(doc rawdoc.Doc) (domain.Recipe, bool) {
	id := doc.FirstString("guid", "id", "recipeId")
	if id == "" {
		return domain.Recipe{}, false
	}

	recipe := domain.Recipe{
		RecipeID:         id,
		Name:             doc.FirstString("recipeName", "name", "displayName"),
		Profession:       doc.FirstString("profession", "skill"),
		ProfessionLevel:  firstInt(doc, 0, "professionLevel", "skillLevel", "level"),
		OutputItemID:     doc.FirstString("outputItemId", "resultItemId", "craftedItemId"),
		OutputItemName:   doc.FirstString("outputItemName", "resultItemName", "craftedItemName"),
		OutputQuantity:   firstInt(doc, 1, "outputQuantity", "resultQuantity"),
		Station:          doc.FirstString("station", "craftingStation", "workbench"),
		CraftTime:        firstInt(doc, 0, "craftTime", "craftingTime", "duration"),
		EnrichmentStatus: domain.EnrichmentUnattempted,
		Raw:              doc.Marshal(),
	}

	if ingredients := IngredientsFromDoc(doc); len(ingredients) > 0 {
		recipe.Ingredients = ingredients
		recipe.EnrichmentStatus = domain.EnrichmentEnriched
	}

	return recipe, true
}

// IngredientsFromDoc probes the known ingredient field names in priority
// order and normalizes the first non-empty match.
func IngredientsFromDoc(doc rawdoc.Doc) []domain.RecipeIngredient {
	entries, _, ok := doc.FirstArray(ingredientKeys...)
	if !ok {
		return nil
	}

	ingredients := make([]domain.RecipeIngredient, 0, len(entries))
	for _, entry := range entries {
		ingredientDoc, ok := rawdoc.FromAny(entry)
		if !ok {
			continue
		}
		name := ingredientDoc.FirstString("itemName", "name")
		itemID := ingredientDoc.FirstString("itemId", "guid", "id")
		if name == "" && itemID == "" {
			continue
		}
		ingredients = append(ingredients, domain.RecipeIngredient{
			ItemID:   itemID,
			ItemName: name,
			Quantity: firstInt(ingredientDoc, 1, "quantity", "count", "amount"),
		})
	}
	return ingredients
}

// MobFromDoc normalizes a raw mob record.
func MobFromDoc(doc rawdoc.Doc) (domain.Mob, bool) {
	id := doc.FirstString("guid", "id", "mobId")
	if id == "" {
		return domain.Mob{}, false
	}

	mob := domain.Mob{
		MobID:       id,
		Name:        doc.FirstString("mobName", "name", "displayName"),
		Description: doc.FirstString("description", "desc"),
		Zone:        doc.FirstString("zone", "region"),
		Raw:         doc.Marshal(),
	}
	if lvl, ok := doc.TryInt("level"); ok {
		mob.Level = &lvl
	}

	return mob, true
}

func firstInt(doc rawdoc.Doc, def int, names ...string) int {
	for _, name := range names {
		if i, ok := doc.TryInt(name); ok {
			return i
		}
	}
	return def
}
