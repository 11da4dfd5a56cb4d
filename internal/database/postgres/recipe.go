package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/repository"
)

// RecipeRepository implements repository.Recipe for PostgreSQL
type RecipeRepository struct {
	db *pgxpool.Pool
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *pgxpool.Pool) repository.Recipe {
	return &RecipeRepository{db: db}
}

const recipeColumns = `id, recipe_id, name, profession, profession_level, output_item_id,
	output_item_name, output_quantity, station, craft_time, enrichment_status, raw,
	cached_at, last_updated`

// UpsertRecipe inserts a new recipe or updates the existing row's descriptive
// fields by natural key. Enrichment status and ingredient rows are preserved
// on conflict so a bulk re-fetch cannot undo prior enrichment; a recipe that
// arrived pre-enriched replaces its rows through ReplaceIngredients instead.
func (r *RecipeRepository) UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (recipe_id, name, profession, profession_level, output_item_id,
			output_item_name, output_quantity, station, craft_time, enrichment_status, raw,
			cached_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (recipe_id) DO UPDATE SET
			name = EXCLUDED.name,
			profession = EXCLUDED.profession,
			profession_level = EXCLUDED.profession_level,
			output_item_id = EXCLUDED.output_item_id,
			output_item_name = EXCLUDED.output_item_name,
			output_quantity = EXCLUDED.output_quantity,
			station = EXCLUDED.station,
			craft_time = EXCLUDED.craft_time,
			raw = EXCLUDED.raw,
			last_updated = NOW()
	`
	status := recipe.EnrichmentStatus
	if status == "" {
		status = domain.EnrichmentUnattempted
	}

	_, err := r.db.Exec(ctx, query,
		recipe.RecipeID, recipe.Name, recipe.Profession, recipe.ProfessionLevel,
		recipe.OutputItemID, recipe.OutputItemName, recipe.OutputQuantity,
		recipe.Station, recipe.CraftTime, status, recipe.Raw)
	if err != nil {
		return fmt.Errorf("failed to upsert recipe %s: %w", recipe.RecipeID, err)
	}

	if recipe.EnrichmentStatus == domain.EnrichmentEnriched && len(recipe.Ingredients) > 0 {
		return r.ReplaceIngredients(ctx, recipe.RecipeID, recipe.Ingredients, domain.EnrichmentEnriched)
	}
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient rows for the given set.
// Delete-then-insert: partial ingredient updates have no merge semantics.
func (r *RecipeRepository) ReplaceIngredients(ctx context.Context, recipeID string, ingredients []domain.RecipeIngredient, status domain.EnrichmentStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var recipePK int
	err = tx.QueryRow(ctx, `SELECT id FROM recipes WHERE recipe_id = $1`, recipeID).Scan(&recipePK)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecipeNotFound
		}
		return fmt.Errorf("failed to look up recipe %s: %w", recipeID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_pk = $1`, recipePK); err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}

	for _, ing := range ingredients {
		quantity := ing.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_pk, item_id, item_name, quantity) VALUES ($1, $2, $3, $4)`,
			recipePK, ing.ItemID, ing.ItemName, quantity)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE recipes SET enrichment_status = $1, last_updated = NOW() WHERE id = $2`,
		status, recipePK)
	if err != nil {
		return fmt.Errorf("failed to update enrichment status: %w", err)
	}

	return tx.Commit(ctx)
}

// GetRecipeByRecipeID retrieves a recipe with its ingredients by upstream identifier
func (r *RecipeRepository) GetRecipeByRecipeID(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE recipe_id = $1`, recipeColumns)
	return r.getRecipe(ctx, query, recipeID)
}

// GetRecipeByName retrieves a recipe by exact case-insensitive name
func (r *RecipeRepository) GetRecipeByName(ctx context.Context, name string) (*domain.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE LOWER(name) = LOWER($1) ORDER BY id LIMIT 1`, recipeColumns)
	return r.getRecipe(ctx, query, name)
}

// GetRecipeByOutputItemID retrieves the recipe producing the given item.
// When multiple recipes produce it, the oldest cached row wins.
func (r *RecipeRepository) GetRecipeByOutputItemID(ctx context.Context, itemID string) (*domain.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE output_item_id = $1 ORDER BY id LIMIT 1`, recipeColumns)
	return r.getRecipe(ctx, query, itemID)
}

func (r *RecipeRepository) getRecipe(ctx context.Context, query string, arg any) (*domain.Recipe, error) {
	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := r.loadIngredients(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *RecipeRepository) loadIngredients(ctx context.Context, recipe *domain.Recipe) error {
	rows, err := r.db.Query(ctx,
		`SELECT item_id, item_name, quantity FROM recipe_ingredients WHERE recipe_pk = $1 ORDER BY id`,
		recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing domain.RecipeIngredient
		if err := rows.Scan(&ing.ItemID, &ing.ItemName, &ing.Quantity); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	return rows.Err()
}

// ListUnenrichedRecipes returns recipes awaiting enrichment: a known output
// item and an unattempted status. Confirmed-empty recipes are excluded.
func (r *RecipeRepository) ListUnenrichedRecipes(ctx context.Context) ([]domain.Recipe, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM recipes WHERE enrichment_status = $1 AND output_item_id <> '' ORDER BY id`,
		recipeColumns)

	rows, err := r.db.Query(ctx, query, domain.EnrichmentUnattempted)
	if err != nil {
		return nil, fmt.Errorf("failed to list unenriched recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, rows.Err()
}

// ListRecipeNames returns all non-empty recipe names for search candidates
func (r *RecipeRepository) ListRecipeNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM recipes WHERE name <> '' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan recipe name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountRecipes returns the number of cached recipes
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.RecipeID, &recipe.Name, &recipe.Profession,
		&recipe.ProfessionLevel, &recipe.OutputItemID, &recipe.OutputItemName,
		&recipe.OutputQuantity, &recipe.Station, &recipe.CraftTime,
		&recipe.EnrichmentStatus, &recipe.Raw, &recipe.CachedAt, &recipe.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
