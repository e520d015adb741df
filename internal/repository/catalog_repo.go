package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"stylebot/internal/catalog"
	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

// PgCatalogRepository sirve el catalogo de productos desde Postgres.
// Implementa catalog.Provider con busqueda por keywords (ILIKE) y suma
// busqueda semantica sobre embeddings pgvector.
type PgCatalogRepository struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
}

func NewPgCatalogRepository(pool *pgxpool.Pool, embedder llm.Embedder) *PgCatalogRepository {
	return &PgCatalogRepository{pool: pool, embedder: embedder}
}

const catalogColumns = "id, name, description, category, tags, price, image_url"

// Search busca por keywords con semantica OR sobre nombre, descripcion,
// categoria y tags, en orden de catalogo (id) y con tope de resultados.
// Consulta vacia devuelve el catalogo completo, sin tope.
func (r *PgCatalogRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	sql, args := searchSQL(catalog.QueryKeywords(query))
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// searchSQL arma la consulta de busqueda. Sin keywords no hay WHERE ni
// LIMIT: el contrato del provider es el catalogo completo.
func searchSQL(keywords []string) (string, []interface{}) {
	if len(keywords) == 0 {
		return fmt.Sprintf("SELECT %s FROM products ORDER BY id", catalogColumns), nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(keywords)+1)
	fmt.Fprintf(&sb, "SELECT %s FROM products WHERE ", catalogColumns)
	for i, kw := range keywords {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		args = append(args, "%"+kw+"%")
		n := len(args)
		fmt.Fprintf(&sb,
			"(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n, n)
	}
	args = append(args, catalog.MaxResults)
	fmt.Fprintf(&sb, " ORDER BY id LIMIT $%d", len(args))
	return sb.String(), args
}

// SemanticSearch ordena el catalogo por cercania del embedding de la
// consulta. Requiere un embedder configurado.
func (r *PgCatalogRepository) SemanticSearch(ctx context.Context, query string, k int) ([]domain.Product, error) {
	if r.embedder == nil {
		return nil, fmt.Errorf("semantic search requires an embedder")
	}
	if k <= 0 || k > catalog.MaxResults {
		k = catalog.MaxResults
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT %s FROM products ORDER BY embedding <=> $1 LIMIT $2", catalogColumns),
		pgvector.NewVector(vector), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Seed inserta o actualiza los productos dados. Con embedder presente
// tambien calcula y guarda el embedding de cada producto.
func (r *PgCatalogRepository) Seed(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		var embedding interface{}
		if r.embedder != nil {
			vector, err := r.embedder.Embed(ctx, p.Name+". "+p.Description)
			if err != nil {
				return fmt.Errorf("embed product %s: %w", p.ID, err)
			}
			embedding = pgvector.NewVector(vector)
		}

		const query = `
			INSERT INTO products (id, name, description, category, tags, price, image_url, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				tags = EXCLUDED.tags,
				price = EXCLUDED.price,
				image_url = EXCLUDED.image_url,
				embedding = COALESCE(EXCLUDED.embedding, products.embedding)
		`
		if _, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.Category, p.Tags, p.Price, p.ImageURL, embedding); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func scanProducts(rows pgxRows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Tags, &p.Price, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// pgxRows es la interfaz minima de filas pgx que necesita el scan; asi
// los tests pueden alimentar filas sin un pool real.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
