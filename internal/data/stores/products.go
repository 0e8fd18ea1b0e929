package stores

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/data/db"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yaml
var demoFixture []byte

// ProductStore is the local demo catalog. It implements catalog.Source and
// catalog.CollectionSource on top of SQLite.
type ProductStore struct {
	db *db.DB
}

var (
	_ catalog.Source           = (*ProductStore)(nil)
	_ catalog.CollectionSource = (*ProductStore)(nil)
)

// NewProductStore creates a new SQLite-backed product store.
func NewProductStore(db *db.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, title, description_html, product_type, vendor,
	total_inventory, total_variants, tags, image_url, image_alt_text`

var sortColumns = map[catalog.SortKey]string{
	catalog.SortTitle:          "title",
	catalog.SortInventoryTotal: "total_inventory",
	catalog.SortProductType:    "product_type",
	catalog.SortVendor:         "vendor",
}

// Products returns up to q.First records matching the filter text, ordered by
// the query's sort key. Ordering happens in SQL, filtering in Go.
func (s *ProductStore) Products(ctx context.Context, q catalog.Query) ([]catalog.Record, error) {
	terms, err := parseFilter(q.TextValue())
	if err != nil {
		return nil, err
	}

	column, ok := sortColumns[q.SortKey]
	if !ok {
		column = sortColumns[catalog.SortTitle]
	}
	dir := "ASC"
	if q.Reverse {
		dir = "DESC"
	}

	limit := q.First
	if limit <= 0 {
		limit = catalog.PageSize
	}

	query := fmt.Sprintf("SELECT %s FROM products ORDER BY %s %s, id %s", productColumns, column, dir, dir)
	rows, err := s.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]catalog.Record, 0, limit)
	for rows.Next() && len(records) < limit {
		r, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if matchesAll(terms, r) {
			records = append(records, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	log.Debug().
		Str("component", "product-store").
		Stringer("query", q).
		Int("count", len(records)).
		Msg("products listed")

	return records, nil
}

// Get returns a product by ID. Returns catalog.ErrNotFound if not found.
func (s *ProductStore) Get(ctx context.Context, id string) (catalog.Record, error) {
	row := s.db.Conn().QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	r, err := scanProduct(row)
	if IsNotFoundError(err) {
		return catalog.Record{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Record{}, err
	}
	return r, nil
}

// Upsert creates or replaces products in a single transaction.
func (s *ProductStore) Upsert(ctx context.Context, records ...catalog.Record) error {
	now := time.Now().UnixNano()
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, r := range records {
			tags, err := json.Marshal(nonNil(r.Tags))
			if err != nil {
				return fmt.Errorf("failed to marshal tags: %w", err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO products (`+productColumns+`, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					title = excluded.title,
					description_html = excluded.description_html,
					product_type = excluded.product_type,
					vendor = excluded.vendor,
					total_inventory = excluded.total_inventory,
					total_variants = excluded.total_variants,
					tags = excluded.tags,
					image_url = excluded.image_url,
					image_alt_text = excluded.image_alt_text,
					updated_at = excluded.updated_at`,
				r.ID, r.Title, r.DescriptionHTML, r.ProductType, r.Vendor,
				r.TotalInventory, r.TotalVariants, string(tags), r.ImageURL, r.ImageAltText, now,
			)
			if err != nil {
				return fmt.Errorf("failed to save product %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// Collections returns all collections ordered by title.
func (s *ProductStore) Collections(ctx context.Context) ([]catalog.Collection, error) {
	rows, err := s.db.Conn().QueryContext(ctx, "SELECT id, title FROM collections ORDER BY title, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var collections []catalog.Collection
	for rows.Next() {
		var c catalog.Collection
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// UpsertCollections creates or renames collections.
func (s *ProductStore) UpsertCollections(ctx context.Context, collections ...catalog.Collection) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, c := range collections {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO collections (id, title) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET title = excluded.title",
				c.ID, c.Title,
			)
			if err != nil {
				return fmt.Errorf("failed to save collection %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Fixture is the YAML shape of a seed catalog.
type Fixture struct {
	Products    []catalog.Record     `yaml:"products"`
	Collections []catalog.Collection `yaml:"collections"`
}

// DemoFixture returns the built-in demo catalog.
func DemoFixture() (Fixture, error) {
	return ParseFixture(demoFixture)
}

// ParseFixture decodes a seed catalog. Entries without an ID get a generated
// global ID.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse fixture: %w", err)
	}

	for i := range f.Products {
		if f.Products[i].ID == "" {
			f.Products[i].ID = "gid://shopify/Product/" + uuid.NewString()
		}
	}
	for i := range f.Collections {
		if f.Collections[i].ID == "" {
			f.Collections[i].ID = "gid://shopify/Collection/" + uuid.NewString()
		}
	}
	return f, nil
}

// Seed writes the fixture's products and collections.
func (s *ProductStore) Seed(ctx context.Context, f Fixture) error {
	if err := s.Upsert(ctx, f.Products...); err != nil {
		return err
	}
	if err := s.UpsertCollections(ctx, f.Collections...); err != nil {
		return err
	}

	log.Info().
		Int("products", len(f.Products)).
		Int("collections", len(f.Collections)).
		Msg("catalog seeded")
	return nil
}

// Count returns the number of stored products.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (catalog.Record, error) {
	var (
		r    catalog.Record
		tags string
	)
	err := row.Scan(&r.ID, &r.Title, &r.DescriptionHTML, &r.ProductType, &r.Vendor,
		&r.TotalInventory, &r.TotalVariants, &tags, &r.ImageURL, &r.ImageAltText)
	if err != nil {
		if IsNotFoundError(err) {
			return catalog.Record{}, err
		}
		return catalog.Record{}, fmt.Errorf("failed to scan product: %w", err)
	}

	for _, tag := range gjson.Parse(tags).Array() {
		if t := strings.TrimSpace(tag.String()); t != "" {
			r.Tags = append(r.Tags, t)
		}
	}
	return r, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
