package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

// sortColumns maps API sort fields to columns.
var sortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"description":  "description",
	"price":        "price",
	"creationDate": "created_at",
	"updateDate":   "updated_at",
}

const productColumns = "id, name, description, price, created_at, updated_at"

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

type pgProduct struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.Name, p.Description, p.Price, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}

	p.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	rows, _ := r.pool.Query(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", pk)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[pgProduct])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	pk, ok := parseID(id)
	if !ok {
		return false, nil
	}
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", pk)
}

func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)", name)
}

func (r *ProductRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return found, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	pk, ok := parseID(p.ID)
	if !ok {
		return domain.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, description = $3, price = $4, updated_at = $5 WHERE id = $1`,
		pk, p.Name, p.Description, p.Price, p.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id string) error {
	pk, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", pk)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	return r.page(ctx, "", nil, req)
}

func (r *ProductRepository) Search(ctx context.Context, term string, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	return r.page(ctx, `WHERE name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\'`, []any{likePattern(term)}, req)
}

func (r *ProductRepository) page(ctx context.Context, where string, args []any, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	orderBy, err := orderClause(req.Sort)
	if err != nil {
		return domain.Page[*domain.Product]{}, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM products "+where, args...).Scan(&total); err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("count products: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM products %s %s LIMIT $%d OFFSET $%d", productColumns, where, orderBy, n+1, n+2)
	rows, err := r.pool.Query(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("query products: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[pgProduct])
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("scan products: %w", err)
	}

	items := make([]*domain.Product, 0, len(found))
	for _, row := range found {
		items = append(items, row.toDomain())
	}
	return domain.Page[*domain.Product]{Items: items, Page: req.Page, Size: req.Size, Total: total}, nil
}

// orderClause orders ascending by field, breaking ties by id.
func orderClause(field string) (string, error) {
	col, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", field)
	}
	if col == "id" {
		return "ORDER BY id ASC", nil
	}
	return "ORDER BY " + col + " ASC, id ASC", nil
}

// likePattern wraps term for a literal substring match.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func parseID(id string) (int64, bool) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil || pk <= 0 {
		return 0, false
	}
	return pk, true
}

func (p pgProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}
