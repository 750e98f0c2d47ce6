package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Repository handles persistence of users, lists and products.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// AddUser registers a user on first contact. Subsequent calls refresh the
// denormalized display name and change nothing else.
func (r *Repository) AddUser(ctx context.Context, userID int64, username, firstName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, first_name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`,
		userID, username, firstName, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add user %d: %w", userID, err)
	}
	return nil
}

// GetOrCreateList returns the ID of the user's list with the given name,
// creating it when absent. Calling it twice with the same (user, name) pair
// always yields the same ID.
func (r *Repository) GetOrCreateList(ctx context.Context, userID int64, name string) (int64, error) {
	if name == "" {
		name = DefaultListName
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM shopping_lists WHERE user_id = ? AND name = ?`,
		userID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up list for user %d: %w", userID, err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (user_id, name, created_at) VALUES (?, ?, ?)`,
		userID, name, time.Now().UTC())
	if err != nil {
		// A concurrent creation may have raced us; the unique index makes the
		// second insert fail, so retry the lookup once.
		if lookupErr := r.db.QueryRowContext(ctx,
			`SELECT id FROM shopping_lists WHERE user_id = ? AND name = ?`,
			userID, name).Scan(&id); lookupErr == nil {
			return id, nil
		}
		return 0, fmt.Errorf("failed to create list for user %d: %w", userID, err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new list id: %w", err)
	}
	return id, nil
}

// AddProduct inserts one product into a list. The name is trimmed and must be
// non-empty; an empty quantity defaults to "1".
func (r *Repository) AddProduct(ctx context.Context, listID int64, name, quantity string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("product name must not be empty")
	}
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		quantity = "1"
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (list_id, name, quantity, is_bought, added_at) VALUES (?, ?, ?, 0, ?)`,
		listID, name, quantity, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to add product %q: %w", name, err)
	}
	return res.LastInsertId()
}

// AddProducts inserts a batch of items in a single transaction. Items with
// empty names are skipped. Returns the number of products inserted.
func (r *Repository) AddProducts(ctx context.Context, listID int64, items []Item) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (list_id, name, quantity, is_bought, added_at) VALUES (?, ?, ?, 0, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		quantity := strings.TrimSpace(item.Quantity)
		if quantity == "" {
			quantity = "1"
		}
		if _, err := stmt.ExecContext(ctx, listID, name, quantity, now); err != nil {
			return 0, fmt.Errorf("failed to add product %q: %w", name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch insert: %w", err)
	}
	return inserted, nil
}

// Products returns every product of a list, unbought first, most recently
// added first within each partition.
func (r *Repository) Products(ctx context.Context, listID int64) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, list_id, name, quantity, is_bought, added_at
		FROM products
		WHERE list_id = ?
		ORDER BY is_bought ASC, added_at DESC, id DESC`,
		listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for list %d: %w", listID, err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var bought int
		if err := rows.Scan(&p.ID, &p.ListID, &p.Name, &p.Quantity, &bought, &p.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Bought = bought != 0
		products = append(products, p)
	}
	return products, rows.Err()
}

// ToggleBought flips the bought flag of a product. Returns false when the
// product does not exist.
func (r *Repository) ToggleBought(ctx context.Context, productID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_bought = CASE is_bought WHEN 0 THEN 1 ELSE 0 END WHERE id = ?`,
		productID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle product %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteProduct removes a product. Returns false when the product does not
// exist.
func (r *Repository) DeleteProduct(ctx context.Context, productID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// ClearBought deletes every bought product of a list and returns the count.
func (r *Repository) ClearBought(ctx context.Context, listID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE list_id = ? AND is_bought = 1`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear bought products for list %d: %w", listID, err)
	}
	return res.RowsAffected()
}

// ClearAll deletes every product of a list and returns the count.
func (r *Repository) ClearAll(ctx context.Context, listID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE list_id = ?`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear list %d: %w", listID, err)
	}
	return res.RowsAffected()
}

// MarkAll sets the bought flag on every product of a list that does not have
// the requested value yet. Returns the number of products changed.
func (r *Repository) MarkAll(ctx context.Context, listID int64, bought bool) (int64, error) {
	flag := 0
	if bought {
		flag = 1
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_bought = ? WHERE list_id = ? AND is_bought != ?`,
		flag, listID, flag)
	if err != nil {
		return 0, fmt.Errorf("failed to mark products for list %d: %w", listID, err)
	}
	return res.RowsAffected()
}

// UserStats aggregates product counts across all of the user's lists.
func (r *Repository) UserStats(ctx context.Context, userID int64) (Stats, error) {
	var total, bought sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(CASE WHEN p.is_bought = 1 THEN 1 ELSE 0 END)
		FROM products p
		JOIN shopping_lists sl ON p.list_id = sl.id
		WHERE sl.user_id = ?`,
		userID).Scan(&total, &bought)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get stats for user %d: %w", userID, err)
	}

	stats := Stats{
		Total:  int(total.Int64),
		Bought: int(bought.Int64),
	}
	stats.Remaining = stats.Total - stats.Bought
	return stats, nil
}
