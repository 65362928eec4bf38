package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"boxtrack/internal/models"
)

var (
	// ErrNotFound is returned when a box id does not exist.
	ErrNotFound = errors.New("box: not found")

	// ErrDuplicateMAC is returned when a create or MAC-changing update
	// collides with an already registered MAC address.
	ErrDuplicateMAC = errors.New("box: mac address already registered")
)

// QueryOptions shapes a paginated list query. Search and Process are
// optional filters combined with AND when both are present.
type QueryOptions struct {
	Search   string
	Process  string
	Page     int
	PageSize int
}

// BoxRepository provides persistence operations for boxes.
type BoxRepository struct {
	db *sql.DB
}

// NewBoxRepository creates a repository over an open database handle.
func NewBoxRepository(db *sql.DB) *BoxRepository {
	return &BoxRepository{db: db}
}

const boxColumns = "id, mac_address, ip_address, main_equipment, location, process, manager, note, created_at, updated_at"

// Ping reports whether the store is reachable.
func (r *BoxRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert stores a new box, assigning its id and timestamps. The payload
// must already be normalized. Returns ErrDuplicateMAC if the MAC address
// is taken; the UNIQUE index enforces this under concurrent creates.
func (r *BoxRepository) Insert(ctx context.Context, c models.BoxCreate) (*models.Box, error) {
	now := time.Now().UTC().Truncate(time.Second)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO boxes (mac_address, ip_address, main_equipment, location, process, manager, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.MACAddress, c.IPAddress, c.MainEquipment, c.Location, c.Process, c.Manager, c.Note, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateMAC
		}
		return nil, fmt.Errorf("inserting box: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insert id: %w", err)
	}

	return &models.Box{
		ID:            id,
		MACAddress:    c.MACAddress,
		IPAddress:     c.IPAddress,
		MainEquipment: c.MainEquipment,
		Location:      c.Location,
		Process:       c.Process,
		Manager:       c.Manager,
		Note:          c.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// GetByID retrieves a box by id. Returns ErrNotFound if absent.
func (r *BoxRepository) GetByID(ctx context.Context, id int64) (*models.Box, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+boxColumns+" FROM boxes WHERE id = ?", id)

	box, err := scanBox(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying box %d: %w", id, err)
	}
	return box, nil
}

// Update applies the fields present in the payload and refreshes
// updated_at. Returns ErrNotFound for an unknown id and ErrDuplicateMAC
// when a MAC change collides with another row.
func (r *BoxRepository) Update(ctx context.Context, id int64, u models.BoxUpdate) (*models.Box, error) {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)

	if u.MACAddress.Set {
		sets = append(sets, "mac_address = ?")
		args = append(args, u.MACAddress.Value)
	}
	if u.IPAddress.Set {
		sets = append(sets, "ip_address = ?")
		args = append(args, u.IPAddress.Ptr())
	}
	if u.MainEquipment.Set {
		sets = append(sets, "main_equipment = ?")
		args = append(args, u.MainEquipment.Ptr())
	}
	if u.Location.Set {
		sets = append(sets, "location = ?")
		args = append(args, u.Location.Ptr())
	}
	if u.Process.Set {
		sets = append(sets, "process = ?")
		args = append(args, u.Process.Value)
	}
	if u.Manager.Set {
		sets = append(sets, "manager = ?")
		args = append(args, u.Manager.Ptr())
	}
	if u.Note.Set {
		sets = append(sets, "note = ?")
		args = append(args, u.Note.Ptr())
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Truncate(time.Second))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE boxes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateMAC
		}
		return nil, fmt.Errorf("updating box %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete permanently removes a box. Returns ErrNotFound if absent.
func (r *BoxRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM boxes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting box %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Query returns one page of boxes matching the filters, newest first,
// together with the total match count before pagination.
func (r *BoxRepository) Query(ctx context.Context, opts QueryOptions) (*models.BoxPage, error) {
	where, args := buildFilter(opts.Search, opts.Process)

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boxes"+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("counting boxes: %w", err)
	}

	offset := (opts.Page - 1) * opts.PageSize
	listArgs := append(args, opts.PageSize, offset)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+boxColumns+" FROM boxes"+where+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", listArgs...)
	if err != nil {
		return nil, fmt.Errorf("querying boxes: %w", err)
	}
	defer rows.Close()

	items, err := collectBoxes(rows)
	if err != nil {
		return nil, err
	}

	return &models.BoxPage{
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: (total + int64(opts.PageSize) - 1) / int64(opts.PageSize),
		Items:      items,
	}, nil
}

// ListFiltered returns all boxes matching the filters without pagination,
// newest first. Used by the spreadsheet export.
func (r *BoxRepository) ListFiltered(ctx context.Context, search, process string) ([]models.Box, error) {
	where, args := buildFilter(search, process)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+boxColumns+" FROM boxes"+where+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("querying boxes: %w", err)
	}
	defer rows.Close()

	return collectBoxes(rows)
}

// ListProcesses returns the distinct process names in ascending order.
// Stored values are uppercase by invariant; UPPER guards rows written
// before normalization was enforced.
func (r *BoxRepository) ListProcesses(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT UPPER(process) FROM boxes WHERE process <> '' ORDER BY 1")
	if err != nil {
		return nil, fmt.Errorf("querying processes: %w", err)
	}
	defer rows.Close()

	processes := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning process: %w", err)
		}
		processes = append(processes, p)
	}
	return processes, rows.Err()
}

// NormalizeProcesses uppercases every stored process value that is not
// already uppercase, refreshing updated_at only on the rows it changes,
// and returns the number of rows changed. Idempotent: a second run on
// the same data changes nothing.
func (r *BoxRepository) NormalizeProcesses(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE boxes SET process = UPPER(process), updated_at = ? WHERE process <> UPPER(process)",
		time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return 0, fmt.Errorf("normalizing processes: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading normalize result: %w", err)
	}
	return affected, nil
}

// buildFilter assembles the WHERE clause shared by Query and
// ListFiltered. instr() keeps the free-text search a case-sensitive
// substring match (SQLite LIKE case-folds ASCII) and returns NULL for
// NULL columns, so null fields simply never match.
func buildFilter(search, process string) (string, []any) {
	var conds []string
	var args []any

	if search != "" {
		cols := []string{"mac_address", "ip_address", "main_equipment", "location", "process", "manager"}
		ors := make([]string, len(cols))
		for i, col := range cols {
			ors[i] = fmt.Sprintf("instr(%s, ?) > 0", col)
			args = append(args, search)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if process != "" {
		conds = append(conds, "process = ?")
		args = append(args, process)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanner abstracts *sql.Row and *sql.Rows for scanBox.
type scanner interface {
	Scan(dest ...any) error
}

func scanBox(s scanner) (*models.Box, error) {
	var b models.Box
	err := s.Scan(&b.ID, &b.MACAddress, &b.IPAddress, &b.MainEquipment,
		&b.Location, &b.Process, &b.Manager, &b.Note, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBoxes(rows *sql.Rows) ([]models.Box, error) {
	boxes := []models.Box{}
	for rows.Next() {
		b, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning box: %w", err)
		}
		boxes = append(boxes, *b)
	}
	return boxes, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
