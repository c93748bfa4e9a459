package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salesman/domain"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const salesmanColumns = "id, first_name, last_name, titles_before, titles_after, prosight_id, email, phone, gender, marital_status, created_at, updated_at"

// Sortable fields; anything else is silently ignored.
var allowedSortFields = map[string]bool{
	"first_name":     true,
	"last_name":      true,
	"prosight_id":    true,
	"email":          true,
	"gender":         true,
	"marital_status": true,
	"created_at":     true,
	"updated_at":     true,
}

// Postgres unique violation (SQLSTATE 23505) constraint names from the
// schema migration.
const (
	uniqueViolationCode        = "23505"
	prosightIDUniqueConstraint = "salesmen_prosight_id_unique"
	emailUniqueConstraint      = "salesmen_email_unique"
)

type salesmanRepository struct {
	db *pgxpool.Pool
}

func NewSalesmanRepository(database *pgxpool.Pool) domain.SalesmanRepo {
	return &salesmanRepository{
		db: database,
	}
}

func (sr *salesmanRepository) FindByID(ctx context.Context, id string) (*domain.Salesman, error) {
	query := `
		SELECT ` + salesmanColumns + `
		FROM salesmen
		WHERE id = $1;
	`
	return sr.findOne(ctx, query, id)
}

func (sr *salesmanRepository) FindByProsightID(ctx context.Context, prosightID string) (*domain.Salesman, error) {
	query := `
		SELECT ` + salesmanColumns + `
		FROM salesmen
		WHERE prosight_id = $1;
	`
	return sr.findOne(ctx, query, prosightID)
}

func (sr *salesmanRepository) FindByEmail(ctx context.Context, email string) (*domain.Salesman, error) {
	query := `
		SELECT ` + salesmanColumns + `
		FROM salesmen
		WHERE email = $1;
	`
	return sr.findOne(ctx, query, email)
}

func (sr *salesmanRepository) Create(ctx context.Context, salesman *domain.Salesman) error {
	query := `
		INSERT INTO salesmen (` + salesmanColumns + `)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9, $10, $11, $12);
	`

	titlesBefore, err := encodeTitles(salesman.TitlesBefore)
	if err != nil {
		return err
	}
	titlesAfter, err := encodeTitles(salesman.TitlesAfter)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = sr.db.Exec(ctx, query,
		salesman.ID, salesman.FirstName, salesman.LastName,
		titlesBefore, titlesAfter,
		salesman.ProsightID, salesman.Email, salesman.Phone,
		salesman.Gender, salesman.MaritalStatus,
		now, now,
	)
	if err != nil {
		if dup := duplicateError(err, salesman); dup != nil {
			return dup
		}
		return fmt.Errorf("could not insert salesman: %w", err)
	}

	salesman.CreatedAt = now
	salesman.UpdatedAt = now

	return nil
}

func (sr *salesmanRepository) Update(ctx context.Context, salesman *domain.Salesman) error {
	query := `
		UPDATE salesmen
		SET first_name = $1, last_name = $2, titles_before = $3::jsonb, titles_after = $4::jsonb,
			prosight_id = $5, email = $6, phone = $7, gender = $8, marital_status = $9, updated_at = $10
		WHERE id = $11;
	`

	titlesBefore, err := encodeTitles(salesman.TitlesBefore)
	if err != nil {
		return err
	}
	titlesAfter, err := encodeTitles(salesman.TitlesAfter)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = sr.db.Exec(ctx, query,
		salesman.FirstName, salesman.LastName,
		titlesBefore, titlesAfter,
		salesman.ProsightID, salesman.Email, salesman.Phone,
		salesman.Gender, salesman.MaritalStatus,
		now, salesman.ID,
	)
	if err != nil {
		if dup := duplicateError(err, salesman); dup != nil {
			return dup
		}
		return fmt.Errorf("could not update salesman: %w", err)
	}

	salesman.UpdatedAt = now
	return nil
}

func (sr *salesmanRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `
		DELETE FROM salesmen
		WHERE id = $1;
	`

	tag, err := sr.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("could not delete salesman: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (sr *salesmanRepository) ExistsByProsightID(ctx context.Context, prosightID, excludeID string) (bool, error) {
	return sr.exists(ctx, "prosight_id", prosightID, excludeID)
}

func (sr *salesmanRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return sr.exists(ctx, "email", email, excludeID)
}

func (sr *salesmanRepository) Paginate(ctx context.Context, query domain.ListQuery) (*domain.Page, error) {
	page := clampToOne(query.Page)
	perPage := clampToOne(query.PerPage)

	where, args := buildFilters(query.Filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM salesmen` + where + `;`
	if err := sr.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("could not count salesmen: %w", err)
	}

	dataQuery := `SELECT ` + salesmanColumns + ` FROM salesmen` + where + sortClause(query.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d;", len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := sr.db.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list salesmen: %w", err)
	}
	defer rows.Close()

	data, err := collectSalesmen(rows)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Data:     data,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		LastPage: lastPage(total, perPage),
	}, nil
}

func (sr *salesmanRepository) GetAll(ctx context.Context, filters domain.ListFilters) ([]domain.Salesman, error) {
	where, args := buildFilters(filters)

	query := `SELECT ` + salesmanColumns + ` FROM salesmen` + where + `;`

	rows, err := sr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not get all salesmen: %w", err)
	}
	defer rows.Close()

	return collectSalesmen(rows)
}

func (sr *salesmanRepository) findOne(ctx context.Context, query string, arg any) (*domain.Salesman, error) {
	salesman, err := scanSalesman(sr.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not find salesman: %w", err)
	}
	return salesman, nil
}

func (sr *salesmanRepository) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM salesmen WHERE ` + column + ` = $1)`
	args := []any{value}
	if excludeID != "" {
		query = `SELECT EXISTS (SELECT 1 FROM salesmen WHERE ` + column + ` = $1 AND id != $2)`
		args = append(args, excludeID)
	}

	var exists bool
	if err := sr.db.QueryRow(ctx, query+`;`, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check %s existence: %w", column, err)
	}
	return exists, nil
}

// buildFilters assembles the WHERE clause for the whitelisted filters.
// Invalid gender/marital_status values drop the filter instead of erroring.
func buildFilters(f domain.ListFilters) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR prosight_id ILIKE $%d)", n, n, n, n))
	}
	if domain.IsValidGender(f.Gender) {
		args = append(args, f.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	if domain.IsValidMaritalStatus(f.MaritalStatus) {
		args = append(args, f.MaritalStatus)
		conds = append(conds, fmt.Sprintf("marital_status = $%d", len(args)))
	}
	if f.ProsightID != "" {
		args = append(args, "%"+f.ProsightID+"%")
		conds = append(conds, fmt.Sprintf("prosight_id ILIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// sortClause translates a '-'-prefixable sort field into an ORDER BY.
// Unrecognized fields yield no clause.
func sortClause(sort string) string {
	if sort == "" {
		return ""
	}

	direction := "ASC"
	field := sort
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		field = sort[1:]
	}

	if !allowedSortFields[field] {
		return ""
	}
	return " ORDER BY " + field + " " + direction
}

func clampToOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func lastPage(total, perPage int) int {
	last := (total + perPage - 1) / perPage
	if last < 1 {
		return 1
	}
	return last
}

func encodeTitles(titles []string) ([]byte, error) {
	if titles == nil {
		return nil, nil
	}
	encoded, err := sonic.Marshal(titles)
	if err != nil {
		return nil, fmt.Errorf("could not encode titles: %w", err)
	}
	return encoded, nil
}

func decodeTitles(raw []byte) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var titles []string
	if err := sonic.Unmarshal(raw, &titles); err != nil {
		return nil, fmt.Errorf("could not decode titles: %w", err)
	}
	return titles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalesman(row rowScanner) (*domain.Salesman, error) {
	var salesman domain.Salesman
	var titlesBefore, titlesAfter []byte

	err := row.Scan(
		&salesman.ID, &salesman.FirstName, &salesman.LastName,
		&titlesBefore, &titlesAfter,
		&salesman.ProsightID, &salesman.Email, &salesman.Phone,
		&salesman.Gender, &salesman.MaritalStatus,
		&salesman.CreatedAt, &salesman.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if salesman.TitlesBefore, err = decodeTitles(titlesBefore); err != nil {
		return nil, err
	}
	if salesman.TitlesAfter, err = decodeTitles(titlesAfter); err != nil {
		return nil, err
	}

	return &salesman, nil
}

func collectSalesmen(rows pgx.Rows) ([]domain.Salesman, error) {
	salesmen := make([]domain.Salesman, 0)
	for rows.Next() {
		salesman, err := scanSalesman(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan salesman: %w", err)
		}
		salesmen = append(salesmen, *salesman)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return salesmen, nil
}

// duplicateError turns a unique-constraint violation into the domain
// AlreadyExists failure. The store is the authority on uniqueness; the
// use-case pre-checks only shortcut the common case.
func duplicateError(err error, salesman *domain.Salesman) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case prosightIDUniqueConstraint:
		return &domain.AlreadyExistsError{Field: "prosight_id", Value: salesman.ProsightID}
	case emailUniqueConstraint:
		return &domain.AlreadyExistsError{Field: "email", Value: salesman.Email}
	}
	return nil
}
