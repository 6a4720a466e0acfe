package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the user lookup boundary over PostgreSQL.
//
// The pgx pool is owned by the caller; this store must NOT close it.
// Schema/table identifiers are validated and quoted to keep identifier
// interpolation safe.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the identity store (default "tradebid").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "tradebid",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

const userColumns = `id, username, email, email_norm, alias_norm, display_name, password_record, role, created_at`

// FindByUsername matches the stored username exactly. The equality is
// byte-exact in SQL, which preserves the case-sensitive behavior the live
// user base depends on.
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.FindByUsername"
	if strings.TrimSpace(username) == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty username"}
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+s.users()+` WHERE username = $1`,
		username,
	)
	return scanUser(op, row)
}

// FindByEmail matches on the normalized email column.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"
	norm := NormalizeEmail(email)
	if norm == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty email"}
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+s.users()+` WHERE email_norm = $1`,
		norm,
	)
	return scanUser(op, row)
}

// FindByAlias matches on the normalized legacy alias. Two rows sharing an
// alias is a data-hygiene problem, not a tie to break: the lookup fails with
// ErrAmbiguous instead of picking one.
func (s *PostgresStore) FindByAlias(ctx context.Context, alias string) (User, error) {
	const op = "identity.FindByAlias"
	norm := NormalizeAlias(alias)
	if norm == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty alias"}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM `+s.users()+` WHERE alias_norm = $1 LIMIT 2`,
		norm,
	)
	if err != nil {
		return User{}, err
	}
	defer rows.Close()

	var matches []User
	for rows.Next() {
		u, err := scanUserFromRows(rows)
		if err != nil {
			return User{}, err
		}
		matches = append(matches, u)
	}
	if err := rows.Err(); err != nil {
		return User{}, err
	}

	switch len(matches) {
	case 0:
		return User{}, OpError{Op: op, Kind: ErrNotFound}
	case 1:
		return matches[0], nil
	default:
		return User{}, OpError{Op: op, Kind: ErrAmbiguous, Msg: "alias resolves to multiple users"}
	}
}

// FindByID resolves a user by numeric id.
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (User, error) {
	const op = "identity.FindByID"
	if id <= 0 {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "non-positive id"}
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+s.users()+` WHERE id = $1`,
		id,
	)
	return scanUser(op, row)
}

func (s *PostgresStore) users() string {
	return `"` + s.schema + `".users`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(op string, row rowScanner) (User, error) {
	u, err := scanUserFromRows(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, OpError{Op: op, Kind: ErrNotFound}
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func scanUserFromRows(row rowScanner) (User, error) {
	var (
		u         User
		emailNorm *string
		role      string
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&emailNorm,
		&u.Alias,
		&u.DisplayName,
		&u.PasswordRecord,
		&role,
		&u.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	return u, nil
}
