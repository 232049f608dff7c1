// Package store persists token versions in a SQL database. Each row holds
// one (id, version) pair with its canonical JSON body, so older versions
// stay readable after newer ones are written.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Mindburn-Labs/sdui/pkg/canonicalize"
	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/token"
)

var (
	ErrNotFound        = errors.New("store: token not found")
	ErrInvalidArgument = errors.New("store: invalid argument")
)

// Dialect selects the bind-parameter style.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectOf maps a database/sql driver name to its dialect.
func DialectOf(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pq":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("%w: unsupported driver %q", ErrInvalidArgument, driver)
}

const schemaDDL = `CREATE TABLE IF NOT EXISTS sdui_tokens (
	id TEXT NOT NULL,
	version INTEGER NOT NULL,
	kind TEXT NOT NULL,
	digest TEXT NOT NULL,
	body TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (id, version)
)`

const (
	upsertSQL   = `INSERT INTO sdui_tokens (id, version, kind, digest, body, updated_at) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (id, version) DO UPDATE SET kind = excluded.kind, digest = excluded.digest, body = excluded.body, updated_at = excluded.updated_at`
	latestSQL   = `SELECT body FROM sdui_tokens WHERE id = ? ORDER BY version DESC LIMIT 1`
	versionSQL  = `SELECT body FROM sdui_tokens WHERE id = ? AND version = ?`
	versionsSQL = `SELECT version FROM sdui_tokens WHERE id = ? ORDER BY version`
	listSQL     = `SELECT t.id, t.version, t.kind, t.digest, t.updated_at FROM sdui_tokens t WHERE t.version = (SELECT MAX(m.version) FROM sdui_tokens m WHERE m.id = t.id) ORDER BY t.id`
	bodiesSQL   = `SELECT t.body FROM sdui_tokens t WHERE t.version = (SELECT MAX(m.version) FROM sdui_tokens m WHERE m.id = t.id) ORDER BY t.id`
	deleteSQL   = `DELETE FROM sdui_tokens WHERE id = ?`
)

// Record describes one stored token version.
type Record struct {
	ID        string     `json:"id"`
	Version   int        `json:"version"`
	Kind      token.Kind `json:"kind"`
	Digest    string     `json:"digest"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Store reads and writes sdui_tokens.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps an open database.
func New(db *sql.DB, d Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  slog.Default().With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens driver/dsn and returns a store for it. The driver must be
// registered by the caller's imports.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	d, err := DialectOf(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if d == DialectSQLite {
		db.SetMaxOpenConns(1)
	}
	return New(db, d, opts...), nil
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Init creates the table if needed.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("store: init: %w", err)
	}
	return nil
}

// Put writes n under (id, version), replacing any earlier body for the
// same pair.
func (s *Store) Put(ctx context.Context, n token.Node) (Record, error) {
	if n == nil {
		return Record{}, fmt.Errorf("%w: nil token", ErrInvalidArgument)
	}
	b := n.Common()
	if strings.TrimSpace(b.ID) == "" {
		return Record{}, fmt.Errorf("%w: blank id", ErrInvalidArgument)
	}
	if b.Version < 1 {
		return Record{}, fmt.Errorf("%w: %q has version %d", ErrInvalidArgument, b.ID, b.Version)
	}
	raw, err := token.Marshal(n)
	if err != nil {
		return Record{}, fmt.Errorf("store: encode %q: %w", b.ID, err)
	}
	body, err := canonicalize.Bytes(raw)
	if err != nil {
		return Record{}, fmt.Errorf("store: canonicalize %q: %w", b.ID, err)
	}
	rec := Record{
		ID:        b.ID,
		Version:   b.Version,
		Kind:      n.Kind(),
		Digest:    canonicalize.HashBytes(body),
		UpdatedAt: s.now(),
	}
	_, err = s.db.ExecContext(ctx, s.bind(upsertSQL),
		rec.ID, rec.Version, string(rec.Kind), rec.Digest, string(body), rec.UpdatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("store: put %q: %w", b.ID, err)
	}
	s.logger.Debug("token stored", "id", rec.ID, "version", rec.Version, "digest", rec.Digest)
	return rec, nil
}

// Get returns the highest stored version of id.
func (s *Store) Get(ctx context.Context, id string) (token.Node, error) {
	return s.one(ctx, id, s.bind(latestSQL), id)
}

// GetVersion returns one stored version of id.
func (s *Store) GetVersion(ctx context.Context, id string, version int) (token.Node, error) {
	return s.one(ctx, id, s.bind(versionSQL), id, version)
}

func (s *Store) one(ctx context.Context, id, query string, args ...any) (token.Node, error) {
	var body string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", id, err)
	}
	n, err := token.Decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("store: decode %q: %w", id, err)
	}
	return n, nil
}

// Versions lists the stored versions of id in ascending order.
func (s *Store) Versions(ctx context.Context, id string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(versionsSQL), id)
	if err != nil {
		return nil, fmt.Errorf("store: versions %q: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("store: versions %q: %w", id, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// List returns the latest record per id, ordered by id.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		var kind string
		if err := rows.Scan(&r.ID, &r.Version, &kind, &r.Digest, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		r.Kind = token.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest decodes the highest version of every stored id, ordered by id.
func (s *Store) Latest(ctx context.Context) ([]token.Node, error) {
	rows, err := s.db.QueryContext(ctx, bodiesSQL)
	if err != nil {
		return nil, fmt.Errorf("store: latest: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []token.Node
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("store: latest: %w", err)
		}
		n, err := token.Decode([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("store: latest: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// LoadInto registers the latest version of every stored token and returns
// how many were loaded.
func (s *Store) LoadInto(ctx context.Context, r *registry.Registry) (int, error) {
	nodes, err := s.Latest(ctx)
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		r.Register(n)
	}
	s.logger.Info("registry loaded from store", "tokens", len(nodes))
	return len(nodes), nil
}

// Delete removes every version of id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.bind(deleteSQL), id)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// bind rewrites ? placeholders as $n for postgres.
func (s *Store) bind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
