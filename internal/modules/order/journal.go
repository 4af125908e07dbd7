// README: Order status journal backed by PostgreSQL (order_state_events).
package order

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"tvirti/internal/types"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Journal interface {
	AppendEvent(ctx context.Context, e *Event) error
	Events(ctx context.Context, orderID types.ID) ([]Event, error)
}

type PostgresJournal struct {
	db *pgxpool.Pool
}

func NewPostgresJournal(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// Migrate applies the embedded migrations in file name order. Every statement is idempotent.
func (j *PostgresJournal) Migrate(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Name() < entries[b].Name() })
	for _, e := range entries {
		content, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return err
		}
		for _, stmt := range splitSQL(stripSQLComments(string(content))) {
			if _, err := j.db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func (j *PostgresJournal) AppendEvent(ctx context.Context, e *Event) error {
	row := j.db.QueryRow(ctx, `
		INSERT INTO order_state_events (
			order_id, from_status, to_status, actor_type, actor_id, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		e.ActorID,
		e.Reason,
		e.CreatedAt,
	)
	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("append order event: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Events(ctx context.Context, orderID types.ID) ([]Event, error) {
	rows, err := j.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, actor_type, actor_id, reason, created_at
		FROM order_state_events
		WHERE order_id = $1
		ORDER BY id`, string(orderID),
	)
	if err != nil {
		return nil, fmt.Errorf("query order events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var id, from, to string
		if err := rows.Scan(&e.ID, &id, &from, &to, &e.ActorType, &e.ActorID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OrderID = types.ID(id)
		e.FromStatus = Status(from)
		e.ToStatus = Status(to)
		out = append(out, e)
	}
	return out, rows.Err()
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
