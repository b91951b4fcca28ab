package chat

import (
	"context"
	"database/sql"

	"github.com/Vovarama1992/gold-assistant/internal/intent"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS intent_hits (
	id          BIGSERIAL PRIMARY KEY,
	intent      TEXT        NOT NULL,
	off_topic   BOOLEAN     NOT NULL,
	history_len INTEGER     NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// EnsureSchema creates the hit log table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

func (r *repo) RecordHit(ctx context.Context, hit Hit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO intent_hits (intent, off_topic, history_len, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		string(hit.Intent),
		hit.OffTopic,
		hit.HistoryLen,
		hit.CreatedAt,
	)
	return err
}

func (r *repo) Stats(ctx context.Context) ([]IntentCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT intent, count(*)
		FROM intent_hits
		GROUP BY intent
		ORDER BY intent ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IntentCount
	for rows.Next() {
		var c IntentCount
		var name string
		if err := rows.Scan(&name, &c.Count); err != nil {
			return nil, err
		}
		c.Intent = intent.Intent(name)
		out = append(out, c)
	}

	return out, rows.Err()
}
