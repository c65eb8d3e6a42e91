package repos

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/domain"
)

// storageKeyPrefix mirrors the fixed record key of the persisted cart layout,
// scoped per session.
const storageKeyPrefix = "cart:v1:"

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func cartKey(sessionID string) string { return storageKeyPrefix + sessionID }

// Load reads the cart state for a session. Reads are self-healing: a missing,
// unparsable, or schema-mismatched record yields an empty cart, never an error.
func (r *CartRepo) Load(sessionID string) domain.CartState {
	var raw string
	if err := r.db.Get(&raw, `SELECT state FROM carts WHERE key = ?`, cartKey(sessionID)); err != nil {
		return domain.EmptyCart()
	}
	var st domain.CartState
	if err := json.Unmarshal([]byte(raw), &st); err != nil || st.Items == nil {
		return domain.EmptyCart()
	}
	return st
}

// Save persists the full next state for a session (upsert, whole record).
func (r *CartRepo) Save(sessionID string, st domain.CartState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO carts(key,state,updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, cartKey(sessionID), string(raw), time.Now().Format(time.RFC3339))
	return err
}
