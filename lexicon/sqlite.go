package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"text2phenotype.com/nlg/morphology"
	"text2phenotype.com/nlg/types"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS words (
	id       TEXT PRIMARY KEY,
	base     TEXT NOT NULL,
	base_key TEXT NOT NULL,
	category TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS words_base_key ON words (base_key);
CREATE TABLE IF NOT EXISTS word_features (
	word_id TEXT NOT NULL REFERENCES words (id) ON DELETE CASCADE,
	name    TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (word_id, name)
);
CREATE TABLE IF NOT EXISTS word_variants (
	word_id TEXT NOT NULL REFERENCES words (id) ON DELETE CASCADE,
	variant TEXT NOT NULL,
	PRIMARY KEY (word_id, variant)
);
CREATE INDEX IF NOT EXISTS word_variants_variant ON word_variants (variant);
`

// SQLiteLexicon keeps entries in an SQLite database. Inflected variants are
// computed at import time and stored next to the entries.
type SQLiteLexicon struct {
	db    *sql.DB
	rules *morphology.MorphologicalRules
}

// OpenSQLite opens (or creates) the database file and applies the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(dbPath string, rules *morphology.MorphologicalRules) (*SQLiteLexicon, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// one connection, so that an in-memory database is the same for every query
	db.SetMaxOpenConns(1)
	lex, err := NewSQLiteLexicon(db, rules)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return lex, nil
}

func NewSQLiteLexicon(db *sql.DB, rules *morphology.MorphologicalRules) (*SQLiteLexicon, error) {
	if rules == nil {
		rules = morphology.DefaultRules()
	}
	if err := InitDB(db); err != nil {
		return nil, fmt.Errorf("lexicon schema: %w", err)
	}
	return &SQLiteLexicon{db: db, rules: rules}, nil
}

// InitDB runs the schema statements one by one.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (lex *SQLiteLexicon) Close() error {
	return lex.db.Close()
}

// Import writes entries in one transaction, replacing entries with the same id.
func (lex *SQLiteLexicon) Import(ctx context.Context, entries []*types.WordEntry) (err error) {
	tx, err := lex.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, entry := range entries {
		if entry == nil || entry.BaseForm == "" {
			continue
		}
		id := EntryID(entry)
		if _, err = tx.ExecContext(ctx, `DELETE FROM word_features WHERE word_id = ?`, id); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM word_variants WHERE word_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO words (id, base, base_key, category) VALUES (?, ?, ?, ?)`,
			id, entry.BaseForm, key(entry.BaseForm), entry.Category.String())
		if err != nil {
			return fmt.Errorf("insert %q: %w", entry.BaseForm, err)
		}
		for name, value := range entry.Features {
			text, ok := storedValue(value)
			if !ok {
				continue
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO word_features (word_id, name, value) VALUES (?, ?, ?)`, id, name, text)
			if err != nil {
				return fmt.Errorf("insert feature %s of %q: %w", name, entry.BaseForm, err)
			}
		}
		for _, variant := range lex.rules.Variants(entry) {
			_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO word_variants (word_id, variant) VALUES (?, ?)`, id, key(variant))
			if err != nil {
				return fmt.Errorf("insert variant %q of %q: %w", variant, entry.BaseForm, err)
			}
		}
	}
	return tx.Commit()
}

func storedValue(value types.Value) (string, bool) {
	switch v := value.(type) {
	case types.Bool:
		if v {
			return "true", true
		}
		return "false", true
	case types.Text:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

func (lex *SQLiteLexicon) FindByBase(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	return lex.query(`SELECT id, base, category FROM words WHERE base_key = ?`, category, key(term))
}

func (lex *SQLiteLexicon) FindByID(id string) (*types.WordEntry, error) {
	entries, err := lex.query(`SELECT id, base, category FROM words WHERE id = ?`, types.CategoryAny, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries[0], nil
}

func (lex *SQLiteLexicon) FindByVariant(term string, category types.LexicalCategory) ([]*types.WordEntry, error) {
	return lex.query(`
		SELECT id, base, category FROM words WHERE base_key = ?
		UNION
		SELECT w.id, w.base, w.category FROM words w JOIN word_variants v ON v.word_id = w.id WHERE v.variant = ?`,
		category, key(term), key(term))
}

func (lex *SQLiteLexicon) query(query string, category types.LexicalCategory, args ...interface{}) ([]*types.WordEntry, error) {
	rows, err := lex.db.Query(query+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*types.WordEntry
	for rows.Next() {
		var id, base, categoryName string
		if err := rows.Scan(&id, &base, &categoryName); err != nil {
			return nil, err
		}
		cat, ok := types.ParseLexicalCategory(categoryName)
		if !ok || !category.Matches(cat) {
			continue
		}
		entry := types.NewWordEntry(base, cat)
		entry.ID = id
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := lex.loadFeatures(entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (lex *SQLiteLexicon) loadFeatures(entry *types.WordEntry) error {
	rows, err := lex.db.Query(`SELECT name, value FROM word_features WHERE word_id = ?`, entry.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return err
		}
		if value, ok := FeatureValue(name, text); ok {
			entry.Features[name] = value
		}
	}
	return rows.Err()
}
