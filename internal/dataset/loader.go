// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// Dataset file names within the data directory.
const (
	UsersFile        = "users.csv"
	ProductsFile     = "products.csv"
	InteractionsFile = "interactions.csv"
)

// timestampFormats are accepted interaction timestamp layouts, tried in
// order. Timestamps feed the explanation layer only, never the scoring
// math.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Loader reads the three tabular datasets from CSV flat files and
// implements recommend.DataProvider.
//
// Normalization happens here, once, at load time: missing text fields
// become empty strings and a missing price or timestamp cell becomes
// the zero value. Structural problems (a missing file, a missing
// required column, an unparseable identifier or price, a negative
// price) are load errors; this is the one place where a malformed
// source dataset surfaces as a failure.
type Loader struct {
	fsys   fs.FS
	logger zerolog.Logger
}

// NewLoader creates a loader over the given filesystem. Tests pass an
// in-memory fs; production uses Open.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(fsys fs.FS, logger zerolog.Logger) *Loader {
	return &Loader{
		fsys:   fsys,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// Open creates a loader over a data directory on disk.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(dir string, logger zerolog.Logger) *Loader {
	return NewLoader(os.DirFS(dir), logger)
}

// GetUsers loads the user table from users.csv.
func (l *Loader) GetUsers(ctx context.Context) ([]recommend.User, error) {
	var users []recommend.User
	err := l.readTable(ctx, UsersFile, []string{"user_id", "name"}, func(row record) error {
		id, err := row.intField("user_id")
		if err != nil {
			return err
		}
		users = append(users, recommend.User{
			ID:   id,
			Name: row.textField("name"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug().Int("count", len(users)).Msg("users loaded")
	return users, nil
}

// GetProducts loads the product catalog from products.csv, preserving
// file order. File order defines the row order of the vector space.
func (l *Loader) GetProducts(ctx context.Context) ([]recommend.Product, error) {
	required := []string{"product_id", "name", "category", "brand", "price"}

	var products []recommend.Product
	err := l.readTable(ctx, ProductsFile, required, func(row record) error {
		id, err := row.intField("product_id")
		if err != nil {
			return err
		}
		price, err := row.priceField("price")
		if err != nil {
			return err
		}
		products = append(products, recommend.Product{
			ID:       id,
			Name:     row.textField("name"),
			Category: row.textField("category"),
			Brand:    row.textField("brand"),
			Price:    price,
			Tags:     row.textField("tags"), // optional column
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug().Int("count", len(products)).Msg("products loaded")
	return products, nil
}

// GetInteractions loads the interaction log from interactions.csv.
// Event kinds are carried through as-is; unknown kinds are the
// engine's concern, not the loader's.
func (l *Loader) GetInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	required := []string{"user_id", "product_id", "event_type", "timestamp"}

	var interactions []recommend.Interaction
	err := l.readTable(ctx, InteractionsFile, required, func(row record) error {
		userID, err := row.intField("user_id")
		if err != nil {
			return err
		}
		productID, err := row.intField("product_id")
		if err != nil {
			return err
		}
		ts, err := row.timeField("timestamp")
		if err != nil {
			return err
		}
		interactions = append(interactions, recommend.Interaction{
			UserID:    userID,
			ProductID: productID,
			Event:     recommend.EventType(row.textField("event_type")),
			Timestamp: ts,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Debug().Int("count", len(interactions)).Msg("interactions loaded")
	return interactions, nil
}

// record is one CSV row with its header mapping.
type record struct {
	columns map[string]int
	fields  []string
	line    int
	file    string
}

// textField returns a trimmed text field, "" for absent columns or
// missing values.
func (r record) textField(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// intField parses a required integer field.
func (r record) intField(name string) (int, error) {
	raw := r.textField(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %q: invalid integer %q", r.file, r.line, name, raw)
	}
	return v, nil
}

// priceField parses a non-negative price. An empty cell normalizes
// to 0 (the explicit stand-in for a missing value).
func (r record) priceField(name string) (float64, error) {
	raw := r.textField(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %q: invalid number %q", r.file, r.line, name, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s line %d: column %q: negative price %q", r.file, r.line, name, raw)
	}
	return v, nil
}

// timeField parses a timestamp in any accepted layout. An empty cell
// normalizes to the zero time.
func (r record) timeField(name string) (time.Time, error) {
	raw := r.textField(name)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampFormats {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s line %d: column %q: unrecognized timestamp %q", r.file, r.line, name, raw)
}

// readTable streams a CSV file row by row, validating the header
// against the required column set.
func (l *Loader) readTable(ctx context.Context, name string, required []string, visit func(record) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", name, err)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("%s: missing required column %q", name, col)
		}
	}

	for line := 2; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", name, line, err)
		}
		if err := visit(record{columns: columns, fields: fields, line: line, file: name}); err != nil {
			return err
		}
	}
}
