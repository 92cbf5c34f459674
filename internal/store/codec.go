package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
)

//go:embed todos.schema.json
var schemaJSON string

const schemaURL = "todos.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(schemaJSON))); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// record is the persisted shape of one todo.
type record struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	CreatedAt float64 `json:"createdAt"`
}

// Encode serializes todos as a JSON array with createdAt in epoch milliseconds.
func Encode(todos []model.Todo) ([]byte, error) {
	recs := make([]record, 0, len(todos))
	for _, t := range todos {
		recs = append(recs, record{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: float64(t.CreatedAt.UnixMilli()),
		})
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a persisted list. It fails only on malformed JSON or a value
// that is not an array. Records that do not satisfy the record schema, or that
// reuse an earlier id, are left out and reported in skipped.
func Decode(data []byte) (todos []model.Todo, skipped []error, err error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if _, ok := doc.([]any); !ok {
		return nil, nil, fmt.Errorf("persisted value is %T, not an array", doc)
	}
	sch, err := compiledSchema()
	if err != nil {
		return nil, nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal records: %w", err)
	}
	todos = make([]model.Todo, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		r, err := decodeRecord(sch, raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if seen[r.ID] {
			skipped = append(skipped, fmt.Errorf("record %d: duplicate id %q", i, r.ID))
			continue
		}
		seen[r.ID] = true
		todos = append(todos, model.Todo{
			ID:        r.ID,
			Title:     r.Title,
			Completed: r.Completed,
			CreatedAt: time.UnixMilli(int64(r.CreatedAt)),
		})
	}
	return todos, skipped, nil
}

func decodeRecord(sch *jsonschema.Schema, raw json.RawMessage) (record, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return record{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return record{}, fmt.Errorf("validate: %w", err)
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return record{}, fmt.Errorf("json unmarshal record: %w", err)
	}
	return r, nil
}
