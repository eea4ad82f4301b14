package catalog

import (
	"fmt"
	"log"
	"os"

	"github.com/tidwall/gjson"
)

// Meta is the header metadata of a pregenerated milestone file.
type Meta struct {
	Version       string
	GeneratedDate string
	TotalCount    int
	Description   string
}

// LoadPregenerated loads a pre-generated milestone JSON file. Each entry
// carries its own stable id and an already-phrased message, so this path
// needs no LLM at runtime.
func LoadPregenerated(path string) (*Catalog, Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("reading pregenerated file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, Meta{}, fmt.Errorf("pregenerated file %s: invalid JSON", path)
	}

	root := gjson.ParseBytes(data)
	meta := Meta{
		Version:       root.Get("version").String(),
		GeneratedDate: root.Get("generated_date").String(),
		TotalCount:    int(root.Get("total_count").Int()),
		Description:   root.Get("description").String(),
	}

	milestones := root.Get("milestones")
	if !milestones.IsArray() {
		return nil, Meta{}, fmt.Errorf("pregenerated file %s: missing milestones array", path)
	}

	cat := New(nil)
	var badEntry error
	milestones.ForEach(func(_, entry gjson.Result) bool {
		id := entry.Get("id")
		message := entry.Get("message")
		if !id.Exists() || !message.Exists() {
			badEntry = fmt.Errorf("pregenerated file %s: entry missing id or message", path)
			return false
		}
		cat.add(Item{
			ID:       int(id.Int()),
			Category: entry.Get("category").String(),
			Text:     message.String(),
		})
		return true
	})
	if badEntry != nil {
		return nil, Meta{}, badEntry
	}

	log.Printf("loaded %d pre-generated milestones across %d categories", cat.Len(), len(cat.Categories()))
	return cat, meta, nil
}
