package catalog

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"
)

// defaultCategory is used for bullets that appear before any section header.
const defaultCategory = "未分類"

// LoadMarkdown parses a milestone markdown file into a catalog.
//
// Grammar: `##`/`###` lines open a category (leading #s and any leading
// emoji are stripped), `- ` bullets are milestones. Blank lines and bullets
// that are section dividers or metadata (starting with --- or *) are
// skipped. IDs are 1-based ordinals in file order.
func LoadMarkdown(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening milestone file: %w", err)
	}
	defer f.Close()

	cat := New(nil)
	currentCategory := defaultCategory
	nextID := 1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "##") {
			currentCategory = cleanCategoryName(line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		text := strings.TrimSpace(trimmed[1:])
		if text == "" {
			continue
		}
		// Skip metadata lines (dates, section dividers).
		if strings.HasPrefix(text, "---") || strings.HasPrefix(text, "*") {
			continue
		}

		cat.add(Item{ID: nextID, Category: currentCategory, Text: text})
		nextID++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading milestone file: %w", err)
	}

	log.Printf("parsed %d milestones across %d categories from %s", cat.Len(), len(cat.Categories()), path)
	return cat, nil
}

// cleanCategoryName strips the markdown header markers and any leading
// emoji from a `## 🌟 工作成就` style line.
func cleanCategoryName(line string) string {
	name := strings.TrimLeft(line, "#")
	name = strings.TrimSpace(name)
	name = strings.TrimLeftFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && !unicode.IsSpace(r)
	})
	return strings.TrimSpace(name)
}
