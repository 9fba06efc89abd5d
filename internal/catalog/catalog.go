// Package catalog holds the menu the terminal sells from. It is read-only
// reference data loaded once at startup.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// AllCategories is the filter keyword that matches every category.
const AllCategories = "All"

//go:embed default_menu.json
var defaultMenu []byte

var validate = newValidator()

type enumValue interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(enumValue); ok {
			return e.IsValid()
		}
		return false
	})
	return v
}

type menuFile struct {
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
	Items      []Item   `json:"items" validate:"dive"`
}

// Catalog is an ordered, immutable menu.
type Catalog struct {
	items      []Item
	categories []string
	byID       map[string]int
}

// Load reads the menu at path, or the embedded default menu when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultMenu)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a menu document.
func Parse(data []byte) (*Catalog, error) {
	var file menuFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog json")
	}
	if err := validate.Struct(file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog")
	}

	known := make(map[string]struct{}, len(file.Categories))
	for _, name := range file.Categories {
		if strings.EqualFold(name, AllCategories) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name All is reserved")
		}
		known[name] = struct{}{}
	}

	c := &Catalog{
		items:      make([]Item, 0, len(file.Items)),
		categories: append([]string(nil), file.Categories...),
		byID:       make(map[string]int, len(file.Items)),
	}
	for _, item := range file.Items {
		if _, dup := c.byID[item.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate catalog item").WithDetails(map[string]any{"id": item.ID})
		}
		if _, ok := known[item.Category]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog item has unknown category").WithDetails(map[string]any{"id": item.ID, "category": item.Category})
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Items returns every menu item in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Clone())
	}
	return out
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Get looks an item up by id.
func (c *Catalog) Get(id string) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx].Clone(), true
}

// Filter returns the items in category (All or empty for every category)
// whose name or SKU contains query, case-insensitively.
func (c *Catalog) Filter(category, query string) []Item {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if category != "" && category != AllCategories && item.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.SKU), query) {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}
