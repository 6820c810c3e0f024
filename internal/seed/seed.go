// Package seed loads initial inventory from YAML files.
//
// A seed file holds a single top-level list:
//
//	items:
//	  - id: "1"
//	    name: Laptop
//	    category: Electronics
//	    quantity: 5
//	    price: 1000
//	    supplier: SupplierA
//	    status: In Stock
//	    popular: true
//	    comment: Good item
//
// Keys left out stay unset, so the store reports them as missing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/inventory"
)

type file struct {
	Items []record `yaml:"items"`
}

type record struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Quantity *int    `yaml:"quantity"`
	Price    *price  `yaml:"price"`
	Supplier string  `yaml:"supplier"`
	Status   string  `yaml:"status"`
	Popular  *bool   `yaml:"popular"`
	Comment  *string `yaml:"comment"`
}

// price decodes a YAML scalar into Money without a float round trip.
type price struct {
	types.Money
}

func (p *price) UnmarshalYAML(node *yaml.Node) error {
	m, err := types.NewMoneyFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q", node.Line, node.Value)
	}
	p.Money = m
	return nil
}

// Parse reads a seed document into drafts, converting category and status at
// the boundary. An empty document yields no drafts.
func Parse(r io.Reader) ([]inventory.Draft, error) {
	var f file
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []inventory.Draft{}, nil
		}
		return nil, apperror.NewInvalidInput("failed to parse seed file").WithCause(err)
	}

	drafts := make([]inventory.Draft, 0, len(f.Items))
	for i, rec := range f.Items {
		d, err := rec.draft()
		if err != nil {
			return nil, withIndex(err, i)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (r record) draft() (inventory.Draft, error) {
	category, err := inventory.ParseCategory(r.Category)
	if err != nil {
		return inventory.Draft{}, err
	}
	status, err := inventory.ParseStatus(r.Status)
	if err != nil {
		return inventory.Draft{}, err
	}

	d := inventory.Draft{
		ID:       r.ID,
		Name:     r.Name,
		Category: category,
		Quantity: r.Quantity,
		Supplier: r.Supplier,
		Status:   status,
		Popular:  r.Popular,
		Comment:  r.Comment,
	}
	if r.Price != nil {
		m := r.Price.Money
		d.Price = &m
	}
	return d, nil
}

// Load adds every draft in r to svc in file order, stopping at the first
// rejected item. It returns the number of items added.
func Load(ctx context.Context, svc *inventory.Service, r io.Reader) (int, error) {
	drafts, err := Parse(r)
	if err != nil {
		return 0, err
	}
	for i, d := range drafts {
		if err := svc.Add(ctx, d); err != nil {
			return i, withIndex(err, i)
		}
	}
	return len(drafts), nil
}

// LoadFile is Load for a file on disk.
func LoadFile(ctx context.Context, svc *inventory.Service, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Load(ctx, svc, f)
}

// withIndex tags err with the position of the offending record.
func withIndex(err error, index int) error {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.WithDetail("index", index)
	}
	return fmt.Errorf("items[%d]: %w", index, err)
}
