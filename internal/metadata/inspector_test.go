package metadata

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

type widget struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Color     color           `json:"color"`
	Count     int             `json:"count"`
	Weight    float64         `json:"weight"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Active    bool            `json:"active"`
	Note      *string         `json:"note,omitempty"`
	Seen      time.Time       `json:"seen,omitempty"`
	Secret    string          `json:"-"`
}

func TestInspect(t *testing.T) {
	def := Inspect(&widget{}, "widget", WithEnum([]color{"red", "blue"}))

	assert.Equal(t, "widget", def.Name)
	require.Len(t, def.Fields, 9)

	tests := []struct {
		name     string
		typ      FieldType
		required bool
	}{
		{"id", TypeString, true},
		{"color", TypeEnum, true},
		{"count", TypeInteger, true},
		{"weight", TypeNumber, true},
		{"unitPrice", TypeMoney, true},
		{"active", TypeBoolean, true},
		{"note", TypeString, false},
		{"seen", TypeDate, false},
	}
	for _, tt := range tests {
		f, ok := def.Field(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.typ, f.Type, tt.name)
		assert.Equal(t, tt.required, f.Required, tt.name)
	}

	colorField, _ := def.Field("color")
	assert.Equal(t, []string{"red", "blue"}, colorField.Options)

	price, _ := def.Field("unitPrice")
	assert.Equal(t, 2, price.Scale)
	assert.Equal(t, "Unit Price", price.Label)

	_, ok := def.Field("Secret")
	assert.False(t, ok)
}

func TestGuessLabel(t *testing.T) {
	assert.Equal(t, "ID", guessLabel("ID"))
	assert.Equal(t, "Office Chair", guessLabel("OfficeChair"))
	assert.Equal(t, "Item ID", guessLabel("ItemID"))
	assert.Equal(t, "HTTP Status", guessLabel("HTTPStatus"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(EntityDef{Name: "b"})
	r.Register(EntityDef{Name: "a"})

	def, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", def.Name)

	_, ok = r.Get("c")
	assert.False(t, ok)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
}
