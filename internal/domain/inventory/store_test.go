package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
)

func strPtr(s string) *string { return &s }

func laptop() Item {
	return Item{
		ID:       "1",
		Name:     "Laptop",
		Category: CategoryElectronics,
		Quantity: 5,
		Price:    types.MustMoney("1000"),
		Supplier: "SupplierA",
		Status:   StatusInStock,
		Popular:  true,
	}
}

func mouse() Item {
	return Item{
		ID:       "2",
		Name:     "Mouse",
		Category: CategoryElectronics,
		Quantity: 40,
		Price:    types.MustMoney("19.99"),
		Supplier: "SupplierB",
		Status:   StatusInStock,
		Popular:  false,
	}
}

func chair() Item {
	return Item{
		ID:       "3",
		Name:     "Office Chair",
		Category: CategoryFurniture,
		Quantity: 2,
		Price:    types.MustMoney("249.5"),
		Supplier: "SupplierC",
		Status:   StatusLowStock,
		Popular:  true,
		Comment:  strPtr("ergonomic"),
	}
}

func seeded(t *testing.T, items ...Item) *Store {
	t.Helper()
	s := NewStore()
	for _, item := range items {
		require.NoError(t, s.Add(DraftOf(item)))
	}
	return s
}

func TestStore_ExampleScenario(t *testing.T) {
	s := NewStore()

	err := s.Add(DraftOf(laptop()))
	assert.Equal(t, MsgAdded, Message(err, MsgAdded))
	require.Len(t, s.ListAll(), 1)
	assert.Equal(t, laptop(), s.ListAll()[0])

	dup := mouse()
	dup.ID = "1"
	err = s.Add(DraftOf(dup))
	assert.True(t, IsDuplicateID(err))
	assert.Equal(t, MsgDuplicateID, Message(err, MsgAdded))
	assert.Len(t, s.ListAll(), 1)
}

func TestStore_AddValidItemIsListed(t *testing.T) {
	s := NewStore()
	items := []Item{laptop(), mouse(), chair()}

	for _, item := range items {
		require.NoError(t, s.Add(DraftOf(item)))
	}

	assert.Equal(t, items, s.ListAll())
	assert.Equal(t, 3, s.Len())
}

func TestStore_AddZeroQuantityAndPrice(t *testing.T) {
	free := mouse()
	free.Quantity = 0
	free.Price = types.Zero()

	s := NewStore()

	assert.NoError(t, s.Add(DraftOf(free)))
}

func TestStore_ValidateOrder(t *testing.T) {
	s := seeded(t, laptop())

	// Missing fields are reported before the duplicate id and negative values.
	d := DraftOf(laptop())
	d.Supplier = ""
	neg := -1
	d.Quantity = &neg
	err := s.Validate(d)
	assert.True(t, IsMissingField(err))
	assert.Equal(t, MsgRequired, apperror.MessageOf(err))

	// Duplicate id is reported before negative values.
	d = DraftOf(laptop())
	d.Quantity = &neg
	assert.True(t, IsDuplicateID(s.Validate(d)))

	d = DraftOf(mouse())
	d.Quantity = &neg
	err = s.Validate(d)
	assert.True(t, IsNegativeValue(err))
	assert.Equal(t, MsgNegative, apperror.MessageOf(err))
}

func TestStore_ValidateMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		field  string
	}{
		{"id", func(d *Draft) { d.ID = "" }, "id"},
		{"name", func(d *Draft) { d.Name = "" }, "name"},
		{"category", func(d *Draft) { d.Category = "" }, "category"},
		{"quantity", func(d *Draft) { d.Quantity = nil }, "quantity"},
		{"price", func(d *Draft) { d.Price = nil }, "price"},
		{"supplier", func(d *Draft) { d.Supplier = "" }, "supplier"},
		{"status", func(d *Draft) { d.Status = "" }, "status"},
		{"popular", func(d *Draft) { d.Popular = nil }, "popular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			d := DraftOf(laptop())
			tt.mutate(&d)

			err := s.Add(d)

			require.True(t, IsMissingField(err))
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, []string{tt.field}, appErr.Details["fields"])
			assert.Zero(t, s.Len())
		})
	}
}

func TestStore_CommentIsOptional(t *testing.T) {
	s := NewStore()
	d := DraftOf(laptop())
	d.Comment = nil

	require.NoError(t, s.Add(d))
	assert.Nil(t, s.ListAll()[0].Comment)
}

func TestStore_NegativePrice(t *testing.T) {
	s := NewStore()
	d := DraftOf(mouse())
	price := types.MustMoney("-0.01")
	d.Price = &price

	err := s.Add(d)

	assert.True(t, IsNegativeValue(err))
	assert.Zero(t, s.Len())
}

func TestStore_FindByNameIgnoresCase(t *testing.T) {
	s := seeded(t, laptop(), mouse())

	for _, name := range []string{"Laptop", "laptop", "LAPTOP", "lApToP"} {
		item, err := s.FindByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, "1", item.ID)
	}

	_, err := s.FindByName("Lap")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, MsgNotFound, apperror.MessageOf(err))
}

func TestStore_FindByNameReturnsFirstMatch(t *testing.T) {
	second := laptop()
	second.ID = "99"
	second.Name = "LAPTOP"

	s := seeded(t, laptop(), second)

	item, err := s.FindByName("laptop")
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)
}

func TestStore_FindReturnsCopy(t *testing.T) {
	s := seeded(t, chair())

	item, err := s.FindByName("office chair")
	require.NoError(t, err)
	*item.Comment = "scratched"
	item.Quantity = 1000

	again, err := s.FindByName("office chair")
	require.NoError(t, err)
	assert.Equal(t, "ergonomic", *again.Comment)
	assert.Equal(t, 2, again.Quantity)
}

func TestStore_UpdateMissingNameLeavesCollection(t *testing.T) {
	s := seeded(t, laptop(), mouse())
	before := s.ListAll()

	err := s.UpdateByName("Keyboard", DraftOf(chair()))

	assert.True(t, IsNotFound(err))
	assert.Equal(t, before, s.ListAll())
}

func TestStore_UpdateKeepingOwnID(t *testing.T) {
	s := seeded(t, laptop(), mouse())

	updated := laptop()
	updated.Quantity = 3
	updated.Status = StatusLowStock
	updated.Comment = strPtr("two sold")

	require.NoError(t, s.UpdateByName("laptop", DraftOf(updated)))
	assert.Equal(t, []Item{updated, mouse()}, s.ListAll())
}

func TestStore_UpdateIsFullReplacementInPlace(t *testing.T) {
	s := seeded(t, laptop(), mouse(), chair())

	replacement := Item{
		ID:       "20",
		Name:     "Trackball",
		Category: CategoryElectronics,
		Quantity: 7,
		Price:    types.MustMoney("59"),
		Supplier: "SupplierD",
		Status:   StatusInStock,
		Popular:  false,
	}

	require.NoError(t, s.UpdateByName("MOUSE", DraftOf(replacement)))

	all := s.ListAll()
	assert.Equal(t, []Item{laptop(), replacement, chair()}, all)

	_, err := s.FindByName("Mouse")
	assert.True(t, IsNotFound(err))
}

func TestStore_UpdateToAnotherItemsIDFails(t *testing.T) {
	s := seeded(t, laptop(), mouse())
	before := s.ListAll()

	taken := mouse()
	taken.ID = "1"

	err := s.UpdateByName("Mouse", DraftOf(taken))

	assert.True(t, IsDuplicateID(err))
	assert.Equal(t, before, s.ListAll())
}

func TestStore_UpdateValidationFailureLeavesCollection(t *testing.T) {
	s := seeded(t, laptop())
	before := s.ListAll()

	d := DraftOf(laptop())
	d.Name = ""

	assert.True(t, IsMissingField(s.UpdateByName("Laptop", d)))

	d = DraftOf(laptop())
	neg := types.MustMoney("-5")
	d.Price = &neg

	assert.True(t, IsNegativeValue(s.UpdateByName("Laptop", d)))
	assert.Equal(t, before, s.ListAll())
}

func TestStore_DeleteRequiresConfirmation(t *testing.T) {
	s := seeded(t, laptop(), mouse())
	before := s.ListAll()

	for _, name := range []string{"Laptop", "laptop", "Nothing"} {
		err := s.DeleteByName(name, false)
		assert.True(t, IsNotConfirmed(err), name)
		assert.Equal(t, MsgNotConfirmed, apperror.MessageOf(err))
	}

	assert.Equal(t, before, s.ListAll())
}

func TestStore_DeleteConfirmed(t *testing.T) {
	s := seeded(t, laptop(), mouse(), chair())

	err := s.DeleteByName("MOUSE", true)
	assert.NoError(t, err)
	assert.Equal(t, MsgDeleted, Message(err, MsgDeleted))
	assert.Equal(t, []Item{laptop(), chair()}, s.ListAll())

	err = s.DeleteByName("Mouse", true)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 2, s.Len())
}

func TestStore_DeleteRemovesOnlyFirstMatch(t *testing.T) {
	twin := laptop()
	twin.ID = "1b"

	s := seeded(t, laptop(), twin)

	require.NoError(t, s.DeleteByName("Laptop", true))

	all := s.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, "1b", all[0].ID)
}

func TestStore_SearchByName(t *testing.T) {
	s := seeded(t, laptop(), mouse(), chair())

	assert.Equal(t, []Item{laptop(), mouse(), chair()}, s.SearchByName(""))
	assert.Equal(t, []Item{laptop()}, s.SearchByName("TOP"))
	assert.Equal(t, []Item{mouse()}, s.SearchByName("OU"))
	assert.Equal(t, []Item{chair()}, s.SearchByName("chair"))
	assert.Empty(t, s.SearchByName("sofa"))
	assert.NotNil(t, s.SearchByName("sofa"))
}

func TestStore_SearchPreservesOrder(t *testing.T) {
	s := seeded(t, chair(), laptop(), mouse())

	got := s.SearchByName("O")

	require.Len(t, got, 3)
	assert.Equal(t, []string{"3", "1", "2"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestStore_ListPopular(t *testing.T) {
	s := seeded(t, laptop(), mouse(), chair())

	assert.Equal(t, []Item{laptop(), chair()}, s.ListPopular())

	empty := seeded(t, mouse())
	assert.Empty(t, empty.ListPopular())
}

func TestStore_ListAllEmpty(t *testing.T) {
	s := NewStore()

	assert.Empty(t, s.ListAll())
	assert.Zero(t, s.Len())
}
