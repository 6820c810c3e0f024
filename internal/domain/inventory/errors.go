package inventory

import (
	"stockroom/internal/core/apperror"
)

// Result messages shown to users.
const (
	MsgAdded        = "Item added successfully."
	MsgUpdated      = "Item updated successfully."
	MsgDeleted      = "Item deleted successfully."
	MsgRequired     = "All fields except Comment are required."
	MsgDuplicateID  = "Item ID must be unique."
	MsgNegative     = "Quantity and Price must be non-negative."
	MsgNotFound     = "Item not found."
	MsgNotConfirmed = "Deletion not confirmed."
	MsgCancelled    = "Deletion cancelled."
)

func errMissingFields(fields []string) error {
	return apperror.NewMissingField(MsgRequired).WithDetail("fields", fields)
}

func errDuplicateID(id string) error {
	return apperror.NewDuplicate(MsgDuplicateID, "id", id)
}

func errNegative(field string) error {
	return apperror.NewNegativeValue(MsgNegative).WithDetail("field", field)
}

func errNotFound(name string) error {
	return apperror.NewNotFound(MsgNotFound, name)
}

func errNotConfirmed(name string) error {
	return apperror.NewNotConfirmed(MsgNotConfirmed).WithDetail("key", name)
}

// IsMissingField reports a required field absent on add/update.
func IsMissingField(err error) bool { return apperror.Is(err, apperror.CodeMissingField) }

// IsDuplicateID reports an id collision with a different item.
func IsDuplicateID(err error) bool { return apperror.Is(err, apperror.CodeDuplicate) }

// IsNegativeValue reports a quantity or price below zero.
func IsNegativeValue(err error) bool { return apperror.Is(err, apperror.CodeNegativeValue) }

// IsNotFound reports a name that matches no item.
func IsNotFound(err error) bool { return apperror.Is(err, apperror.CodeNotFound) }

// IsNotConfirmed reports a delete attempted without confirmation.
func IsNotConfirmed(err error) bool { return apperror.Is(err, apperror.CodeNotConfirmed) }

// Message returns the user-facing result text for an operation outcome:
// the error's message on failure, success otherwise.
func Message(err error, success string) string {
	if err != nil {
		return apperror.MessageOf(err)
	}
	return success
}
