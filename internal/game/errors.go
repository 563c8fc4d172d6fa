package game

import (
	"errors"
	"fmt"
)

// Code identifies why a move was rejected.
type Code string

const (
	CodeWrongSelectionCount Code = "wrong_selection_count"
	CodeSelectionFull       Code = "selection_full"
	CodeInsufficientScore   Code = "insufficient_score"
	CodeSlotsFull           Code = "slots_full"
	CodeOneTimeRepurchase   Code = "one_time_repurchase"
	CodeAlreadyOwned        Code = "already_owned"
	CodeNotStarted          Code = "not_started"
	CodeAlreadyStarted      Code = "already_started"
	CodeGameOver            Code = "game_over"
	CodeAlreadyConfirmed    Code = "already_confirmed"
	CodeNotConfirmed        Code = "not_confirmed"
	CodeLastSubround        Code = "last_subround"
	CodeRoundIncomplete     Code = "round_incomplete"
	CodeUnknownItem         Code = "unknown_item"
	CodeUnknownCard         Code = "unknown_card"
	CodeItemLocked          Code = "item_locked"
)

// ValidationError reports a move the rules do not allow. The state is left
// exactly as it was before the call.
type ValidationError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(code Code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError with the given code.
func IsValidation(err error, code Code) bool {
	var v *ValidationError
	return errors.As(err, &v) && v.Code == code
}
