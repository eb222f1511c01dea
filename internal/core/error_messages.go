package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. Users can quote the code shown on an error alert.
//
// # Not Found (COMP001, ATH001)
//
//	COMP001 - Competition request does not exist     Patterns: "competition not found"
//	ATH001  - Athlete does not exist                  Patterns: "athlete not found"
//
// # Validation (VAL001-VAL099)
//
//	VAL001 - Malformed record identifier              Patterns: "invalid id"
//	VAL002 - Unknown filter or parameter value        Patterns: "validation failed", "page size must be positive"
//
// # Export (EXP001-EXP099)
//
//	EXP001 - All export slots busy                    Patterns: "too many concurrent exports"
//	EXP002 - Report could not be generated            Patterns: "export failed", "unsupported export format"
//
// # Database (DB004-DB006)
//
//	DB004 - Connection refused                        Patterns: "connection refused"
//	DB005 - Connection reset                          Patterns: "connection reset"
//	DB006 - Timeout                                   Patterns: "timeout", "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests                       Patterns: "rate limit"
//
// # Default (ERR000)
//
// Fallback when no pattern matches. Check the logs for the technical error,
// which carries the request id.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns precede general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// not found
	{
		pattern: "competition not found",
		msg: UserMessage{
			Message: "Заявка не найдена",
			Action:  "Вернитесь к списку соревнований и выберите другую заявку",
			Code:    "COMP001",
		},
	},
	{
		pattern: "athlete not found",
		msg: UserMessage{
			Message: "Спортсмен не найден",
			Action:  "Проверьте ссылку или выберите спортсмена в рейтинге",
			Code:    "ATH001",
		},
	},

	// validation
	{
		pattern: "invalid id",
		msg: UserMessage{
			Message: "Некорректный идентификатор",
			Action:  "Проверьте ссылку",
			Code:    "VAL001",
		},
	},
	{
		pattern: "validation failed",
		msg: UserMessage{
			Message: "Некорректное значение параметра",
			Action:  "Сбросьте фильтры и попробуйте снова",
			Code:    "VAL002",
		},
	},
	{
		pattern: "page size must be positive",
		msg: UserMessage{
			Message: "Некорректный размер страницы",
			Action:  "Сбросьте параметры страницы",
			Code:    "VAL002",
		},
	},

	// export
	{
		pattern: "too many concurrent exports",
		msg: UserMessage{
			Message: "Сервер формирует другие отчёты",
			Action:  "Подождите немного и повторите попытку",
			Code:    "EXP001",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Формат отчёта не поддерживается",
			Action:  "Выберите PDF или CSV",
			Code:    "EXP002",
		},
	},
	{
		pattern: "export failed",
		msg: UserMessage{
			Message: "Не удалось сформировать отчёт",
			Action:  "Повторите попытку позже",
			Code:    "EXP002",
		},
	},

	// database connectivity
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Нет соединения с базой данных",
			Action:  "Повторите попытку через несколько минут",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Соединение с базой данных прервано",
			Action:  "Повторите попытку",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Превышено время ожидания",
			Action:  "Повторите попытку позже",
			Code:    "DB006",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Превышено время ожидания",
			Action:  "Повторите попытку позже",
			Code:    "DB006",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Слишком много запросов",
			Action:  "Подождите немного перед следующей попыткой",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Произошла непредвиденная ошибка",
	Action:  "Повторите попытку или обратитесь в поддержку",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. If no
// pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Код: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Код: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error, kept for logging, with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
