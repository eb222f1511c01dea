package domain

// Color names a chip color of the dashboard palette.
type Color string

const (
	ColorSuccess   Color = "success"
	ColorDanger    Color = "danger"
	ColorWarning   Color = "warning"
	ColorSecondary Color = "secondary"
	ColorPrimary   Color = "primary"
)

// Label returns the localized status text. Statuses other than approved and
// declined read as under review.
func (s RequestStatus) Label() string {
	switch s {
	case StatusApproved:
		return "Одобрено"
	case StatusDeclined:
		return "Отклонено"
	default:
		return "На рассмотрении"
	}
}

// Color returns the chip color for the status.
func (s RequestStatus) Color() Color {
	switch s {
	case StatusApproved:
		return ColorSuccess
	case StatusDeclined:
		return ColorDanger
	default:
		return ColorWarning
	}
}

// Label returns the localized level text. Unknown levels read as regional.
func (l CompetitionLevel) Label() string {
	switch l {
	case LevelFederal:
		return "Всероссийский"
	case LevelOpen:
		return "Открытый"
	default:
		return "Региональный"
	}
}

// Color returns the chip color for the level.
func (l CompetitionLevel) Color() Color {
	return ColorSecondary
}

// StatusOptions lists the statuses offered by listing filters, in display order.
var StatusOptions = []RequestStatus{StatusApproved, StatusPending, StatusDeclined}

// LevelOptions lists the levels offered by listing filters, in display order.
var LevelOptions = []CompetitionLevel{LevelFederal, LevelOpen, LevelRegional}
