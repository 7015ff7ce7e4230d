package availability

import "context"

const (
	DialogTitle        = "Choose your dates!"
	AvailableMessage   = "Room is available!"
	BookNowLabel       = "Book Now!"
	NotAvailableMsg    = "Not Available"
	GenericFailureMsg  = "Something went wrong. Please try again."
	IconSuccess        = "success"
	IconError          = "error"
	searchAvailability = "/search-availability-json"
)

// MultiInputOptions describes the date dialog and its lifecycle hooks.
// Modal implementations call WillOpen, then DidOpen, then let the user fill
// the form, then PreConfirm once the user confirms.
type MultiInputOptions struct {
	Title      string
	Form       *DateForm
	WillOpen   func() error
	DidOpen    func() error
	PreConfirm func() ([]string, error)
}

// Link is a call-to-action rendered in a notice.
type Link struct {
	Href  string
	Label string
}

// Notice is a result dialog.
type Notice struct {
	Icon              string
	Title             string
	Message           string
	Link              *Link
	ShowConfirmButton bool
}

// Modal presents dialogs to the user.
type Modal interface {
	// MultiInput shows the form and blocks until the user confirms or
	// dismisses. confirmed is false on dismissal.
	MultiInput(ctx context.Context, opts MultiInputOptions) (values []string, confirmed bool, err error)
	Success(ctx context.Context, n Notice) error
	Error(ctx context.Context, n Notice) error
}

// NoticeFor maps a result onto the dialog that should be shown for it.
func NoticeFor(r Result) Notice {
	switch res := r.(type) {
	case Available:
		return Notice{
			Icon:    IconSuccess,
			Message: AvailableMessage,
			Link: &Link{
				Href:  BookingLink(res),
				Label: BookNowLabel,
			},
			ShowConfirmButton: false,
		}
	case Unavailable:
		return Notice{
			Icon:              IconError,
			Message:           NotAvailableMsg,
			ShowConfirmButton: true,
		}
	default:
		return Notice{
			Icon:              IconError,
			Message:           GenericFailureMsg,
			ShowConfirmButton: true,
		}
	}
}
