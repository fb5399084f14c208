package views

// ViewState holds the size and status line shared by the view models
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err on the status line
func (s *ViewState) SetError(err error) {
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the status line
func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}

// visibleRows returns how many tree lines fit below the header and above the help line
func (s *ViewState) visibleRows(chrome int) int {
	if s.Height <= 0 {
		return 0 // unknown size, show everything
	}
	if rows := s.Height - chrome; rows > 1 {
		return rows
	}
	return 1
}
