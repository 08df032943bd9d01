package tui

const unknownViewType = "unknown"

// ViewType represents which tab is active.
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewReviews
)

// String returns the lowercase name of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewReviews:
		return "reviews"
	default:
		return unknownViewType
	}
}

// Title returns the tab label.
func (v ViewType) Title() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewReviews:
		return "Reviews"
	default:
		return unknownViewType
	}
}

var viewOrder = []ViewType{ViewSearch, ViewReviews}

func (v ViewType) next() ViewType {
	return viewOrder[(int(v)+1)%len(viewOrder)]
}

func (v ViewType) prev() ViewType {
	return viewOrder[(int(v)+len(viewOrder)-1)%len(viewOrder)]
}
