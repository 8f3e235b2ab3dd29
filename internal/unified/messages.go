package unified

import (
	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/operations"
)

// loadedMsg delivers one collection load belonging to a reload batch.
type loadedMsg struct {
	batch  int
	result operations.LoadResult
}

// statsMsg delivers a stats refresh. Failures are only logged.
type statsMsg struct {
	stats catalog.Stats
	err   error
}

// commandMsg delivers the result of a save, delete or return. form is the
// sequence number of the form that saved, 0 for other commands.
type commandMsg struct {
	outcome operations.Outcome
	err     error
	form    int
}

// bookReviewsMsg delivers the reviews of the book shown in the detail pane.
type bookReviewsMsg struct {
	bookID  int
	reviews []catalog.Review
	err     error
}
