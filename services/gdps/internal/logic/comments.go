package logic

import (
	"strings"
	"time"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/internal/service"
)

// commentRows renders a comment page, "-2" when it is empty. History rows
// carry the level id of each comment.
func commentRows(page *service.CommentPage, pageNo, pageSize int, now time.Time, history bool) string {
	if len(page.Comments) == 0 {
		return "-2"
	}
	rows := make([]string, len(page.Comments))
	for i, c := range page.Comments {
		author := page.Authors[c.UserID]
		var comment, user codec.Record
		if history {
			comment = codec.HistoryComment(c, author, now)
		} else {
			comment = codec.LevelComment(c, author, now)
		}
		if author != nil {
			user = codec.CommentAuthor(author)
		}
		rows[i] = codec.CommentRow(comment, user)
	}
	return strings.Join(rows, codec.ListSep) + "#" + codec.Page(page.Total, pageNo, pageSize)
}
