package wall

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/internal/models"
	"github.com/vkfeed/vkfeed/pkg/logging"
)

// Renderer turns raw posts into HTML feed items.
type Renderer struct {
	siteURL    string
	timeOffset time.Duration
	logger     *zap.Logger
}

// NewRenderer creates a renderer. siteURL must end with a slash; the
// offset compensates for the timezone the upstream API reports in.
func NewRenderer(siteURL string, timeOffset time.Duration) *Renderer {
	return &Renderer{
		siteURL:    siteURL,
		timeOffset: timeOffset,
		logger:     logging.GetLogger().With(zap.String("component", "wall-renderer")),
	}
}

// profileURL returns the profile permalink for a signed actor ID.
func (r *Renderer) profileURL(id int64) string {
	if id < 0 {
		return fmt.Sprintf("%sclub%d", r.siteURL, -id)
	}
	return fmt.Sprintf("%sid%d", r.siteURL, id)
}

// postURL returns the wall post permalink.
func (r *Renderer) postURL(ownerID, postID int64) string {
	return fmt.Sprintf("%swall%d_%d", r.siteURL, ownerID, postID)
}

// assemblePost composes a single post into a feed item. The second
// return value is false when the post is excluded from the output.
func (r *Renderer) assemblePost(post *models.Post, owner models.Actor, actors map[int64]models.Actor, opts ReadOptions) (*models.FeedItem, bool) {
	if !opts.ForeignPosts && post.FromID != owner.ID {
		r.logger.Debug("Ignoring foreign post",
			zap.Int64("post_id", post.ID),
			zap.Int64("from_id", post.FromID))
		return nil, false
	}

	// A post whose text merely repeats its primary attachment's title
	// would be captioned twice.
	text := post.Text
	if post.Attachment != nil {
		if title, ok := post.Attachment.Title(); ok && text == title {
			text = ""
		}
	}

	actx := attachmentContext{
		ownerID:    owner.ID,
		postID:     post.ID,
		photoCount: post.PhotoCount(),
	}

	var supported, unsupported []string
	for i := range post.Attachments {
		fragment, class := r.renderAttachment(&post.Attachments[i], actx)
		switch class {
		case classSupported:
			supported = append(supported, fragment)
		case classUnsupported:
			unsupported = append(unsupported, fragment)
		}
	}

	var body strings.Builder
	if len(supported) > 0 {
		body.WriteString("<p>" + strings.Join(supported, "</p><p>") + "</p>")
	}
	body.WriteString(r.Transform(text))
	if len(unsupported) > 0 {
		body.WriteString("<p>" + strings.Join(unsupported, "</p><p>") + "</p>")
	}

	html := body.String()

	if post.IsRepost() {
		html = fmt.Sprintf(`<p><b><a href="%s">%s</a></b> пишет:</p>`,
			r.profileURL(*post.CopyOwnerID), actors[*post.CopyOwnerID].Name) + html

		if post.CopyText != "" {
			html = fmt.Sprintf(`<p>%s</p><div style="margin-left: 1em;">%s</div>`, post.CopyText, html)
		}
	}

	if post.IsReply() {
		html += fmt.Sprintf(`<p><i>В ответ на <a href="%s">запись</a> пользователя <b><a href="%s">%s</a></b>.</i></p>`,
			r.postURL(*post.ReplyOwnerID, *post.ReplyPostID),
			r.profileURL(*post.ReplyOwnerID), actors[*post.ReplyOwnerID].Name)
	}

	if opts.ShowPhoto {
		html = fmt.Sprintf(`<table cellpadding="0" cellspacing="0"><tr valign="top">`+
			`<td><a href="%s"><img %s src="%s" /></a></td>`+
			`<td style="padding-left: 10px;">%s</td>`+
			`</tr></table>`,
			r.profileURL(post.FromID), imgStyle, actors[post.FromID].Photo, html)
	}

	return &models.FeedItem{
		Title: actors[post.FromID].Name,
		URL:   r.postURL(owner.ID, post.ID),
		Text:  html,
		Date:  time.Unix(post.Date, 0).UTC().Add(r.timeOffset),
	}, true
}
