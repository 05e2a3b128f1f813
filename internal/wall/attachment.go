package wall

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/internal/models"
)

const imgStyle = `style="border-style: none; display: block;"`

// renderClass tells the assembler where a rendered fragment belongs.
type renderClass int

const (
	// classSupported fragments are rich HTML shown before the text.
	classSupported renderClass = iota
	// classUnsupported fragments are one-line notices shown after it.
	classUnsupported
	// classSkip means the attachment produced no fragment at all.
	classSkip
)

// attachmentContext carries the post-level facts a single attachment
// needs to render itself.
type attachmentContext struct {
	ownerID    int64
	postID     int64
	photoCount int
}

// renderAttachment maps an attachment to its HTML fragment. Fields of a
// recognized variant are trusted to be present.
func (r *Renderer) renderAttachment(att *models.Attachment, actx attachmentContext) (string, renderClass) {
	switch att.Kind {
	case models.AttachmentApp:
		return fmt.Sprintf(`<a href="%sapp%d"><img %s src="%s" /></a>`,
			r.siteURL, att.App.AppID, imgStyle, att.App.Src), classSupported

	case models.AttachmentGraffiti:
		return fmt.Sprintf(`<a href="%sgraffiti%d"><img %s src="%s" /></a>`,
			r.siteURL, att.Graffiti.GID, imgStyle, att.Graffiti.Src), classSupported

	case models.AttachmentLink:
		return r.renderLink(att.Link), classSupported

	case models.AttachmentPhoto, models.AttachmentPostedPhoto:
		return r.renderPhoto(att.Photo, actx), classSupported

	case models.AttachmentVideo:
		return fmt.Sprintf(`<a href="%svideo%d_%d"><img %s src="%s" /><b>%s (%s)</b></a>`,
			r.siteURL, att.Video.OwnerID, att.Video.VID, imgStyle, att.Video.Image,
			att.Video.Title, formatDuration(att.Video.Duration)), classSupported

	case models.AttachmentAudio:
		query := url.Values{
			"c[q]":       {att.Audio.Performer + " - " + att.Audio.Title},
			"c[section]": {"audio"},
		}
		return fmt.Sprintf(`<b>Аудиозапись: <a href="%ssearch?%s">%s - %s (%s)</a></b>`,
			r.siteURL, query.Encode(), att.Audio.Performer, att.Audio.Title,
			formatDuration(att.Audio.Duration)), classUnsupported

	case models.AttachmentDoc:
		return fmt.Sprintf(`<b>Документ: %s</b>`, att.Doc.Title), classUnsupported

	case models.AttachmentNote:
		return fmt.Sprintf(`<b>Заметка: %s</b>`, att.Note.Title), classUnsupported

	case models.AttachmentPage:
		return fmt.Sprintf(`<b>Страница: %s</b>`, att.Page.Title), classUnsupported

	case models.AttachmentPoll:
		return fmt.Sprintf(`<b>Опрос: %s</b>`, att.Poll.Question), classUnsupported
	}

	r.logger.Debug("Skipping attachment of unknown type",
		zap.String("type", string(att.Kind)))

	return "", classSkip
}

func (r *Renderer) renderLink(link *models.LinkAttachment) string {
	description := r.Transform(link.Description)
	if description == "" {
		description = link.Title
	}

	html := fmt.Sprintf(`<b>Ссылка: <a href="%s">%s</a></b><p>`, link.URL, link.Title)

	switch {
	case link.ImageSrc != "" && description != "":
		html += fmt.Sprintf(`<table cellpadding="0" cellspacing="0"><tr valign="top">`+
			`<td><a href="%s"><img %s src="%s" /></a></td>`+
			`<td style="padding-left: 10px;">%s</td>`+
			`</tr></table>`, link.URL, imgStyle, link.ImageSrc, description)
	case link.ImageSrc != "":
		html += fmt.Sprintf(`<a href="%s"><img %s src="%s" /></a>`, link.URL, imgStyle, link.ImageSrc)
	case description != "":
		html += description
	}

	return html + "</p>"
}

func (r *Renderer) renderPhoto(photo *models.PhotoAttachment, actx attachmentContext) string {
	// Oversized layouts look bad with several photos, so the large
	// variant is only used for a lone photo.
	src := photo.Src
	if actx.photoCount == 1 {
		src = photo.SrcBig
	}

	// A photo may have zero IDs if it was for example generated by an
	// application; such photos have no deep link of their own.
	if photo.PhotoID() == 0 || photo.OwnerID == 0 {
		return fmt.Sprintf(`<a href="%swall%d_%d"><img %s src="%s" /></a>`,
			r.siteURL, actx.ownerID, actx.postID, imgStyle, src)
	}

	return fmt.Sprintf(`<a href="%swall%d_%d?z=photo%d_%d%%2Fwall%d_%d"><img %s src="%s" /></a>`,
		r.siteURL, actx.ownerID, actx.postID, photo.OwnerID, photo.PhotoID(),
		actx.ownerID, actx.postID, imgStyle, src)
}

// formatDuration renders a duration in seconds as MM:SS, or HH:MM:SS
// once it crosses an hour.
func formatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds = seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
