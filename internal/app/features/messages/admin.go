// internal/app/features/messages/admin.go
package messages

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/paging"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/messages"

type listVM struct {
	viewdata.BaseVM
	Messages   []models.Message
	UnreadOnly bool
	Unread     int64
	Total      int64
	Page       paging.Range
	PrevURL    string
	NextURL    string
}

type showVM struct {
	formutil.Base
	Item        models.Message
	ReplyHref   string
	ReceivedAt  string
	RepliedAt   string
	Action      string
	DeleteRoute string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	unreadOnly := query.Get(r, "filter") == "unread"
	start := paging.ParseStart(r)
	list, err := h.Store.List(ctx, messagestore.Filter{
		UnreadOnly: unreadOnly,
		Skip:       paging.Skip(start),
		Limit:      paging.LimitPlusOne(),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list messages failed", err, "Failed to load messages.", "/admin")
		return
	}
	unread, err := h.Store.CountUnread(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count messages failed", err, "Failed to load messages.", "/admin")
		return
	}
	total, err := h.Store.CountAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count messages failed", err, "Failed to load messages.", "/admin")
		return
	}
	hasNext := paging.TrimPage(&list)
	page := paging.ComputeRange(start, len(list), hasNext)
	templates.Render(w, r, "messages_list", listVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Messages", "/admin"),
		Messages:   list,
		UnreadOnly: unreadOnly,
		Unread:     unread,
		Total:      total,
		Page:       page,
		PrevURL:    pageURL(unreadOnly, page.PrevStart),
		NextURL:    pageURL(unreadOnly, page.NextStart),
	})
}

func pageURL(unreadOnly bool, start int) string {
	q := url.Values{}
	if unreadOnly {
		q.Set("filter", "unread")
	}
	if start > 1 {
		q.Set("start", strconv.Itoa(start))
	}
	if len(q) == 0 {
		return listPath
	}
	return listPath + "?" + q.Encode()
}

// ServeShow opens a message, marking it read.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Open(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderShow(w, r, m, "")
}

// HandleUpdate saves the inbox state: read, replied and notes.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	id := chi.URLParam(r, "id")
	in := messagestore.Input{
		IsRead:    formutil.Bool(r, "isRead"),
		IsReplied: formutil.Bool(r, "isReplied"),
		Notes:     formutil.String(r, "notes"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Update(ctx, id, in)
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.Log.Info("message updated",
		zap.String("message_id", m.ID.Hex()),
		zap.Bool("replied", m.IsReplied))
	h.renderShow(w, r, m, "Saved.")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.loadFailed(w, r, err)
		return
	}
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) renderShow(w http.ResponseWriter, r *http.Request, m models.Message, notice string) {
	vm := showVM{
		Item:        m,
		ReplyHref:   "mailto:" + m.Email + "?subject=Re:%20" + replySubject(m.Subject),
		ReceivedAt:  m.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		Action:      listPath + "/" + m.ID.Hex(),
		DeleteRoute: listPath + "/" + m.ID.Hex() + "/delete",
	}
	if m.RepliedAt != nil {
		vm.RepliedAt = m.RepliedAt.Format("Jan 2, 2006 3:04 PM")
	}
	formutil.SetBase(&vm.Base, r, h.DB, m.Subject, listPath)
	vm.IsEdit = true
	vm.Notice = notice
	templates.Render(w, r, "messages_show", vm)
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "message not found", err, "Message not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load message failed", err, "Failed to load message.", listPath)
}

func replySubject(s string) string {
	return url.PathEscape(s)
}
