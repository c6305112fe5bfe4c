package handler

import (
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/service"
)

const (
	// contactRedirect is where the form returns after a submission.
	contactRedirect = "/#contact"

	maxFormBytes = 64 << 10

	noticeSent         = "Your message has been sent successfully!"
	noticeNotifyFailed = "Your message was saved, but the notification email failed. Please try again later."
	noticeFormInvalid  = "Please correct the errors in the form."
)

// ContactHandler serves the home page and handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	pages          *PageRenderer
	flash          *Flash
}

// NewContactHandler creates a ContactHandler with the given service, renderer and flash store.
func NewContactHandler(contactService service.ContactService, pages *PageRenderer, flash *Flash) *ContactHandler {
	return &ContactHandler{contactService: contactService, pages: pages, flash: flash}
}

// Index handles GET /: an empty contact form plus any pending flash notice.
func (h *ContactHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{}
	if n, ok := h.flash.ReadAndClear(w, r); ok {
		page.Notice = &n
	}
	h.pages.renderIndex(w, r, http.StatusOK, page)
}

// Submit handles /contact/submit.
// Only POST has an effect; any other method is redirected back to the form.
// An invalid form is re-rendered with status 200; a stored message redirects to
// /#contact with a flash notice describing whether the notification went out.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, contactRedirect, http.StatusFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := service.ContactForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Message: r.PostForm.Get("message"),
	}

	result, err := h.contactService.Submit(r.Context(), form)
	if err != nil {
		slog.ErrorContext(r.Context(), "contact submit failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !result.Valid() {
		h.pages.renderIndex(w, r, http.StatusOK, indexPage{
			Form:   form,
			Errors: result.Errors,
			Notice: &Notice{Kind: NoticeError, Text: noticeFormInvalid},
		})
		return
	}

	notice := Notice{Kind: NoticeSuccess, Text: noticeSent}
	if result.Notification != service.NotifySent {
		notice = Notice{Kind: NoticeWarning, Text: noticeNotifyFailed}
	}
	h.flash.Write(w, r, notice)
	http.Redirect(w, r, contactRedirect, http.StatusFound)
}
